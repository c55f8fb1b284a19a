package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

const profileColumns = `id, clerk_id, email, name, avatar_url, timezone, notification_mode, created_at, updated_at`

func scanProfile(row pgx.Row) (*user.Profile, error) {
	p := &user.Profile{}
	err := row.Scan(
		&p.ID,
		&p.ClerkID,
		&p.Email,
		&p.Name,
		&p.AvatarURL,
		&p.Timezone,
		&p.NotificationMode,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProfile provisions a profile from a Clerk user.created event.
// Re-delivered events update the existing row instead of failing.
func (s *UserService) CreateProfile(ctx context.Context, req *user.CreateProfileRequest) (*user.Profile, error) {
	query := `
	INSERT INTO profiles (id, clerk_id, email, name, avatar_url, timezone, notification_mode)
	VALUES ($1, $2, $3, $4, $5, 'Europe/Madrid', 'daily')
	ON CONFLICT (clerk_id) DO UPDATE
	SET email = EXCLUDED.email, name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url, updated_at = NOW()
	RETURNING ` + profileColumns

	p, err := scanProfile(s.db.QueryRow(ctx, query,
		uuid.New(),
		req.ClerkID,
		req.Email,
		req.Name,
		req.AvatarURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

func (s *UserService) GetProfileByClerkID(ctx context.Context, clerkID string) (*user.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE clerk_id = $1`

	p, err := scanProfile(s.db.QueryRow(ctx, query, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *user.UpdateProfileRequest) (*user.Profile, error) {
	query := `
	UPDATE profiles
	SET
		name = COALESCE($2, name),
		avatar_url = COALESCE($3, avatar_url),
		timezone = COALESCE($4, timezone),
		notification_mode = COALESCE($5, notification_mode),
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + profileColumns

	p, err := scanProfile(s.db.QueryRow(ctx, query,
		userID,
		req.Name,
		req.AvatarURL,
		req.Timezone,
		req.NotificationMode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

// UpdateProfileFromClerk mirrors a Clerk user.updated event into the profile.
func (s *UserService) UpdateProfileFromClerk(ctx context.Context, clerkID string, email, name string, avatarURL *string) error {
	result, err := s.db.Exec(ctx, `
	UPDATE profiles
	SET email = $2, name = $3, avatar_url = COALESCE($4, avatar_url), updated_at = NOW()
	WHERE clerk_id = $1
	`, clerkID, email, name, avatarURL)
	if err != nil {
		return fmt.Errorf("failed to sync profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// DeleteByClerkID removes the profile; dependent rows cascade in the
// schema.
func (s *UserService) DeleteByClerkID(ctx context.Context, clerkID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM profiles WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// ListProfiles pages through all profiles, newest first. Admin surface
// only.
func (s *UserService) ListProfiles(ctx context.Context, limit, offset int) ([]*user.Profile, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*user.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// GetPreferences returns the user's preferences, inserting the defaults on
// first access.
func (s *UserService) GetPreferences(ctx context.Context, userID uuid.UUID) (*user.Preferences, error) {
	query := `
	INSERT INTO user_preferences (user_id)
	VALUES ($1)
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id, user_id, achievements_display_count, notifications_enabled, notification_time, profile_visibility, created_at, updated_at
	`

	p := &user.Preferences{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.AchievementsDisplayCount,
		&p.NotificationsEnabled,
		&p.NotificationTime,
		&p.ProfileVisibility,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return p, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *user.UpdatePreferencesRequest) (*user.Preferences, error) {
	if _, err := s.GetPreferences(ctx, userID); err != nil {
		return nil, err
	}

	query := `
	UPDATE user_preferences
	SET
		achievements_display_count = COALESCE($2, achievements_display_count),
		notifications_enabled = COALESCE($3, notifications_enabled),
		notification_time = COALESCE($4, notification_time),
		profile_visibility = COALESCE($5, profile_visibility),
		updated_at = NOW()
	WHERE user_id = $1
	RETURNING id, user_id, achievements_display_count, notifications_enabled, notification_time, profile_visibility, created_at, updated_at
	`

	p := &user.Preferences{}
	err := s.db.QueryRow(ctx, query,
		userID,
		req.AchievementsDisplayCount,
		req.NotificationsEnabled,
		req.NotificationTime,
		req.ProfileVisibility,
	).Scan(
		&p.ID,
		&p.UserID,
		&p.AchievementsDisplayCount,
		&p.NotificationsEnabled,
		&p.NotificationTime,
		&p.ProfileVisibility,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return p, nil
}

// GetRole returns the user's role, defaulting to plain user when no
// user_roles row exists.
func (s *UserService) GetRole(ctx context.Context, userID uuid.UUID) (user.Role, error) {
	var role user.Role
	err := s.db.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.RoleUser, nil
		}
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	role, err := s.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == user.RoleAdmin, nil
}
