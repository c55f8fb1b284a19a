package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/achievement"
	"propositosAPI/internal/league"
	"propositosAPI/internal/stats"
	"propositosAPI/internal/types/notification"
)

type AchievementService struct {
	db            *pgxpool.Pool
	pointsService *PointsService
	notifications *NotificationService
}

func NewAchievementService(db *pgxpool.Pool, pointsService *PointsService, notifications *NotificationService) *AchievementService {
	return &AchievementService{
		db:            db,
		pointsService: pointsService,
		notifications: notifications,
	}
}

const achievementColumns = `id, user_id, name, description, icon, target_type, target_value,
	current_value, category, is_earned, earned_at, created_at, updated_at`

func scanAchievement(row pgx.Row) (*achievement.UserAchievement, error) {
	a := &achievement.UserAchievement{}
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Description,
		&a.Icon,
		&a.TargetType,
		&a.TargetValue,
		&a.CurrentValue,
		&a.Category,
		&a.IsEarned,
		&a.EarnedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AchievementService) Create(ctx context.Context, userID uuid.UUID, req *achievement.CreateAchievementRequest) (*achievement.UserAchievement, error) {
	if req.TargetValue <= 0 {
		return nil, fmt.Errorf("target value must be positive")
	}

	query := `
	INSERT INTO user_achievements (user_id, name, description, icon, target_type, target_value, category)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + achievementColumns

	a, err := scanAchievement(s.db.QueryRow(ctx, query,
		userID,
		req.Name,
		req.Description,
		req.Icon,
		req.TargetType,
		req.TargetValue,
		req.Category,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}
	return a, nil
}

func (s *AchievementService) List(ctx context.Context, userID uuid.UUID) ([]*achievement.UserAchievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM user_achievements WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*achievement.UserAchievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, nil
}

func (s *AchievementService) Delete(ctx context.Context, userID, achievementID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM user_achievements WHERE id = $1 AND user_id = $2`,
		achievementID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete achievement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("achievement not found")
	}
	return nil
}

// Templates returns the seed catalog offered at creation time.
func (s *AchievementService) Templates() []achievement.Template {
	return achievement.Templates
}

// Sync refreshes current_value for unearned achievements from the live
// stats and latches newly crossed targets. Earned rows are skipped
// outright, so a regressed stat never rewrites them.
func (s *AchievementService) Sync(ctx context.Context, userID uuid.UUID, live *stats.LiveStats) error {
	achievements, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	for _, a := range achievements {
		step, value := achievement.PlanSync(a, live)
		switch step {
		case achievement.SyncSkip, achievement.SyncNoop:
			continue

		case achievement.SyncEarn:
			query := `
			UPDATE user_achievements
			SET current_value = $3, is_earned = true, earned_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND user_id = $2 AND is_earned = false
			`
			result, err := s.db.Exec(ctx, query, a.ID, userID, value)
			if err != nil {
				return fmt.Errorf("failed to mark achievement earned: %w", err)
			}
			// A concurrent sync may have latched it first; award once.
			if result.RowsAffected() == 0 {
				continue
			}

			if _, err := s.pointsService.ApplyDelta(ctx, userID, league.PointsAchievementEarned); err != nil {
				log.Printf("Failed to apply achievement points for %s: %v", userID, err)
			}

			s.notifications.Notify(ctx, userID, notification.NotificationAchievement,
				"¡Logro desbloqueado!", fmt.Sprintf("%s %s", a.Icon, a.Name),
				map[string]any{"achievement_id": a.ID.String()})

		case achievement.SyncUpdate:
			_, err := s.db.Exec(ctx,
				`UPDATE user_achievements SET current_value = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
				a.ID, userID, value)
			if err != nil {
				return fmt.Errorf("failed to update achievement progress: %w", err)
			}
		}
	}

	return nil
}

func (s *AchievementService) GetByID(ctx context.Context, userID, achievementID uuid.UUID) (*achievement.UserAchievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM user_achievements WHERE id = $1 AND user_id = $2`

	a, err := scanAchievement(s.db.QueryRow(ctx, query, achievementID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("achievement not found")
		}
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return a, nil
}
