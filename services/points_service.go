package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/league"
)

type PointsService struct {
	db *pgxpool.Pool
}

func NewPointsService(db *pgxpool.Pool) *PointsService {
	return &PointsService{db: db}
}

// GetOrCreate returns the user's points row, inserting a zeroed bronze row
// on first access.
func (s *PointsService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*league.UserPoints, error) {
	points, err := s.get(ctx, userID)
	if err == nil {
		return points, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user points: %w", err)
	}

	query := `
	INSERT INTO user_points (user_id, total_points, weekly_points, league_tier)
	VALUES ($1, 0, 0, 'bronze')
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id, user_id, total_points, weekly_points, league_tier, rank_position, created_at, updated_at
	`

	points = &league.UserPoints{}
	err = s.db.QueryRow(ctx, query, userID).Scan(
		&points.ID,
		&points.UserID,
		&points.TotalPoints,
		&points.WeeklyPoints,
		&points.LeagueTier,
		&points.RankPosition,
		&points.CreatedAt,
		&points.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user points: %w", err)
	}

	return points, nil
}

func (s *PointsService) get(ctx context.Context, userID uuid.UUID) (*league.UserPoints, error) {
	query := `
	SELECT id, user_id, total_points, weekly_points, league_tier, rank_position, created_at, updated_at
	FROM user_points
	WHERE user_id = $1
	`

	points := &league.UserPoints{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&points.ID,
		&points.UserID,
		&points.TotalPoints,
		&points.WeeklyPoints,
		&points.LeagueTier,
		&points.RankPosition,
		&points.CreatedAt,
		&points.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ApplyDelta adds delta to the user's totals, floors both at zero and
// recomputes the league tier from the new lifetime total. The three fields
// land in a single UPDATE; there is no retry on failure.
func (s *PointsService) ApplyDelta(ctx context.Context, userID uuid.UUID, delta int) (*league.UserPoints, error) {
	points, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	newTotal, newWeekly, newTier := league.Apply(points, delta)

	query := `
	UPDATE user_points
	SET total_points = $2, weekly_points = $3, league_tier = $4, updated_at = NOW()
	WHERE user_id = $1
	RETURNING id, user_id, total_points, weekly_points, league_tier, rank_position, created_at, updated_at
	`

	updated := &league.UserPoints{}
	err = s.db.QueryRow(ctx, query, userID, newTotal, newWeekly, newTier).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.TotalPoints,
		&updated.WeeklyPoints,
		&updated.LeagueTier,
		&updated.RankPosition,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user points: %w", err)
	}

	return updated, nil
}

// GetGlobalLeaderboard returns the top 50 users by lifetime points plus the
// requesting user's own ranked entry.
func (s *PointsService) GetGlobalLeaderboard(ctx context.Context, userID uuid.UUID) (*league.Leaderboard, error) {
	query := `
	SELECT up.user_id, p.name, p.avatar_url, up.total_points, up.weekly_points, up.league_tier,
	       RANK() OVER (ORDER BY up.total_points DESC) as rank
	FROM user_points up
	JOIN profiles p ON p.id = up.user_id
	ORDER BY up.total_points DESC
	LIMIT 50
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer rows.Close()

	board := &league.Leaderboard{}
	for rows.Next() {
		entry := &league.LeaderboardEntry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.Name,
			&entry.AvatarURL,
			&entry.TotalPoints,
			&entry.WeeklyPoints,
			&entry.LeagueTier,
			&entry.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		board.Entries = append(board.Entries, entry)

		if entry.UserID == userID {
			board.UserPosition = entry
		}
	}

	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_points`).Scan(&board.TotalUsers); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	// User outside the top 50 still gets their own position.
	if board.UserPosition == nil {
		posQuery := `
		SELECT user_id, name, avatar_url, total_points, weekly_points, league_tier, rank FROM (
			SELECT up.user_id, p.name, p.avatar_url, up.total_points, up.weekly_points, up.league_tier,
			       RANK() OVER (ORDER BY up.total_points DESC) as rank
			FROM user_points up
			JOIN profiles p ON p.id = up.user_id
		) ranked
		WHERE user_id = $1
		`
		entry := &league.LeaderboardEntry{}
		err := s.db.QueryRow(ctx, posQuery, userID).Scan(
			&entry.UserID,
			&entry.Name,
			&entry.AvatarURL,
			&entry.TotalPoints,
			&entry.WeeklyPoints,
			&entry.LeagueTier,
			&entry.Rank,
		)
		if err == nil {
			board.UserPosition = entry
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to fetch user position: %w", err)
		}
	}

	return board, nil
}

// GetFriendsLeaderboard ranks the user and their accepted friends by
// lifetime points.
func (s *PointsService) GetFriendsLeaderboard(ctx context.Context, userID uuid.UUID) (*league.Leaderboard, error) {
	query := `
	WITH circle AS (
		SELECT $1::uuid AS id
		UNION
		SELECT CASE WHEN requester_id = $1 THEN addressee_id ELSE requester_id END
		FROM friendships
		WHERE (requester_id = $1 OR addressee_id = $1) AND status = 'accepted'
	)
	SELECT up.user_id, p.name, p.avatar_url, up.total_points, up.weekly_points, up.league_tier,
	       RANK() OVER (ORDER BY up.total_points DESC) as rank
	FROM user_points up
	JOIN profiles p ON p.id = up.user_id
	JOIN circle c ON c.id = up.user_id
	ORDER BY up.total_points DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch friends leaderboard: %w", err)
	}
	defer rows.Close()

	board := &league.Leaderboard{}
	for rows.Next() {
		entry := &league.LeaderboardEntry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.Name,
			&entry.AvatarURL,
			&entry.TotalPoints,
			&entry.WeeklyPoints,
			&entry.LeagueTier,
			&entry.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		board.Entries = append(board.Entries, entry)
		if entry.UserID == userID {
			board.UserPosition = entry
		}
	}

	board.TotalUsers = len(board.Entries)
	return board, nil
}
