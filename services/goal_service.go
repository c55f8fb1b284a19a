package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/league"
	"propositosAPI/internal/stats"
	"propositosAPI/internal/types/goal"
	"propositosAPI/internal/types/streak"
	"propositosAPI/utils"
)

type GoalService struct {
	db                 *pgxpool.Pool
	pointsService      *PointsService
	achievementService *AchievementService
}

func NewGoalService(db *pgxpool.Pool, pointsService *PointsService, achievementService *AchievementService) *GoalService {
	return &GoalService{
		db:                 db,
		pointsService:      pointsService,
		achievementService: achievementService,
	}
}

const goalColumns = `id, user_id, title, description, category, priority, type, start_date, target_date,
	target_value, current_value, status, why, icon, color, is_featured, created_at, updated_at`

func scanGoal(row pgx.Row) (*goal.Goal, error) {
	g := &goal.Goal{}
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.Category,
		&g.Priority,
		&g.Type,
		&g.StartDate,
		&g.TargetDate,
		&g.TargetValue,
		&g.CurrentValue,
		&g.Status,
		&g.Why,
		&g.Icon,
		&g.Color,
		&g.IsFeatured,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *goal.CreateGoalRequest) (*goal.Goal, error) {
	query := `
	INSERT INTO goals (user_id, title, description, category, priority, type, start_date, target_date, target_value, why, icon, color, status)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7, $8, $9, $10, 'category-' || $4, 'active')
	RETURNING ` + goalColumns

	g, err := scanGoal(s.db.QueryRow(ctx, query,
		userID,
		req.Title,
		req.Description,
		req.Category,
		req.Priority,
		req.Type,
		req.TargetDate,
		req.TargetValue,
		req.Why,
		req.Icon,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	g, err := scanGoal(s.db.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("goal not found")
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req *goal.UpdateGoalRequest) (*goal.Goal, error) {
	query := `
	UPDATE goals
	SET
		title = COALESCE($3, title),
		description = COALESCE($4, description),
		category = COALESCE($5, category),
		priority = COALESCE($6, priority),
		target_date = COALESCE($7, target_date),
		target_value = COALESCE($8, target_value),
		status = COALESCE($9, status),
		why = COALESCE($10, why),
		icon = COALESCE($11, icon),
		is_featured = COALESCE($12, is_featured),
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING ` + goalColumns

	g, err := scanGoal(s.db.QueryRow(ctx, query,
		goalID,
		userID,
		req.Title,
		req.Description,
		req.Category,
		req.Priority,
		req.TargetDate,
		req.TargetValue,
		req.Status,
		req.Why,
		req.Icon,
		req.IsFeatured,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("goal not found")
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	result, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}

// CheckIn logs progress against a goal: bumps the counter (capped at the
// target), records the check_in row, advances the daily streak and awards
// points. Crossing the target completes the goal for a bonus. Writes are
// sequential; a failure partway leaves the earlier writes in place.
func (s *GoalService) CheckIn(ctx context.Context, userID uuid.UUID, req *goal.CheckInRequest) (*goal.CheckInResult, error) {
	g, err := s.GetGoal(ctx, userID, req.GoalID)
	if err != nil {
		return nil, err
	}

	newValue := g.CurrentValue + req.Value
	if newValue > g.TargetValue {
		newValue = g.TargetValue
	}
	completes := newValue >= g.TargetValue && g.Status != goal.StatusCompleted

	updateQuery := `
	UPDATE goals
	SET current_value = $3, status = CASE WHEN $4 THEN 'completed' ELSE status END, updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING ` + goalColumns

	g, err = scanGoal(s.db.QueryRow(ctx, updateQuery, req.GoalID, userID, newValue, completes))
	if err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	insertQuery := `
	INSERT INTO check_ins (goal_id, user_id, date, value, note)
	VALUES ($1, $2, CURRENT_DATE, $3, $4)
	RETURNING id, goal_id, user_id, date, value, note, created_at
	`

	ci := &goal.CheckIn{}
	err = s.db.QueryRow(ctx, insertQuery, req.GoalID, userID, req.Value, req.Note).Scan(
		&ci.ID,
		&ci.GoalID,
		&ci.UserID,
		&ci.Date,
		&ci.Value,
		&ci.Note,
		&ci.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	if err := s.advanceStreak(ctx, userID); err != nil {
		log.Printf("Failed to advance streak for %s: %v", userID, err)
	}

	awarded := league.PointsCheckIn
	if _, err := s.pointsService.ApplyDelta(ctx, userID, league.PointsCheckIn); err != nil {
		return nil, fmt.Errorf("failed to apply check-in points: %w", err)
	}
	if completes {
		awarded += league.PointsGoalCompleted
		if _, err := s.pointsService.ApplyDelta(ctx, userID, league.PointsGoalCompleted); err != nil {
			return nil, fmt.Errorf("failed to apply completion points: %w", err)
		}
	}

	// Achievement sync picks up the new aggregates right away.
	if liveStats, err := s.GetLiveStats(ctx, userID); err != nil {
		log.Printf("Failed to compute live stats for %s: %v", userID, err)
	} else if err := s.achievementService.Sync(ctx, userID, liveStats); err != nil {
		log.Printf("Failed to sync achievements for %s: %v", userID, err)
	}

	return &goal.CheckInResult{
		Goal:          g,
		CheckIn:       ci,
		GoalCompleted: completes,
		PointsAwarded: awarded,
	}, nil
}

func (s *GoalService) ListCheckIns(ctx context.Context, userID uuid.UUID, goalID *uuid.UUID) ([]*goal.CheckIn, error) {
	query := `
	SELECT id, goal_id, user_id, date, value, note, created_at
	FROM check_ins
	WHERE user_id = $1 AND ($2::uuid IS NULL OR goal_id = $2)
	ORDER BY date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []*goal.CheckIn
	for rows.Next() {
		ci := &goal.CheckIn{}
		err := rows.Scan(&ci.ID, &ci.GoalID, &ci.UserID, &ci.Date, &ci.Value, &ci.Note, &ci.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, ci)
	}
	return checkIns, nil
}

func (s *GoalService) CreateTask(ctx context.Context, userID uuid.UUID, req *goal.CreateTaskRequest) (*goal.Task, error) {
	query := `
	INSERT INTO tasks (goal_id, user_id, title, due_date, order_index)
	VALUES ($1, $2, $3, $4, COALESCE((SELECT MAX(order_index) + 1 FROM tasks WHERE goal_id = $1), 0))
	RETURNING id, goal_id, user_id, title, due_date, completed, completed_at, order_index, created_at
	`

	t := &goal.Task{}
	err := s.db.QueryRow(ctx, query, req.GoalID, userID, req.Title, req.DueDate).Scan(
		&t.ID,
		&t.GoalID,
		&t.UserID,
		&t.Title,
		&t.DueDate,
		&t.Completed,
		&t.CompletedAt,
		&t.OrderIndex,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *GoalService) ListTasks(ctx context.Context, userID uuid.UUID, goalID *uuid.UUID) ([]*goal.Task, error) {
	query := `
	SELECT id, goal_id, user_id, title, due_date, completed, completed_at, order_index, created_at
	FROM tasks
	WHERE user_id = $1 AND ($2::uuid IS NULL OR goal_id = $2)
	ORDER BY order_index ASC
	`

	rows, err := s.db.Query(ctx, query, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*goal.Task
	for rows.Next() {
		t := &goal.Task{}
		err := rows.Scan(&t.ID, &t.GoalID, &t.UserID, &t.Title, &t.DueDate, &t.Completed, &t.CompletedAt, &t.OrderIndex, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *GoalService) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*goal.Task, error) {
	query := `
	UPDATE tasks
	SET completed = NOT completed,
	    completed_at = CASE WHEN NOT completed THEN NOW() ELSE NULL END
	WHERE id = $1 AND user_id = $2
	RETURNING id, goal_id, user_id, title, due_date, completed, completed_at, order_index, created_at
	`

	t := &goal.Task{}
	err := s.db.QueryRow(ctx, query, taskID, userID).Scan(
		&t.ID,
		&t.GoalID,
		&t.UserID,
		&t.Title,
		&t.DueDate,
		&t.Completed,
		&t.CompletedAt,
		&t.OrderIndex,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("task not found")
		}
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return t, nil
}

func (s *GoalService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	result, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found")
	}
	return nil
}

// GetStreak returns the personal check-in streak, zeroed if none exists yet.
func (s *GoalService) GetStreak(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
	query := `
	SELECT id, user_id, current_streak, longest_streak, last_check_in_date, updated_at
	FROM streaks
	WHERE user_id = $1
	`

	st := &streak.Streak{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&st.ID,
		&st.UserID,
		&st.CurrentStreak,
		&st.LongestStreak,
		&st.LastCheckInDate,
		&st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &streak.Streak{UserID: userID.String()}, nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return st, nil
}

func (s *GoalService) advanceStreak(ctx context.Context, userID uuid.UUID) error {
	st, err := s.GetStreak(ctx, userID)
	if err != nil {
		return err
	}

	today := time.Now().UTC()
	newCurrent, newLongest := streak.Advance(st.CurrentStreak, st.LongestStreak, st.LastCheckInDate, today)

	query := `
	INSERT INTO streaks (user_id, current_streak, longest_streak, last_check_in_date, updated_at)
	VALUES ($1, $2, $3, CURRENT_DATE, NOW())
	ON CONFLICT (user_id) DO UPDATE
	SET current_streak = $2, longest_streak = $3, last_check_in_date = CURRENT_DATE, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, userID, newCurrent, newLongest); err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}

// GetLiveStats aggregates the snapshot achievement sync consumes. Always
// recomputed from storage, never cached.
func (s *GoalService) GetLiveStats(ctx context.Context, userID uuid.UUID) (*stats.LiveStats, error) {
	live := &stats.LiveStats{CategoryGoals: make(map[string]int)}

	st, err := s.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	live.CurrentStreak = st.CurrentStreak

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = 'completed'`,
		userID).Scan(&live.GoalsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed goals: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM check_ins WHERE user_id = $1`,
		userID).Scan(&live.TotalCheckIns)
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT category, COUNT(*) FROM goals WHERE user_id = $1 AND status = 'completed' GROUP BY category`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count category goals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		live.CategoryGoals[category] = count
	}

	return live, nil
}

// GetUserStats builds the profile statistics panel.
func (s *GoalService) GetUserStats(ctx context.Context, userID uuid.UUID) (*stats.UserStats, error) {
	live, err := s.GetLiveStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	st, err := s.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	userStats := &stats.UserStats{
		CurrentStreak:  live.CurrentStreak,
		LongestStreak:  st.LongestStreak,
		GoalsCompleted: live.GoalsCompleted,
		TotalCheckIns:  live.TotalCheckIns,
		CategoryGoals:  live.CategoryGoals,
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = 'active'`,
		userID).Scan(&userStats.ActiveGoals)
	if err != nil {
		return nil, fmt.Errorf("failed to count active goals: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_achievements WHERE user_id = $1 AND is_earned = true`,
		userID).Scan(&userStats.AchievementsEarned)
	if err != nil {
		return nil, fmt.Errorf("failed to count achievements: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM friendships WHERE (requester_id = $1 OR addressee_id = $1) AND status = 'accepted'`,
		userID).Scan(&userStats.FriendsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count friends: %w", err)
	}

	points, err := s.pointsService.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	userStats.TotalPoints = points.TotalPoints
	userStats.LeagueTier = string(points.LeagueTier)

	userStats.TreeLevel = utils.CalculateTreeLevel(userStats.AchievementsEarned)

	rows, err := s.db.Query(ctx,
		`SELECT current_value, target_value FROM goals WHERE user_id = $1 AND status = 'active'`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal progress: %w", err)
	}
	defer rows.Close()

	var progress []utils.GoalProgress
	for rows.Next() {
		var gp utils.GoalProgress
		if err := rows.Scan(&gp.CurrentValue, &gp.TargetValue); err != nil {
			return nil, fmt.Errorf("failed to scan goal progress: %w", err)
		}
		progress = append(progress, gp)
	}
	userStats.OverallProgress = utils.OverallProgress(progress)

	return userStats, nil
}
