package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/types/challenge"
	"propositosAPI/internal/types/notification"
)

type ChallengeService struct {
	db            *pgxpool.Pool
	pointsService *PointsService
	notifications *NotificationService
}

func NewChallengeService(db *pgxpool.Pool, pointsService *PointsService, notifications *NotificationService) *ChallengeService {
	return &ChallengeService{
		db:            db,
		pointsService: pointsService,
		notifications: notifications,
	}
}

const challengeColumns = `id, creator_id, opponent_id, title, description, icon, target_value,
	creator_progress, opponent_progress, status, winner_id, start_date, end_date, created_at, updated_at`

func scanChallenge(row pgx.Row) (*challenge.Challenge, error) {
	ch := &challenge.Challenge{}
	err := row.Scan(
		&ch.ID,
		&ch.CreatorID,
		&ch.OpponentID,
		&ch.Title,
		&ch.Description,
		&ch.Icon,
		&ch.TargetValue,
		&ch.CreatorProgress,
		&ch.OpponentProgress,
		&ch.Status,
		&ch.WinnerID,
		&ch.StartDate,
		&ch.EndDate,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Create inserts a pending challenge with both counters at zero. The
// opponent gets a push inviting them to respond.
func (s *ChallengeService) Create(ctx context.Context, creatorID uuid.UUID, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	if req.OpponentID == creatorID {
		return nil, fmt.Errorf("cannot challenge yourself")
	}

	query := `
	INSERT INTO challenges (creator_id, opponent_id, title, description, icon, target_value, status, start_date, end_date)
	VALUES ($1, $2, $3, $4, $5, $6, 'pending', NOW(), $7)
	RETURNING ` + challengeColumns

	ch, err := scanChallenge(s.db.QueryRow(ctx, query,
		creatorID,
		req.OpponentID,
		req.Title,
		req.Description,
		req.Icon,
		req.TargetValue,
		req.EndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	s.notifications.Notify(ctx, ch.OpponentID, notification.NotificationChallenge,
		"Nuevo desafío", fmt.Sprintf("Te han retado: %s", ch.Title),
		map[string]any{"challenge_id": ch.ID.String()})

	return ch, nil
}

// Respond lets the opponent accept (active) or decline (cancelled) a
// pending challenge. Nothing transitions out of cancelled.
func (s *ChallengeService) Respond(ctx context.Context, userID, challengeID uuid.UUID, accept bool) (*challenge.Challenge, error) {
	newStatus := challenge.StatusCancelled
	if accept {
		newStatus = challenge.StatusActive
	}

	query := `
	UPDATE challenges
	SET status = $3, updated_at = NOW()
	WHERE id = $1 AND opponent_id = $2 AND status = 'pending'
	RETURNING ` + challengeColumns

	ch, err := scanChallenge(s.db.QueryRow(ctx, query, challengeID, userID, newStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge not found")
		}
		return nil, fmt.Errorf("failed to respond to challenge: %w", err)
	}

	if accept {
		s.notifications.Notify(ctx, ch.CreatorID, notification.NotificationChallenge,
			"Desafío aceptado", fmt.Sprintf("%s ha comenzado", ch.Title),
			map[string]any{"challenge_id": ch.ID.String()})
	}

	return ch, nil
}

// UpdateProgress writes the acting side's counter and applies the point
// effects of any completion boundary the edit crossed. Only the actor's
// field is written, so a racing edit by the counterpart cannot be
// clobbered; the derived status may briefly lag such a race. Progress and
// points land as separate sequential writes with no compensating
// transaction.
func (s *ChallengeService) UpdateProgress(ctx context.Context, actorID, challengeID uuid.UUID, newProgress int) (*challenge.Challenge, error) {
	ch, err := s.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	outcome, err := challenge.EvaluateProgress(ch, actorID, newProgress)
	if err != nil {
		return nil, err
	}

	var query string
	if outcome.StatusChanged {
		query = fmt.Sprintf(`
		UPDATE challenges
		SET %s = $2, status = $3, winner_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `, outcome.Field) + challengeColumns

		ch, err = scanChallenge(s.db.QueryRow(ctx, query, challengeID, outcome.NewProgress, outcome.Status, outcome.WinnerID))
	} else {
		query = fmt.Sprintf(`
		UPDATE challenges
		SET %s = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `, outcome.Field) + challengeColumns

		ch, err = scanChallenge(s.db.QueryRow(ctx, query, challengeID, outcome.NewProgress))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge not found")
		}
		return nil, fmt.Errorf("failed to update challenge progress: %w", err)
	}

	for _, delta := range outcome.PointsDeltas {
		if _, err := s.pointsService.ApplyDelta(ctx, actorID, delta); err != nil {
			log.Printf("Failed to apply challenge points delta %d for %s: %v", delta, actorID, err)
			return nil, fmt.Errorf("failed to apply points: %w", err)
		}
	}

	if outcome.FullyCompleted {
		counterpart := ch.CreatorID
		if actorID == ch.CreatorID {
			counterpart = ch.OpponentID
		}
		s.notifications.Notify(ctx, counterpart, notification.NotificationChallenge,
			"¡Desafío completado!", fmt.Sprintf("%s ha terminado: ambos habéis ganado", ch.Title),
			map[string]any{"challenge_id": ch.ID.String()})
	}

	return ch, nil
}

func (s *ChallengeService) GetByID(ctx context.Context, challengeID uuid.UUID) (*challenge.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`

	ch, err := scanChallenge(s.db.QueryRow(ctx, query, challengeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge not found")
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return ch, nil
}

// List returns the challenges the user takes part in, newest first.
func (s *ChallengeService) List(ctx context.Context, userID uuid.UUID) ([]*challenge.Challenge, error) {
	query := `
	SELECT ` + challengeColumns + `
	FROM challenges
	WHERE creator_id = $1 OR opponent_id = $1
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*challenge.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, ch)
	}

	return challenges, nil
}

// Delete removes a challenge; only a participant may delete it.
func (s *ChallengeService) Delete(ctx context.Context, userID, challengeID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM challenges WHERE id = $1 AND (creator_id = $2 OR opponent_id = $2)`,
		challengeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("challenge not found")
	}
	return nil
}
