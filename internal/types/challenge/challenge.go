package challenge

import (
	"time"

	"github.com/google/uuid"
)

type ChallengeStatus string

const (
	StatusPending   ChallengeStatus = "pending"
	StatusActive    ChallengeStatus = "active"
	StatusCompleted ChallengeStatus = "completed"
	StatusCancelled ChallengeStatus = "cancelled"
)

// Challenge is a head-to-head contest: both sides race to the same
// target_value on independent counters. winner_id stays null on
// completion because the only completion path is both sides reaching
// the target.
type Challenge struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	CreatorID        uuid.UUID       `json:"creator_id" db:"creator_id"`
	OpponentID       uuid.UUID       `json:"opponent_id" db:"opponent_id"`
	Title            string          `json:"title" db:"title"`
	Description      *string         `json:"description" db:"description"`
	Icon             string          `json:"icon" db:"icon"`
	TargetValue      int             `json:"target_value" db:"target_value"`
	CreatorProgress  int             `json:"creator_progress" db:"creator_progress"`
	OpponentProgress int             `json:"opponent_progress" db:"opponent_progress"`
	Status           ChallengeStatus `json:"status" db:"status"`
	WinnerID         *uuid.UUID      `json:"winner_id" db:"winner_id"`
	StartDate        time.Time       `json:"start_date" db:"start_date"`
	EndDate          *time.Time      `json:"end_date" db:"end_date"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateChallengeRequest struct {
	OpponentID  uuid.UUID  `json:"opponent_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Icon        string     `json:"icon"`
	TargetValue int        `json:"target_value"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type RespondChallengeRequest struct {
	Accept bool `json:"accept"`
}

type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}
