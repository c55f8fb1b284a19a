package challenge

import (
	"fmt"

	"github.com/google/uuid"

	"propositosAPI/internal/league"
)

// Outcome is the result of applying a progress edit to one side of a
// challenge. PointsDelta entries are for the acting user only and must be
// applied in order; Status/WinnerID are the values to persist.
type Outcome struct {
	Field            string // "creator_progress" or "opponent_progress"
	NewProgress      int
	Status           ChallengeStatus
	StatusChanged    bool
	WinnerID         *uuid.UUID
	PointsDeltas     []int
	SideCompleted    bool // the acting side crossed the target with this edit
	SideUncompleted  bool
	FullyCompleted   bool // both sides at or above target after this edit
	FullyUncompleted bool
}

// EvaluateProgress computes the boundary crossings of a progress edit
// without touching storage. Completion flags compare the pre-edit and
// post-edit values; the non-acting side keeps its stored value. Negative
// progress is floored at zero, values above the target are allowed.
func EvaluateProgress(ch *Challenge, actorID uuid.UUID, newProgress int) (*Outcome, error) {
	if newProgress < 0 {
		newProgress = 0
	}

	var field string
	var oldProgress int
	switch actorID {
	case ch.CreatorID:
		field = "creator_progress"
		oldProgress = ch.CreatorProgress
	case ch.OpponentID:
		field = "opponent_progress"
		oldProgress = ch.OpponentProgress
	default:
		return nil, fmt.Errorf("user %s is not part of challenge %s", actorID, ch.ID)
	}

	newCreator := ch.CreatorProgress
	newOpponent := ch.OpponentProgress
	if field == "creator_progress" {
		newCreator = newProgress
	} else {
		newOpponent = newProgress
	}

	wasCompleted := oldProgress >= ch.TargetValue
	isNowCompleted := newProgress >= ch.TargetValue

	creatorCompleted := newCreator >= ch.TargetValue
	opponentCompleted := newOpponent >= ch.TargetValue
	wasFullyCompleted := ch.Status == StatusCompleted
	isNowFullyCompleted := creatorCompleted && opponentCompleted

	out := &Outcome{
		Field:       field,
		NewProgress: newProgress,
		Status:      ch.Status,
		WinnerID:    ch.WinnerID,
	}

	if isNowFullyCompleted && !wasFullyCompleted {
		// Both sides reached the target: a co-win, no single winner.
		out.Status = StatusCompleted
		out.StatusChanged = true
		out.WinnerID = nil
		out.FullyCompleted = true
	} else if wasFullyCompleted && !isNowFullyCompleted {
		// An edit dropped a side below target after completion: reopen.
		out.Status = StatusActive
		out.StatusChanged = true
		out.WinnerID = nil
		out.FullyUncompleted = true
	}

	// Point effects, acting user only. Individual crossing first, then the
	// joint bonus, matching the order the store writes land in.
	if !wasCompleted && isNowCompleted {
		out.SideCompleted = true
		out.PointsDeltas = append(out.PointsDeltas, league.PointsChallengeSide)
	} else if wasCompleted && !isNowCompleted {
		out.SideUncompleted = true
		out.PointsDeltas = append(out.PointsDeltas, -league.PointsChallengeSide)
	}

	if out.FullyCompleted {
		out.PointsDeltas = append(out.PointsDeltas, league.PointsChallengeBonus)
	} else if out.FullyUncompleted {
		out.PointsDeltas = append(out.PointsDeltas, -league.PointsChallengeBonus)
	}

	return out, nil
}
