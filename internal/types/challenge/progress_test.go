package challenge

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChallenge(target int) *Challenge {
	return &Challenge{
		ID:          uuid.New(),
		CreatorID:   uuid.New(),
		OpponentID:  uuid.New(),
		Title:       "Leer 5 libros",
		Icon:        "📚",
		TargetValue: target,
		Status:      StatusActive,
	}
}

func TestEvaluateProgressUnknownActor(t *testing.T) {
	ch := newTestChallenge(5)

	_, err := EvaluateProgress(ch, uuid.New(), 3)
	assert.Error(t, err)
}

func TestEvaluateProgressPlainUpdate(t *testing.T) {
	ch := newTestChallenge(5)

	out, err := EvaluateProgress(ch, ch.CreatorID, 3)
	require.NoError(t, err)
	assert.Equal(t, "creator_progress", out.Field)
	assert.Equal(t, 3, out.NewProgress)
	assert.False(t, out.StatusChanged)
	assert.Equal(t, StatusActive, out.Status)
	assert.Empty(t, out.PointsDeltas)
}

func TestEvaluateProgressNegativeFloored(t *testing.T) {
	ch := newTestChallenge(5)

	out, err := EvaluateProgress(ch, ch.OpponentID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NewProgress)
}

func TestEvaluateProgressSideCompletion(t *testing.T) {
	ch := newTestChallenge(5)
	ch.OpponentProgress = 3

	// Creator reaches the target alone: +25, challenge stays active.
	out, err := EvaluateProgress(ch, ch.CreatorID, 5)
	require.NoError(t, err)
	assert.True(t, out.SideCompleted)
	assert.False(t, out.StatusChanged)
	assert.Equal(t, StatusActive, out.Status)
	assert.Equal(t, []int{25}, out.PointsDeltas)
}

func TestEvaluateProgressJointCompletion(t *testing.T) {
	ch := newTestChallenge(5)
	ch.CreatorProgress = 5
	ch.OpponentProgress = 3

	// Opponent closes the gap: individual +25 plus the +25 joint bonus,
	// all credited to the acting user. Co-win, so no winner id.
	out, err := EvaluateProgress(ch, ch.OpponentID, 5)
	require.NoError(t, err)
	assert.True(t, out.SideCompleted)
	assert.True(t, out.FullyCompleted)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, StatusCompleted, out.Status)
	assert.Nil(t, out.WinnerID)
	assert.Equal(t, []int{25, 25}, out.PointsDeltas)
}

func TestEvaluateProgressUndoReopens(t *testing.T) {
	ch := newTestChallenge(5)
	ch.CreatorProgress = 5
	ch.OpponentProgress = 5
	ch.Status = StatusCompleted

	// Editing below target after completion reverses both awards and
	// reopens the challenge.
	out, err := EvaluateProgress(ch, ch.OpponentID, 4)
	require.NoError(t, err)
	assert.True(t, out.SideUncompleted)
	assert.True(t, out.FullyUncompleted)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, StatusActive, out.Status)
	assert.Equal(t, []int{-25, -25}, out.PointsDeltas)
}

func TestEvaluateProgressOverTargetStaysCompleted(t *testing.T) {
	ch := newTestChallenge(5)
	ch.CreatorProgress = 5
	ch.OpponentProgress = 5
	ch.Status = StatusCompleted

	// Moving 5 -> 7 never recrosses a boundary.
	out, err := EvaluateProgress(ch, ch.CreatorID, 7)
	require.NoError(t, err)
	assert.False(t, out.StatusChanged)
	assert.Equal(t, StatusCompleted, out.Status)
	assert.Empty(t, out.PointsDeltas)
}
