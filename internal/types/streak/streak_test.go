package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

func TestAdvanceFirstEvent(t *testing.T) {
	current, longest := Advance(0, 0, nil, today)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)
}

func TestAdvanceConsecutiveDay(t *testing.T) {
	yesterday := today.AddDate(0, 0, -1)

	current, longest := Advance(3, 5, &yesterday, today)
	assert.Equal(t, 4, current)
	assert.Equal(t, 5, longest)
}

func TestAdvanceNewLongest(t *testing.T) {
	yesterday := today.AddDate(0, 0, -1)

	current, longest := Advance(5, 5, &yesterday, today)
	assert.Equal(t, 6, current)
	assert.Equal(t, 6, longest)
}

func TestAdvanceSameDayIdempotent(t *testing.T) {
	earlier := today.Add(-4 * time.Hour)

	current, longest := Advance(4, 9, &earlier, today)
	assert.Equal(t, 4, current)
	assert.Equal(t, 9, longest)

	// A second event on the same day changes nothing either.
	current, longest = Advance(current, longest, &today, today)
	assert.Equal(t, 4, current)
	assert.Equal(t, 9, longest)
}

func TestAdvanceBreakResets(t *testing.T) {
	twoDaysAgo := today.AddDate(0, 0, -2)

	current, longest := Advance(12, 12, &twoDaysAgo, today)
	assert.Equal(t, 1, current)
	assert.Equal(t, 12, longest)
}

func TestSameDayIgnoresClock(t *testing.T) {
	a := time.Date(2026, 1, 15, 0, 1, 0, 0, time.UTC)
	b := time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}
