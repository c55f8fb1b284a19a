package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMondayUTC(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)
	next := nextMondayUTC(now)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Monday, next.Weekday())
}

func TestNextMondayUTCFromMonday(t *testing.T) {
	// Already Monday: the reset schedules for the following week, never
	// immediately.
	now := time.Date(2026, 1, 5, 0, 0, 1, 0, time.UTC)
	next := nextMondayUTC(now)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), next)
}

func TestNextMondayUTCFromSunday(t *testing.T) {
	now := time.Date(2026, 1, 11, 23, 59, 59, 0, time.UTC)
	next := nextMondayUTC(now)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), next)
}
