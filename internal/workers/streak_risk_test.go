package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextEveningUTCBefore(t *testing.T) {
	now := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 7, 18, 0, 0, 0, time.UTC), nextEveningUTC(now))
}

func TestNextEveningUTCAfter(t *testing.T) {
	now := time.Date(2026, 1, 7, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 8, 18, 0, 0, 0, time.UTC), nextEveningUTC(now))
}
