package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTreeLevel(t *testing.T) {
	assert.Equal(t, 1, CalculateTreeLevel(0))
	assert.Equal(t, 1, CalculateTreeLevel(1))
	assert.Equal(t, 2, CalculateTreeLevel(2))
	assert.Equal(t, 6, CalculateTreeLevel(10))
	assert.Equal(t, 10, CalculateTreeLevel(18))
	assert.Equal(t, 10, CalculateTreeLevel(100))
}

func TestOverallProgress(t *testing.T) {
	assert.Equal(t, 0.0, OverallProgress(nil))

	goals := []GoalProgress{
		{CurrentValue: 50, TargetValue: 100},
		{CurrentValue: 200, TargetValue: 100}, // over target, capped
	}
	assert.InDelta(t, 75.0, OverallProgress(goals), 0.001)
}
