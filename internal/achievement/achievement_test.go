package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propositosAPI/internal/stats"
)

func liveStats() *stats.LiveStats {
	return &stats.LiveStats{
		CurrentStreak:  12,
		GoalsCompleted: 4,
		TotalCheckIns:  57,
		CategoryGoals:  map[string]int{"salud": 3, "finanzas": 1},
	}
}

func TestLiveValueByTargetType(t *testing.T) {
	s := liveStats()
	salud := "salud"
	deporte := "deporte"

	cases := []struct {
		name string
		a    *UserAchievement
		want int
	}{
		{"streak", &UserAchievement{TargetType: TargetStreak}, 12},
		{"goals completed", &UserAchievement{TargetType: TargetGoalsCompleted}, 4},
		{"check-ins", &UserAchievement{TargetType: TargetCheckIns}, 57},
		{"category hit", &UserAchievement{TargetType: TargetCategoryGoals, Category: &salud}, 3},
		{"category unknown", &UserAchievement{TargetType: TargetCategoryGoals, Category: &deporte}, 0},
		{"category missing", &UserAchievement{TargetType: TargetCategoryGoals}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LiveValue(s, tc.a))
		})
	}
}

func TestPlanSyncSkipsEarnedRows(t *testing.T) {
	// Earned streak achievement whose streak later broke: the row must
	// stay untouched, not have its current_value dragged back down.
	a := &UserAchievement{
		TargetType:   TargetStreak,
		TargetValue:  7,
		CurrentValue: 7,
		IsEarned:     true,
	}
	s := &stats.LiveStats{CurrentStreak: 1}

	step, value := PlanSync(a, s)
	assert.Equal(t, SyncSkip, step)
	assert.Equal(t, 7, value)
}

func TestPlanSyncEarnsOnTargetCrossed(t *testing.T) {
	a := &UserAchievement{
		TargetType:   TargetGoalsCompleted,
		TargetValue:  4,
		CurrentValue: 3,
	}

	step, value := PlanSync(a, liveStats())
	assert.Equal(t, SyncEarn, step)
	assert.Equal(t, 4, value)
}

func TestPlanSyncNoopWhenUnchanged(t *testing.T) {
	a := &UserAchievement{
		TargetType:   TargetStreak,
		TargetValue:  30,
		CurrentValue: 12,
	}

	step, _ := PlanSync(a, liveStats())
	assert.Equal(t, SyncNoop, step)
}

func TestPlanSyncUpdatesBelowTarget(t *testing.T) {
	a := &UserAchievement{
		TargetType:   TargetStreak,
		TargetValue:  30,
		CurrentValue: 20,
	}
	s := &stats.LiveStats{CurrentStreak: 3}

	step, value := PlanSync(a, s)
	assert.Equal(t, SyncUpdate, step)
	assert.Equal(t, 3, value)
}

func TestTemplatesCatalog(t *testing.T) {
	assert.Len(t, Templates, 11)

	for _, tpl := range Templates {
		assert.NotEmpty(t, tpl.Name)
		assert.Greater(t, tpl.TargetValue, 0)
		if tpl.TargetType == TargetCategoryGoals {
			assert.NotNil(t, tpl.Category)
		} else {
			assert.Nil(t, tpl.Category)
		}
	}
}
