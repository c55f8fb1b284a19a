package utils

// CalculateTreeLevel maps earned achievements to the growth stage of the
// profile tree: one level per two achievements, starting at 1, capped at 10.
func CalculateTreeLevel(earnedAchievements int) int {
	level := 1 + earnedAchievements/2
	if level > 10 {
		return 10
	}
	return level
}

// OverallProgress averages per-goal completion percentages, each capped at
// 100, over the active goals. Returns 0 when there are none.
func OverallProgress(goals []GoalProgress) float64 {
	if len(goals) == 0 {
		return 0
	}

	total := 0.0
	for _, g := range goals {
		if g.TargetValue <= 0 {
			continue
		}
		pct := float64(g.CurrentValue) / float64(g.TargetValue) * 100
		if pct > 100 {
			pct = 100
		}
		total += pct
	}
	return total / float64(len(goals))
}

type GoalProgress struct {
	CurrentValue int
	TargetValue  int
}
