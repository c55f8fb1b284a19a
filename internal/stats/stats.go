package stats

// LiveStats is the aggregate snapshot fed into achievement sync. It is
// recomputed from storage on demand, never cached.
type LiveStats struct {
	CurrentStreak  int            `json:"current_streak"`
	GoalsCompleted int            `json:"goals_completed"`
	TotalCheckIns  int            `json:"total_check_ins"`
	CategoryGoals  map[string]int `json:"category_goals"`
}

type UserStats struct {
	CurrentStreak      int            `json:"current_streak"`
	LongestStreak      int            `json:"longest_streak"`
	ActiveGoals        int            `json:"active_goals"`
	GoalsCompleted     int            `json:"goals_completed"`
	TotalCheckIns      int            `json:"total_check_ins"`
	CategoryGoals      map[string]int `json:"category_goals"`
	AchievementsEarned int            `json:"achievements_earned"`
	FriendsCount       int            `json:"friends_count"`
	TotalPoints        int            `json:"total_points"`
	LeagueTier         string         `json:"league_tier"`
	TreeLevel          int            `json:"tree_level"`
	OverallProgress    float64        `json:"overall_progress"`
}

// Live extracts the subset achievement sync consumes.
func (s *UserStats) Live() *LiveStats {
	return &LiveStats{
		CurrentStreak:  s.CurrentStreak,
		GoalsCompleted: s.GoalsCompleted,
		TotalCheckIns:  s.TotalCheckIns,
		CategoryGoals:  s.CategoryGoals,
	}
}
