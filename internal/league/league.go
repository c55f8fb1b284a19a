package league

import (
	"time"

	"github.com/google/uuid"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
	TierMaster   Tier = "master"
)

// Points awarded by the engines. Callers pass these to PointsService,
// negated when a completion is undone.
const (
	PointsCheckIn           = 10
	PointsGoalCompleted     = 50
	PointsAchievementEarned = 50
	PointsChallengeSide     = 25
	PointsChallengeBonus    = 25
)

type UserPoints struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	TotalPoints  int       `json:"total_points" db:"total_points"`
	WeeklyPoints int       `json:"weekly_points" db:"weekly_points"`
	LeagueTier   Tier      `json:"league_tier" db:"league_tier"`
	RankPosition *int      `json:"rank_position" db:"rank_position"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type LeaderboardEntry struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	TotalPoints  int       `json:"total_points" db:"total_points"`
	WeeklyPoints int       `json:"weekly_points" db:"weekly_points"`
	LeagueTier   Tier      `json:"league_tier" db:"league_tier"`
	Rank         int       `json:"rank"`
}

type Leaderboard struct {
	Entries      []*LeaderboardEntry `json:"entries"`
	UserPosition *LeaderboardEntry   `json:"user_position"`
	TotalUsers   int                 `json:"total_users"`
}

// TierFor maps lifetime points to a league tier. Thresholds are checked
// highest first; there is no hysteresis, so losing points can demote.
func TierFor(totalPoints int) Tier {
	switch {
	case totalPoints >= 15000:
		return TierMaster
	case totalPoints >= 5000:
		return TierDiamond
	case totalPoints >= 1500:
		return TierPlatinum
	case totalPoints >= 500:
		return TierGold
	case totalPoints >= 100:
		return TierSilver
	default:
		return TierBronze
	}
}

// Apply returns the point totals after delta. Totals never go below zero
// and the tier always matches the new lifetime total.
func Apply(p *UserPoints, delta int) (newTotal, newWeekly int, newTier Tier) {
	newTotal = p.TotalPoints + delta
	if newTotal < 0 {
		newTotal = 0
	}
	newWeekly = p.WeeklyPoints + delta
	if newWeekly < 0 {
		newWeekly = 0
	}
	return newTotal, newWeekly, TierFor(newTotal)
}
