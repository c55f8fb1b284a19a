package achievement

import (
	"time"

	"github.com/google/uuid"

	"propositosAPI/internal/stats"
)

type TargetType string

const (
	TargetStreak         TargetType = "streak"
	TargetGoalsCompleted TargetType = "goals_completed"
	TargetCheckIns       TargetType = "checkins"
	TargetCategoryGoals  TargetType = "category_goals"
)

// UserAchievement is a user-declared milestone. is_earned is a one-way
// latch: once set it survives any later regression of the live stats, and
// earned_at is written exactly once.
type UserAchievement struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description" db:"description"`
	Icon         string     `json:"icon" db:"icon"`
	TargetType   TargetType `json:"target_type" db:"target_type"`
	TargetValue  int        `json:"target_value" db:"target_value"`
	CurrentValue int        `json:"current_value" db:"current_value"`
	Category     *string    `json:"category" db:"category"`
	IsEarned     bool       `json:"is_earned" db:"is_earned"`
	EarnedAt     *time.Time `json:"earned_at" db:"earned_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateAchievementRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Icon        string     `json:"icon"`
	TargetType  TargetType `json:"target_type"`
	TargetValue int        `json:"target_value"`
	Category    *string    `json:"category,omitempty"`
}

// LiveValue selects the live statistic an achievement tracks. Category
// milestones with no category resolve to zero.
func LiveValue(s *stats.LiveStats, a *UserAchievement) int {
	switch a.TargetType {
	case TargetStreak:
		return s.CurrentStreak
	case TargetGoalsCompleted:
		return s.GoalsCompleted
	case TargetCheckIns:
		return s.TotalCheckIns
	case TargetCategoryGoals:
		if a.Category == nil {
			return 0
		}
		return s.CategoryGoals[*a.Category]
	default:
		return 0
	}
}

type SyncStep int

const (
	SyncSkip SyncStep = iota
	SyncNoop
	SyncEarn
	SyncUpdate
)

// PlanSync decides what a sync pass does with one achievement. Earned rows
// are never touched again, so a regressed stat cannot drag current_value
// back below the target.
func PlanSync(a *UserAchievement, s *stats.LiveStats) (SyncStep, int) {
	if a.IsEarned {
		return SyncSkip, a.CurrentValue
	}

	value := LiveValue(s, a)
	switch {
	case value >= a.TargetValue:
		return SyncEarn, value
	case value == a.CurrentValue:
		return SyncNoop, value
	default:
		return SyncUpdate, value
	}
}

// Template is a catalog entry offered at creation time. Seed data only.
type Template struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	TargetType  TargetType `json:"target_type"`
	TargetValue int        `json:"target_value"`
	Category    *string    `json:"category,omitempty"`
}

func strPtr(s string) *string { return &s }

var Templates = []Template{
	{Name: "Primera racha de 7 días", Description: "Mantener una racha de 7 días consecutivos", Icon: "🔥", TargetType: TargetStreak, TargetValue: 7},
	{Name: "Racha de 30 días", Description: "Mantener una racha de 30 días", Icon: "🌟", TargetType: TargetStreak, TargetValue: 30},
	{Name: "Racha legendaria", Description: "Mantener una racha de 100 días", Icon: "👑", TargetType: TargetStreak, TargetValue: 100},
	{Name: "Primera meta completada", Description: "Completar tu primera meta", Icon: "🎯", TargetType: TargetGoalsCompleted, TargetValue: 1},
	{Name: "5 metas completadas", Description: "Completar 5 metas", Icon: "🏆", TargetType: TargetGoalsCompleted, TargetValue: 5},
	{Name: "Conquistador de metas", Description: "Completar 10 metas", Icon: "💪", TargetType: TargetGoalsCompleted, TargetValue: 10},
	{Name: "Check-in maestro", Description: "Realizar 50 check-ins", Icon: "✅", TargetType: TargetCheckIns, TargetValue: 50},
	{Name: "Constancia total", Description: "Realizar 100 check-ins", Icon: "💫", TargetType: TargetCheckIns, TargetValue: 100},
	{Name: "Experto en salud", Description: "Completar 3 metas de salud", Icon: "💪", TargetType: TargetCategoryGoals, TargetValue: 3, Category: strPtr("salud")},
	{Name: "Genio financiero", Description: "Completar 3 metas de finanzas", Icon: "💰", TargetType: TargetCategoryGoals, TargetValue: 3, Category: strPtr("finanzas")},
	{Name: "Eterno estudiante", Description: "Completar 3 metas de aprendizaje", Icon: "📚", TargetType: TargetCategoryGoals, TargetValue: 3, Category: strPtr("aprendizaje")},
}
