package goal

import (
	"time"

	"github.com/google/uuid"
)

type GoalCategory string

const (
	CategorySalud       GoalCategory = "salud"
	CategoryFinanzas    GoalCategory = "finanzas"
	CategoryAprendizaje GoalCategory = "aprendizaje"
	CategoryRelaciones  GoalCategory = "relaciones"
	CategoryCarrera     GoalCategory = "carrera"
	CategoryCreatividad GoalCategory = "creatividad"
	CategoryBienestar   GoalCategory = "bienestar"
	CategoryEjercicio   GoalCategory = "ejercicio"
	CategoryOtro        GoalCategory = "otro"
)

type GoalType string

const (
	TypeChecklist    GoalType = "checklist"
	TypeHabit        GoalType = "habit"
	TypeQuantitative GoalType = "quantitative"
)

type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusPaused    GoalStatus = "paused"
	StatusCompleted GoalStatus = "completed"
	StatusAbandoned GoalStatus = "abandoned"
)

type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

type Goal struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       uuid.UUID    `json:"user_id" db:"user_id"`
	Title        string       `json:"title" db:"title"`
	Description  *string      `json:"description" db:"description"`
	Category     GoalCategory `json:"category" db:"category"`
	Priority     GoalPriority `json:"priority" db:"priority"`
	Type         GoalType     `json:"type" db:"type"`
	StartDate    time.Time    `json:"start_date" db:"start_date"`
	TargetDate   *time.Time   `json:"target_date" db:"target_date"`
	TargetValue  int          `json:"target_value" db:"target_value"`
	CurrentValue int          `json:"current_value" db:"current_value"`
	Status       GoalStatus   `json:"status" db:"status"`
	Why          *string      `json:"why" db:"why"`
	Icon         string       `json:"icon" db:"icon"`
	Color        string       `json:"color" db:"color"`
	IsFeatured   bool         `json:"is_featured" db:"is_featured"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	GoalID      uuid.UUID  `json:"goal_id" db:"goal_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	OrderIndex  int        `json:"order_index" db:"order_index"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type CheckIn struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GoalID    uuid.UUID `json:"goal_id" db:"goal_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Date      time.Time `json:"date" db:"date"`
	Value     int       `json:"value" db:"value"`
	Note      *string   `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateGoalRequest struct {
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Category    GoalCategory `json:"category"`
	Priority    GoalPriority `json:"priority"`
	Type        GoalType     `json:"type"`
	TargetDate  *time.Time   `json:"target_date,omitempty"`
	TargetValue int          `json:"target_value"`
	Why         *string      `json:"why,omitempty"`
	Icon        string       `json:"icon"`
}

type UpdateGoalRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *GoalCategory `json:"category,omitempty"`
	Priority    *GoalPriority `json:"priority,omitempty"`
	TargetDate  *time.Time    `json:"target_date,omitempty"`
	TargetValue *int          `json:"target_value,omitempty"`
	Status      *GoalStatus   `json:"status,omitempty"`
	Why         *string       `json:"why,omitempty"`
	Icon        *string       `json:"icon,omitempty"`
	IsFeatured  *bool         `json:"is_featured,omitempty"`
}

type CreateTaskRequest struct {
	GoalID  uuid.UUID  `json:"goal_id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type CheckInRequest struct {
	GoalID uuid.UUID `json:"goal_id"`
	Value  int       `json:"value"`
	Note   *string   `json:"note,omitempty"`
}

// CheckInResult reports what a check-in did, so the client can celebrate
// a completion without re-fetching everything.
type CheckInResult struct {
	Goal          *Goal    `json:"goal"`
	CheckIn       *CheckIn `json:"check_in"`
	GoalCompleted bool     `json:"goal_completed"`
	PointsAwarded int      `json:"points_awarded"`
}
