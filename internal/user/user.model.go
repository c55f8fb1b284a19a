package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Profile struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ClerkID          string    `json:"clerk_id" db:"clerk_id"`
	Email            string    `json:"email" db:"email"`
	Name             string    `json:"name" db:"name"`
	AvatarURL        *string   `json:"avatar_url" db:"avatar_url"`
	Timezone         string    `json:"timezone" db:"timezone"`
	NotificationMode string    `json:"notification_mode" db:"notification_mode"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type Preferences struct {
	ID                       uuid.UUID `json:"id" db:"id"`
	UserID                   uuid.UUID `json:"user_id" db:"user_id"`
	AchievementsDisplayCount int       `json:"achievements_display_count" db:"achievements_display_count"`
	NotificationsEnabled     bool      `json:"notifications_enabled" db:"notifications_enabled"`
	NotificationTime         string    `json:"notification_time" db:"notification_time"`
	ProfileVisibility        string    `json:"profile_visibility" db:"profile_visibility"`
	CreatedAt                time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time `json:"updated_at" db:"updated_at"`
}
