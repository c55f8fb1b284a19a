package user

type CreateProfileRequest struct {
	ClerkID   string  `json:"clerk_id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	Timezone         *string `json:"timezone,omitempty"`
	NotificationMode *string `json:"notification_mode,omitempty"`
}

type UpdatePreferencesRequest struct {
	AchievementsDisplayCount *int    `json:"achievements_display_count,omitempty"`
	NotificationsEnabled     *bool   `json:"notifications_enabled,omitempty"`
	NotificationTime         *string `json:"notification_time,omitempty"`
	ProfileVisibility        *string `json:"profile_visibility,omitempty"`
}

type SearchResult struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
