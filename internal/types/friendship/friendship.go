package friendship

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

type Friendship struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	RequesterID uuid.UUID        `json:"requester_id" db:"requester_id"`
	AddresseeID uuid.UUID        `json:"addressee_id" db:"addressee_id"`
	Status      FriendshipStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// FriendStreak is directional: only the row keyed by (sender, receiver)
// advances when the sender messages, so a pair where one side never writes
// has only one live streak.
type FriendStreak struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	UserID              uuid.UUID  `json:"user_id" db:"user_id"`
	FriendID            uuid.UUID  `json:"friend_id" db:"friend_id"`
	CurrentStreak       int        `json:"current_streak" db:"current_streak"`
	LongestStreak       int        `json:"longest_streak" db:"longest_streak"`
	LastInteractionDate *time.Time `json:"last_interaction_date" db:"last_interaction_date"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Friend is a friendship joined with the other side's profile, as the
// friends list renders it.
type Friend struct {
	FriendshipID  uuid.UUID `json:"friendship_id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	AvatarURL     *string   `json:"avatar_url"`
	CurrentStreak int       `json:"current_streak"`
	Since         time.Time `json:"since"`
}

// PendingRequest is an incoming friend request with the requester's profile.
type PendingRequest struct {
	FriendshipID uuid.UUID `json:"friendship_id"`
	RequesterID  uuid.UUID `json:"requester_id"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type FriendRequest struct {
	AddresseeID uuid.UUID `json:"addressee_id"`
}

type RespondFriendRequest struct {
	FriendshipID uuid.UUID `json:"friendship_id"`
	Accept       bool      `json:"accept"`
}
