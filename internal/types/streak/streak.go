package streak

import (
	"time"
)

// Streak is the per-user daily check-in streak.
type Streak struct {
	ID              string     `json:"id" db:"id"`
	UserID          string     `json:"user_id" db:"user_id"`
	CurrentStreak   int        `json:"current_streak" db:"current_streak"`
	LongestStreak   int        `json:"longest_streak" db:"longest_streak"`
	LastCheckInDate *time.Time `json:"last_check_in_date" db:"last_check_in_date"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Advance applies the consecutive-day rules shared by personal check-in
// streaks and friend message streaks:
//   - no prior day: streak starts at 1
//   - prior day was yesterday: streak grows by 1
//   - prior day is today: unchanged (same-day events do not inflate)
//   - anything older: reset to 1, longest is preserved
func Advance(current, longest int, last *time.Time, today time.Time) (newCurrent, newLongest int) {
	switch {
	case last == nil:
		newCurrent = 1
	case SameDay(*last, today):
		newCurrent = current
	case SameDay(*last, today.AddDate(0, 0, -1)):
		newCurrent = current + 1
	default:
		newCurrent = 1
	}

	newLongest = longest
	if newCurrent > newLongest {
		newLongest = newCurrent
	}
	return newCurrent, newLongest
}

// SameDay reports whether two timestamps fall on the same calendar date
// (UTC).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
