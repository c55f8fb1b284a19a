package workers

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WeeklyResetWorker zeroes weekly_points at the start of each ISO week.
// League tiers derive from lifetime totals, so the reset never touches
// total_points or league_tier.
type WeeklyResetWorker struct {
	db       *pgxpool.Pool
	stopChan chan struct{}
}

func NewWeeklyResetWorker(db *pgxpool.Pool) *WeeklyResetWorker {
	return &WeeklyResetWorker{
		db:       db,
		stopChan: make(chan struct{}),
	}
}

func (w *WeeklyResetWorker) Start() {
	go w.run()
}

func (w *WeeklyResetWorker) Stop() {
	close(w.stopChan)
}

func (w *WeeklyResetWorker) run() {
	for {
		next := nextMondayUTC(time.Now().UTC())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			w.ResetWeeklyPoints()
		case <-w.stopChan:
			timer.Stop()
			return
		}
	}
}

// ResetWeeklyPoints is exported so the admin endpoint can trigger it
// manually.
func (w *WeeklyResetWorker) ResetWeeklyPoints() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tag, err := w.db.Exec(ctx, `UPDATE user_points SET weekly_points = 0, updated_at = NOW() WHERE weekly_points > 0`)
	if err != nil {
		log.Printf("Weekly reset failed: %v", err)
		return
	}

	log.Printf("Weekly reset: cleared weekly_points for %d users", tag.RowsAffected())
}

func nextMondayUTC(now time.Time) time.Time {
	daysUntil := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	next := now.AddDate(0, 0, daysUntil)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
}
