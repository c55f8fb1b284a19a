package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/types/notification"
	"propositosAPI/services"
)

// StreakRiskWorker warns users each evening when their daily streak breaks
// unless they check in before midnight UTC: a live streak whose last
// check-in was yesterday.
type StreakRiskWorker struct {
	db            *pgxpool.Pool
	notifications *services.NotificationService
	stopChan      chan struct{}
}

func NewStreakRiskWorker(db *pgxpool.Pool, notifications *services.NotificationService) *StreakRiskWorker {
	return &StreakRiskWorker{
		db:            db,
		notifications: notifications,
		stopChan:      make(chan struct{}),
	}
}

func (w *StreakRiskWorker) Start() {
	go w.run()
}

func (w *StreakRiskWorker) Stop() {
	close(w.stopChan)
}

func (w *StreakRiskWorker) run() {
	for {
		next := nextEveningUTC(time.Now().UTC())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			w.notifyAtRisk()
		case <-w.stopChan:
			timer.Stop()
			return
		}
	}
}

func (w *StreakRiskWorker) notifyAtRisk() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rows, err := w.db.Query(ctx, `
	SELECT user_id, current_streak
	FROM streaks
	WHERE last_check_in_date = CURRENT_DATE - 1 AND current_streak > 0
	`)
	if err != nil {
		log.Printf("Streak risk scan failed: %v", err)
		return
	}
	defer rows.Close()

	notified := 0
	for rows.Next() {
		var userID uuid.UUID
		var currentStreak int
		if err := rows.Scan(&userID, &currentStreak); err != nil {
			log.Printf("Streak risk scan failed: %v", err)
			return
		}

		w.notifications.Notify(ctx, userID, notification.NotificationStreakRisk,
			"¡Tu racha está en riesgo!",
			fmt.Sprintf("Haz un check-in hoy para mantener tu racha de %d días", currentStreak),
			map[string]any{"current_streak": currentStreak})
		notified++
	}

	log.Printf("Streak risk: notified %d users", notified)
}

// nextEveningUTC is 18:00 UTC, today if still ahead, otherwise tomorrow.
func nextEveningUTC(now time.Time) time.Time {
	evening := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, time.UTC)
	if !now.Before(evening) {
		evening = evening.AddDate(0, 0, 1)
	}
	return evening
}
