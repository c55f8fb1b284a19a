package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/types/notification"
)

type NotificationService struct {
	db         *pgxpool.Pool
	dispatcher *NotificationDispatcher
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	service := &NotificationService{db: db}
	service.dispatcher = NewNotificationDispatcher(service)
	return service
}

func (s *NotificationService) SetPushProvider(provider PushNotificationProvider) {
	s.dispatcher.SetPushProvider(provider)
}

// StopDispatcher drains the push worker pool on shutdown.
func (s *NotificationService) StopDispatcher() {
	s.dispatcher.Stop()
}

// Notify stores an in-app notification and queues a push for it. Failures
// are logged, never propagated: notifications are fire-and-forget from the
// caller's perspective.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, typ notification.NotificationType, title, body string, data map[string]any) {
	dataJSON, _ := json.Marshal(data)

	query := `
	INSERT INTO notifications (user_id, type, title, body, data)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at
	`

	notif := &notification.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		Data:   data,
	}
	err := s.db.QueryRow(ctx, query, userID, typ, title, body, dataJSON).Scan(&notif.ID, &notif.CreatedAt)
	if err != nil {
		log.Printf("Failed to store notification for %s: %v", userID, err)
		return
	}

	s.dispatcher.Dispatch(notif)
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
	SELECT id, user_id, type, title, body, is_read, data, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		notif := &notification.Notification{}
		var dataJSON []byte
		err := rows.Scan(
			&notif.ID,
			&notif.UserID,
			&notif.Type,
			&notif.Title,
			&notif.Body,
			&notif.IsRead,
			&dataJSON,
			&notif.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		json.Unmarshal(dataJSON, &notif.Data)
		notifications = append(notifications, notif)
	}

	return notifications, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`,
		userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// RegisterDevice upserts a push token for the user.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, req *notification.RegisterDeviceRequest) error {
	query := `
	INSERT INTO device_tokens (user_id, token, platform, created_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3
	`

	_, err := s.db.Exec(ctx, query, userID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) getDeviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx,
		`SELECT token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (s *NotificationService) pushEnabled(ctx context.Context, userID uuid.UUID) bool {
	var enabled bool
	err := s.db.QueryRow(ctx,
		`SELECT notifications_enabled FROM user_preferences WHERE user_id = $1`,
		userID).Scan(&enabled)
	if err != nil {
		// No preferences row yet means the default: enabled.
		return true
	}
	return enabled
}
