package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propositosAPI/internal/types/friendship"
	"propositosAPI/internal/types/message"
	"propositosAPI/internal/types/notification"
	"propositosAPI/internal/types/streak"
	"propositosAPI/internal/user"
)

type SocialService struct {
	db            *pgxpool.Pool
	notifications *NotificationService
}

func NewSocialService(db *pgxpool.Pool, notifications *NotificationService) *SocialService {
	return &SocialService{
		db:            db,
		notifications: notifications,
	}
}

// SendFriendRequest creates a pending friendship. Duplicate requests in
// either direction are rejected by the pair index.
func (s *SocialService) SendFriendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*friendship.Friendship, error) {
	if requesterID == addresseeID {
		return nil, fmt.Errorf("cannot friend yourself")
	}

	var exists bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (
		SELECT 1 FROM friendships
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	)`, requesterID, addresseeID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("friendship already exists")
	}

	query := `
	INSERT INTO friendships (requester_id, addressee_id, status)
	VALUES ($1, $2, 'pending')
	RETURNING id, requester_id, addressee_id, status, created_at, updated_at
	`

	f := &friendship.Friendship{}
	err = s.db.QueryRow(ctx, query, requesterID, addresseeID).Scan(
		&f.ID, &f.RequesterID, &f.AddresseeID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	var requesterName string
	if err := s.db.QueryRow(ctx, `SELECT name FROM profiles WHERE id = $1`, requesterID).Scan(&requesterName); err != nil {
		requesterName = "Alguien"
	}
	s.notifications.Notify(ctx, addresseeID, notification.NotificationFriendRequest,
		"Solicitud de amistad", fmt.Sprintf("%s quiere ser tu amigo", requesterName),
		map[string]any{"friendship_id": f.ID.String()})

	return f, nil
}

// RespondFriendRequest accepts or rejects a pending request. Only the
// addressee may respond.
func (s *SocialService) RespondFriendRequest(ctx context.Context, userID, friendshipID uuid.UUID, accept bool) (*friendship.Friendship, error) {
	newStatus := friendship.FriendshipRejected
	if accept {
		newStatus = friendship.FriendshipAccepted
	}

	query := `
	UPDATE friendships
	SET status = $3, updated_at = NOW()
	WHERE id = $1 AND addressee_id = $2 AND status = 'pending'
	RETURNING id, requester_id, addressee_id, status, created_at, updated_at
	`

	f := &friendship.Friendship{}
	err := s.db.QueryRow(ctx, query, friendshipID, userID, newStatus).Scan(
		&f.ID, &f.RequesterID, &f.AddresseeID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("friend request not found")
		}
		return nil, fmt.Errorf("failed to respond to friend request: %w", err)
	}

	if accept {
		var addresseeName string
		if err := s.db.QueryRow(ctx, `SELECT name FROM profiles WHERE id = $1`, userID).Scan(&addresseeName); err != nil {
			addresseeName = "Tu solicitud"
		}
		s.notifications.Notify(ctx, f.RequesterID, notification.NotificationFriendRequest,
			"Solicitud aceptada", fmt.Sprintf("%s ha aceptado tu solicitud", addresseeName),
			map[string]any{"friendship_id": f.ID.String()})
	}

	return f, nil
}

// RemoveFriend deletes the friendship and both directional message streaks.
func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	result, err := s.db.Exec(ctx, `
	DELETE FROM friendships
	WHERE ((requester_id = $1 AND addressee_id = $2) OR (requester_id = $2 AND addressee_id = $1))
	  AND status = 'accepted'
	`, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("friendship not found")
	}

	_, err = s.db.Exec(ctx, `
	DELETE FROM friend_streaks
	WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`, userID, friendID)
	if err != nil {
		log.Printf("Failed to clear friend streaks for %s/%s: %v", userID, friendID, err)
	}

	return nil
}

// GetFriends lists accepted friends with the caller's outgoing message
// streak toward each.
func (s *SocialService) GetFriends(ctx context.Context, userID uuid.UUID) ([]*friendship.Friend, error) {
	query := `
	SELECT f.id,
	       CASE WHEN f.requester_id = $1 THEN f.addressee_id ELSE f.requester_id END AS friend_id,
	       p.name, p.avatar_url,
	       COALESCE(fs.current_streak, 0),
	       f.updated_at
	FROM friendships f
	JOIN profiles p ON p.id = CASE WHEN f.requester_id = $1 THEN f.addressee_id ELSE f.requester_id END
	LEFT JOIN friend_streaks fs ON fs.user_id = $1
	      AND fs.friend_id = CASE WHEN f.requester_id = $1 THEN f.addressee_id ELSE f.requester_id END
	WHERE (f.requester_id = $1 OR f.addressee_id = $1) AND f.status = 'accepted'
	ORDER BY p.name ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch friends: %w", err)
	}
	defer rows.Close()

	var friends []*friendship.Friend
	for rows.Next() {
		fr := &friendship.Friend{}
		err := rows.Scan(&fr.FriendshipID, &fr.UserID, &fr.Name, &fr.AvatarURL, &fr.CurrentStreak, &fr.Since)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, fr)
	}
	return friends, nil
}

func (s *SocialService) GetPendingRequests(ctx context.Context, userID uuid.UUID) ([]*friendship.PendingRequest, error) {
	query := `
	SELECT f.id, f.requester_id, p.name, p.avatar_url, f.created_at
	FROM friendships f
	JOIN profiles p ON p.id = f.requester_id
	WHERE f.addressee_id = $1 AND f.status = 'pending'
	ORDER BY f.created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*friendship.PendingRequest
	for rows.Next() {
		r := &friendship.PendingRequest{}
		err := rows.Scan(&r.FriendshipID, &r.RequesterID, &r.Name, &r.AvatarURL, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, nil
}

// SearchUsers matches name or email prefix, excluding the caller.
func (s *SocialService) SearchUsers(ctx context.Context, userID uuid.UUID, term string) ([]*user.SearchResult, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return nil, fmt.Errorf("search term too short")
	}

	query := `
	SELECT id, name, email, avatar_url
	FROM profiles
	WHERE id != $1 AND (name ILIKE $2 OR email ILIKE $2)
	ORDER BY name ASC
	LIMIT 20
	`

	rows, err := s.db.Query(ctx, query, userID, term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var results []*user.SearchResult
	for rows.Next() {
		r := &user.SearchResult{}
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}

// SendMessage stores the message, advances the sender's streak toward the
// receiver and pushes the receiver. Only accepted friends can message.
func (s *SocialService) SendMessage(ctx context.Context, senderID uuid.UUID, req *message.SendMessageRequest) (*message.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("message content is empty")
	}

	var accepted bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (
		SELECT 1 FROM friendships
		WHERE ((requester_id = $1 AND addressee_id = $2) OR (requester_id = $2 AND addressee_id = $1))
		  AND status = 'accepted'
	)`, senderID, req.ReceiverID).Scan(&accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !accepted {
		return nil, fmt.Errorf("users are not friends")
	}

	query := `
	INSERT INTO messages (sender_id, receiver_id, content)
	VALUES ($1, $2, $3)
	RETURNING id, sender_id, receiver_id, content, is_read, created_at
	`

	m := &message.Message{}
	err = s.db.QueryRow(ctx, query, senderID, req.ReceiverID, content).Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	// Sender-side only: the receiver's streak toward the sender moves when
	// they reply, not now.
	if err := s.advanceFriendStreak(ctx, senderID, req.ReceiverID); err != nil {
		log.Printf("Failed to advance friend streak %s->%s: %v", senderID, req.ReceiverID, err)
	}

	var senderName string
	if err := s.db.QueryRow(ctx, `SELECT name FROM profiles WHERE id = $1`, senderID).Scan(&senderName); err != nil {
		senderName = "Mensaje nuevo"
	}
	s.notifications.Notify(ctx, req.ReceiverID, notification.NotificationMessage,
		senderName, content,
		map[string]any{"sender_id": senderID.String()})

	return m, nil
}

// GetConversation returns the dialogue with a friend, oldest first, and
// marks the friend's messages read.
func (s *SocialService) GetConversation(ctx context.Context, userID, friendID uuid.UUID, limit int) ([]*message.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	query := `
	SELECT id, sender_id, receiver_id, content, is_read, created_at
	FROM (
		SELECT id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC
		LIMIT $3
	) recent
	ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID, friendID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	defer rows.Close()

	var messages []*message.Message
	for rows.Next() {
		m := &message.Message{}
		err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE messages SET is_read = true WHERE sender_id = $2 AND receiver_id = $1 AND is_read = false`,
		userID, friendID)
	if err != nil {
		log.Printf("Failed to mark conversation read for %s: %v", userID, err)
	}

	return messages, nil
}

func (s *SocialService) GetUnreadMessageCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = false`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// GetFriendStreaks lists the caller's outgoing message streaks.
func (s *SocialService) GetFriendStreaks(ctx context.Context, userID uuid.UUID) ([]*friendship.FriendStreak, error) {
	query := `
	SELECT id, user_id, friend_id, current_streak, longest_streak, last_interaction_date, created_at, updated_at
	FROM friend_streaks
	WHERE user_id = $1
	ORDER BY current_streak DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch friend streaks: %w", err)
	}
	defer rows.Close()

	var streaks []*friendship.FriendStreak
	for rows.Next() {
		fs := &friendship.FriendStreak{}
		err := rows.Scan(&fs.ID, &fs.UserID, &fs.FriendID, &fs.CurrentStreak, &fs.LongestStreak,
			&fs.LastInteractionDate, &fs.CreatedAt, &fs.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend streak: %w", err)
		}
		streaks = append(streaks, fs)
	}
	return streaks, nil
}

func (s *SocialService) advanceFriendStreak(ctx context.Context, senderID, receiverID uuid.UUID) error {
	var current, longest int
	var last *time.Time
	err := s.db.QueryRow(ctx, `
	SELECT current_streak, longest_streak, last_interaction_date
	FROM friend_streaks
	WHERE user_id = $1 AND friend_id = $2
	`, senderID, receiverID).Scan(&current, &longest, &last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to get friend streak: %w", err)
	}

	today := time.Now().UTC()
	newCurrent, newLongest := streak.Advance(current, longest, last, today)

	query := `
	INSERT INTO friend_streaks (user_id, friend_id, current_streak, longest_streak, last_interaction_date, updated_at)
	VALUES ($1, $2, $3, $4, CURRENT_DATE, NOW())
	ON CONFLICT (user_id, friend_id) DO UPDATE
	SET current_streak = $3, longest_streak = $4, last_interaction_date = CURRENT_DATE, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, senderID, receiverID, newCurrent, newLongest); err != nil {
		return fmt.Errorf("failed to update friend streak: %w", err)
	}
	return nil
}
