package notification

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WSEvent is the frame pushed to connected clients
type WSEvent struct {
	Type         Type                  `json:"type"`
	Notification *NotificationResponse `json:"notification"`
}

// Service handles notification logic
type Service struct {
	repo Repository
	hub  *Hub
	now  func() time.Time
}

// NewService creates notification service. A nil hub disables realtime
// push; queued rows are still written.
func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub, now: time.Now}
}

// Create queues a notification. When ctx carries a transaction the row
// commits with it; the WebSocket push is a best-effort hint on top and
// never fails the caller.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, notifType Type, title, body string, data *NotificationData) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		IsRead:    false,
		CreatedAt: s.now(),
	}

	if body != "" {
		n.Body = sql.NullString{String: body, Valid: true}
	}
	n.SetData(data)

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.push(n)
	return n, nil
}

func (s *Service) push(n *Notification) {
	if s.hub == nil {
		return
	}
	event := &WSEvent{Type: n.Type, Notification: NotificationResponseFromEntity(n)}
	if err := s.hub.SendToUser(n.UserID, event); err != nil {
		log.Warn().Err(err).Str("user_id", n.UserID.String()).Msg("WebSocket notification push failed")
	}
}

// List returns notifications for user
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetUnreadCount returns unread count
func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

// MarkAsRead marks single notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

// MarkAllAsRead marks all notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// NotifyNewMatch queues one notification per participant. Called inside
// the match creation transaction by the swipe that completed the pair.
func (s *Service) NotifyNewMatch(ctx context.Context, matchID, userA, userB uuid.UUID) error {
	pairs := []struct {
		recipient   uuid.UUID
		counterpart uuid.UUID
	}{
		{userA, userB},
		{userB, userA},
	}
	for _, p := range pairs {
		counterpart := p.counterpart
		_, err := s.Create(ctx, p.recipient, TypeNewMatch,
			"It's a match!",
			"You and your match liked each other",
			&NotificationData{MatchID: &matchID, CounterpartID: &counterpart},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// NotifyMatchEnded queues a notification for the remaining participant
// after an unmatch or block ends a match.
func (s *Service) NotifyMatchEnded(ctx context.Context, matchID, recipientID, endedBy uuid.UUID) error {
	_, err := s.Create(ctx, recipientID, TypeMatchEnded,
		"Match ended",
		"One of your matches is no longer available",
		&NotificationData{MatchID: &matchID, EndedBy: &endedBy},
	)
	return err
}
