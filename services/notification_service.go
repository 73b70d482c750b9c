package services

import (
	"context"
	"fmt"
	"time"

	"helpmate_server/models"
	"helpmate_server/utils"

	"github.com/google/uuid"
)

// NotificationService persists every notification first and then attempts a
// best-effort live push on the user's channel. A user with no open connection
// simply finds the notification on the next list call.
type NotificationService struct {
	Notifications NotificationStore
	Registry      Broadcaster

	Now func() time.Time
}

type SendNotificationInput struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (s *NotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Send stores the notification and pushes it live if a connection is open.
// Push failure never fails the send.
func (s *NotificationService) Send(ctx context.Context, in SendNotificationInput) (*models.Notification, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("userId is required: %w", ErrValidation)
	}
	if in.Title == "" && in.Message == "" {
		return nil, fmt.Errorf("a title or message is required: %w", ErrValidation)
	}
	switch in.Type {
	case models.NotificationTypeSession, models.NotificationTypeChat,
		models.NotificationTypeAdmin, models.NotificationTypeSystem:
	case "":
		in.Type = models.NotificationTypeSystem
	default:
		return nil, fmt.Errorf("unknown notification type %q: %w", in.Type, ErrValidation)
	}

	notification := &models.Notification{
		NotificationID: uuid.New().String(),
		UserID:         in.UserID,
		Title:          in.Title,
		Message:        in.Message,
		IsRead:         false,
		CreatedAt:      s.now().UTC().Format(time.RFC3339Nano),
		Type:           in.Type,
	}
	if err := s.Notifications.Create(ctx, notification); err != nil {
		return nil, err
	}

	if s.Registry != nil {
		if err := s.Registry.Broadcast(notification.UserID, map[string]interface{}{
			"type":         "notification",
			"notification": notification,
		}); err != nil {
			utils.L().Debug().Err(err).Str("user_id", notification.UserID).Msg("live notification push skipped")
		}
	}
	return notification, nil
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Notifications.ListByUser(ctx, userID)
}

// MarkRead flags a notification as read. Marking an already-read notification
// succeeds and returns the unchanged record. Only the addressee may mark it.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, notificationID string) (*models.Notification, error) {
	notification, err := s.Notifications.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != callerID {
		return nil, fmt.Errorf("notification belongs to another user: %w", ErrForbidden)
	}
	if notification.IsRead {
		return notification, nil
	}
	return s.Notifications.MarkRead(ctx, notificationID)
}
