package services

import (
	"context"
	"fmt"
	"time"

	"helpmate_server/models"
	"helpmate_server/utils"

	"github.com/google/uuid"
)

// ChatService persists chat messages and keeps the submission idempotent on
// the client-supplied messageId. Delivery/read receipts are relayed live by
// the socket layer and are not persisted here.
type ChatService struct {
	Messages MessageStore
	Sessions SessionStore
	Notify   *NotificationService

	Now func() time.Time
}

type SaveMessageInput struct {
	SessionID   string `json:"sessionId"`
	SenderID    string `json:"senderId"`
	MessageID   string `json:"messageId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SaveMessage persists a submission. A replayed messageId returns the stored
// row with duplicate=true so the caller can acknowledge without broadcasting
// the message as new.
func (s *ChatService) SaveMessage(ctx context.Context, in SaveMessageInput) (*models.ChatMessage, bool, error) {
	if in.SessionID == "" || in.SenderID == "" {
		return nil, false, fmt.Errorf("sessionId and senderId are required: %w", ErrValidation)
	}
	if in.Content == "" {
		return nil, false, fmt.Errorf("content is required: %w", ErrValidation)
	}
	if in.MessageType == "" {
		in.MessageType = models.MessageTypeText
	}
	if !models.ValidMessageType(in.MessageType) {
		return nil, false, fmt.Errorf("unknown message type %q: %w", in.MessageType, ErrValidation)
	}
	if in.MessageID == "" {
		in.MessageID = uuid.New().String()
	}

	message := &models.ChatMessage{
		SessionID:     in.SessionID,
		MessageID:     in.MessageID,
		SenderID:      in.SenderID,
		Content:       in.Content,
		MessageType:   in.MessageType,
		Timestamp:     s.now().UTC().Format(time.RFC3339Nano),
		DeliveryState: models.DeliveryStateSent,
	}

	if err := s.Messages.Create(ctx, message); err != nil {
		if !isConflict(err) {
			return nil, false, err
		}
		existing, getErr := s.Messages.Get(ctx, in.SessionID, in.MessageID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, true, nil
	}

	s.notifyCounterpart(ctx, message)
	return message, false, nil
}

// ListMessages returns a session's messages oldest first. Only the two
// participants may read them.
func (s *ChatService) ListMessages(ctx context.Context, callerID, sessionID string, limit int) ([]models.ChatMessage, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller is not a session participant: %w", ErrForbidden)
	}
	return s.Messages.ListBySession(ctx, sessionID, limit)
}

func (s *ChatService) notifyCounterpart(ctx context.Context, m *models.ChatMessage) {
	if s.Notify == nil {
		return
	}
	session, err := s.Sessions.Get(ctx, m.SessionID)
	if err != nil {
		return
	}
	other := session.Counterpart(m.SenderID)
	if other == "" {
		return
	}
	if _, err := s.Notify.Send(ctx, SendNotificationInput{
		UserID:  other,
		Title:   "New message",
		Message: "You have a new message in your session",
		Type:    models.NotificationTypeChat,
	}); err != nil {
		utils.L().Warn().Err(err).Str("user_id", other).Msg("failed to send chat notification")
	}
}
