package services

import (
	"context"
	"errors"
	"testing"

	"helpmate_server/models"
)

func newChatFixture(t *testing.T) (*ChatService, *memoryMessageStore, *memorySessionStore, *memoryNotificationStore) {
	t.Helper()
	messages := newMemoryMessageStore()
	sessions := newMemorySessionStore()
	notifications := newMemoryNotificationStore()
	svc := &ChatService{
		Messages: messages,
		Sessions: sessions,
		Notify:   &NotificationService{Notifications: notifications},
	}
	seedSession(sessions, models.SessionStatusStarted)
	return svc, messages, sessions, notifications
}

func TestSaveMessageValidation(t *testing.T) {
	svc, _, _, _ := newChatFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SaveMessageInput
	}{
		{"missing session", SaveMessageInput{SenderID: "alice", Content: "hi"}},
		{"missing sender", SaveMessageInput{SessionID: "sess-1", Content: "hi"}},
		{"empty content", SaveMessageInput{SessionID: "sess-1", SenderID: "alice"}},
		{"bad type", SaveMessageInput{SessionID: "sess-1", SenderID: "alice", Content: "hi", MessageType: "audio"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.SaveMessage(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSaveMessageDefaults(t *testing.T) {
	svc, _, _, notifications := newChatFixture(t)
	ctx := context.Background()

	msg, duplicate, err := svc.SaveMessage(ctx, SaveMessageInput{
		SessionID: "sess-1",
		SenderID:  "alice",
		Content:   "hello",
	})
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if duplicate {
		t.Error("fresh message flagged duplicate")
	}
	if msg.MessageID == "" {
		t.Error("messageId not generated")
	}
	if msg.MessageType != models.MessageTypeText {
		t.Errorf("messageType = %q, want text", msg.MessageType)
	}
	if msg.DeliveryState != models.DeliveryStateSent {
		t.Errorf("deliveryState = %q, want sent", msg.DeliveryState)
	}

	got, _ := notifications.ListByUser(ctx, "bob")
	if len(got) != 1 {
		t.Errorf("counterpart notifications = %d, want 1", len(got))
	}
}

func TestSaveMessageIdempotency(t *testing.T) {
	svc, messages, _, notifications := newChatFixture(t)
	ctx := context.Background()

	in := SaveMessageInput{
		SessionID: "sess-1",
		SenderID:  "alice",
		MessageID: "msg-1",
		Content:   "first",
	}
	first, duplicate, err := svc.SaveMessage(ctx, in)
	if err != nil || duplicate {
		t.Fatalf("first save: err=%v duplicate=%v", err, duplicate)
	}

	// A replay with different content must return the original row untouched.
	in.Content = "second"
	replay, duplicate, err := svc.SaveMessage(ctx, in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !duplicate {
		t.Error("replay not flagged duplicate")
	}
	if replay.Content != "first" {
		t.Errorf("replay content = %q, want original %q", replay.Content, "first")
	}
	if replay.Timestamp != first.Timestamp {
		t.Errorf("replay timestamp %q != original %q", replay.Timestamp, first.Timestamp)
	}

	stored, _ := messages.ListBySession(ctx, "sess-1", 0)
	if len(stored) != 1 {
		t.Errorf("stored messages = %d, want 1", len(stored))
	}
	got, _ := notifications.ListByUser(ctx, "bob")
	if len(got) != 1 {
		t.Errorf("counterpart notifications = %d, want 1 (no re-notify on replay)", len(got))
	}
}

func TestListMessagesOrderAndAccess(t *testing.T) {
	svc, _, _, _ := newChatFixture(t)
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		if _, _, err := svc.SaveMessage(ctx, SaveMessageInput{
			SessionID: "sess-1",
			SenderID:  "alice",
			Content:   content,
		}); err != nil {
			t.Fatalf("SaveMessage(%q): %v", content, err)
		}
	}

	got, err := svc.ListMessages(ctx, "bob", "sess-1", 50)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Timestamp > got[i].Timestamp {
			t.Errorf("messages not oldest-first at %d", i)
		}
	}

	if _, err := svc.ListMessages(ctx, "mallory", "sess-1", 50); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListMessages(ctx, "alice", "missing", 50); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
