package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"helpmate_server/models"
)

// In-memory store fakes mirroring the conditional-write semantics of the
// Dynamo implementations. Every fake is safe for concurrent use so the race
// tests mean something.

type memoryMatchStore struct {
	mu       sync.Mutex
	matches  map[string]models.MatchRequest
	sessions *memorySessionStore
}

func newMemoryMatchStore(sessions *memorySessionStore) *memoryMatchStore {
	return &memoryMatchStore{
		matches:  make(map[string]models.MatchRequest),
		sessions: sessions,
	}
}

func (s *memoryMatchStore) Create(ctx context.Context, m *models.MatchRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[m.MatchID]; ok {
		return fmt.Errorf("match %s exists: %w", m.MatchID, ErrConflict)
	}
	s.matches[m.MatchID] = *m
	return nil
}

func (s *memoryMatchStore) Get(ctx context.Context, matchID string) (*models.MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return &m, nil
}

func (s *memoryMatchStore) SetStatus(ctx context.Context, matchID, expect, next, respondedAt string) (*models.MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if m.Status != expect {
		return nil, fmt.Errorf("match %s is %s not %s: %w", matchID, m.Status, expect, ErrConflict)
	}
	m.Status = next
	m.RespondedAt = respondedAt
	s.matches[matchID] = m
	return &m, nil
}

func (s *memoryMatchStore) AcceptWithSession(ctx context.Context, matchID, respondedAt string, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if m.Status != models.MatchStatusPending {
		return fmt.Errorf("match %s is %s: %w", matchID, m.Status, ErrConflict)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return err
	}
	m.Status = models.MatchStatusAccepted
	m.RespondedAt = respondedAt
	s.matches[matchID] = m
	return nil
}

func (s *memoryMatchStore) ListByUser(ctx context.Context, userID string) ([]models.MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MatchRequest
	for _, m := range s.matches {
		if m.RequesterID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memorySessionStore struct {
	mu      sync.Mutex
	byMatch map[string]models.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{byMatch: make(map[string]models.Session)}
}

func (s *memorySessionStore) Create(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byMatch[session.MatchID]; ok {
		return fmt.Errorf("match %s already has a session: %w", session.MatchID, ErrConflict)
	}
	s.byMatch[session.MatchID] = *session
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.byMatch {
		if session.SessionID == sessionID {
			out := session
			return &out, nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
}

func (s *memorySessionStore) GetByMatch(ctx context.Context, matchID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byMatch[matchID]
	if !ok {
		return nil, fmt.Errorf("session for match %s: %w", matchID, ErrNotFound)
	}
	return &session, nil
}

func (s *memorySessionStore) SetStatus(ctx context.Context, matchID, expect, next string, stamps SessionStamps) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byMatch[matchID]
	if !ok {
		return nil, fmt.Errorf("session for match %s: %w", matchID, ErrNotFound)
	}
	if session.Status != expect {
		return nil, fmt.Errorf("session is %s not %s: %w", session.Status, expect, ErrConflict)
	}
	session.Status = next
	if stamps.CheckInTime != "" {
		session.CheckInTime = stamps.CheckInTime
	}
	if stamps.CheckOutTime != "" {
		session.CheckOutTime = stamps.CheckOutTime
	}
	if stamps.UpdatedAt != "" {
		session.UpdatedAt = stamps.UpdatedAt
	}
	s.byMatch[matchID] = session
	return &session, nil
}

// put installs a session directly, for test setup.
func (s *memorySessionStore) put(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byMatch[session.MatchID] = session
}

type messageKey struct {
	sessionID string
	messageID string
}

type memoryMessageStore struct {
	mu       sync.Mutex
	messages map[messageKey]models.ChatMessage
}

func newMemoryMessageStore() *memoryMessageStore {
	return &memoryMessageStore{messages: make(map[messageKey]models.ChatMessage)}
}

func (s *memoryMessageStore) Create(ctx context.Context, m *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := messageKey{m.SessionID, m.MessageID}
	if _, ok := s.messages[key]; ok {
		return fmt.Errorf("message %s exists: %w", m.MessageID, ErrConflict)
	}
	s.messages[key] = *m
	return nil
}

func (s *memoryMessageStore) Get(ctx context.Context, sessionID, messageID string) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageKey{sessionID, messageID}]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}
	return &m, nil
}

func (s *memoryMessageStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatMessage
	for key, m := range s.messages {
		if key.sessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memoryNotificationStore struct {
	mu            sync.Mutex
	notifications map[string]models.Notification
}

func newMemoryNotificationStore() *memoryNotificationStore {
	return &memoryNotificationStore{notifications: make(map[string]models.Notification)}
}

func (s *memoryNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.NotificationID] = *n
	return nil
}

func (s *memoryNotificationStore) Get(ctx context.Context, notificationID string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[notificationID]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	return &n, nil
}

func (s *memoryNotificationStore) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (s *memoryNotificationStore) MarkRead(ctx context.Context, notificationID string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[notificationID]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	n.IsRead = true
	s.notifications[notificationID] = n
	return &n, nil
}

type reviewKey struct {
	sessionID  string
	reviewerID string
}

type memoryReviewStore struct {
	mu      sync.Mutex
	reviews map[reviewKey]models.Review
}

func newMemoryReviewStore() *memoryReviewStore {
	return &memoryReviewStore{reviews: make(map[reviewKey]models.Review)}
}

func (s *memoryReviewStore) Create(ctx context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reviewKey{r.SessionID, r.ReviewerID}
	if _, ok := s.reviews[key]; ok {
		return fmt.Errorf("review by %s exists: %w", r.ReviewerID, ErrConflict)
	}
	s.reviews[key] = *r
	return nil
}

func (s *memoryReviewStore) ListByTarget(ctx context.Context, userID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.TargetUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// stubBroadcaster records broadcasts and can be told to fail.
type stubBroadcaster struct {
	mu       sync.Mutex
	channels []string
	payloads []interface{}
	err      error
}

func (b *stubBroadcaster) Broadcast(channelID string, payload interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.channels = append(b.channels, channelID)
	b.payloads = append(b.payloads, payload)
	return nil
}

func (b *stubBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.channels)
}
