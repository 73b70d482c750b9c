package services

import (
	"context"

	"helpmate_server/models"
)

// Store interfaces over the persistent tables. The domain services only see
// these; the Dynamo implementations live next to them and the tests run
// against in-memory fakes.

type MatchStore interface {
	Create(ctx context.Context, m *models.MatchRequest) error
	Get(ctx context.Context, matchID string) (*models.MatchRequest, error)
	// SetStatus flips a request from expect to next, stamping respondedAt.
	// Returns ErrConflict if the stored status is not expect anymore.
	SetStatus(ctx context.Context, matchID, expect, next, respondedAt string) (*models.MatchRequest, error)
	// AcceptWithSession atomically flips a pending request to accepted and
	// creates its session. Either both writes land or neither does; a lost
	// race on the status, or an existing session for the match, returns
	// ErrConflict.
	AcceptWithSession(ctx context.Context, matchID, respondedAt string, session *models.Session) error
	// ListByUser returns every request where userID is requester or receiver.
	ListByUser(ctx context.Context, userID string) ([]models.MatchRequest, error)
}

type SessionStore interface {
	// Create persists a new session; ErrConflict if the match already owns one.
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	GetByMatch(ctx context.Context, matchID string) (*models.Session, error)
	// SetStatus flips a session from expect to next and applies the given
	// timestamp stamps. Returns ErrConflict if the stored status moved.
	SetStatus(ctx context.Context, matchID, expect, next string, stamps SessionStamps) (*models.Session, error)
}

// SessionStamps carries the timestamps written alongside a status change.
// Empty fields are left untouched.
type SessionStamps struct {
	CheckInTime  string
	CheckOutTime string
	UpdatedAt    string
}

type MessageStore interface {
	// Create persists a new message; ErrConflict if (sessionId, messageId)
	// already exists.
	Create(ctx context.Context, m *models.ChatMessage) error
	Get(ctx context.Context, sessionID, messageID string) (*models.ChatMessage, error)
	// ListBySession returns messages oldest-first.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	Get(ctx context.Context, notificationID string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) (*models.Notification, error)
}

type ReviewStore interface {
	// Create persists a new review; ErrConflict if the reviewer already
	// reviewed the session.
	Create(ctx context.Context, r *models.Review) error
	ListByTarget(ctx context.Context, userID string) ([]models.Review, error)
}

// Broadcaster is the live-delivery side of the connection registry as the
// services see it. Implemented by socket.Registry.
type Broadcaster interface {
	Broadcast(channelID string, payload interface{}) error
}
