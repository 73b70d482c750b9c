package services

import (
	"context"
	"fmt"
	"time"

	"helpmate_server/models"
	"helpmate_server/utils"

	"github.com/google/uuid"
)

// SessionService owns the session state machine:
// created -> started -> completed -> end, with cancelled reachable from any
// non-terminal state. end and cancelled are final.
type SessionService struct {
	Sessions SessionStore
	Notify   *NotificationService

	// LookupWindow bounds how long finalized sessions stay visible on the
	// by-match lookup path. Active sessions always resolve.
	LookupWindow time.Duration

	Now func() time.Time
}

type CreateSessionInput struct {
	RequesterID string          `json:"requesterId"`
	HelperID    string          `json:"helperId"`
	MatchID     string          `json:"matchId"`
	Location    models.Location `json:"location"`
}

// nextStates maps each status to the targets reachable from it.
var nextStates = map[string]map[string]bool{
	models.SessionStatusCreated: {
		models.SessionStatusStarted:   true,
		models.SessionStatusCancelled: true,
	},
	models.SessionStatusStarted: {
		models.SessionStatusCompleted: true,
		models.SessionStatusCancelled: true,
	},
	models.SessionStatusCompleted: {
		models.SessionStatusEnd:       true,
		models.SessionStatusCancelled: true,
	},
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateSession persists a session for a match that does not have one yet.
// The caller must be one of the two participants.
func (s *SessionService) CreateSession(ctx context.Context, callerID string, in CreateSessionInput) (*models.Session, error) {
	if in.RequesterID == "" || in.HelperID == "" || in.MatchID == "" {
		return nil, fmt.Errorf("requesterId, helperId and matchId are required: %w", ErrValidation)
	}
	if !validCoordinates(in.Location.Lat, in.Location.Lng) {
		return nil, fmt.Errorf("location out of range: %w", ErrValidation)
	}
	if callerID != in.RequesterID && callerID != in.HelperID {
		return nil, fmt.Errorf("caller is not a session participant: %w", ErrForbidden)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	session := &models.Session{
		SessionID:   uuid.New().String(),
		RequesterID: in.RequesterID,
		HelperID:    in.HelperID,
		MatchID:     in.MatchID,
		Status:      models.SessionStatusCreated,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateStatus applies one transition requested by a participant. started
// stamps checkInTime and completed stamps checkOutTime; once the session is
// end or cancelled no further transition is accepted.
func (s *SessionService) UpdateStatus(ctx context.Context, callerID, sessionID, target string) (*models.Session, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller is not a session participant: %w", ErrForbidden)
	}

	switch target {
	case models.SessionStatusStarted, models.SessionStatusCompleted,
		models.SessionStatusEnd, models.SessionStatusCancelled:
	default:
		return nil, fmt.Errorf("unknown target status %q: %w", target, ErrInvalidTransition)
	}

	if session.IsTerminal() {
		return nil, fmt.Errorf("session %s is already %s: %w", sessionID, session.Status, ErrConflict)
	}
	if !nextStates[session.Status][target] {
		return nil, fmt.Errorf("cannot move session from %s to %s: %w", session.Status, target, ErrInvalidTransition)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	stamps := SessionStamps{UpdatedAt: now}
	switch target {
	case models.SessionStatusStarted:
		stamps.CheckInTime = now
	case models.SessionStatusCompleted:
		stamps.CheckOutTime = now
	}

	updated, err := s.Sessions.SetStatus(ctx, session.MatchID, session.Status, target, stamps)
	if err != nil {
		return nil, err
	}

	if other := session.Counterpart(callerID); other != "" {
		s.notifyStatus(ctx, other, updated.Status)
	}
	return updated, nil
}

// GetByMatch resolves the session owned by a match. Active sessions always
// resolve; finalized ones go invisible once their last update falls outside
// the lookup window, even though the row persists.
func (s *SessionService) GetByMatch(ctx context.Context, callerID, matchID string) (*models.Session, error) {
	session, err := s.Sessions.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller is not a session participant: %w", ErrForbidden)
	}

	switch session.Status {
	case models.SessionStatusCreated, models.SessionStatusStarted:
		return session, nil
	}

	if s.LookupWindow > 0 {
		updated, err := time.Parse(time.RFC3339Nano, session.UpdatedAt)
		if err == nil && s.now().Sub(updated) > s.LookupWindow {
			return nil, fmt.Errorf("session for match %s is no longer visible: %w", matchID, ErrNotFound)
		}
	}
	return session, nil
}

func (s *SessionService) notifyStatus(ctx context.Context, userID, status string) {
	if s.Notify == nil {
		return
	}
	if _, err := s.Notify.Send(ctx, SendNotificationInput{
		UserID:  userID,
		Title:   "Session update",
		Message: fmt.Sprintf("Your session is now %s", status),
		Type:    models.NotificationTypeSession,
	}); err != nil {
		utils.L().Warn().Err(err).Str("user_id", userID).Msg("failed to send session notification")
	}
}
