package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"helpmate_server/models"
	"helpmate_server/utils"

	"github.com/google/uuid"
)

// MatchService owns the match request state machine. A pending request is
// answered by its receiver; acceptance atomically creates the session.
type MatchService struct {
	Matches MatchStore
	Notify  *NotificationService

	// VisibilityWindow bounds how long pending/accepted requests stay visible
	// in listings and how long a pending request stays answerable.
	VisibilityWindow time.Duration

	Now func() time.Time
}

type CreateMatchRequestInput struct {
	ReceiverID  string  `json:"receiverId"`
	RequestType string  `json:"requestType"`
	Distance    string  `json:"distance"`
	Details     string  `json:"details,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (s *MatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// CreateMatchRequest registers a pending request from the caller to the
// receiver, capturing geolocation and request type at creation time.
func (s *MatchService) CreateMatchRequest(ctx context.Context, callerID string, in CreateMatchRequestInput) (*models.MatchRequest, error) {
	if callerID == "" || in.ReceiverID == "" {
		return nil, fmt.Errorf("requester and receiver are required: %w", ErrValidation)
	}
	if in.ReceiverID == callerID {
		return nil, fmt.Errorf("cannot request a match with yourself: %w", ErrValidation)
	}
	switch in.RequestType {
	case models.RequestTypePhoto, models.RequestTypeVideo, models.RequestTypeHelp:
	default:
		return nil, fmt.Errorf("unknown request type %q: %w", in.RequestType, ErrValidation)
	}
	if in.Distance == "" {
		return nil, fmt.Errorf("distance band is required: %w", ErrValidation)
	}
	if !validCoordinates(in.Latitude, in.Longitude) {
		return nil, fmt.Errorf("coordinates out of range: %w", ErrValidation)
	}

	match := &models.MatchRequest{
		MatchID:     uuid.New().String(),
		RequesterID: callerID,
		ReceiverID:  in.ReceiverID,
		RequestType: in.RequestType,
		Distance:    in.Distance,
		Details:     in.Details,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      models.MatchStatusPending,
		CreatedAt:   s.now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Matches.Create(ctx, match); err != nil {
		return nil, err
	}

	s.notify(ctx, match.ReceiverID, "New match request",
		fmt.Sprintf("You have a new %s request nearby", match.RequestType),
		models.NotificationTypeSystem)

	return match, nil
}

// RespondToMatch transitions a pending request. accepted and declined belong
// to the receiver; cancelled belongs to the requester. Accepting creates the
// session in the same store transaction as the status flip; a request past
// the visibility window is flipped to expired instead and the response is
// rejected.
func (s *MatchService) RespondToMatch(ctx context.Context, callerID, matchID, status string) (*models.MatchRequest, *models.Session, error) {
	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}

	switch status {
	case models.MatchStatusAccepted, models.MatchStatusDeclined:
		if callerID != match.ReceiverID {
			return nil, nil, fmt.Errorf("only the receiver may respond: %w", ErrForbidden)
		}
	case models.MatchStatusCancelled:
		if callerID != match.RequesterID {
			return nil, nil, fmt.Errorf("only the requester may cancel: %w", ErrForbidden)
		}
	default:
		return nil, nil, fmt.Errorf("unknown response status %q: %w", status, ErrInvalidTransition)
	}

	if match.IsTerminal() {
		return nil, nil, fmt.Errorf("request %s is already %s: %w", matchID, match.Status, ErrConflict)
	}

	now := s.now()
	respondedAt := now.UTC().Format(time.RFC3339Nano)

	if s.expiredAt(match.CreatedAt, now) {
		if _, err := s.Matches.SetStatus(ctx, matchID, models.MatchStatusPending, models.MatchStatusExpired, respondedAt); err != nil {
			utils.L().Warn().Err(err).Str("match_id", matchID).Msg("failed to expire stale match request")
		}
		return nil, nil, fmt.Errorf("request %s has expired: %w", matchID, ErrConflict)
	}

	if status != models.MatchStatusAccepted {
		updated, err := s.Matches.SetStatus(ctx, matchID, models.MatchStatusPending, status, respondedAt)
		if err != nil {
			return nil, nil, err
		}
		return updated, nil, nil
	}

	if !validCoordinates(match.Latitude, match.Longitude) {
		return nil, nil, fmt.Errorf("request %s has no usable coordinates: %w", matchID, ErrValidation)
	}

	session := &models.Session{
		SessionID:   uuid.New().String(),
		RequesterID: match.RequesterID,
		HelperID:    match.ReceiverID,
		MatchID:     match.MatchID,
		Status:      models.SessionStatusCreated,
		Location:    models.Location{Lat: match.Latitude, Lng: match.Longitude},
		CreatedAt:   respondedAt,
		UpdatedAt:   respondedAt,
	}
	if err := s.Matches.AcceptWithSession(ctx, matchID, respondedAt, session); err != nil {
		return nil, nil, err
	}

	match.Status = models.MatchStatusAccepted
	match.RespondedAt = respondedAt

	s.notify(ctx, match.RequesterID, "Match accepted",
		"Your match request was accepted and a session is ready",
		models.NotificationTypeSession)

	return match, session, nil
}

// ListMyMatches returns the caller's pending and accepted requests created
// within the visibility window, newest first. Older requests are filtered,
// not deleted.
func (s *MatchService) ListMyMatches(ctx context.Context, callerID string) ([]models.MatchRequest, error) {
	all, err := s.Matches.ListByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	matches := make([]models.MatchRequest, 0, len(all))
	for _, m := range all {
		if m.Status != models.MatchStatusPending && m.Status != models.MatchStatusAccepted {
			continue
		}
		if s.expiredAt(m.CreatedAt, now) {
			continue
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})
	return matches, nil
}

func (s *MatchService) expiredAt(createdAt string, now time.Time) bool {
	if s.VisibilityWindow <= 0 {
		return false
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return false
	}
	return now.Sub(created) > s.VisibilityWindow
}

func (s *MatchService) notify(ctx context.Context, userID, title, message, kind string) {
	if s.Notify == nil {
		return
	}
	if _, err := s.Notify.Send(ctx, SendNotificationInput{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}); err != nil {
		utils.L().Warn().Err(err).Str("user_id", userID).Msg("failed to send match notification")
	}
}
