package services

import (
	"context"
	"fmt"
	"time"

	"helpmate_server/models"

	"github.com/google/uuid"
)

// ReviewService gates review submission on the session state machine: the one
// accepting window is status exactly completed at submission time. Badge and
// rating aggregation live outside this service.
type ReviewService struct {
	Reviews  ReviewStore
	Sessions SessionStore

	Now func() time.Time
}

type SubmitReviewInput struct {
	SessionID    string `json:"sessionId"`
	TargetUserID string `json:"targetUserId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
}

func (s *ReviewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SubmitReview records one review per (session, reviewer). The caller must be
// a participant reviewing the counterpart, and the session must be completed.
func (s *ReviewService) SubmitReview(ctx context.Context, callerID string, in SubmitReviewInput) (*models.Review, error) {
	if in.SessionID == "" || in.TargetUserID == "" {
		return nil, fmt.Errorf("sessionId and targetUserId are required: %w", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	session, err := s.Sessions.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller is not a session participant: %w", ErrForbidden)
	}
	if session.Counterpart(callerID) != in.TargetUserID {
		return nil, fmt.Errorf("target is not the session counterpart: %w", ErrForbidden)
	}
	if session.Status != models.SessionStatusCompleted {
		return nil, fmt.Errorf("session %s is %s, reviews require a completed session: %w",
			in.SessionID, session.Status, ErrConflict)
	}

	review := &models.Review{
		SessionID:    in.SessionID,
		ReviewerID:   callerID,
		ReviewID:     uuid.New().String(),
		TargetUserID: in.TargetUserID,
		Rating:       in.Rating,
		Comment:      in.Comment,
		SubmittedAt:  s.now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("session %s already reviewed by %s: %w", in.SessionID, callerID, ErrConflict)
		}
		return nil, err
	}
	return review, nil
}

// ListReviewsForUser returns the reviews where userID is the target.
func (s *ReviewService) ListReviewsForUser(ctx context.Context, userID string) ([]models.Review, error) {
	return s.Reviews.ListByTarget(ctx, userID)
}
