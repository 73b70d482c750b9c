package services

import (
	"context"
	"errors"
	"testing"

	"helpmate_server/models"
)

func newReviewFixture(t *testing.T, sessionStatus string) (*ReviewService, *memoryReviewStore) {
	t.Helper()
	sessions := newMemorySessionStore()
	seedSession(sessions, sessionStatus)
	reviews := newMemoryReviewStore()
	return &ReviewService{Reviews: reviews, Sessions: sessions}, reviews
}

func TestSubmitReviewGatingBySessionStatus(t *testing.T) {
	tests := []struct {
		status  string
		wantErr error
	}{
		{models.SessionStatusCreated, ErrConflict},
		{models.SessionStatusStarted, ErrConflict},
		{models.SessionStatusCompleted, nil},
		{models.SessionStatusCancelled, ErrConflict},
		{models.SessionStatusEnd, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			svc, _ := newReviewFixture(t, tt.status)
			_, err := svc.SubmitReview(context.Background(), "alice", SubmitReviewInput{
				SessionID:    "sess-1",
				TargetUserID: "bob",
				Rating:       5,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SubmitReview: %v", err)
			}
		})
	}
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.SubmitReview(ctx, "alice", SubmitReviewInput{
			SessionID:    "sess-1",
			TargetUserID: "bob",
			Rating:       rating,
		}); !errors.Is(err, ErrValidation) {
			t.Errorf("rating %d: expected ErrValidation, got %v", rating, err)
		}
	}
	for _, rating := range []int{1, 5} {
		svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
		if _, err := svc.SubmitReview(ctx, "alice", SubmitReviewInput{
			SessionID:    "sess-1",
			TargetUserID: "bob",
			Rating:       rating,
		}); err != nil {
			t.Errorf("rating %d: %v", rating, err)
		}
	}
}

func TestSubmitReviewAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("outsider reviewer", func(t *testing.T) {
		svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
		if _, err := svc.SubmitReview(ctx, "mallory", SubmitReviewInput{
			SessionID:    "sess-1",
			TargetUserID: "bob",
			Rating:       4,
		}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
	t.Run("target not the counterpart", func(t *testing.T) {
		svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
		if _, err := svc.SubmitReview(ctx, "alice", SubmitReviewInput{
			SessionID:    "sess-1",
			TargetUserID: "carol",
			Rating:       4,
		}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
	t.Run("self review", func(t *testing.T) {
		svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
		if _, err := svc.SubmitReview(ctx, "alice", SubmitReviewInput{
			SessionID:    "sess-1",
			TargetUserID: "alice",
			Rating:       4,
		}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestSubmitReviewOncePerReviewer(t *testing.T) {
	svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
	ctx := context.Background()

	in := SubmitReviewInput{SessionID: "sess-1", TargetUserID: "bob", Rating: 5}
	if _, err := svc.SubmitReview(ctx, "alice", in); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.SubmitReview(ctx, "alice", in); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on repeat, got %v", err)
	}

	// The counterpart still gets their own review of the requester.
	if _, err := svc.SubmitReview(ctx, "bob", SubmitReviewInput{
		SessionID:    "sess-1",
		TargetUserID: "alice",
		Rating:       4,
	}); err != nil {
		t.Fatalf("counterpart review: %v", err)
	}
}

func TestListReviewsForUser(t *testing.T) {
	svc, _ := newReviewFixture(t, models.SessionStatusCompleted)
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, "alice", SubmitReviewInput{
		SessionID:    "sess-1",
		TargetUserID: "bob",
		Rating:       5,
		Comment:      "great help",
	}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	got, err := svc.ListReviewsForUser(ctx, "bob")
	if err != nil {
		t.Fatalf("ListReviewsForUser: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Rating != 5 || got[0].Comment != "great help" {
		t.Errorf("unexpected review %+v", got[0])
	}

	empty, err := svc.ListReviewsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListReviewsForUser(alice): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("alice reviews = %d, want 0", len(empty))
	}
}
