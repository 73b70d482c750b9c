package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	v := NewAuthVerifier("secret", "test")

	token, err := v.IssueToken("alice", time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	userID, err := v.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != "alice" {
		t.Errorf("userID = %q, want alice", userID)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	v := NewAuthVerifier("secret", "test")

	t.Run("garbage", func(t *testing.T) {
		if _, err := v.VerifyToken("not-a-token"); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthVerifier("other-secret", "test")
		token, _ := other.IssueToken("alice", time.Minute)
		if _, err := v.VerifyToken(token); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("expired", func(t *testing.T) {
		token, _ := v.IssueToken("alice", -time.Minute)
		if _, err := v.VerifyToken(token); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer abc")
		token, err := TokenFromRequest(r)
		if err != nil || token != "abc" {
			t.Fatalf("token=%q err=%v", token, err)
		}
	})
	t.Run("query param", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?token=xyz", nil)
		token, err := TokenFromRequest(r)
		if err != nil || token != "xyz" {
			t.Fatalf("token=%q err=%v", token, err)
		}
	})
	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic abc")
		if _, err := TokenFromRequest(r); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		if _, err := TokenFromRequest(r); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestMiddleware(t *testing.T) {
	v := NewAuthVerifier("secret", "test")
	var gotCaller string
	handler := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCaller = CallerID(r)
	}))

	t.Run("authorized", func(t *testing.T) {
		token, _ := v.IssueToken("alice", time.Minute)
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if gotCaller != "alice" {
			t.Errorf("caller = %q, want alice", gotCaller)
		}
	})
	t.Run("unauthorized", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}
