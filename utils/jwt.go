package utils

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")
)

// Claims represents the JWT claims issued by the identity service.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// AuthVerifier turns a bearer token into a verified user identifier. The core
// trusts that identifier for every authorization decision.
type AuthVerifier struct {
	secret []byte
	issuer string
}

func NewAuthVerifier(secret, issuer string) *AuthVerifier {
	return &AuthVerifier{secret: []byte(secret), issuer: issuer}
}

// VerifyToken validates the signature and expiry and returns the user id.
func (v *AuthVerifier) VerifyToken(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// IssueToken signs a token for userID. Used by operational tooling and tests.
func (v *AuthVerifier) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type contextKey string

const callerIDKey contextKey = "callerId"

// TokenFromRequest extracts the bearer token from the Authorization header or,
// for websocket upgrades where headers are awkward for browser clients, from
// the token query parameter.
func TokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return "", ErrInvalidToken
		}
		return strings.TrimPrefix(header, "Bearer "), nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", ErrMissingToken
}

// Middleware authenticates the request and stores the caller id in the
// request context.
func (v *AuthVerifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := TokenFromRequest(r)
		if err != nil {
			http.Error(w, `{"error": "Missing or malformed authorization"}`, http.StatusUnauthorized)
			return
		}
		userID, err := v.VerifyToken(token)
		if err != nil {
			http.Error(w, `{"error": "Invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), userID)))
	})
}

// WithCallerID returns a context carrying the verified caller id.
func WithCallerID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerIDKey, userID)
}

// CallerID returns the verified caller id, or "" when unauthenticated.
func CallerID(r *http.Request) string {
	id, _ := r.Context().Value(callerIDKey).(string)
	return id
}
