package models

// Session statuses. cancelled and end are terminal; completed still allows a
// late transition to end.
const (
	SessionStatusCreated   = "created"
	SessionStatusStarted   = "started"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
	SessionStatusEnd       = "end"
)

// Location is the meeting point captured from the originating match request
type Location struct {
	Lat float64 `dynamodbav:"lat" json:"lat"`
	Lng float64 `dynamodbav:"lng" json:"lng"`
}

type Session struct {
	SessionID    string   `dynamodbav:"sessionId" json:"sessionId"`
	RequesterID  string   `dynamodbav:"requesterId" json:"requesterId"`
	HelperID     string   `dynamodbav:"helperId" json:"helperId"`
	MatchID      string   `dynamodbav:"matchId" json:"matchId"`
	Status       string   `dynamodbav:"status" json:"status"`
	Location     Location `dynamodbav:"location" json:"location"`
	CheckInTime  string   `dynamodbav:"checkInTime,omitempty" json:"checkInTime,omitempty"`
	CheckOutTime string   `dynamodbav:"checkOutTime,omitempty" json:"checkOutTime,omitempty"`
	CreatedAt    string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    string   `dynamodbav:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the session accepts no further transitions.
func (s *Session) IsTerminal() bool {
	return s.Status == SessionStatusCancelled || s.Status == SessionStatusEnd
}

// HasParticipant reports whether userID is one of the two session parties.
func (s *Session) HasParticipant(userID string) bool {
	return userID == s.RequesterID || userID == s.HelperID
}

// Counterpart returns the other participant, or "" if userID is not one.
func (s *Session) Counterpart(userID string) string {
	switch userID {
	case s.RequesterID:
		return s.HelperID
	case s.HelperID:
		return s.RequesterID
	}
	return ""
}

// SessionsTable is the DynamoDB table name for sessions. The table is keyed by
// matchId because a match owns at most one session; sessionId lookups go
// through the GSI below.
const SessionsTable = "Sessions"

// SessionsBySessionIndex is the GSI keyed on sessionId
const SessionsBySessionIndex = "sessionId-index"
