package models

// MatchRequest statuses. A request starts out pending and ends in exactly one
// of the terminal statuses; only accepted carries a side effect (the Session).
const (
	MatchStatusPending   = "pending"
	MatchStatusAccepted  = "accepted"
	MatchStatusDeclined  = "declined"
	MatchStatusCancelled = "cancelled"
	MatchStatusExpired   = "expired"
)

// Request types supported at creation time
const (
	RequestTypePhoto = "photo"
	RequestTypeVideo = "video"
	RequestTypeHelp  = "help"
)

type MatchRequest struct {
	MatchID     string  `dynamodbav:"matchId" json:"matchId"`
	RequesterID string  `dynamodbav:"requesterId" json:"requesterId"`
	ReceiverID  string  `dynamodbav:"receiverId" json:"receiverId"`
	RequestType string  `dynamodbav:"requestType" json:"requestType"`
	Distance    string  `dynamodbav:"distance" json:"distance"` // band like "100m", "500m", "1km"
	Details     string  `dynamodbav:"details,omitempty" json:"details,omitempty"`
	Latitude    float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude   float64 `dynamodbav:"longitude" json:"longitude"`
	Status      string  `dynamodbav:"status" json:"status"`
	CreatedAt   string  `dynamodbav:"createdAt" json:"createdAt"`
	RespondedAt string  `dynamodbav:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// IsTerminal reports whether the request can no longer change status.
func (m *MatchRequest) IsTerminal() bool {
	return m.Status != MatchStatusPending
}

// MatchRequestsTable is the DynamoDB table name for match requests
const MatchRequestsTable = "MatchRequests"

// MatchRequestsByUserIndex is the GSI used for "my matches" listings
const MatchRequestsByUserIndex = "requesterId-index"

// MatchRequestsByReceiverIndex is the GSI for requests addressed to a user
const MatchRequestsByReceiverIndex = "receiverId-index"
