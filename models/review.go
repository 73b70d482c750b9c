package models

type Review struct {
	SessionID    string `dynamodbav:"sessionId" json:"sessionId"`
	ReviewerID   string `dynamodbav:"reviewerId" json:"reviewerId"`
	ReviewID     string `dynamodbav:"reviewId" json:"reviewId"`
	TargetUserID string `dynamodbav:"targetUserId" json:"targetUserId"`
	Rating       int    `dynamodbav:"rating" json:"rating"`
	Comment      string `dynamodbav:"comment,omitempty" json:"comment,omitempty"`
	SubmittedAt  string `dynamodbav:"submittedAt" json:"submittedAt"`
}

// ReviewsTable is the DynamoDB table name for session reviews, keyed
// (sessionId, reviewerId) so a second review by the same reviewer fails its
// conditional put.
const ReviewsTable = "Reviews"

// ReviewsByTargetIndex is the GSI keyed on targetUserId
const ReviewsByTargetIndex = "targetUserId-index"
