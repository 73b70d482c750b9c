package models

// Notification types
const (
	NotificationTypeSession = "session"
	NotificationTypeChat    = "chat"
	NotificationTypeAdmin   = "admin"
	NotificationTypeSystem  = "system"
)

type Notification struct {
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	UserID         string `dynamodbav:"userId" json:"userId"`
	Title          string `dynamodbav:"title" json:"title"`
	Message        string `dynamodbav:"message" json:"message"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	Type           string `dynamodbav:"type" json:"type"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"

// NotificationsByUserIndex is the GSI keyed on userId
const NotificationsByUserIndex = "userId-index"
