package models

// Message content types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// Delivery lifecycle of a chat message. "sent" is stamped on persist;
// delivered and read are client-signalled events relayed on the session
// channel and never inferred.
const (
	DeliveryStateSent      = "sent"
	DeliveryStateDelivered = "delivered"
	DeliveryStateRead      = "read"
)

type ChatMessage struct {
	SessionID     string `dynamodbav:"sessionId" json:"sessionId"`
	MessageID     string `dynamodbav:"messageId" json:"messageId"` // client-supplied idempotency key
	SenderID      string `dynamodbav:"senderId" json:"senderId"`
	Content       string `dynamodbav:"content" json:"content"`
	MessageType   string `dynamodbav:"messageType" json:"messageType"`
	Timestamp     string `dynamodbav:"timestamp" json:"timestamp"`
	DeliveryState string `dynamodbav:"deliveryState" json:"deliveryState"`
}

// ValidMessageType reports whether t is one of the supported content types.
func ValidMessageType(t string) bool {
	return t == MessageTypeText || t == MessageTypeImage || t == MessageTypeFile
}

// MessagesTable is the DynamoDB table name for chat messages, keyed (sessionId,
// messageId) so a replayed messageId fails its conditional put.
const MessagesTable = "Messages"
