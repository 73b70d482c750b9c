package socket

// Inbound frame types accepted on a session channel. Notification channels
// treat every inbound frame as keep-alive.
const (
	FrameTypeChat      = "chat"
	FrameTypeDelivered = "delivered"
	FrameTypeRead      = "read"
)

// Outbound frame types.
const (
	FrameTypeAck          = "ack"
	FrameTypeStatus       = "status"
	FrameTypeError        = "error"
	FrameTypeNotification = "notification"
)

// Error codes carried on error frames.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// BaseFrame is the shape every inbound frame shares.
type BaseFrame struct {
	Type string `json:"type"`
}

// ChatFrame is a client chat submission. MessageID is the client-supplied
// idempotency key; MessageType defaults to text.
type ChatFrame struct {
	Type        string `json:"type"`
	MessageID   string `json:"message_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
}

// ReceiptFrame is a client-triggered delivered/read signal.
type ReceiptFrame struct {
	Type      string `json:"type"`
	MessageID string `json:"message_id"`
}

// AckFrame acknowledges a persisted submission to the sender.
type AckFrame struct {
	Type      string `json:"type"`
	MessageID string `json:"message_id"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// ChatBroadcastFrame carries a persisted message to every connection on the
// session channel.
type ChatBroadcastFrame struct {
	Type        string `json:"type"`
	SenderID    string `json:"sender_id"`
	Content     string `json:"content"`
	MessageID   string `json:"message_id"`
	MessageType string `json:"message_type"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
}

// StatusFrame relays a delivered/read receipt to the session channel.
type StatusFrame struct {
	Type      string `json:"type"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorFrame reports a dropped inbound frame. The connection stays open
// unless the error was internal.
type ErrorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorFrame(code, message string) *ErrorFrame {
	return &ErrorFrame{Type: FrameTypeError, Code: code, Message: message}
}
