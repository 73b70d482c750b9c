package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"helpmate_server/metrics"
	"helpmate_server/models"
	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatBackend is the slice of ChatService the socket layer needs.
type ChatBackend interface {
	SaveMessage(ctx context.Context, in services.SaveMessageInput) (*models.ChatMessage, bool, error)
}

// TokenVerifier turns a bearer token into a verified user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// ChatSocketHandler serves the per-session chat stream. Each connection is
// registered on the session channel and serviced by its own pumps; all frames
// are JSON objects carrying a type field.
type ChatSocketHandler struct {
	Registry *Registry
	Chat     ChatBackend
	Auth     TokenVerifier
	Config   Config
}

// HandleConnection upgrades /ws/chat/{sessionId} and runs the frame loop.
func (h *ChatSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token, err := utils.TokenFromRequest(r)
	if err != nil {
		http.Error(w, `{"error": "Missing or malformed authorization"}`, http.StatusUnauthorized)
		return
	}
	senderID, err := h.Auth.VerifyToken(token)
	if err != nil {
		http.Error(w, `{"error": "Invalid token"}`, http.StatusUnauthorized)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		http.Error(w, `{"error": "sessionId is required"}`, http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.L().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), sessionID, senderID, h.Registry, conn, h.Config)
	h.Registry.Register(sessionID, client)

	go client.WritePump()
	go client.ReadPump(h.handleFrame)
}

// handleFrame dispatches one inbound frame. Malformed payloads are dropped
// with an error frame and the connection stays open; a persistence failure is
// a connection-level error and closes it.
func (h *ChatSocketHandler) handleFrame(c *Client, raw []byte) {
	var base BaseFrame
	if err := json.Unmarshal(raw, &base); err != nil {
		c.Send(NewErrorFrame(ErrCodeBadRequest, "invalid frame"))
		return
	}
	metrics.FramesInboundTotal.WithLabelValues(base.Type).Inc()

	switch base.Type {
	case FrameTypeChat:
		h.handleChat(c, raw)

	case FrameTypeDelivered, FrameTypeRead:
		h.handleReceipt(c, base.Type, raw)

	default:
		c.Send(NewErrorFrame(ErrCodeBadRequest, "unknown frame type"))
	}
}

func (h *ChatSocketHandler) handleChat(c *Client, raw []byte) {
	var frame ChatFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.Send(NewErrorFrame(ErrCodeBadRequest, "invalid chat frame"))
		return
	}

	message, duplicate, err := h.Chat.SaveMessage(context.Background(), services.SaveMessageInput{
		SessionID:   c.Channel,
		SenderID:    c.UserID,
		MessageID:   frame.MessageID,
		Content:     frame.Content,
		MessageType: frame.MessageType,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.Send(NewErrorFrame(ErrCodeBadRequest, err.Error()))
			return
		}
		// Persistence failure is not recoverable on this connection.
		utils.L().Error().Err(err).Str("client_id", c.ID).Str("session_id", c.Channel).Msg("failed to persist chat message")
		c.Send(NewErrorFrame(ErrCodeInternalError, "failed to store message"))
		h.Registry.Unregister(c.Channel, c)
		c.Close()
		return
	}

	// Acknowledge to the submitting connection only.
	c.Send(&AckFrame{
		Type:      FrameTypeAck,
		MessageID: message.MessageID,
		Timestamp: message.Timestamp,
		Status:    models.DeliveryStateSent,
	})

	// A replayed messageId is acknowledged but never re-broadcast as new.
	if duplicate {
		return
	}

	if err := h.Registry.Broadcast(c.Channel, &ChatBroadcastFrame{
		Type:        FrameTypeChat,
		SenderID:    message.SenderID,
		Content:     message.Content,
		MessageID:   message.MessageID,
		MessageType: message.MessageType,
		Timestamp:   message.Timestamp,
		Status:      models.DeliveryStateDelivered,
	}); err != nil {
		// The message is persisted; a broadcast problem never fails the send.
		utils.L().Warn().Err(err).Str("session_id", c.Channel).Msg("chat broadcast failed")
	}
}

// handleReceipt relays a client-triggered delivered/read signal to the
// session channel. Receipts are a live signal only and are not persisted;
// clients re-derive state from the message list after a reconnect.
func (h *ChatSocketHandler) handleReceipt(c *Client, kind string, raw []byte) {
	var frame ReceiptFrame
	if err := json.Unmarshal(raw, &frame); err != nil || frame.MessageID == "" {
		c.Send(NewErrorFrame(ErrCodeBadRequest, "invalid receipt frame"))
		return
	}

	status := models.DeliveryStateDelivered
	if kind == FrameTypeRead {
		status = models.DeliveryStateRead
	}
	if err := h.Registry.Broadcast(c.Channel, &StatusFrame{
		Type:      FrameTypeStatus,
		MessageID: frame.MessageID,
		Status:    status,
	}); err != nil {
		utils.L().Warn().Err(err).Str("session_id", c.Channel).Msg("status broadcast failed")
	}
}
