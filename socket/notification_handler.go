package socket

import (
	"net/http"

	"helpmate_server/utils"

	"github.com/google/uuid"
)

// NotificationSocketHandler keeps a live channel per user for notification
// pushes. Inbound frames are keep-alive only; all real traffic is outbound.
type NotificationSocketHandler struct {
	Registry *Registry
	Auth     TokenVerifier
	Config   Config
}

// HandleConnection upgrades /ws/notifications and parks the connection on
// the caller's user channel.
func (h *NotificationSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token, err := utils.TokenFromRequest(r)
	if err != nil {
		http.Error(w, `{"error": "Missing or malformed authorization"}`, http.StatusUnauthorized)
		return
	}
	userID, err := h.Auth.VerifyToken(token)
	if err != nil {
		http.Error(w, `{"error": "Invalid token"}`, http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.L().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), userID, userID, h.Registry, conn, h.Config)
	h.Registry.Register(userID, client)

	go client.WritePump()
	go client.ReadPump(func(*Client, []byte) {
		// Keep-alive only; nothing to dispatch.
	})
}
