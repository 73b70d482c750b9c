package routes

import (
	"helpmate_server/socket"

	"github.com/gorilla/mux"
)

// RegisterSocketRoutes sets up the websocket endpoints for chat and notifications
func RegisterSocketRoutes(r *mux.Router, chatHandler *socket.ChatSocketHandler, notificationHandler *socket.NotificationSocketHandler) {
	r.HandleFunc("/ws/chat/{sessionId}", chatHandler.HandleConnection).Methods("GET")
	r.HandleFunc("/ws/notifications", notificationHandler.HandleConnection).Methods("GET")
}
