package routes

import (
	"helpmate_server/controllers"
	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, auth *utils.AuthVerifier) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.Use(auth.Middleware)

	chatRouter.HandleFunc("/messages/{sessionId}", controller.HandleListMessages).Methods("GET")
}
