package controllers

import (
	"net/http"
	"strconv"

	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleListMessages - fetches a session's messages, oldest first
func (c *ChatController) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	// Default to the last 50 messages
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.ChatService.ListMessages(r.Context(), utils.CallerID(r), sessionID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}
