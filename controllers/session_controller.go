package controllers

import (
	"encoding/json"
	"net/http"

	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// SessionController struct
type SessionController struct {
	SessionService *services.SessionService
}

// NewSessionController initializes the session controller
func NewSessionController(service *services.SessionService) *SessionController {
	return &SessionController{SessionService: service}
}

// HandleCreateSession - creates a session for a match without one
func (c *SessionController) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in services.CreateSessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	session, err := c.SessionService.CreateSession(r.Context(), utils.CallerID(r), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, session)
}

// HandleUpdateStatus - applies one session state transition
func (c *SessionController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	session, err := c.SessionService.UpdateStatus(r.Context(), utils.CallerID(r), sessionID, body.Status)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

// HandleGetByMatch - resolves the session owned by a match
func (c *SessionController) HandleGetByMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	session, err := c.SessionService.GetByMatch(r.Context(), utils.CallerID(r), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}
