package controllers

import (
	"encoding/json"
	"net/http"

	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the match controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleCreateRequest - creates a pending match request from the caller
func (c *MatchController) HandleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var in services.CreateMatchRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.CreateMatchRequest(r.Context(), utils.CallerID(r), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, match)
}

// HandleRespond - answers a pending match request
func (c *MatchController) HandleRespond(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	match, session, err := c.MatchService.RespondToMatch(r.Context(), utils.CallerID(r), matchID, body.Status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response := map[string]interface{}{"match": match}
	if session != nil {
		response["session"] = session
	}
	WriteJSON(w, http.StatusOK, response)
}

// HandleMyMatches - lists the caller's recent pending/accepted requests
func (c *MatchController) HandleMyMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := c.MatchService.ListMyMatches(r.Context(), utils.CallerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, matches)
}
