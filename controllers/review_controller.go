package controllers

import (
	"encoding/json"
	"net/http"

	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// ReviewController struct
type ReviewController struct {
	ReviewService *services.ReviewService
}

// NewReviewController initializes the review controller
func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: service}
}

// HandleSubmit - records the caller's review of a completed session
func (c *ReviewController) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in services.SubmitReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	review, err := c.ReviewService.SubmitReview(r.Context(), utils.CallerID(r), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, review)
}

// HandleListForUser - lists reviews targeting a user
func (c *ReviewController) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	reviews, err := c.ReviewService.ListReviewsForUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reviews)
}
