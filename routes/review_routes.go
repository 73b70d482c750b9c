package routes

import (
	"helpmate_server/controllers"
	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// RegisterReviewRoutes sets up routes for session reviews under /api/reviews
func RegisterReviewRoutes(r *mux.Router, reviewService *services.ReviewService, auth *utils.AuthVerifier) {
	controller := controllers.NewReviewController(reviewService)

	reviewRouter := r.PathPrefix("/api/reviews").Subrouter()
	reviewRouter.Use(auth.Middleware)

	reviewRouter.HandleFunc("", controller.HandleSubmit).Methods("POST")
	reviewRouter.HandleFunc("/{userId}", controller.HandleListForUser).Methods("GET")
}
