package routes

import (
	"helpmate_server/controllers"
	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// RegisterSessionRoutes sets up routes for session management under /api/sessions
func RegisterSessionRoutes(r *mux.Router, sessionService *services.SessionService, auth *utils.AuthVerifier) {
	controller := controllers.NewSessionController(sessionService)

	sessionRouter := r.PathPrefix("/api/sessions").Subrouter()
	sessionRouter.Use(auth.Middleware)

	sessionRouter.HandleFunc("/create", controller.HandleCreateSession).Methods("POST")
	sessionRouter.HandleFunc("/update-status/{sessionId}", controller.HandleUpdateStatus).Methods("POST")
	sessionRouter.HandleFunc("/by-match/{matchId}", controller.HandleGetByMatch).Methods("GET")
}
