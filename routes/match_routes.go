package routes

import (
	"helpmate_server/controllers"
	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for matchmaking under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, auth *utils.AuthVerifier) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.Use(auth.Middleware)

	matchRouter.HandleFunc("/request", controller.HandleCreateRequest).Methods("POST")
	matchRouter.HandleFunc("/respond/{matchId}", controller.HandleRespond).Methods("POST")
	matchRouter.HandleFunc("/my-matches", controller.HandleMyMatches).Methods("GET")
}
