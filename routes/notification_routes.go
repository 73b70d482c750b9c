package routes

import (
	"helpmate_server/controllers"
	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for notifications under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService, auth *utils.AuthVerifier) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.Use(auth.Middleware)

	notificationRouter.HandleFunc("", controller.HandleSend).Methods("POST")
	notificationRouter.HandleFunc("", controller.HandleList).Methods("GET")
	notificationRouter.HandleFunc("/mark-read/{notificationId}", controller.HandleMarkRead).Methods("POST")
}
