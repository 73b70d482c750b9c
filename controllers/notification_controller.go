package controllers

import (
	"encoding/json"
	"net/http"

	"helpmate_server/services"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
)

// NotificationController struct
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController initializes the notification controller
func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleSend - persists a notification and pushes it live best-effort
func (c *NotificationController) HandleSend(w http.ResponseWriter, r *http.Request) {
	var in services.SendNotificationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	notification, err := c.NotificationService.Send(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, notification)
}

// HandleList - lists the caller's notifications, newest first
func (c *NotificationController) HandleList(w http.ResponseWriter, r *http.Request) {
	notifications, err := c.NotificationService.List(r.Context(), utils.CallerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead - marks one notification as read; idempotent
func (c *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notificationId"]

	notification, err := c.NotificationService.MarkRead(r.Context(), utils.CallerID(r), notificationID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notification)
}
