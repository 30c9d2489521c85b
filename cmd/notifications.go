package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/utils/functional"
	"github.com/mingx/socialnet/models"
)

// NotificationResponse is the wire shape of a notification.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

func (app *application) getNotifications(w http.ResponseWriter, r *http.Request) {
	actor, _ := app.auth.GetAuthenticatedUser(r)

	notifications, err := app.core.GetNotifications(r.Context(), actor.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	notificationList := functional.Map(notifications, func(n *models.Notification) *NotificationResponse {
		return &NotificationResponse{
			ID:        n.ID,
			Recipient: actor.Username,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			IsRead:    n.IsRead,
		}
	})

	if err := app.writeJSON(w, http.StatusOK, envelope{"notifications": notificationList}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	// Scoped to the recipient: a foreign notification id yields 404, the
	// same as a nonexistent one.
	if err := app.core.MarkNotificationRead(r.Context(), actor.ID, id); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Notification marked as read"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
