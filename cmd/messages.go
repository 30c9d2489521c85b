package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/monitoring"
	"github.com/mingx/socialnet/internal/utils/collectionutils"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/functional"
	"github.com/mingx/socialnet/internal/validator"
	"github.com/mingx/socialnet/models"
)

// MessageResponse is the wire shape of a direct message.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Recipient int64     `json:"recipient"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// getMessages returns every message the actor sent or received, in
// insertion order.
func (app *application) getMessages(w http.ResponseWriter, r *http.Request) {
	actor, _ := app.auth.GetAuthenticatedUser(r)

	messages, err := app.core.GetMessages(r.Context(), actor.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	senderIdList := functional.Map(messages, func(m *models.Message) int64 { return m.SenderID })
	senders, err := app.core.GetUsersByIdList(r.Context(), senderIdList)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	usernameByUserId := collectionutils.Associate(senders, func(u *auth.User) (int64, string) {
		return u.ID, u.Username
	})

	messageList := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		messageList = append(messageList, &MessageResponse{
			ID:        message.ID,
			Sender:    usernameByUserId[message.SenderID],
			Recipient: message.RecipientID,
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
			IsRead:    message.IsRead,
		})
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"messages": messageList}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) sendMessage(w http.ResponseWriter, r *http.Request) {
	type sendMessagePayload struct {
		Recipient int64  `json:"recipient"`
		Content   string `json:"content"`
	}

	type SendMessageRequest struct {
		sendMessagePayload `json:"message"`
	}

	var sendMessageRequest SendMessageRequest

	if err := app.readJSON(w, r, &sendMessageRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.Check(sendMessageRequest.Recipient > 0, "recipient", "must be provided")
	v.CheckNotBlank(sendMessageRequest.Content, "content", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	// The sender is always the actor; the payload cannot spoof it.
	actor, _ := app.auth.GetAuthenticatedUser(r)

	newMessage, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Message, error) {
		recipient, err := app.core.GetUserByID(txCtx, sendMessageRequest.Recipient)
		if err != nil {
			return nil, err
		}

		message, err := app.core.CreateMessage(txCtx, &models.Message{
			SenderID:    actor.ID,
			RecipientID: recipient.ID,
			Content:     sendMessageRequest.Content,
		})
		if err != nil {
			return nil, err
		}

		if recipient.ID != actor.ID {
			notification := fmt.Sprintf("%s sent you a message", actor.Username)
			if _, err := app.core.CreateNotification(txCtx, recipient.ID, notification); err != nil {
				return nil, err
			}
		}

		return message, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	monitoring.MessagesSent.Inc()

	response := envelope{
		"message": &MessageResponse{
			ID:        newMessage.ID,
			Sender:    actor.Username,
			Recipient: newMessage.RecipientID,
			Content:   newMessage.Content,
			CreatedAt: newMessage.CreatedAt,
			IsRead:    newMessage.IsRead,
		},
	}
	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
