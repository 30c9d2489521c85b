package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func (app *application) likePost(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	like, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Like, error) {
		newLike, err := app.core.CreateLike(txCtx, actor.ID, postID)
		if err != nil {
			return nil, err
		}

		post, err := app.core.GetPostByID(txCtx, postID)
		if err != nil {
			return nil, err
		}
		if post.AuthorID != actor.ID {
			message := fmt.Sprintf("%s liked your post", actor.Username)
			if _, err := app.core.CreateNotification(txCtx, post.AuthorID, message); err != nil {
				return nil, err
			}
		}

		return newLike, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, core.ErrAlreadyLiked):
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "You have already liked this post",
				ErrorStack:   err,
			})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	response := envelope{
		"like": envelope{
			"id":         like.ID,
			"user":       actor.Username,
			"post":       like.PostID,
			"created_at": like.CreatedAt,
		},
	}
	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unlikePost(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	if err := app.core.DeleteLike(r.Context(), actor.ID, postID); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Like removed"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
