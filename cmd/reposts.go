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

func (app *application) repostPost(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	repost, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Repost, error) {
		newRepost, err := app.core.CreateRepost(txCtx, actor.ID, postID)
		if err != nil {
			return nil, err
		}

		post, err := app.core.GetPostByID(txCtx, postID)
		if err != nil {
			return nil, err
		}
		if post.AuthorID != actor.ID {
			message := fmt.Sprintf("%s reposted your post", actor.Username)
			if _, err := app.core.CreateNotification(txCtx, post.AuthorID, message); err != nil {
				return nil, err
			}
		}

		return newRepost, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, core.ErrAlreadyReposted):
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "You have already reposted this post",
				ErrorStack:   err,
			})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	response := envelope{
		"repost": envelope{
			"id":            repost.ID,
			"user":          actor.Username,
			"original_post": repost.OriginalPostID,
			"created_at":    repost.CreatedAt,
		},
	}
	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unrepostPost(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	if err := app.core.DeleteRepost(r.Context(), actor.ID, postID); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Repost removed"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
