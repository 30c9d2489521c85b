package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/monitoring"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/functional"
	"github.com/mingx/socialnet/internal/validator"
	"github.com/mingx/socialnet/models"
)

// FollowResponse carries both sides of the relationship as usernames.
type FollowResponse struct {
	ID        int64     `json:"id"`
	Follower  string    `json:"follower"`
	Following string    `json:"following"`
	CreatedAt time.Time `json:"created_at"`
}

func (app *application) followUser(w http.ResponseWriter, r *http.Request) {
	type followPayload struct {
		Following string `json:"following"`
	}

	var followRequest followPayload

	if err := app.readJSON(w, r, &followRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(followRequest.Following, "following", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	type followResult struct {
		follow  *models.Follow
		created bool
	}

	result, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (followResult, error) {
		follow, created, err := app.core.CreateFollow(txCtx, actor, followRequest.Following)
		if err != nil {
			return followResult{}, err
		}

		if created {
			message := fmt.Sprintf("%s started following you", actor.Username)
			if _, err := app.core.CreateNotification(txCtx, follow.FollowingID, message); err != nil {
				return followResult{}, err
			}
		}

		return followResult{follow: follow, created: created}, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, core.ErrSelfFollow):
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "You cannot follow yourself",
				ErrorStack:   err,
			})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	// Re-following is reported, not rejected. This is deliberately different
	// from the duplicate-like path, which returns an error.
	if !result.created {
		if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Already following this user"}, nil); err != nil {
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	monitoring.FollowsCreated.Inc()

	response := envelope{
		"follow": &FollowResponse{
			ID:        result.follow.ID,
			Follower:  actor.Username,
			Following: followRequest.Following,
			CreatedAt: result.follow.CreatedAt,
		},
	}
	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unfollowUser(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	followeeUsername := params.ByName("username")

	actor, _ := app.auth.GetAuthenticatedUser(r)

	// Unfollowing someone you do not follow is a no-op, not an error.
	if err := app.core.DeleteFollow(r.Context(), actor, followeeUsername); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Unfollowed the user"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getFollowers(w http.ResponseWriter, r *http.Request) {
	actor, _ := app.auth.GetAuthenticatedUser(r)

	followers, err := app.core.GetFollowersUserList(r.Context(), actor.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	usernames := functional.Map(followers, func(u *auth.User) string { return u.Username })
	if err := app.writeJSON(w, http.StatusOK, envelope{"followers": usernames}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getFollowing(w http.ResponseWriter, r *http.Request) {
	actor, _ := app.auth.GetAuthenticatedUser(r)

	following, err := app.core.GetFollowingUserList(r.Context(), actor.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	usernames := functional.Map(following, func(u *auth.User) string { return u.Username })
	if err := app.writeJSON(w, http.StatusOK, envelope{"following": usernames}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
