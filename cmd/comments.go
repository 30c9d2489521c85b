package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/utils/collectionutils"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/functional"
	"github.com/mingx/socialnet/internal/validator"
	"github.com/mingx/socialnet/models"
)

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (app *application) createComment(w http.ResponseWriter, r *http.Request) {
	type createCommentPayload struct {
		Content string `json:"content"`
	}

	type CreateCommentRequest struct {
		createCommentPayload `json:"comment"`
	}

	var createCommentRequest CreateCommentRequest

	if err := app.readJSON(w, r, &createCommentRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(createCommentRequest.Content, "content", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	postID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	newComment, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Comment, error) {
		post, err := app.core.GetPostByID(txCtx, postID)
		if err != nil {
			return nil, err
		}

		comment, err := app.core.CreateComment(txCtx, &models.Comment{
			PostID:   post.ID,
			AuthorID: actor.ID,
			Content:  createCommentRequest.Content,
		})
		if err != nil {
			return nil, err
		}

		if post.AuthorID != actor.ID {
			message := fmt.Sprintf("%s commented on your post", actor.Username)
			if _, err := app.core.CreateNotification(txCtx, post.AuthorID, message); err != nil {
				return nil, err
			}
		}

		return comment, nil
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

	response := envelope{
		"comment": &CommentResponse{
			ID:        newComment.ID,
			Author:    actor.Username,
			Content:   newComment.Content,
			CreatedAt: newComment.CreatedAt,
		},
	}
	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getComments(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if _, err := app.core.GetPostByID(r.Context(), postID); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	comments, err := app.core.GetCommentsByPostID(r.Context(), postID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	authorIdList := functional.Map(comments, func(c *models.Comment) int64 { return c.AuthorID })
	authors, err := app.core.GetUsersByIdList(r.Context(), authorIdList)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	usernameByUserId := collectionutils.Associate(authors, func(u *auth.User) (int64, string) {
		return u.ID, u.Username
	})

	commentList := make([]*CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentList = append(commentList, &CommentResponse{
			ID:        comment.ID,
			Author:    usernameByUserId[comment.AuthorID],
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comments": commentList}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	comment, err := app.core.GetCommentByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)
	if err := authorizeCommentMutation(actor, comment); err != nil {
		app.forbiddenResponse(w, r, "You can only delete your own comments")
		return
	}

	if err := app.core.DeleteComment(r.Context(), comment.ID); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Comment deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
