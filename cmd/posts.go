package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/filter"
	"github.com/mingx/socialnet/internal/monitoring"
	"github.com/mingx/socialnet/internal/utils/collectionutils"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/functional"
	"github.com/mingx/socialnet/internal/validator"
	"github.com/mingx/socialnet/models"
)

const defaultPageSize = 20

// PostResponse is the wire shape of a post: author carried as username.
type PostResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Media     *string   `json:"media"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int64     `json:"like_count"`
}

func (app *application) createPost(w http.ResponseWriter, r *http.Request) {
	type createPostPayload struct {
		Content string  `json:"content"`
		Media   *string `json:"media"`
	}

	type CreatePostRequest struct {
		createPostPayload `json:"post"`
	}

	var createPostRequest CreatePostRequest

	if err := app.readJSON(w, r, &createPostRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(createPostRequest.Content, "content", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	// The post and its hashtag links are created in one transaction.
	newPost, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Post, error) {
		post, err := app.core.CreatePost(txCtx, &models.Post{
			AuthorID: actor.ID,
			Content:  createPostRequest.Content,
			Media:    createPostRequest.Media,
		})
		if err != nil {
			return nil, err
		}

		tagNames := core.ExtractHashtags(post.Content)
		tags, err := app.core.UpsertHashtags(txCtx, tagNames)
		if err != nil {
			return nil, err
		}

		if err := app.core.ReplacePostHashtags(txCtx, post.ID, tags); err != nil {
			return nil, err
		}

		return post, nil
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	monitoring.PostsCreated.Inc()

	response := postResponse(newPost, actor.Username, 0)
	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getPosts(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	page := app.readInt(query, "page", 1, v)
	f := filter.NewFilter(page, defaultPageSize)
	filter.ValidateFilters(f, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	posts, metadata, err := app.core.GetPosts(r.Context(), f)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response, err := app.preparePostListResponse(r.Context(), posts, metadata)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.core.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	author, err := app.core.GetUserByID(r.Context(), post.AuthorID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	likeCounts, err := app.core.LikeCountByPostId(r.Context(), []int64{post.ID})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response := postResponse(post, author.Username, likeCounts[post.ID])
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updatePost(w http.ResponseWriter, r *http.Request) {
	type updatePostPayload struct {
		Content *string `json:"content"`
		Media   *string `json:"media"`
	}

	type UpdatePostRequest struct {
		updatePostPayload `json:"post"`
	}

	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.core.GetPostByID(r.Context(), id)
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
	if err := authorizePostMutation(actor, post); err != nil {
		app.forbiddenResponse(w, r, "You can only update your own posts")
		return
	}

	var updatePostRequest UpdatePostRequest
	if err := app.readJSON(w, r, &updatePostRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	if updatePostRequest.Content != nil {
		post.Content = *updatePostRequest.Content
		v.CheckNotBlank(post.Content, "content", "must be provided")
	}
	if updatePostRequest.Media != nil {
		post.Media = updatePostRequest.Media
	}

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	// Replace the hashtag links so edits that add or drop a #tag stay
	// consistent: dropped tags no longer surface the post.
	updatedPost, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Post, error) {
		updated, err := app.core.UpdatePost(txCtx, post)
		if err != nil {
			return nil, err
		}

		tags, err := app.core.UpsertHashtags(txCtx, core.ExtractHashtags(updated.Content))
		if err != nil {
			return nil, err
		}
		if err := app.core.ReplacePostHashtags(txCtx, updated.ID, tags); err != nil {
			return nil, err
		}

		return updated, nil
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	likeCounts, err := app.core.LikeCountByPostId(r.Context(), []int64{updatedPost.ID})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response := postResponse(updatedPost, actor.Username, likeCounts[updatedPost.ID])
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.core.GetPostByID(r.Context(), id)
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
	if err := authorizePostMutation(actor, post); err != nil {
		app.forbiddenResponse(w, r, "You can only delete your own posts")
		return
	}

	err = app.session.DoTransactionally(r.Context(), func(txCtx context.Context) error {
		return app.core.DeletePost(txCtx, post.ID)
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Post deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func postResponse(post *models.Post, authorUsername string, likeCount int64) envelope {
	return envelope{
		"post": &PostResponse{
			ID:        post.ID,
			Author:    authorUsername,
			Content:   post.Content,
			Media:     post.Media,
			CreatedAt: post.CreatedAt,
			LikeCount: likeCount,
		},
	}
}

// preparePostListResponse shapes a page of posts, resolving author usernames
// and like counts in two batched queries instead of one pair per post.
func (app *application) preparePostListResponse(ctx context.Context, posts []*models.Post, metadata filter.Metadata) (envelope, error) {
	postIdList := functional.Map(posts, func(p *models.Post) int64 { return p.ID })
	authorIdList := functional.Map(posts, func(p *models.Post) int64 { return p.AuthorID })

	likeCountByPostId, err := app.core.LikeCountByPostId(ctx, postIdList)
	if err != nil {
		return nil, err
	}

	authors, err := app.core.GetUsersByIdList(ctx, authorIdList)
	if err != nil {
		return nil, err
	}

	usernameByUserId := collectionutils.Associate(authors, func(u *auth.User) (int64, string) {
		return u.ID, u.Username
	})

	postList := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		postList = append(postList, &PostResponse{
			ID:        post.ID,
			Author:    usernameByUserId[post.AuthorID],
			Content:   post.Content,
			Media:     post.Media,
			CreatedAt: post.CreatedAt,
			LikeCount: collectionutils.GetOrDefault(likeCountByPostId, post.ID, 0),
		})
	}

	return envelope{
		"posts":      postList,
		"pagination": metadata,
	}, nil
}
