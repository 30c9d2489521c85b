package main

import (
	"testing"

	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizePostMutation(t *testing.T) {
	post := &models.Post{ID: 10, AuthorID: 1}

	assert.NoError(t, authorizePostMutation(&auth.User{ID: 1}, post))
	assert.ErrorIs(t, authorizePostMutation(&auth.User{ID: 2}, post), core.ErrForbidden)
}

func TestAuthorizeUserMutation(t *testing.T) {
	target := &auth.User{ID: 1, Username: "alice"}

	assert.NoError(t, authorizeUserMutation(&auth.User{ID: 1}, target))
	assert.ErrorIs(t, authorizeUserMutation(&auth.User{ID: 2}, target), core.ErrForbidden)
}

func TestAuthorizeCommentMutation(t *testing.T) {
	comment := &models.Comment{ID: 3, AuthorID: 1}

	assert.NoError(t, authorizeCommentMutation(&auth.User{ID: 1}, comment))
	assert.ErrorIs(t, authorizeCommentMutation(&auth.User{ID: 2}, comment), core.ErrForbidden)
}
