package main

import (
	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/models"
)

// Ownership checks applied before every mutating operation, so a mismatch
// never reaches the store.

func authorizePostMutation(actor *auth.User, post *models.Post) error {
	if post.AuthorID != actor.ID {
		return xerrors.New(core.ErrForbidden)
	}
	return nil
}

func authorizeUserMutation(actor *auth.User, target *auth.User) error {
	if target.ID != actor.ID {
		return xerrors.New(core.ErrForbidden)
	}
	return nil
}

func authorizeCommentMutation(actor *auth.User, comment *models.Comment) error {
	if comment.AuthorID != actor.ID {
		return xerrors.New(core.ErrForbidden)
	}
	return nil
}
