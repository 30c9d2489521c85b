package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/filter"
	"github.com/mingx/socialnet/internal/utils/functional"
	"github.com/mingx/socialnet/models"
)

func (app *application) getHashtags(w http.ResponseWriter, r *http.Request) {
	tags, err := app.core.ListHashtags(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	names := functional.Map(tags, func(t *models.Hashtag) string { return t.Name })
	if err := app.writeJSON(w, http.StatusOK, envelope{"hashtags": names}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getHashtag(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	name := params.ByName("name")

	tag, err := app.core.GetHashtagByName(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	posts, err := app.core.GetPostsByHashtag(r.Context(), tag.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	postsEnvelope, err := app.preparePostListResponse(r.Context(), posts, filter.Metadata{})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"hashtag": envelope{
			"name":  tag.Name,
			"posts": postsEnvelope["posts"],
		},
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
