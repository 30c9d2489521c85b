package main

import (
	"net/http"
	"time"

	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/filter"
	"github.com/mingx/socialnet/internal/validator"
)

const dateLayout = "2006-01-02"

// getFeed serves the personalized feed: posts from followed authors with
// optional keyword and date-range filters, sorted by date or popularity.
func (app *application) getFeed(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	feedFilter := core.FeedFilter{
		Keyword: app.readString(query, "keyword", ""),
		SortBy:  app.readString(query, "sort_by", core.SortByDate),
	}

	// The date range applies only when both ends are present.
	startDateQ := app.readString(query, "start_date", "")
	endDateQ := app.readString(query, "end_date", "")
	if startDateQ != "" && endDateQ != "" {
		startDate, err := time.Parse(dateLayout, startDateQ)
		if err != nil {
			v.AddError("start_date", "must be a date in YYYY-MM-DD format")
		}
		endDate, err := time.Parse(dateLayout, endDateQ)
		if err != nil {
			v.AddError("end_date", "must be a date in YYYY-MM-DD format")
		}

		if v.IsValid() {
			// End of day, so the range is inclusive of the end date.
			endDate = endDate.Add(24*time.Hour - time.Nanosecond)
			feedFilter.StartDate = &startDate
			feedFilter.EndDate = &endDate
			v.Check(!endDate.Before(startDate), "end_date", "must not be before start_date")
		}
	}

	page := app.readInt(query, "page", 1, v)
	f := filter.NewFilter(page, defaultPageSize)
	filter.ValidateFilters(f, v)

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)

	posts, metadata, err := app.core.ListFeed(r.Context(), actor.ID, feedFilter, f)
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

// getTrending serves all posts by like count. There is no time window, so
// long-lived posts dominate; kept that way on purpose.
func (app *application) getTrending(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	page := app.readInt(query, "page", 1, v)
	f := filter.NewFilter(page, defaultPageSize)
	filter.ValidateFilters(f, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	posts, metadata, err := app.core.GetTrendingPosts(r.Context(), f)
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
