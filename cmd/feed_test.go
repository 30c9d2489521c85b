package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Query validation failures are rejected before the feed query runs, so
// these exercise the handler directly without a database.
func TestGetFeedQueryValidation(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{
			name:      "malformed start date",
			query:     "start_date=january&end_date=2026-01-31",
			wantField: "start_date",
		},
		{
			name:      "malformed end date",
			query:     "start_date=2026-01-01&end_date=soon",
			wantField: "end_date",
		},
		{
			name:      "end date before start date",
			query:     "start_date=2026-02-01&end_date=2026-01-01",
			wantField: "end_date",
		},
		{
			name:      "zero page",
			query:     "page=0",
			wantField: "page",
		},
		{
			name:      "non-numeric page",
			query:     "page=two",
			wantField: "page",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/feed?"+tc.query, nil)
			w := httptest.NewRecorder()

			app.getFeed(w, r)

			res := w.Result()
			defer res.Body.Close()

			assertStatus(t, res, http.StatusBadRequest)

			_, details := decodeErrorBody(t, res.Body)
			assert.Contains(t, details, tc.wantField)
		})
	}
}

func TestGetTrendingPageValidation(t *testing.T) {
	app := newTestApplication(t)

	r := httptest.NewRequest(http.MethodGet, "/api/trending?page=-3", nil)
	w := httptest.NewRecorder()

	app.getTrending(w, r)

	res := w.Result()
	defer res.Body.Close()

	assertStatus(t, res, http.StatusBadRequest)

	_, details := decodeErrorBody(t, res.Body)
	assert.Contains(t, details, "page")
}
