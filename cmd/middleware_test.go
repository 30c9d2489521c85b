package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/feed"},
		{http.MethodGet, "/api/trending"},
		{http.MethodPost, "/api/posts"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/messages"},
		{http.MethodGet, "/api/hashtags"},
		{http.MethodGet, "/api/follows/followers"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req, err := http.NewRequest(route.method, srv.URL+route.path, nil)
			assert.NoError(t, err)

			res, err := srv.Client().Do(req)
			assert.NoError(t, err)
			defer res.Body.Close()

			assertStatus(t, res, http.StatusUnauthorized)

			message, _ := decodeErrorBody(t, res.Body)
			assert.Equal(t, "You must be authenticated to access this resource.", message)
		})
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	headers := []string{
		"Bearer some-token",
		"Token",
		"Token a b",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/feed", nil)
			assert.NoError(t, err)
			req.Header.Set("Authorization", header)

			res, err := srv.Client().Do(req)
			assert.NoError(t, err)
			defer res.Body.Close()

			assertStatus(t, res, http.StatusUnauthorized)
			assert.Equal(t, "Token", res.Header.Get("WWW-Authenticate"))

			message, _ := decodeErrorBody(t, res.Body)
			assert.Equal(t, "Invalid or missing authentication token.", message)
		})
	}
}

func TestGarbageToken(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/feed", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Token not.a.jwt")

	res, err := srv.Client().Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()

	assertStatus(t, res, http.StatusUnauthorized)
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/api/nope")
	assert.NoError(t, err)
	defer res.Body.Close()

	assertStatus(t, res, http.StatusNotFound)

	message, _ := decodeErrorBody(t, res.Body)
	assert.Equal(t, "The requested resource could not be found.", message)
}
