package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserMalformedJSON(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	bodies := []struct {
		name string
		body string
	}{
		{"truncated", `{"user": {"username": "alice"`},
		{"not json", `hello`},
		{"empty body", ``},
		{"unknown field", `{"user": {"username": "alice"}, "extra": true}`},
		{"array instead of object", `[1, 2, 3]`},
		{"two json values", `{}{}`},
	}

	for _, tc := range bodies {
		t.Run(tc.name, func(t *testing.T) {
			res, err := srv.Client().Post(srv.URL+"/api/users", "application/json", strings.NewReader(tc.body))
			assert.NoError(t, err)
			defer res.Body.Close()

			assertStatus(t, res, http.StatusBadRequest)
		})
	}
}

func TestRegisterUserValidation(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "missing email",
			body:      `{"user": {"username": "alice", "password": "password123"}}`,
			wantField: "email",
		},
		{
			name:      "invalid email",
			body:      `{"user": {"email": "not-an-email", "username": "alice", "password": "password123"}}`,
			wantField: "email",
		},
		{
			name:      "short username",
			body:      `{"user": {"email": "alice@example.com", "username": "al", "password": "password123"}}`,
			wantField: "username",
		},
		{
			name:      "short password",
			body:      `{"user": {"email": "alice@example.com", "username": "alice", "password": "short"}}`,
			wantField: "password",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := srv.Client().Post(srv.URL+"/api/users", "application/json", strings.NewReader(tc.body))
			assert.NoError(t, err)
			defer res.Body.Close()

			assertStatus(t, res, http.StatusBadRequest)

			_, details := decodeErrorBody(t, res.Body)
			assert.Contains(t, details, tc.wantField)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "missing password",
			body:      `{"user": {"email": "alice@example.com"}}`,
			wantField: "password",
		},
		{
			name:      "invalid email",
			body:      `{"user": {"email": "nope", "password": "password123"}}`,
			wantField: "email",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := srv.Client().Post(srv.URL+"/api/users/login", "application/json", strings.NewReader(tc.body))
			assert.NoError(t, err)
			defer res.Body.Close()

			assertStatus(t, res, http.StatusBadRequest)

			_, details := decodeErrorBody(t, res.Body)
			assert.Contains(t, details, tc.wantField)
		})
	}
}
