package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/config"
	"github.com/stretchr/testify/require"
)

// newTestApplication builds an application wired with a throwaway logger
// and no database. Tests using it may only exercise paths that fail
// before the data layer is reached.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 9091},
		JWT: config.JWTConfig{
			Secret:   "test-secret",
			TokenTTL: config.Duration(time.Hour),
		},
		Log:     config.LogConfig{Level: "error"},
		Metrics: config.MetricsConfig{Enabled: false},
	}

	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		auth:   auth.New(cfg.JWT.Secret, cfg.JWT.TokenTTL.Std()),
	}
}

// decodeErrorBody unpacks the standard error envelope.
func decodeErrorBody(t *testing.T, body io.Reader) (string, map[string]string) {
	t.Helper()

	var payload struct {
		ErrorMessage string            `json:"errorMessage"`
		ErrorDetails map[string]string `json:"errorDetails"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))

	return payload.ErrorMessage, payload.ErrorDetails
}

func assertStatus(t *testing.T, res *http.Response, want int) {
	t.Helper()
	require.Equal(t, want, res.StatusCode)
}
