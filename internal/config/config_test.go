package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: postgres://localhost/socialnet
jwt:
  secret: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9091", cfg.Addr())
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout.Std())
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL.Std())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 8080
database:
  dsn: postgres://localhost/socialnet
  max_idle_conns: 5
jwt:
  secret: test-secret
  token_ttl: 1h
log:
  level: debug
metrics:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL.Std())
	assert.False(t, cfg.Metrics.Enabled)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: test-secret
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "database.dsn")
}

func TestLoadRejectsMissingJWTSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: postgres://localhost/socialnet
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: postgres://localhost/socialnet
  query_timeout: soon
jwt:
  secret: test-secret
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: postgres://localhost/socialnet
jwt:
  secret: test-secret
log:
  level: verbose
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown log level")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
