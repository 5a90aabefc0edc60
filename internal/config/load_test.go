package config_test

import (
	"testing"

	"github.com/hanlearn/hanlearn-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "config-test-secret-with-32-chars-min!"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HANLEARN_DATABASE_URL", "postgres://localhost:5432/hanlearn_test")
	t.Setenv("HANLEARN_AUTH_JWT_SECRET", testJWTSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HANLEARN_SERVER_PORT", "9090")
	t.Setenv("HANLEARN_SERVER_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/hanlearn_test", cfg.Database.URL)
	assert.Equal(t, testJWTSecret, cfg.Auth.JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./media", cfg.Server.MediaDir)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("HANLEARN_AUTH_JWT_SECRET", testJWTSecret)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadShortJWTSecret(t *testing.T) {
	t.Setenv("HANLEARN_DATABASE_URL", "postgres://localhost:5432/hanlearn_test")
	t.Setenv("HANLEARN_AUTH_JWT_SECRET", "short")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HANLEARN_SERVER_LOG_LEVEL", "verbose")

	_, err := config.Load()
	assert.Error(t, err)
}
