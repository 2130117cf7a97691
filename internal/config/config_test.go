package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingSigningKey(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "project-tracker", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())

	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, "/resources", cfg.Auth.APIPrefix)
	assert.Equal(t, "/login", cfg.Auth.LoginPath)
	assert.Contains(t, cfg.Auth.PublicPathPrefixes, "/login")
	assert.Contains(t, cfg.Auth.PublicPathPrefixes, "/health")
	assert.Equal(t, 12, cfg.Auth.BcryptCost)

	assert.Equal(t, time.Hour, cfg.Cleanup.Interval())
	assert.Equal(t, 90*24*time.Hour, cfg.Cleanup.Retention())
	assert.Equal(t, 50, cfg.Import.ChunkSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_API_PREFIX", "/api")
	t.Setenv("AUTH_PUBLIC_PATH_PREFIXES", "/signin, /public ,")
	t.Setenv("CLEANUP_RETENTION_DAYS", "7")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, "/api", cfg.Auth.APIPrefix)
	assert.Equal(t, []string{"/signin", "/public"}, cfg.Auth.PublicPathPrefixes)
	assert.Equal(t, 7*24*time.Hour, cfg.Cleanup.Retention())
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
}
