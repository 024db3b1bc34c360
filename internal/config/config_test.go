package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://localhost:5000")
	t.Setenv("GO_ENV", "development")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Zero(t, cfg.Backend.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Viewer.CacheTTL)
	assert.Equal(t, "session.transitions", cfg.Events.TransitionTopic)
	assert.False(t, cfg.Tracing.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://pdf-chatbot-backend.example.com")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "45")
	t.Setenv("PDF_CACHE_TTL_MINUTES", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Viewer.CacheTTL)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "not a url")
	t.Setenv("GO_ENV", "development")

	err := Load().Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}
