package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ADMIN_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, DefaultAllowedOrigins, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, 5*time.Second, cfg.MongoDB.ServerSelectionTimeout)
	assert.Equal(t, 10*time.Second, cfg.MongoDB.OperationTimeout)
	assert.True(t, cfg.Admin.GuardLegacyRoutes)
	assert.Equal(t, "Code Crafters Programming Club", cfg.Email.SenderName)
	assert.Equal(t, 15*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "7860")
	t.Setenv("MONGO_URI", "mongodb://db:27017/club")
	t.Setenv("ADMIN_TOKEN", " secret ")
	t.Setenv("ADMIN_EMAIL", "a@club.dev || b@club.dev")
	t.Setenv("ADMIN_PASSWORD", "pw1")
	t.Setenv("BREVO_API_KEY", "")
	t.Setenv("EMAIL_SERVICE_CREDENTIALS", "brevo-key")
	t.Setenv("EMAIL_FROM", "noreply@club.dev")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://extra.example.com")
	t.Setenv("EMAIL_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7860, cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017/club", cfg.MongoDB.URI)
	assert.Equal(t, "secret", cfg.Admin.Token)
	assert.Equal(t, []string{"a@club.dev", "b@club.dev"}, cfg.Admin.Emails)
	assert.Equal(t, []string{"pw1"}, cfg.Admin.Passwords)
	assert.Equal(t, "brevo-key", cfg.Email.APIKey)
	assert.Equal(t, "noreply@club.dev", cfg.Email.From)
	assert.Equal(t, 3*time.Second, cfg.Email.Timeout)
	assert.Contains(t, cfg.Server.AllowedOrigins, "https://extra.example.com")
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, port := range []string{"0", "65536", "abc", "-1"} {
		t.Run(port, func(t *testing.T) {
			t.Setenv("PORT", port)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("  ", AdminListSeparator))
	assert.Equal(t, []string{"a", "b"}, SplitList("a|| ||b", AdminListSeparator))
	assert.Equal(t, []string{"x"}, SplitList("x", ","))
}
