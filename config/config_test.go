package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/secrets/firebase.json")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when optional vars are unset", func(t *testing.T) {
		setRequiredEnv(t)
		for _, key := range []string{"PORT", "APP_ENV", "EMAIL_SERVER_PORT", "CORS_ALLOWED_ORIGINS"} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "development", cfg.App.Environment)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("missing stripe secret fails validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STRIPE_SECRET_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("origins parse from a comma-separated list", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.com, https://admin.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"https://portal.example.com", "https://admin.example.com"},
			cfg.CORS.AllowedOrigins,
		)
	})
}
