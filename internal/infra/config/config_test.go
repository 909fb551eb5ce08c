package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "BOT_TOKEN", "ADMIN_CHAT_ID", "DB_PATH", "DATABASE_URL",
		"EXPORT_DIR", "POLL_TIMEOUT_SECONDS", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.False(t, cfg.HasRecipient())
	assert.Equal(t, "reports.db", cfg.DBPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Equal(t, 10, cfg.PollTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadBotTokenFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.TelegramToken)
}

func TestLoadMissingToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestLoadRecipient(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_TOKEN", "token")
		t.Setenv("ADMIN_CHAT_ID", "-100123")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.HasRecipient())
		assert.Equal(t, int64(-100123), cfg.AdminChatID)
	})

	t.Run("invalid id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_TOKEN", "token")
		t.Setenv("ADMIN_CHAT_ID", "abc")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_CHAT_ID")
	})
}

func TestLoadNormalization(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("POLL_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 30, cfg.PollTimeout)
}

func TestLoadInvalidPollTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("POLL_TIMEOUT_SECONDS", "0")

	_, err := Load()
	assert.Error(t, err)
}
