package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken string
	AdminChatID   int64 // Recipient of relayed reports; 0 when not configured
	DBPath        string
	DatabaseURL   string // When set, PostgreSQL is used instead of the SQLite file
	ExportDir     string
	PollTimeout   int // seconds
	LogLevel      string
	Environment   string
}

// HasRecipient reports whether a recipient chat is configured.
func (c *AppConfig) HasRecipient() bool {
	return c.AdminChatID != 0
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		cfg.TelegramToken = os.Getenv("BOT_TOKEN")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	// A missing recipient is not fatal: relays answer with a hint instead.
	if adminIDStr := strings.TrimSpace(os.Getenv("ADMIN_CHAT_ID")); adminIDStr != "" {
		cfg.AdminChatID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
	}

	cfg.DBPath = os.Getenv("DB_PATH")
	if cfg.DBPath == "" {
		cfg.DBPath = "reports.db"
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.ExportDir = os.Getenv("EXPORT_DIR")
	if cfg.ExportDir == "" {
		cfg.ExportDir = "exports"
	}

	cfg.PollTimeout = 10
	if v := os.Getenv("POLL_TIMEOUT_SECONDS"); v != "" {
		cfg.PollTimeout, err = strconv.Atoi(v)
		if err != nil || cfg.PollTimeout <= 0 {
			return nil, fmt.Errorf("invalid POLL_TIMEOUT_SECONDS: %q", v)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}
