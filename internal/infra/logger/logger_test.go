package logger

import (
	"testing"

	"report_relay_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLevelAndFormatter(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "debug", Environment: "production"})
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	Init(&config.AppConfig{LogLevel: "nonsense", Environment: "development"})
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}

func TestComponent(t *testing.T) {
	entry := Component("relay")
	assert.Equal(t, "relay", entry.Data["component"])
}
