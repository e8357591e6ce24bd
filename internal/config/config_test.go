package config

import (
	"testing"

	"github.com/meallog/meal-logger-bot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "REDIS_HOST", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "meal_logger", cfg.DB.DBName)
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Empty(t, cfg.Redis.Host)
}

func TestLoadRequiresTokens(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("OPENAI_API_KEY", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, logger.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, logger.LevelInfo, parseLogLevel("bogus"))
}
