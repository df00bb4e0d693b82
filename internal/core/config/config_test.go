package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "") // restores the original value on cleanup
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "LOG_LEVEL", "DATABASE_URL", "CATALOG_PATH",
		"WALLET_INITIAL_BALANCE", "WEBHOOK_URL", "WEBHOOK_SECRET", "ADMIN_TOKEN", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.CatalogPath)
	assert.Zero(t, cfg.InitialBalance)
	assert.Empty(t, cfg.AdminToken)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WALLET_INITIAL_BALANCE", "100")
	t.Setenv("CATALOG_PATH", "/etc/envosafe/plants.yaml")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, int64(100), cfg.InitialBalance)
	assert.Equal(t, "/etc/envosafe/plants.yaml", cfg.CatalogPath)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoadConfigBadNumbersFallBack(t *testing.T) {
	t.Setenv("WALLET_INITIAL_BALANCE", "lots")
	t.Setenv("RATE_LIMIT_RPS", "-1")
	t.Setenv("RATE_LIMIT_BURST", "x")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := LoadConfig()

	assert.Zero(t, cfg.InitialBalance)
	assert.Empty(t, cfg.AdminToken)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
