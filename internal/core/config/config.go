package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	DatabaseURL    string
	CatalogPath    string
	InitialBalance int64
	WebhookURL     string
	WebhookSecret  string
	AdminToken     string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig reads .env file and returns a Config struct
func LoadConfig() *Config {
	// Try loading .env file (it might not exist in Production, which is fine)
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on System Env Variables")
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getLevel("LOG_LEVEL", slog.LevelInfo),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		InitialBalance: getInt64("WALLET_INITIAL_BALANCE", 0),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: int(getInt64("RATE_LIMIT_BURST", 20)),
	}
}

// Helper to get env with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		slog.Warn("Ignoring invalid number in env", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		slog.Warn("Ignoring invalid number in env", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getLevel(key string, fallback slog.Level) slog.Level {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		slog.Warn("Ignoring invalid log level", "key", key, "value", raw)
		return fallback
	}
	return lvl
}
