package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the full runtime configuration, sourced from the environment
// with an optional .env file for development.
type Config struct {
	Port        string
	Environment string

	DatabaseURL string
	RedisURL    string

	JWTSecret string

	LogLevel slog.Level

	// MaxOpenConns bounds the database connection pool.
	MaxOpenConns int
}

// LoadConfig reads configuration from the environment. A missing .env file
// is not an error; a missing database DSN is.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Environment == "production" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
