package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores conversion service runtime configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	Auth AuthConfig

	RateLimit RateLimitConfig
}

// AuthConfig controls API authentication behavior.
type AuthConfig struct {
	Enabled     bool
	BearerToken string
}

// RateLimitConfig controls global and per-IP limits.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads configuration from a .env file, if present, and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Auth: AuthConfig{
			Enabled:     getEnvBool("AUTH_ENABLED", false),
			BearerToken: getEnv("AUTH_BEARER_TOKEN", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 100),
			Burst: getEnvInt("RATE_LIMIT_BURST", 200),
		},
	}

	if cfg.Auth.Enabled && cfg.Auth.BearerToken == "" {
		return nil, fmt.Errorf("AUTH_ENABLED=true requires AUTH_BEARER_TOKEN")
	}

	if cfg.RateLimit.RPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
