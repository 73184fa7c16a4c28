package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultPollInterval = 20 * time.Second

type Config struct {
	AppEnv          string
	Port            string
	OuraAccessToken string
	OuraAPIBaseURL  string
	PollInterval    time.Duration
	LogLevel        string
	LogFormat       string
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		OuraAccessToken: getEnv("OURA_ACCESS_TOKEN", ""),
		OuraAPIBaseURL:  getEnv("OURA_API_BASE_URL", "https://api.ouraring.com"),
		PollInterval:    defaultPollInterval,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	if cfg.OuraAccessToken == "" {
		return nil, fmt.Errorf("OURA_ACCESS_TOKEN is required")
	}

	if raw := os.Getenv("POLL_INTERVAL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be an integer: %w", err)
		}
		if seconds <= 0 {
			return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be positive, got %d", seconds)
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

// WebhookVerificationToken returns the secret inbound webhook verifications
// are checked against. This is the same bearer token used against the Oura
// API; a dedicated secret would need its own environment variable.
func (c *Config) WebhookVerificationToken() string {
	return c.OuraAccessToken
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
