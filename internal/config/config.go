// Package config loads server and auth settings from the environment.
// Database settings live in the database package.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"gramkosh/internal/logger"
)

// Config holds application configuration.
type Config struct {
	Port             string
	JWTSecret        string
	JWTExpirationDur time.Duration
}

var appConfig *Config

// Load reads configuration from environment variables, loading .env first
// when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, using environment variables")
	}

	config := &Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "30m")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		logger.Get().Warnf("invalid JWT_EXPIRES_IN value %q, falling back to 30m", expStr)
		expDur = 30 * time.Minute
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		appConfig, _ = Load()
	}
	return appConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
