package config

import (
	"errors"
	"os"
	"strconv"
)

// Config is the explicit startup configuration. It is loaded once in main
// and passed to component constructors; nothing reads the environment
// after startup.
type Config struct {
	ListenAddr  string
	DatabaseDSN string
	JWTSecret   string
	// RedisAddr enables the progress event publisher when non-empty.
	RedisAddr string
	PageSize  int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		ListenAddr:  ":" + getEnvOrDefault("PORT", "8080"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", "dev"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		PageSize:    100,
	}
	if raw := os.Getenv("PAGE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return nil, errors.New("PAGE_SIZE must be a positive integer: " + raw)
		}
		config.PageSize = size
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
