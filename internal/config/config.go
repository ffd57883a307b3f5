// Package config provides configuration for the session driver.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	LogLevel     string
	LogPretty    bool
	UserName     string          // Display name of the seeded session user
	StartingCash decimal.Decimal // Coins the session user starts with
	StartingXP   int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	startingCash, err := decimal.NewFromString(getEnv("STARTING_CASH", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_CASH: %w", err)
	}

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", true),
		UserName:     getEnv("SESSION_USER_NAME", "Alex Morgan"),
		StartingCash: startingCash,
		StartingXP:   getEnvAsInt("STARTING_XP", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.StartingCash.IsNegative() {
		return fmt.Errorf("STARTING_CASH cannot be negative: %s", c.StartingCash)
	}

	if c.StartingXP < 0 {
		return fmt.Errorf("STARTING_XP cannot be negative: %d", c.StartingXP)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
