package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// ValidateEnv checks that all required environment variables are set
func ValidateEnv() error {
	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// Validate checks loaded values for consistency
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("DEBOUNCE_DELAY must be positive, got %s", c.DebounceDelay)
	}
	if c.DebounceMaxPending <= 0 {
		return fmt.Errorf("DEBOUNCE_MAX_PENDING must be positive, got %d", c.DebounceMaxPending)
	}
	if c.LeaderboardBatchSize <= 0 {
		return fmt.Errorf("LEADERBOARD_BATCH_SIZE must be positive, got %d", c.LeaderboardBatchSize)
	}
	if c.StalenessBound <= 0 {
		return fmt.Errorf("STALENESS_BOUND must be positive, got %s", c.StalenessBound)
	}
	return nil
}
