package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	Environment    string
	LogLevel       string
	LogFormat      string
	LogDir         string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	APIKey         string   // API key for authentication
	TrustedProxies []string // proxies whose X-Forwarded-For is believed
	DeadLetterPath string   // file for events that exhausted publish retries

	// Background engine tuning
	DebounceDelay        time.Duration // quiet period before an authoritative recompute
	DebounceMaxPending   int           // pending timer cap before a defensive flush
	LeaderboardInterval  time.Duration // cadence of the leaderboard ranker
	SweepInterval        time.Duration // cadence of the accuracy sweep
	StalenessBound       time.Duration // summaries older than this get swept
	LeaderboardBatchSize int           // max writes per persistence batch
	BatchPacingDelay     time.Duration // pause between persistence batches
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:         getEnv("LOG_DIR", DefaultLogDir),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", DefaultDBName),
		APIKey:         getEnv("API_KEY", ""),
		DeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.DebounceDelay, err = getEnvDuration("DEBOUNCE_DELAY", DefaultDebounceDelay); err != nil {
		return nil, err
	}
	if cfg.DebounceMaxPending, err = getEnvInt("DEBOUNCE_MAX_PENDING", DefaultDebounceMaxPending); err != nil {
		return nil, err
	}
	if cfg.LeaderboardInterval, err = getEnvDuration("LEADERBOARD_INTERVAL", DefaultLeaderboardInterval); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getEnvDuration("SWEEP_INTERVAL", DefaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.StalenessBound, err = getEnvDuration("STALENESS_BOUND", DefaultStalenessBound); err != nil {
		return nil, err
	}
	if cfg.LeaderboardBatchSize, err = getEnvInt("LEADERBOARD_BATCH_SIZE", DefaultLeaderboardBatchSize); err != nil {
		return nil, err
	}
	if cfg.BatchPacingDelay, err = getEnvDuration("BATCH_PACING_DELAY", DefaultBatchPacingDelay); err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
