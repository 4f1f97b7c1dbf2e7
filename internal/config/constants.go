package config

import "time"

// Default configuration values
const (
	DefaultPort           = 8080
	DefaultEnvironment    = "dev"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultLogDir         = "logs"
	DefaultDBName         = "transitstats"
	DefaultDeadLetterPath = "data/deadletter.jsonl"
)

// Background engine defaults
const (
	DefaultDebounceDelay        = 30 * time.Second
	DefaultDebounceMaxPending   = 10000
	DefaultLeaderboardInterval  = 15 * time.Minute
	DefaultSweepInterval        = 1 * time.Hour
	DefaultStalenessBound       = 24 * time.Hour
	DefaultLeaderboardBatchSize = 500
	DefaultBatchPacingDelay     = 100 * time.Millisecond
)
