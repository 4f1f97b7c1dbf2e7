package stats

// TopLinesLimit caps every detail ranking
const TopLinesLimit = 5

// Error message constants
const (
	ErrMsgUserIDRequired       = "user id is required"
	ErrMsgGetRidesFailed       = "failed to get rides: %w"
	ErrMsgSaveSnapshotFailed   = "failed to save stats snapshot: %w"
	ErrMsgSaveMetricsFailed    = "failed to save user metrics: %w"
	ErrMsgGetSummaryFailed     = "failed to get stats summary: %w"
	ErrMsgGetDetailFailed      = "failed to get detail stats: %w"
	ErrMsgApplyDeltaFailed     = "failed to apply stats delta: %w"
	ErrMsgInitSummaryFailed    = "failed to initialize stats summary: %w"
	ErrMsgGetStaleUsersFailed  = "failed to list stale users: %w"
)

// Log message constants
const (
	LogMsgAggregationPanic       = "Stats aggregation failed, substituting zeroed summary"
	LogMsgDetailAggregationPanic = "Detail aggregation failed, substituting empty result"
	LogMsgRecomputeStarting      = "Authoritative recompute starting"
	LogMsgRecomputeCompleted     = "Authoritative recompute completed"
	LogMsgRecomputeFailed        = "Authoritative recompute failed"
	LogMsgDeltaApplied           = "Incremental stats delta applied"
	LogMsgDeltaInitialized       = "Stats summary initialized from single ride"
	LogMsgDeltaSkipped           = "Incremental update skipped for user"
	LogMsgMetricSyncFailed       = "Metric projection sync failed"
	LogMsgSweepStarting          = "Accuracy sweep starting"
	LogMsgSweepCompleted         = "Accuracy sweep completed"
	LogMsgSweepUserFailed        = "Accuracy sweep recompute failed for user"
)
