package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameRidesStarted           = "rides_started_total"
	MetricNameRidesCompleted         = "rides_completed_total"
	MetricNameRidesDiscarded         = "rides_discarded_total"
	MetricNameRidesSuspectedFalse    = "rides_suspected_false_total"
	MetricNameStatsRecomputes        = "stats_recomputes_total"
	MetricNameStatsRecomputeDuration = "stats_recompute_duration_seconds"
	MetricNameStatsDeltasApplied     = "stats_deltas_applied_total"
	MetricNameDebounceScheduled      = "debounce_scheduled_total"
	MetricNameDebounceCoalesced      = "debounce_coalesced_total"
	MetricNameDebounceFlushes        = "debounce_flushes_total"
	MetricNameDebouncePending        = "debounce_pending_timers"
	MetricNameAchievementsUnlocked   = "achievements_unlocked_total"
	MetricNameLeaderboardRuns        = "leaderboard_runs_total"
	MetricNameLeaderboardDuration    = "leaderboard_run_duration_seconds"
	MetricNameSweepRecomputes        = "sweep_recomputes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextRidesStarted           = "Total number of live rides started"
	HelpTextRidesCompleted         = "Total number of rides completed"
	HelpTextRidesDiscarded         = "Total number of rides discarded"
	HelpTextRidesSuspectedFalse    = "Total number of ride updates flagged as suspected false rides"
	HelpTextStatsRecomputes        = "Total number of authoritative stats recomputes"
	HelpTextStatsRecomputeDuration = "Authoritative recompute latency in seconds"
	HelpTextStatsDeltasApplied     = "Total number of incremental stats deltas applied"
	HelpTextDebounceScheduled      = "Total number of debounce schedule calls"
	HelpTextDebounceCoalesced      = "Total number of schedule calls that replaced a pending timer"
	HelpTextDebounceFlushes        = "Total number of capacity-triggered debounce flushes"
	HelpTextDebouncePending        = "Current number of pending debounce timers"
	HelpTextAchievementsUnlocked   = "Total number of achievements unlocked"
	HelpTextLeaderboardRuns        = "Total number of leaderboard ranking runs"
	HelpTextLeaderboardDuration    = "Leaderboard ranking run latency in seconds"
	HelpTextSweepRecomputes        = "Total number of recomputes triggered by the accuracy sweep"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCategory = "category"
	LabelWindow   = "window"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// RecomputeLatencyBuckets are the histogram buckets for recompute latency
var RecomputeLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Log messages
const (
	LogMsgMetricsRecorded     = "Metrics recorded for event"
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
