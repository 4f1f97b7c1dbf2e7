package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Ride command metrics
var (
	RidesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRidesStarted,
			Help: HelpTextRidesStarted,
		},
	)

	RidesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRidesCompleted,
			Help: HelpTextRidesCompleted,
		},
	)

	RidesDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRidesDiscarded,
			Help: HelpTextRidesDiscarded,
		},
	)

	RidesSuspectedFalse = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRidesSuspectedFalse,
			Help: HelpTextRidesSuspectedFalse,
		},
	)
)

// Aggregation engine metrics
var (
	StatsRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStatsRecomputes,
			Help: HelpTextStatsRecomputes,
		},
	)

	StatsRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameStatsRecomputeDuration,
			Help:    HelpTextStatsRecomputeDuration,
			Buckets: RecomputeLatencyBuckets,
		},
	)

	StatsDeltasApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStatsDeltasApplied,
			Help: HelpTextStatsDeltasApplied,
		},
	)

	SweepRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSweepRecomputes,
			Help: HelpTextSweepRecomputes,
		},
	)
)

// Debounce scheduler metrics
var (
	DebounceScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDebounceScheduled,
			Help: HelpTextDebounceScheduled,
		},
	)

	DebounceCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDebounceCoalesced,
			Help: HelpTextDebounceCoalesced,
		},
	)

	DebounceFlushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDebounceFlushes,
			Help: HelpTextDebounceFlushes,
		},
	)

	DebouncePending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDebouncePending,
			Help: HelpTextDebouncePending,
		},
	)
)

// Achievement and leaderboard metrics
var (
	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
		[]string{LabelCategory},
	)

	LeaderboardRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeaderboardRuns,
			Help: HelpTextLeaderboardRuns,
		},
		[]string{LabelWindow, LabelCategory},
	)

	LeaderboardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameLeaderboardDuration,
			Help:    HelpTextLeaderboardDuration,
			Buckets: RecomputeLatencyBuckets,
		},
	)
)
