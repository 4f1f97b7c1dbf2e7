package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/transitstats/TransitStats_Go/internal/achievement"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
	"github.com/transitstats/TransitStats_Go/internal/stats"
	"github.com/transitstats/TransitStats_Go/internal/user"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus           event.Bus
	StatsService       stats.Service
	StatsScheduler     stats.Scheduler
	AchievementService achievement.Service
	UserService        user.Service
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Stats event handler (ride deltas and debounced recompute scheduling)
// - Achievement event handler (threshold, streak, and pro evaluation)
// - User activity handler (last-active tracking)
// - Metrics collector (for event-based metrics)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	// Register stats handler
	statsHandler := stats.NewEventHandler(deps.StatsService, deps.StatsScheduler, deps.EventBus)
	statsHandler.Register(deps.EventBus)
	slog.Info(LogMsgStatsHandlerRegistered)

	// Register achievement handler
	achievementHandler := achievement.NewEventHandler(deps.AchievementService)
	achievementHandler.Register(deps.EventBus)
	slog.Info(LogMsgAchievementHandlerRegistered)

	// Register user activity handler
	userHandler := user.NewEventHandler(deps.UserService)
	userHandler.Register(deps.EventBus)
	slog.Info(LogMsgUserHandlerRegistered)

	// Register Metrics Collector
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
