package bootstrap

import (
	"context"
	"log/slog"

	"github.com/transitstats/TransitStats_Go/internal/debounce"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/server"
	"github.com/transitstats/TransitStats_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	LeaderboardWorker  *worker.LeaderboardWorker
	SweepWorker        *worker.SweepWorker
	RecomputeScheduler *debounce.Scheduler
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Background workers (cancel pending timers)
// 3. Recompute scheduler (flush pending recomputes so no delta is lost)
// 4. Event publisher (close the dead-letter writer)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.LeaderboardWorker != nil {
		if err := components.LeaderboardWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgLeaderboardWorkerFailed, "error", err)
		}
	}

	if components.SweepWorker != nil {
		if err := components.SweepWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSweepWorkerFailed, "error", err)
		}
	}

	// Flush debounced recomputes before the event system goes away
	if components.RecomputeScheduler != nil {
		if err := components.RecomputeScheduler.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSchedulerShutdownFailed, "error", err)
		}
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Close(); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
