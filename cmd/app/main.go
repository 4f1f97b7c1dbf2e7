package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/achievement"
	"github.com/transitstats/TransitStats_Go/internal/bootstrap"
	"github.com/transitstats/TransitStats_Go/internal/config"
	"github.com/transitstats/TransitStats_Go/internal/database"
	"github.com/transitstats/TransitStats_Go/internal/debounce"
	"github.com/transitstats/TransitStats_Go/internal/leaderboard"
	"github.com/transitstats/TransitStats_Go/internal/ride"
	"github.com/transitstats/TransitStats_Go/internal/server"
	"github.com/transitstats/TransitStats_Go/internal/stats"
	"github.com/transitstats/TransitStats_Go/internal/user"
	"github.com/transitstats/TransitStats_Go/internal/worker"
)

// Database pool tuning
const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 30 * time.Minute
	dbMaxLifetime    = time.Hour
)

// shutdownTimeout bounds the graceful shutdown sequence
const shutdownTimeout = 30 * time.Second

// @title           TransitStats API
// @version         1.0
// @description     Ride tracking, stats aggregation, leaderboards, and achievements for public transit.
// @BasePath        /api/v1
func main() {
	// Load configuration (reads .env if present)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// Setup logging (stdout + session log file)
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Connect to the database and apply migrations
	connString := cfg.GetDBConnString()
	dbPool, err := database.NewPool(connString, dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(context.Background(), connString); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	// Event bus and resilient publisher
	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	// Repositories and services
	repos := bootstrap.InitializeRepositories(dbPool)

	statsService := stats.NewService(repos.Stats, resilientPublisher)
	rideService := ride.NewService(repos.Ride, resilientPublisher)
	leaderboardService := leaderboard.NewService(repos.Leaderboard, resilientPublisher, cfg.LeaderboardBatchSize, cfg.BatchPacingDelay)
	achievementService := achievement.NewService(repos.Achievement, resilientPublisher)
	userService := user.NewService(repos.User, resilientPublisher)

	// Debounced recompute scheduler feeding the authoritative stats path
	recomputeScheduler := debounce.NewScheduler(cfg.DebounceDelay, cfg.DebounceMaxPending, statsService.RecomputeUser)

	// Event handlers
	err = bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:           eventBus,
		StatsService:       statsService,
		StatsScheduler:     recomputeScheduler,
		AchievementService: achievementService,
		UserService:        userService,
	})
	if err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	// Background workers
	leaderboardWorker := worker.NewLeaderboardWorker(leaderboardService, cfg.LeaderboardInterval)
	leaderboardWorker.Start()

	sweepWorker := worker.NewSweepWorker(statsService, cfg.SweepInterval, cfg.StalenessBound)
	sweepWorker.Start()

	// HTTP server
	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		dbPool,
		rideService,
		statsService,
		leaderboardService,
		achievementService,
		userService,
		resilientPublisher,
	)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		LeaderboardWorker:  leaderboardWorker,
		SweepWorker:        sweepWorker,
		RecomputeScheduler: recomputeScheduler,
		ResilientPublisher: resilientPublisher,
	})
}
