package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/transitstats/TransitStats_Go/internal/achievement"
	"github.com/transitstats/TransitStats_Go/internal/database"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/handler"
	"github.com/transitstats/TransitStats_Go/internal/leaderboard"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
	"github.com/transitstats/TransitStats_Go/internal/middleware"
	"github.com/transitstats/TransitStats_Go/internal/ride"
	"github.com/transitstats/TransitStats_Go/internal/stats"
	"github.com/transitstats/TransitStats_Go/internal/user"
)

type Server struct {
	httpServer         *http.Server
	dbPool             database.Pool
	rideService        ride.Service
	statsService       stats.Service
	leaderboardService leaderboard.Service
	achievementService achievement.Service
	userService        user.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, rideService ride.Service, statsService stats.Service, leaderboardService leaderboard.Service, achievementService achievement.Service, userService user.Service, eventBus event.Bus) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	activityTracker := middleware.NewActivityTracker(eventBus)
	r.Route("/api/v1", func(r chi.Router) {
		// Marks the acting user as active for leaderboard eligibility
		r.Use(activityTracker.Track)

		// Ride routes
		rideHandler := handler.NewRideHandler(rideService)
		r.Route("/rides", func(r chi.Router) {
			r.Post("/", rideHandler.HandleStartRide)
			r.Post("/manual", rideHandler.HandleCreateManualRide)
			r.Route("/{rideID}", func(r chi.Router) {
				r.Get("/", rideHandler.HandleGetRide)
				r.Patch("/", rideHandler.HandleUpdateRide)
				r.Delete("/", rideHandler.HandleDiscardRide)
				r.Post("/end", rideHandler.HandleEndRide)
			})
		})

		// Leaderboard routes
		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
		r.Get("/leaderboards", leaderboardHandler.HandleGetLeaderboard)

		// User-scoped routes
		statsHandler := handler.NewStatsHandler(statsService)
		achievementHandler := handler.NewAchievementHandler(achievementService)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", handler.HandleGetUser(userService))
			r.Post("/pro", handler.HandleUpgradePro(userService))
			r.Delete("/pro", handler.HandleRevokePro(userService))

			r.Get("/streak", rideHandler.HandleGetStreak)
			r.Get("/recents", rideHandler.HandleGetRecents)

			r.Route("/stats", func(r chi.Router) {
				r.Get("/", statsHandler.HandleGetStats)
				r.Get("/details", statsHandler.HandleGetDetailStats)
				r.Post("/recompute", statsHandler.HandleRecomputeStats)
			})

			r.Get("/rank", leaderboardHandler.HandleGetUserRank)

			r.Get("/achievements", achievementHandler.HandleGetUserAchievements)
			r.Post("/achievements/share", achievementHandler.HandleRecordShare)
			r.Get("/notifications", achievementHandler.HandleGetNotifications)
			r.Post("/notifications/shown", achievementHandler.HandleMarkNotificationsShown)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:             dbPool,
		rideService:        rideService,
		statsService:       statsService,
		leaderboardService: leaderboardService,
		achievementService: achievementService,
		userService:        userService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
