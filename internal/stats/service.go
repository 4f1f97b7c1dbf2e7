package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
)

// Service defines the interface for stats operations
type Service interface {
	// RecomputeUser runs the authoritative full recompute for every
	// (window, mode) pair, syncs the metrics projection, and announces the
	// result for achievement evaluation
	RecomputeUser(ctx context.Context, userID string) error

	// ApplyRideDelta is the incremental fast path for a single ride
	// creation (sign=+1) or deletion (sign=-1)
	ApplyRideDelta(ctx context.Context, ride *domain.Ride, sign int) (domain.Totals, domain.Totals, error)

	// GetUserStats returns the persisted summary for one key
	GetUserStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.StatsSummary, error)

	// GetUserDetailStats returns the persisted detail document for one key
	GetUserDetailStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.DetailStats, error)

	// SweepStale recomputes every user whose summary is older than the
	// staleness bound, returning how many users were refreshed
	SweepStale(ctx context.Context, olderThan time.Time, limit int) (int, error)
}

// service implements the Service interface
type service struct {
	repo Repository
	bus  event.Bus
}

// NewService creates a new stats service
func NewService(repo Repository, bus event.Bus) Service {
	return &service{
		repo: repo,
		bus:  bus,
	}
}

// RecomputeUser is the single authoritative write path for stats documents.
// Every summary and detail document for the user is rebuilt from the full
// ride set and persisted in one batch, overwriting whatever the incremental
// fast path left behind (last write wins; staleness self-corrects here).
func (s *service) RecomputeUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" {
		return errors.New(ErrMsgUserIDRequired)
	}

	started := time.Now()
	log.Debug(LogMsgRecomputeStarting, "user_id", userID)

	var before domain.Totals
	if existing, err := s.repo.GetSummary(ctx, userID, domain.StatsKey{Window: domain.WindowAllTime, Mode: domain.ModeAll}); err == nil && existing != nil {
		before = existing.Totals()
	}

	rides, err := s.repo.GetRidesForUser(ctx, userID)
	if err != nil {
		log.Error(LogMsgRecomputeFailed, "error", err, "user_id", userID)
		return fmt.Errorf(ErrMsgGetRidesFailed, err)
	}

	now := time.Now()
	keys := domain.StatsKeys()
	summaries := make([]domain.StatsSummary, 0, len(keys))
	details := make([]domain.DetailStats, 0, len(keys))
	var after domain.Totals

	for _, key := range keys {
		summary := Aggregate(ctx, userID, rides, key, now)
		summaries = append(summaries, summary)
		details = append(details, AggregateDetails(ctx, userID, rides, key, now))

		if key.Window == domain.WindowAllTime && key.Mode == domain.ModeAll {
			after = summary.Totals()
		}
	}

	if err := s.repo.SaveSnapshot(ctx, userID, summaries, details); err != nil {
		log.Error(LogMsgRecomputeFailed, "error", err, "user_id", userID)
		return fmt.Errorf(ErrMsgSaveSnapshotFailed, err)
	}

	if err := s.syncMetrics(ctx, userID, summaries); err != nil {
		// The projection lags one cycle; the next recompute corrects it
		log.Warn(LogMsgMetricSyncFailed, "error", err, "user_id", userID)
	}

	metrics.StatsRecomputes.Inc()
	metrics.StatsRecomputeDuration.Observe(time.Since(started).Seconds())
	log.Info(LogMsgRecomputeCompleted, "user_id", userID, "rides", len(rides), "duration_ms", time.Since(started).Milliseconds())

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.StatsRecomputed,
			Payload: event.StatsRecomputedPayloadV1{
				UserID:    userID,
				Documents: len(summaries) + len(details),
				Before:    before,
				After:     after,
				Timestamp: now.Unix(),
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Failed to publish recompute event", "error", err, "user_id", userID)
		}
	}

	return nil
}

// syncMetrics writes the per-(window, category) projection the leaderboard
// ranker reads. Values come from the all-modes summary of each window.
func (s *service) syncMetrics(ctx context.Context, userID string, summaries []domain.StatsSummary) error {
	projection := make(map[domain.BoardKey]float64, len(domain.BoardKeys()))
	for i := range summaries {
		summary := &summaries[i]
		if summary.Mode != domain.ModeAll {
			continue
		}
		projection[domain.BoardKey{Window: summary.Window, Category: domain.CategoryRides}] = float64(summary.TotalRides)
		projection[domain.BoardKey{Window: summary.Window, Category: domain.CategoryDistance}] = summary.TotalDistance
		projection[domain.BoardKey{Window: summary.Window, Category: domain.CategoryCO2}] = summary.CO2Saved
	}

	if err := s.repo.SaveUserMetrics(ctx, userID, projection); err != nil {
		return fmt.Errorf(ErrMsgSaveMetricsFailed, err)
	}
	return nil
}

// GetUserStats retrieves the persisted summary for one (window, mode) key
func (s *service) GetUserStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.StatsSummary, error) {
	if userID == "" {
		return nil, errors.New(ErrMsgUserIDRequired)
	}

	summary, err := s.repo.GetSummary(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSummaryFailed, err)
	}
	if summary == nil {
		// A user with no rides has no document yet; serve zeros
		zero := zeroSummary(userID, key, time.Time{})
		return &zero, nil
	}
	return summary, nil
}

// GetUserDetailStats retrieves the persisted detail document for one key
func (s *service) GetUserDetailStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.DetailStats, error) {
	if userID == "" {
		return nil, errors.New(ErrMsgUserIDRequired)
	}

	details, err := s.repo.GetDetailStats(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDetailFailed, err)
	}
	if details == nil {
		empty := emptyDetails(userID, key, time.Time{})
		return &empty, nil
	}
	return details, nil
}

// SweepStale is the correctness backstop for lost debounce timers: any user
// whose summary has not been rewritten within the staleness bound gets a full
// recompute. Per-user failures are logged and skipped so one bad user cannot
// stall the sweep.
func (s *service) SweepStale(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSweepStarting, "older_than", olderThan)

	userIDs, err := s.repo.GetStaleUsers(ctx, olderThan, limit)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetStaleUsersFailed, err)
	}

	refreshed := 0
	for _, userID := range userIDs {
		if err := s.RecomputeUser(ctx, userID); err != nil {
			log.Warn(LogMsgSweepUserFailed, "error", err, "user_id", userID)
			continue
		}
		refreshed++
	}

	metrics.SweepRecomputes.Add(float64(refreshed))
	log.Info(LogMsgSweepCompleted, "candidates", len(userIDs), "refreshed", refreshed)
	return refreshed, nil
}
