package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
)

// ApplyRideDelta is the incremental fast path: it patches every (window, mode)
// summary the ride belongs to with additive deltas, without rescanning ride
// history. Sign is +1 for a created ride and -1 for a deleted one.
//
// This path deliberately never recomputes mostUsedLine, longestRide, or the
// detail documents: those stay stale until the debounced authoritative
// recompute runs. It returns the before/after all-time totals so the
// achievement engine can evaluate threshold crossings from the exact delta.
func (s *service) ApplyRideDelta(ctx context.Context, ride *domain.Ride, sign int) (domain.Totals, domain.Totals, error) {
	log := logger.FromContext(ctx)

	var before, after domain.Totals
	if ride.UserID == "" {
		return before, after, fmt.Errorf(ErrMsgUserIDRequired)
	}

	now := time.Now()
	delta := domain.DeltaFor(ride, sign)

	for _, key := range domain.StatsKeys() {
		if !domain.Includes(ride, key.Window, key.Mode, now) {
			continue
		}

		allTimeAll := key.Window == domain.WindowAllTime && key.Mode == domain.ModeAll
		if allTimeAll {
			existing, err := s.repo.GetSummary(ctx, ride.UserID, key)
			if err != nil {
				return before, after, fmt.Errorf(ErrMsgGetSummaryFailed, err)
			}
			if existing != nil {
				before = existing.Totals()
			}
		}

		applied, err := s.repo.ApplyDelta(ctx, ride.UserID, key, delta)
		if err != nil {
			return before, after, fmt.Errorf(ErrMsgApplyDeltaFailed, err)
		}

		if !applied && sign > 0 {
			// No document yet: initialize from this one ride
			summary := Aggregate(ctx, ride.UserID, []domain.Ride{*ride}, key, now)
			if err := s.repo.InitSummary(ctx, &summary); err != nil {
				return before, after, fmt.Errorf(ErrMsgInitSummaryFailed, err)
			}
			log.Debug(LogMsgDeltaInitialized, "user_id", ride.UserID, "window", key.Window, "mode", key.Mode)
		}

		if allTimeAll {
			after = domain.Totals{
				Rides:      before.Rides + delta.Rides,
				DistanceKm: before.DistanceKm + delta.Distance,
				CO2Kg:      before.CO2Kg + delta.CO2,
			}
		}
	}

	metrics.StatsDeltasApplied.Inc()
	log.Debug(LogMsgDeltaApplied, "user_id", ride.UserID, "ride_id", ride.ID, "sign", sign)

	return before, after, nil
}
