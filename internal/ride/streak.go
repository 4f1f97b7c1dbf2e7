package ride

import (
	"context"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// updateStreak advances the day-granularity ride streak. A ride on the day
// after the last ride extends the streak, a same-day ride keeps it, and any
// gap resets it to 1.
func (s *service) updateStreak(ctx context.Context, userID string, startTime time.Time) error {
	log := logger.FromContext(ctx)

	rideDay := truncateToDay(startTime)

	streak, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetStreak, err)
	}
	if streak == nil {
		streak = &domain.Streak{UserID: userID}
	}

	current := 1
	if !streak.LastRideDate.IsZero() {
		switch dayDiff(streak.LastRideDate, rideDay) {
		case 0:
			current = maxStreak(streak.CurrentStreak, 1)
		case 1:
			current = streak.CurrentStreak + 1
		default:
			current = 1
		}
	}

	streak.CurrentStreak = current
	if current > streak.LongestStreak {
		streak.LongestStreak = current
	}
	streak.LastRideDate = rideDay

	if err := s.repo.SaveStreak(ctx, streak); err != nil {
		return fmt.Errorf(ErrMsgSaveStreak, err)
	}

	log.Info(LogMsgStreakUpdated, "user_id", userID, "current_streak", current, "longest_streak", streak.LongestStreak)

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.StreakUpdated,
			Payload: event.StreakUpdatedPayloadV1{
				UserID:        userID,
				CurrentStreak: streak.CurrentStreak,
				LongestStreak: streak.LongestStreak,
				Timestamp:     time.Now().Unix(),
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgStreakPublishFailed, "user_id", userID, "error", err)
		}
	}

	return nil
}

// truncateToDay drops the time-of-day component in the ride's location
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayDiff returns the whole days from a to b, both already day-truncated
func dayDiff(a, b time.Time) int {
	return int(b.Sub(truncateToDay(a)).Hours() / 24)
}

func maxStreak(a, b int) int {
	if a > b {
		return a
	}
	return b
}
