package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
)

// Service defines the interface for achievement operations
type Service interface {
	// EvaluateCrossing unlocks every threshold achievement whose value lies
	// in (before, after] for the monotonic counters
	EvaluateCrossing(ctx context.Context, userID string, before, after domain.Totals) error

	// EvaluateRide runs the per-ride specialty checks against a single
	// completed ride
	EvaluateRide(ctx context.Context, ride *domain.Ride) error

	// EvaluateStreak checks the streak catalog against the current streak
	EvaluateStreak(ctx context.Context, userID string, currentStreak int) error

	// EvaluateProStatus unlocks pro_status on false->true and revokes it on
	// true->false; the only bidirectional achievement
	EvaluateProStatus(ctx context.Context, userID string, isPro bool) error

	// RecordShare unlocks sharing_is_caring on the user's first share
	RecordShare(ctx context.Context, userID string) error

	// GetUserAchievements returns everything the user has unlocked
	GetUserAchievements(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error)

	// GetPendingNotifications returns unlock notifications not yet shown
	GetPendingNotifications(ctx context.Context, userID string) ([]domain.AchievementNotification, error)

	// MarkNotificationsShown acknowledges all pending notifications
	MarkNotificationsShown(ctx context.Context, userID string) error
}

// service implements the Service interface
type service struct {
	repo  Repository
	bus   event.Bus
	cache *unlockCache
}

// NewService creates a new achievement service
func NewService(repo Repository, bus event.Bus) Service {
	return &service{
		repo:  repo,
		bus:   bus,
		cache: newUnlockCache(UnlockCacheSize, UnlockCacheTTL),
	}
}

// unlock is the single idempotent unlock path. The guarded insert is the
// authority; the cache only short-circuits pairs already known unlocked.
func (s *service) unlock(ctx context.Context, userID string, id domain.AchievementID) error {
	log := logger.FromContext(ctx)

	entry, ok := Lookup(id)
	if !ok {
		// Unresolved ids are skipped, not raised: the catalog and the
		// callers may briefly disagree during a rollout
		log.Warn(LogMsgUnknownAchievement, "achievement_id", id, "user_id", userID)
		return nil
	}

	if s.cache.Has(userID, id) {
		return nil
	}

	now := time.Now()
	inserted, err := s.repo.InsertUnlock(ctx,
		domain.UnlockedAchievement{
			UserID:      userID,
			ID:          id,
			Name:        entry.Name,
			Description: entry.Description,
			Category:    entry.Category,
			UnlockedAt:  now,
		},
		domain.AchievementNotification{
			UserID:      userID,
			ID:          id,
			Name:        entry.Name,
			Description: entry.Description,
			Category:    entry.Category,
			Shown:       false,
			UnlockedAt:  now,
		},
	)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertUnlock, id, userID, err)
	}

	s.cache.Mark(userID, id)

	if !inserted {
		log.Debug(LogMsgAlreadyUnlocked, "achievement_id", id, "user_id", userID)
		return nil
	}

	metrics.AchievementsUnlocked.WithLabelValues(entry.Category).Inc()
	log.Info(LogMsgUnlocked, "achievement_id", id, "user_id", userID)

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.AchievementUnlocked,
			Payload: event.AchievementUnlockedPayloadV1{
				UserID:        userID,
				AchievementID: string(id),
				Name:          entry.Name,
				Timestamp:     now.Unix(),
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgPublishUnlockFailed, "achievement_id", id, "error", err)
		}
	}

	return nil
}

// unlockAll unlocks a batch, keeping going past individual failures
func (s *service) unlockAll(ctx context.Context, userID string, ids []domain.AchievementID) error {
	log := logger.FromContext(ctx)
	var firstErr error
	for _, id := range ids {
		if err := s.unlock(ctx, userID, id); err != nil {
			log.Error(LogMsgUnlockFailed, "achievement_id", id, "user_id", userID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *service) EvaluateCrossing(ctx context.Context, userID string, before, after domain.Totals) error {
	log := logger.FromContext(ctx)

	var crossed []domain.AchievementID
	crossed = append(crossed, CrossedThresholds(rideThresholds, float64(before.Rides), float64(after.Rides))...)
	crossed = append(crossed, CrossedThresholds(distanceThresholds, before.DistanceKm, after.DistanceKm)...)
	crossed = append(crossed, CrossedThresholds(co2Thresholds, before.CO2Kg, after.CO2Kg)...)

	if len(crossed) == 0 {
		return nil
	}

	log.Debug(LogMsgCrossingEvaluated, "user_id", userID, "crossed", len(crossed))
	return s.unlockAll(ctx, userID, crossed)
}

func (s *service) EvaluateRide(ctx context.Context, ride *domain.Ride) error {
	log := logger.FromContext(ctx)

	var ids []domain.AchievementID

	// Time-of-day achievements only count live-tracked rides; a manual
	// entry's start time is whatever the user typed
	if !ride.ManualEntry {
		hour := ride.StartTime.Hour()
		if hour >= NightOwlHour {
			ids = append(ids, domain.AchNightOwl)
		}
		if hour < EarlyBirdHour {
			ids = append(ids, domain.AchEarlyBird)
		}
	}

	if ride.IsLoop() {
		ids = append(ids, domain.AchLoopDeLoop)
	}
	if ride.StopCount == OneStopWonderStops {
		ids = append(ids, domain.AchOneStopWonder)
	}
	if ride.StopCount >= ScenicRouteStops {
		ids = append(ids, domain.AchScenicRoute)
	}

	if ride.Line != "" {
		lineIDs, err := s.evaluateLineSets(ctx, ride)
		if err != nil {
			log.Warn(LogMsgLineTrackingFailed, "user_id", ride.UserID, "error", err)
		} else {
			ids = append(ids, lineIDs...)
		}
	}

	return s.unlockAll(ctx, ride.UserID, ids)
}

// evaluateLineSets records the ride's line and checks the completion sets
func (s *service) evaluateLineSets(ctx context.Context, ride *domain.Ride) ([]domain.AchievementID, error) {
	lines, err := s.repo.RecordLineUsed(ctx, ride.UserID, ride.Type, ride.Line)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRecordLine, err)
	}

	var ids []domain.AchievementID
	switch ride.Type {
	case domain.TransitTrain:
		complete := true
		for _, line := range domain.AllTrainLines {
			if !lines.HasTrainLine(line) {
				complete = false
				break
			}
		}
		if complete {
			ids = append(ids, domain.AchAllAboard)
		}
	case domain.TransitBus:
		if len(lines.BusLines) >= domain.BusLineCompletionCount {
			ids = append(ids, domain.AchWheelsOfTheCity)
		}
	}
	return ids, nil
}

func (s *service) EvaluateStreak(ctx context.Context, userID string, currentStreak int) error {
	// Streaks are independent per-event checks against the latest value, not
	// interval crossings: the streak document is authoritative and small
	var ids []domain.AchievementID
	for _, t := range streakThresholds {
		if float64(currentStreak) >= t.Value {
			ids = append(ids, t.ID)
		}
	}
	return s.unlockAll(ctx, userID, ids)
}

func (s *service) EvaluateProStatus(ctx context.Context, userID string, isPro bool) error {
	log := logger.FromContext(ctx)

	if isPro {
		return s.unlock(ctx, userID, domain.AchProStatus)
	}

	if err := s.repo.RevokeUnlock(ctx, userID, domain.AchProStatus); err != nil {
		return fmt.Errorf(ErrMsgRevokeUnlock, domain.AchProStatus, userID, err)
	}
	s.cache.Forget(userID, domain.AchProStatus)
	log.Info(LogMsgRevoked, "achievement_id", domain.AchProStatus, "user_id", userID)
	return nil
}

func (s *service) RecordShare(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrMissingParameter
	}
	return s.unlock(ctx, userID, domain.AchSharingIsCaring)
}

func (s *service) GetUserAchievements(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameter
	}
	unlocked, err := s.repo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUnlocked, err)
	}
	return unlocked, nil
}

func (s *service) GetPendingNotifications(ctx context.Context, userID string) ([]domain.AchievementNotification, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameter
	}
	notifications, err := s.repo.GetPendingNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetNotifications, err)
	}
	return notifications, nil
}

func (s *service) MarkNotificationsShown(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrMissingParameter
	}
	if err := s.repo.MarkNotificationsShown(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgMarkShown, err)
	}
	return nil
}
