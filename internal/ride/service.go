package ride

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
)

// Service defines the interface for ride command operations
type Service interface {
	// StartRide opens a live-tracked ride and returns its id
	StartRide(ctx context.Context, userID string, transitType domain.TransitType, line, startStop string) (string, error)

	// UpdateRide accumulates live distance and duration increments. Returns
	// whether the ride now looks like a suspected false ride.
	UpdateRide(ctx context.Context, rideID, userID string, deltaMiles float64, deltaSeconds int) (bool, error)

	// EndRide finalizes a live ride: converts miles to km, seconds to
	// rounded minutes, records the end stop, and announces completion
	EndRide(ctx context.Context, rideID, userID, endStop string) (*domain.Ride, error)

	// DiscardRide deletes a ride. Discarding a completed ride announces the
	// deletion so its stats contribution is removed.
	DiscardRide(ctx context.Context, rideID, userID string) error

	// CreateManualRide records a completed ride entered by hand. Manual
	// entries never advance streaks.
	CreateManualRide(ctx context.Context, ride *domain.Ride) (string, error)

	// GetRide returns a ride owned by the user
	GetRide(ctx context.Context, rideID, userID string) (*domain.Ride, error)

	// GetStreak returns the user's current streak state
	GetStreak(ctx context.Context, userID string) (*domain.Streak, error)

	// GetRecentSelections returns the most-recent-first list for a UI field,
	// falling back to the cross-line startStop list when the scoped list is
	// empty
	GetRecentSelections(ctx context.Context, userID string, transitType domain.TransitType, line, field string) ([]string, error)
}

// service implements the Service interface
type service struct {
	repo Repository
	bus  event.Bus
}

// NewService creates a new ride service
func NewService(repo Repository, bus event.Bus) Service {
	return &service{
		repo: repo,
		bus:  bus,
	}
}

func (s *service) StartRide(ctx context.Context, userID string, transitType domain.TransitType, line, startStop string) (string, error) {
	log := logger.FromContext(ctx)

	if userID == "" || startStop == "" {
		return "", domain.ErrMissingParameter
	}
	if !transitType.IsValid() {
		return "", domain.ErrInvalidTransitType
	}

	ride := &domain.Ride{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        transitType,
		Line:        line,
		StartStop:   startStop,
		StartTime:   time.Now(),
		InProgress:  true,
		ManualEntry: false,
	}

	if err := s.repo.InsertRide(ctx, ride); err != nil {
		return "", fmt.Errorf(ErrMsgInsertRide, err)
	}

	metrics.RidesStarted.Inc()
	log.Info(LogMsgRideStarted, "ride_id", ride.ID, "user_id", userID, "type", transitType)
	return ride.ID, nil
}

func (s *service) UpdateRide(ctx context.Context, rideID, userID string, deltaMiles float64, deltaSeconds int) (bool, error) {
	log := logger.FromContext(ctx)

	if rideID == "" || userID == "" {
		return false, domain.ErrMissingParameter
	}
	if deltaMiles < 0 {
		return false, domain.ErrNegativeDistance
	}
	if deltaSeconds < 0 {
		return false, domain.ErrNegativeDuration
	}

	ride, err := s.ownedRide(ctx, rideID, userID)
	if err != nil {
		return false, err
	}
	if !ride.InProgress {
		return false, domain.ErrRideCompleted
	}

	ride.DistanceMiles += deltaMiles
	ride.DurationSeconds += deltaSeconds

	suspected := ride.DurationSeconds > SuspectedFalseRideMinSeconds && ride.DistanceMiles < SuspectedFalseRideMaxMiles
	if suspected && !ride.SuspectedFalseRide {
		metrics.RidesSuspectedFalse.Inc()
		log.Warn(LogMsgRideSuspectedFalse, "ride_id", rideID, "duration_s", ride.DurationSeconds, "distance_mi", ride.DistanceMiles)
	}
	ride.SuspectedFalseRide = suspected

	if err := s.repo.UpdateRide(ctx, ride); err != nil {
		return false, fmt.Errorf(ErrMsgUpdateRide, rideID, err)
	}

	log.Debug(LogMsgRideUpdated, "ride_id", rideID, "delta_mi", deltaMiles, "delta_s", deltaSeconds)
	return suspected, nil
}

func (s *service) EndRide(ctx context.Context, rideID, userID, endStop string) (*domain.Ride, error) {
	log := logger.FromContext(ctx)

	if rideID == "" || userID == "" || endStop == "" {
		return nil, domain.ErrMissingParameter
	}

	ride, err := s.ownedRide(ctx, rideID, userID)
	if err != nil {
		return nil, err
	}
	if !ride.InProgress {
		return nil, domain.ErrRideCompleted
	}

	ride.InProgress = false
	ride.EndStop = endStop
	ride.DistanceKm = ride.DistanceMiles * domain.MilesToKm
	ride.DurationMinutes = int(math.Round(float64(ride.DurationSeconds) / domain.SecondsPerMinute))

	if err := s.repo.UpdateRide(ctx, ride); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateRide, rideID, err)
	}

	metrics.RidesCompleted.Inc()
	log.Info(LogMsgRideEnded, "ride_id", rideID, "user_id", userID, "distance_km", ride.DistanceKm)

	s.afterCompletion(ctx, ride)
	return ride, nil
}

func (s *service) DiscardRide(ctx context.Context, rideID, userID string) error {
	log := logger.FromContext(ctx)

	if rideID == "" || userID == "" {
		return domain.ErrMissingParameter
	}

	ride, err := s.ownedRide(ctx, rideID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRide(ctx, rideID); err != nil {
		return fmt.Errorf(ErrMsgDeleteRide, rideID, err)
	}

	metrics.RidesDiscarded.Inc()
	log.Info(LogMsgRideDiscarded, "ride_id", rideID, "user_id", userID, "was_in_progress", ride.InProgress)

	// A completed ride already contributed to stats; announce the deletion
	// so the aggregation engine subtracts it. In-progress rides never
	// contributed anything.
	if !ride.InProgress {
		s.publishRideEvent(ctx, event.RideDeleted, ride)
	}
	return nil
}

func (s *service) CreateManualRide(ctx context.Context, ride *domain.Ride) (string, error) {
	log := logger.FromContext(ctx)

	if ride == nil || ride.UserID == "" || ride.StartStop == "" {
		return "", domain.ErrMissingParameter
	}
	if !ride.Type.IsValid() {
		return "", domain.ErrInvalidTransitType
	}
	if ride.DistanceKm < 0 {
		return "", domain.ErrNegativeDistance
	}
	if ride.DurationMinutes < 0 {
		return "", domain.ErrNegativeDuration
	}

	if ride.ID == "" {
		ride.ID = uuid.NewString()
	}
	if ride.StartTime.IsZero() {
		ride.StartTime = time.Now()
	}
	ride.InProgress = false
	ride.ManualEntry = true

	if err := s.repo.InsertRide(ctx, ride); err != nil {
		return "", fmt.Errorf(ErrMsgInsertRide, err)
	}

	metrics.RidesCompleted.Inc()
	log.Info(LogMsgManualRideCreated, "ride_id", ride.ID, "user_id", ride.UserID)

	s.afterCompletion(ctx, ride)
	return ride.ID, nil
}

// afterCompletion runs the side effects every completed ride triggers:
// streak advancement (live rides only), recent selection lists, and the
// completion event that drives stats and achievements.
func (s *service) afterCompletion(ctx context.Context, ride *domain.Ride) {
	log := logger.FromContext(ctx)

	if !ride.ManualEntry {
		if err := s.updateStreak(ctx, ride.UserID, ride.StartTime); err != nil {
			log.Warn(LogMsgStreakUpdateFailed, "user_id", ride.UserID, "error", err)
		}
	}

	if err := s.updateRecents(ctx, ride); err != nil {
		log.Warn(LogMsgRecentsUpdateFailed, "user_id", ride.UserID, "error", err)
	}

	s.publishRideEvent(ctx, event.RideCompleted, ride)
}

func (s *service) publishRideEvent(ctx context.Context, t event.Type, ride *domain.Ride) {
	if s.bus == nil {
		return
	}
	log := logger.FromContext(ctx)
	if err := s.bus.Publish(ctx, event.NewRideEvent(t, *ride)); err != nil {
		log.Warn(LogMsgRidePublishFailed, "type", t, "ride_id", ride.ID, "error", err)
	}
}

// ownedRide loads a ride and verifies ownership
func (s *service) ownedRide(ctx context.Context, rideID, userID string) (*domain.Ride, error) {
	ride, err := s.repo.GetRide(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRide, rideID, err)
	}
	if ride == nil {
		return nil, domain.ErrRideNotFound
	}
	if ride.UserID != userID {
		return nil, domain.ErrRideNotOwned
	}
	return ride, nil
}

func (s *service) GetRide(ctx context.Context, rideID, userID string) (*domain.Ride, error) {
	if rideID == "" || userID == "" {
		return nil, domain.ErrMissingParameter
	}
	return s.ownedRide(ctx, rideID, userID)
}

func (s *service) GetStreak(ctx context.Context, userID string) (*domain.Streak, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameter
	}
	streak, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetStreak, err)
	}
	if streak == nil {
		return &domain.Streak{UserID: userID}, nil
	}
	return streak, nil
}
