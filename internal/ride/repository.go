package ride

import (
	"context"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Repository defines ride persistence operations
type Repository interface {
	// InsertRide persists a new ride
	InsertRide(ctx context.Context, ride *domain.Ride) error

	// GetRide returns a ride by id, or nil when absent
	GetRide(ctx context.Context, rideID string) (*domain.Ride, error)

	// UpdateRide overwrites an existing ride
	UpdateRide(ctx context.Context, ride *domain.Ride) error

	// DeleteRide removes a ride by id
	DeleteRide(ctx context.Context, rideID string) error

	// GetStreak returns the user's streak state, or nil when never set
	GetStreak(ctx context.Context, userID string) (*domain.Streak, error)

	// SaveStreak upserts the user's streak state
	SaveStreak(ctx context.Context, streak *domain.Streak) error

	// GetRecentItems returns one most-recent-first selection list
	GetRecentItems(ctx context.Context, userID, docID string) ([]string, error)

	// SaveRecentItems overwrites one selection list
	SaveRecentItems(ctx context.Context, userID, docID string, items []string) error
}
