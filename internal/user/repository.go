package user

import (
	"context"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Repository defines user persistence operations
type Repository interface {
	// GetUser returns a user by id, or nil when absent
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// SetProStatus flips the pro flag and returns the previous value
	SetProStatus(ctx context.Context, userID string, isPro bool) (bool, error)

	// TouchLastActive records the user's latest activity instant, used by
	// leaderboard eligibility
	TouchLastActive(ctx context.Context, userID string, at time.Time) error
}
