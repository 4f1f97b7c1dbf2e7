package leaderboard

import (
	"context"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Repository defines leaderboard persistence operations
type Repository interface {
	// GetMetricValues returns the positive metric values for a board, limited
	// to users active since the cutoff, sorted descending by value
	GetMetricValues(ctx context.Context, key domain.BoardKey, activeSince time.Time) ([]domain.MetricValue, error)

	// SaveUserRanks upserts a batch of per-user rank documents in one round trip
	SaveUserRanks(ctx context.Context, ranks []domain.UserRank) error

	// SaveLeaderboard upserts the global document for a board
	SaveLeaderboard(ctx context.Context, board domain.Leaderboard) error

	// GetLeaderboard returns the global document, or nil when never ranked
	GetLeaderboard(ctx context.Context, key domain.BoardKey) (*domain.Leaderboard, error)

	// GetUserRank returns a user's rank document, or nil when unranked
	GetUserRank(ctx context.Context, userID string, key domain.BoardKey) (*domain.UserRank, error)
}
