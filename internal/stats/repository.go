package stats

import (
	"context"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Repository defines the persistence operations the stats engine needs.
// Summary and detail documents are fully owned by the background jobs:
// writes are last-write-wins at the document level.
type Repository interface {
	// GetRidesForUser returns every ride owned by the user
	GetRidesForUser(ctx context.Context, userID string) ([]domain.Ride, error)

	// GetSummary returns the summary for one key, or nil when absent
	GetSummary(ctx context.Context, userID string, key domain.StatsKey) (*domain.StatsSummary, error)

	// SaveSnapshot replaces every summary and detail document for the user
	// in one atomic batch
	SaveSnapshot(ctx context.Context, userID string, summaries []domain.StatsSummary, details []domain.DetailStats) error

	// ApplyDelta adds the delta to an existing summary document and refreshes
	// the derived time split. Returns false when no document exists yet.
	ApplyDelta(ctx context.Context, userID string, key domain.StatsKey, delta domain.StatsDelta) (bool, error)

	// InitSummary creates the summary document for a key that had none
	InitSummary(ctx context.Context, summary *domain.StatsSummary) error

	// SaveUserMetrics writes the metrics projection consumed by the
	// leaderboard ranker
	SaveUserMetrics(ctx context.Context, userID string, metrics map[domain.BoardKey]float64) error

	// GetStaleUsers lists users whose all-time summary is older than the
	// bound, for the accuracy sweep
	GetStaleUsers(ctx context.Context, olderThan time.Time, limit int) ([]string, error)

	// GetDetailStats returns the detail document for one key, or nil when absent
	GetDetailStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.DetailStats, error)
}
