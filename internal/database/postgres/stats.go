package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// StatsRepository implements the stats repository for PostgreSQL.
// Summary rows use explicit columns so the incremental fast path can patch
// them additively; detail documents are opaque JSONB rewritten wholesale.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

const summaryColumns = `user_id, time_window, mode, total_distance, average_distance_per_week,
	total_time_minutes, total_rides, total_cost, cost_per_mile, co2_saved,
	most_used_line, most_used_line_count, longest_ride_miles, longest_ride_line,
	longest_ride_route, ride_count_change, co2_change, updated_at`

func scanSummary(row pgx.Row) (*domain.StatsSummary, error) {
	var s domain.StatsSummary
	err := row.Scan(&s.UserID, &s.Window, &s.Mode, &s.TotalDistance, &s.AverageDistancePerWeek,
		&s.TotalTimeMinutes, &s.TotalRides, &s.TotalCost, &s.CostPerMile, &s.CO2Saved,
		&s.MostUsedLine, &s.MostUsedLineCount, &s.LongestRideMiles, &s.LongestRideLine,
		&s.LongestRideRoute, &s.RideCountChange, &s.CO2Change, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.SplitTime()
	return &s, nil
}

// GetRidesForUser returns every ride owned by the user
func (r *StatsRepository) GetRidesForUser(ctx context.Context, userID string) ([]domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE user_id = $1 ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRides, err)
	}
	defer rows.Close()

	rides := make([]domain.Ride, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRides, err)
		}
		rides = append(rides, *ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRides, err)
	}
	return rides, nil
}

// GetSummary returns the summary for one key, or nil when absent
func (r *StatsRepository) GetSummary(ctx context.Context, userID string, key domain.StatsKey) (*domain.StatsSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM stats_summaries
		WHERE user_id = $1 AND time_window = $2 AND mode = $3`

	summary, err := scanSummary(r.db.QueryRow(ctx, query, userID, key.Window, key.Mode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSummary, err)
	}
	return summary, nil
}

const upsertSummarySQL = `
	INSERT INTO stats_summaries (` + summaryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT (user_id, time_window, mode) DO UPDATE SET
		total_distance = EXCLUDED.total_distance,
		average_distance_per_week = EXCLUDED.average_distance_per_week,
		total_time_minutes = EXCLUDED.total_time_minutes,
		total_rides = EXCLUDED.total_rides,
		total_cost = EXCLUDED.total_cost,
		cost_per_mile = EXCLUDED.cost_per_mile,
		co2_saved = EXCLUDED.co2_saved,
		most_used_line = EXCLUDED.most_used_line,
		most_used_line_count = EXCLUDED.most_used_line_count,
		longest_ride_miles = EXCLUDED.longest_ride_miles,
		longest_ride_line = EXCLUDED.longest_ride_line,
		longest_ride_route = EXCLUDED.longest_ride_route,
		ride_count_change = EXCLUDED.ride_count_change,
		co2_change = EXCLUDED.co2_change,
		updated_at = EXCLUDED.updated_at
`

func summaryArgs(s *domain.StatsSummary) []any {
	return []any{
		s.UserID, s.Window, s.Mode, s.TotalDistance, s.AverageDistancePerWeek,
		s.TotalTimeMinutes, s.TotalRides, s.TotalCost, s.CostPerMile, s.CO2Saved,
		s.MostUsedLine, s.MostUsedLineCount, s.LongestRideMiles, s.LongestRideLine,
		s.LongestRideRoute, s.RideCountChange, s.CO2Change, s.UpdatedAt,
	}
}

// SaveSnapshot replaces every summary and detail document for the user in one
// transaction, batched into a single round trip
func (r *StatsRepository) SaveSnapshot(ctx context.Context, userID string, summaries []domain.StatsSummary, details []domain.DetailStats) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	batch := &pgx.Batch{}
	for i := range summaries {
		batch.Queue(upsertSummarySQL, summaryArgs(&summaries[i])...)
	}

	detailSQL := `
		INSERT INTO stats_details (user_id, time_window, mode, doc, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, time_window, mode) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
	`
	for i := range details {
		d := &details[i]
		doc, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalDetail, err)
		}
		batch.Queue(detailSQL, d.UserID, d.Window, d.Mode, doc, d.UpdatedAt)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSnapshot, err)
	}
	return tx.Commit(ctx)
}

// ApplyDelta adds the delta to an existing summary row. The cost-per-mile
// guard and the time split are recomputed in the same statement so the row
// never holds an inconsistent pair. Returns false when no row exists yet.
func (r *StatsRepository) ApplyDelta(ctx context.Context, userID string, key domain.StatsKey, delta domain.StatsDelta) (bool, error) {
	query := `
		UPDATE stats_summaries SET
			total_distance = GREATEST(total_distance + $4, 0),
			total_time_minutes = GREATEST(total_time_minutes + $5, 0),
			total_rides = GREATEST(total_rides + $6, 0),
			total_cost = GREATEST(total_cost + $7, 0),
			co2_saved = GREATEST(co2_saved + $8, 0),
			cost_per_mile = CASE
				WHEN total_distance + $4 > 0
				THEN GREATEST(total_cost + $7, 0) / (total_distance + $4)
				ELSE 0
			END,
			updated_at = $9
		WHERE user_id = $1 AND time_window = $2 AND mode = $3
	`
	tag, err := r.db.Exec(ctx, query, userID, key.Window, key.Mode,
		delta.Distance, delta.TimeMinutes, delta.Rides, delta.Cost, delta.CO2, time.Now())
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToApplyDelta, err)
	}
	return tag.RowsAffected() > 0, nil
}

// InitSummary creates the summary row for a key that had none. A concurrent
// insert of the same key wins and this write becomes a no-op.
func (r *StatsRepository) InitSummary(ctx context.Context, summary *domain.StatsSummary) error {
	query := `
		INSERT INTO stats_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id, time_window, mode) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, summaryArgs(summary)...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInitSummary, err)
	}
	return nil
}

// SaveUserMetrics replaces the user's metrics projection in one batch
func (r *StatsRepository) SaveUserMetrics(ctx context.Context, userID string, metrics map[domain.BoardKey]float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO user_metrics (user_id, time_window, category, metric_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, time_window, category) DO UPDATE
		SET metric_value = EXCLUDED.metric_value
	`
	for key, value := range metrics {
		batch.Queue(query, userID, key.Window, key.Category, value)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveMetrics, err)
	}
	return tx.Commit(ctx)
}

// GetStaleUsers lists users whose all-time summary is older than the bound.
// Users with rides but no summary row at all are the sweep's other blind
// spot; they are picked up by the anti-join arm.
func (r *StatsRepository) GetStaleUsers(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	query := `
		SELECT user_id FROM stats_summaries
		WHERE time_window = 'allTime' AND mode = 'all' AND updated_at < $1
		UNION
		SELECT DISTINCT r.user_id FROM rides r
		WHERE NOT EXISTS (
			SELECT 1 FROM stats_summaries s
			WHERE s.user_id = r.user_id AND s.time_window = 'allTime' AND s.mode = 'all'
		)
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStaleUsers, err)
	}
	defer rows.Close()

	userIDs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStaleUsers, err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStaleUsers, err)
	}
	return userIDs, nil
}

// GetDetailStats returns the detail document for one key, or nil when absent
func (r *StatsRepository) GetDetailStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.DetailStats, error) {
	query := `SELECT doc FROM stats_details WHERE user_id = $1 AND time_window = $2 AND mode = $3`

	var doc []byte
	err := r.db.QueryRow(ctx, query, userID, key.Window, key.Mode).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDetail, err)
	}

	var details domain.DetailStats
	if err := json.Unmarshal(doc, &details); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanDetail, err)
	}
	return &details, nil
}
