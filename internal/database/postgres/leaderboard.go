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

// LeaderboardRepository implements the leaderboard repository for PostgreSQL
type LeaderboardRepository struct {
	db *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// GetMetricValues returns the positive metric values for a board, limited to
// users active since the cutoff, sorted descending by value
func (r *LeaderboardRepository) GetMetricValues(ctx context.Context, key domain.BoardKey, activeSince time.Time) ([]domain.MetricValue, error) {
	query := `
		SELECT m.user_id, m.metric_value
		FROM user_metrics m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.time_window = $1 AND m.category = $2
		  AND m.metric_value > 0
		  AND u.last_active_at >= $3
		ORDER BY m.metric_value DESC
	`
	rows, err := r.db.Query(ctx, query, key.Window, key.Category, activeSince)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMetricValues, err)
	}
	defer rows.Close()

	values := make([]domain.MetricValue, 0)
	for rows.Next() {
		var v domain.MetricValue
		if err := rows.Scan(&v.UserID, &v.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMetricValues, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMetricValues, err)
	}
	return values, nil
}

// SaveUserRanks upserts a batch of per-user rank documents in one round trip
func (r *LeaderboardRepository) SaveUserRanks(ctx context.Context, ranks []domain.UserRank) error {
	if len(ranks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO user_ranks (user_id, time_window, category, rank, percentile, metric_value, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, time_window, category) DO UPDATE SET
			rank = EXCLUDED.rank,
			percentile = EXCLUDED.percentile,
			metric_value = EXCLUDED.metric_value,
			updated_at = EXCLUDED.updated_at
	`
	for i := range ranks {
		rank := &ranks[i]
		batch.Queue(query, rank.UserID, rank.Window, rank.Category,
			rank.Rank, rank.Percentile, rank.MetricValue, rank.UpdatedAt)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveUserRanks, err)
	}
	return nil
}

// SaveLeaderboard upserts the global document for a board
func (r *LeaderboardRepository) SaveLeaderboard(ctx context.Context, board domain.Leaderboard) error {
	entries, err := json.Marshal(board.Top100)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEntries, err)
	}

	query := `
		INSERT INTO leaderboards (time_window, category, top_entries, total_users, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (time_window, category) DO UPDATE SET
			top_entries = EXCLUDED.top_entries,
			total_users = EXCLUDED.total_users,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, board.Window, board.Category, entries, board.TotalUsers, board.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveLeaderboard, err)
	}
	return nil
}

// GetLeaderboard returns the global document, or nil when never ranked
func (r *LeaderboardRepository) GetLeaderboard(ctx context.Context, key domain.BoardKey) (*domain.Leaderboard, error) {
	query := `
		SELECT top_entries, total_users, updated_at
		FROM leaderboards WHERE time_window = $1 AND category = $2
	`
	var entries []byte
	board := domain.Leaderboard{Window: key.Window, Category: key.Category}
	err := r.db.QueryRow(ctx, query, key.Window, key.Category).Scan(&entries, &board.TotalUsers, &board.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}

	if err := json.Unmarshal(entries, &board.Top100); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEntries, err)
	}
	return &board, nil
}

// GetUserRank returns a user's rank document, or nil when unranked
func (r *LeaderboardRepository) GetUserRank(ctx context.Context, userID string, key domain.BoardKey) (*domain.UserRank, error) {
	query := `
		SELECT user_id, time_window, category, rank, percentile, metric_value, updated_at
		FROM user_ranks WHERE user_id = $1 AND time_window = $2 AND category = $3
	`
	var rank domain.UserRank
	err := r.db.QueryRow(ctx, query, userID, key.Window, key.Category).Scan(
		&rank.UserID, &rank.Window, &rank.Category, &rank.Rank,
		&rank.Percentile, &rank.MetricValue, &rank.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRank, err)
	}
	return &rank, nil
}
