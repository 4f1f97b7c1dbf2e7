package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// RideRepository implements the ride repository for PostgreSQL
type RideRepository struct {
	db *pgxpool.Pool
}

// NewRideRepository creates a new RideRepository
func NewRideRepository(db *pgxpool.Pool) *RideRepository {
	return &RideRepository{db: db}
}

const rideColumns = `ride_id, user_id, type, line, start_stop, end_stop, start_time,
	distance_km, duration_minutes, stop_count, in_progress, manual_entry,
	distance_miles, duration_seconds, suspected_false_ride`

func scanRide(row pgx.Row) (*domain.Ride, error) {
	var r domain.Ride
	err := row.Scan(&r.ID, &r.UserID, &r.Type, &r.Line, &r.StartStop, &r.EndStop,
		&r.StartTime, &r.DistanceKm, &r.DurationMinutes, &r.StopCount,
		&r.InProgress, &r.ManualEntry, &r.DistanceMiles, &r.DurationSeconds,
		&r.SuspectedFalseRide)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertRide persists a new ride
func (r *RideRepository) InsertRide(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		ride.ID, ride.UserID, ride.Type, ride.Line, ride.StartStop, ride.EndStop,
		ride.StartTime, ride.DistanceKm, ride.DurationMinutes, ride.StopCount,
		ride.InProgress, ride.ManualEntry, ride.DistanceMiles, ride.DurationSeconds,
		ride.SuspectedFalseRide)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRide, err)
	}
	return nil
}

// GetRide returns a ride by id, or nil when absent
func (r *RideRepository) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE ride_id = $1`

	ride, err := scanRide(r.db.QueryRow(ctx, query, rideID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRide, err)
	}
	return ride, nil
}

// UpdateRide overwrites an existing ride
func (r *RideRepository) UpdateRide(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET type = $2, line = $3, start_stop = $4, end_stop = $5, start_time = $6,
		    distance_km = $7, duration_minutes = $8, stop_count = $9,
		    in_progress = $10, manual_entry = $11, distance_miles = $12,
		    duration_seconds = $13, suspected_false_ride = $14
		WHERE ride_id = $1
	`
	_, err := r.db.Exec(ctx, query,
		ride.ID, ride.Type, ride.Line, ride.StartStop, ride.EndStop, ride.StartTime,
		ride.DistanceKm, ride.DurationMinutes, ride.StopCount, ride.InProgress,
		ride.ManualEntry, ride.DistanceMiles, ride.DurationSeconds,
		ride.SuspectedFalseRide)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRide, err)
	}
	return nil
}

// DeleteRide removes a ride by id
func (r *RideRepository) DeleteRide(ctx context.Context, rideID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rides WHERE ride_id = $1`, rideID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteRide, err)
	}
	return nil
}

// GetStreak returns the user's streak state, or nil when never set
func (r *RideRepository) GetStreak(ctx context.Context, userID string) (*domain.Streak, error) {
	query := `SELECT user_id, current_streak, longest_streak, last_ride_date FROM streaks WHERE user_id = $1`

	var s domain.Streak
	err := r.db.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.LastRideDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStreak, err)
	}
	return &s, nil
}

// SaveStreak upserts the user's streak state and mirrors it onto the user
// record so profile reads stay one query
func (r *RideRepository) SaveStreak(ctx context.Context, streak *domain.Streak) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	upsert := `
		INSERT INTO streaks (user_id, current_streak, longest_streak, last_ride_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
		    longest_streak = EXCLUDED.longest_streak,
		    last_ride_date = EXCLUDED.last_ride_date
	`
	if _, err := tx.Exec(ctx, upsert, streak.UserID, streak.CurrentStreak, streak.LongestStreak, streak.LastRideDate); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveStreak, err)
	}

	mirror := `
		UPDATE users
		SET current_streak = $2, longest_streak = $3, last_ride_date = $4
		WHERE user_id = $1
	`
	if _, err := tx.Exec(ctx, mirror, streak.UserID, streak.CurrentStreak, streak.LongestStreak, streak.LastRideDate); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveStreak, err)
	}

	return tx.Commit(ctx)
}

// GetRecentItems returns one most-recent-first selection list
func (r *RideRepository) GetRecentItems(ctx context.Context, userID, docID string) ([]string, error) {
	query := `SELECT items FROM recent_items WHERE user_id = $1 AND doc_id = $2`

	var items []string
	err := r.db.QueryRow(ctx, query, userID, docID).Scan(&items)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRecents, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// SaveRecentItems overwrites one selection list
func (r *RideRepository) SaveRecentItems(ctx context.Context, userID, docID string, items []string) error {
	query := `
		INSERT INTO recent_items (user_id, doc_id, items)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, doc_id) DO UPDATE SET items = EXCLUDED.items
	`
	if _, err := r.db.Exec(ctx, query, userID, docID, items); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveRecents, err)
	}
	return nil
}
