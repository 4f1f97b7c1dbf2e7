package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser returns a user by id, or nil when absent
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, is_pro, current_streak, longest_streak,
		       last_ride_date, last_active_at, created_at
		FROM users WHERE user_id = $1
	`
	var u domain.User
	var lastRide, lastActive pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, userID).Scan(&u.ID, &u.Username, &u.IsPro,
		&u.CurrentStreak, &u.LongestStreak, &lastRide, &lastActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	if lastRide.Valid {
		u.LastRideDate = lastRide.Time
	}
	if lastActive.Valid {
		u.LastActiveAt = lastActive.Time
	}
	return &u, nil
}

// SetProStatus flips the pro flag and returns the previous value. The user
// row is created on first touch so pro upgrades do not depend on signup
// ordering.
func (r *UserRepository) SetProStatus(ctx context.Context, userID string, isPro bool) (bool, error) {
	query := `
		INSERT INTO users (user_id, is_pro)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET is_pro = EXCLUDED.is_pro
		RETURNING (SELECT COALESCE(u.is_pro, FALSE) FROM users u WHERE u.user_id = $1)
	`
	var wasPro pgtype.Bool
	if err := r.db.QueryRow(ctx, query, userID, isPro).Scan(&wasPro); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToSetProStatus, err)
	}
	return wasPro.Bool, nil
}

// TouchLastActive records the user's latest activity instant
func (r *UserRepository) TouchLastActive(ctx context.Context, userID string, at time.Time) error {
	query := `
		INSERT INTO users (user_id, last_active_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET last_active_at = GREATEST(users.last_active_at, EXCLUDED.last_active_at)
	`
	if _, err := r.db.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToTouchLastActive, err)
	}
	return nil
}
