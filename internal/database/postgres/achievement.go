package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// AchievementRepository implements the achievement repository for PostgreSQL
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// InsertUnlock writes the unlocked fact and its notification record in one
// transaction. The primary key guard makes a concurrent duplicate a no-op,
// so exactly one caller observes inserted=true.
func (r *AchievementRepository) InsertUnlock(ctx context.Context, unlock domain.UnlockedAchievement, notification domain.AchievementNotification) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	unlockSQL := `
		INSERT INTO unlocked_achievements (user_id, achievement_id, name, description, category, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, unlockSQL, unlock.UserID, unlock.ID, unlock.Name,
		unlock.Description, unlock.Category, unlock.UnlockedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertUnlock, err)
	}
	if tag.RowsAffected() == 0 {
		// Already unlocked; nothing to notify
		return false, tx.Commit(ctx)
	}

	notifySQL := `
		INSERT INTO achievement_notifications (user_id, achievement_id, name, description, category, shown, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	_, err = tx.Exec(ctx, notifySQL, notification.UserID, notification.ID, notification.Name,
		notification.Description, notification.Category, notification.Shown, notification.UnlockedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertNotify, err)
	}

	return true, tx.Commit(ctx)
}

// RevokeUnlock removes an unlock and its notification
func (r *AchievementRepository) RevokeUnlock(ctx context.Context, userID string, id domain.AchievementID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM unlocked_achievements WHERE user_id = $1 AND achievement_id = $2`, userID, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRevokeUnlock, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM achievement_notifications WHERE user_id = $1 AND achievement_id = $2`, userID, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRevokeUnlock, err)
	}

	return tx.Commit(ctx)
}

// GetUnlocked returns every achievement the user has unlocked, newest first
func (r *AchievementRepository) GetUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	query := `
		SELECT user_id, achievement_id, name, description, category, unlocked_at
		FROM unlocked_achievements WHERE user_id = $1
		ORDER BY unlocked_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUnlocked, err)
	}
	defer rows.Close()

	unlocked := make([]domain.UnlockedAchievement, 0)
	for rows.Next() {
		var u domain.UnlockedAchievement
		if err := rows.Scan(&u.UserID, &u.ID, &u.Name, &u.Description, &u.Category, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUnlocked, err)
		}
		unlocked = append(unlocked, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUnlocked, err)
	}
	return unlocked, nil
}

// GetPendingNotifications returns notifications not yet shown to the user
func (r *AchievementRepository) GetPendingNotifications(ctx context.Context, userID string) ([]domain.AchievementNotification, error) {
	query := `
		SELECT user_id, achievement_id, name, description, category, shown, unlocked_at
		FROM achievement_notifications
		WHERE user_id = $1 AND NOT shown
		ORDER BY unlocked_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetNotifications, err)
	}
	defer rows.Close()

	notifications := make([]domain.AchievementNotification, 0)
	for rows.Next() {
		var n domain.AchievementNotification
		if err := rows.Scan(&n.UserID, &n.ID, &n.Name, &n.Description, &n.Category, &n.Shown, &n.UnlockedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetNotifications, err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetNotifications, err)
	}
	return notifications, nil
}

// MarkNotificationsShown flags all of a user's notifications as shown
func (r *AchievementRepository) MarkNotificationsShown(ctx context.Context, userID string) error {
	query := `UPDATE achievement_notifications SET shown = TRUE WHERE user_id = $1 AND NOT shown`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkNotifications, err)
	}
	return nil
}

// RecordLineUsed adds a line to the user's distinct line set and returns the
// updated set. The array append is conditional inside the statement, so
// concurrent recorders of the same line converge on one entry.
func (r *AchievementRepository) RecordLineUsed(ctx context.Context, userID string, transitType domain.TransitType, line string) (*domain.LinesUsed, error) {
	column := "bus_lines"
	if transitType == domain.TransitTrain {
		column = "train_lines"
	}

	query := fmt.Sprintf(`
		INSERT INTO lines_used (user_id, %[1]s)
		VALUES ($1, ARRAY[$2])
		ON CONFLICT (user_id) DO UPDATE
		SET %[1]s = CASE
			WHEN $2 = ANY (lines_used.%[1]s) THEN lines_used.%[1]s
			ELSE array_append(lines_used.%[1]s, $2)
		END
		RETURNING user_id, train_lines, bus_lines
	`, column)

	var used domain.LinesUsed
	err := r.db.QueryRow(ctx, query, userID, line).Scan(&used.UserID, &used.TrainLines, &used.BusLines)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.LinesUsed{UserID: userID}, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToRecordLineUsed, err)
	}
	return &used, nil
}
