package achievement

import (
	"context"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Repository defines achievement persistence operations
type Repository interface {
	// InsertUnlock writes the unlocked fact and its notification record in
	// one transaction. Returns false when the achievement was already
	// unlocked; a duplicate is a no-op, never an error.
	InsertUnlock(ctx context.Context, unlock domain.UnlockedAchievement, notification domain.AchievementNotification) (bool, error)

	// RevokeUnlock removes an unlock and its notification. Only pro_status
	// is ever revoked.
	RevokeUnlock(ctx context.Context, userID string, id domain.AchievementID) error

	// GetUnlocked returns every achievement the user has unlocked
	GetUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error)

	// GetPendingNotifications returns notifications not yet shown to the user
	GetPendingNotifications(ctx context.Context, userID string) ([]domain.AchievementNotification, error)

	// MarkNotificationsShown flags all of a user's notifications as shown
	MarkNotificationsShown(ctx context.Context, userID string) error

	// RecordLineUsed adds a line to the user's distinct line set and returns
	// the updated set
	RecordLineUsed(ctx context.Context, userID string, transitType domain.TransitType, line string) (*domain.LinesUsed, error)
}
