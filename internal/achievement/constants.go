package achievement

import "time"

// Specialty ride evaluation bounds
const (
	NightOwlHour       = 23
	EarlyBirdHour      = 6
	ScenicRouteStops   = 15
	OneStopWonderStops = 1
)

// Unlock cache sizing. Entries only say "already unlocked", so a short TTL
// is safe: a miss falls through to the guarded insert.
const (
	UnlockCacheSize = 10000
	UnlockCacheTTL  = 30 * time.Minute
)

// Error messages
const (
	ErrMsgCheckUnlocked    = "failed to check unlock for %s: %w"
	ErrMsgInsertUnlock     = "failed to insert unlock %s for user %s: %w"
	ErrMsgRevokeUnlock     = "failed to revoke %s for user %s: %w"
	ErrMsgGetUnlocked      = "failed to get unlocked achievements: %w"
	ErrMsgGetNotifications = "failed to get achievement notifications: %w"
	ErrMsgMarkShown        = "failed to mark notifications shown: %w"
	ErrMsgRecordLine       = "failed to record line usage: %w"
)

// Log messages
const (
	LogMsgUnlocked            = "Achievement unlocked"
	LogMsgAlreadyUnlocked     = "Achievement already unlocked, skipping"
	LogMsgUnknownAchievement  = "Unknown achievement id, skipping"
	LogMsgRevoked             = "Achievement revoked"
	LogMsgCrossingEvaluated   = "Threshold crossing evaluated"
	LogMsgUnlockFailed        = "Failed to unlock achievement"
	LogMsgPublishUnlockFailed = "Failed to publish achievement unlocked event"
	LogMsgPayloadDecodeFailed = "Failed to decode event payload"
	LogMsgSpecialtyEvalFailed = "Specialty evaluation failed for ride"
	LogMsgLineTrackingFailed  = "Line usage tracking failed"
	LogMsgStreakEvalFailed    = "Streak evaluation failed"
	LogMsgProStatusEvalFailed = "Pro status evaluation failed"
)
