package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingURLParam   = "Missing %s path parameter"
	ErrMsgInvalidStartTime  = "start_time must be RFC 3339"

	// Ride operation error messages
	ErrMsgStartRideFailed   = "Failed to start ride"
	ErrMsgUpdateRideFailed  = "Failed to update ride"
	ErrMsgEndRideFailed     = "Failed to end ride"
	ErrMsgDiscardRideFailed = "Failed to discard ride"
	ErrMsgManualRideFailed  = "Failed to record manual ride"
	ErrMsgGetRideFailed     = "Failed to get ride"
	ErrMsgGetStreakFailed   = "Failed to get streak"
	ErrMsgGetRecentsFailed  = "Failed to get recent selections"

	// Stats operation error messages
	ErrMsgGetStatsFailed       = "Failed to get stats"
	ErrMsgGetDetailStatsFailed = "Failed to get detail stats"
	ErrMsgRecomputeFailed      = "Failed to recompute stats"

	// Leaderboard operation error messages
	ErrMsgGetLeaderboardFailed = "Failed to get leaderboard"
	ErrMsgGetUserRankFailed    = "Failed to get user rank"

	// Achievement operation error messages
	ErrMsgGetAchievementsFailed  = "Failed to get achievements"
	ErrMsgRecordShareFailed      = "Failed to record share"
	ErrMsgGetNotificationsFailed = "Failed to get notifications"
	ErrMsgMarkShownFailed        = "Failed to mark notifications shown"

	// User management error messages
	ErrMsgGetUserFailed   = "Failed to get user"
	ErrMsgUpgradeFailed   = "Failed to upgrade user"
	ErrMsgRevokeProFailed = "Failed to revoke pro status"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgRideDiscardedSuccess      = "Ride discarded"
	MsgShareRecordedSuccess      = "Share recorded"
	MsgNotificationsShownSuccess = "Notifications acknowledged"
	MsgRecomputeStartedSuccess   = "Stats recomputed"
	MsgProUpgradedSuccess        = "Upgraded to pro"
	MsgProRevokedSuccess         = "Pro status revoked"
)
