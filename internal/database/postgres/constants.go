package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Ride Operations
const (
	ErrMsgFailedToInsertRide = "failed to insert ride"
	ErrMsgFailedToGetRide    = "failed to get ride"
	ErrMsgFailedToUpdateRide = "failed to update ride"
	ErrMsgFailedToDeleteRide = "failed to delete ride"
	ErrMsgFailedToListRides  = "failed to list rides"
)

// Error Messages - Streak and Recents Operations
const (
	ErrMsgFailedToGetStreak   = "failed to get streak"
	ErrMsgFailedToSaveStreak  = "failed to save streak"
	ErrMsgFailedToGetRecents  = "failed to get recent items"
	ErrMsgFailedToSaveRecents = "failed to save recent items"
)

// Error Messages - Stats Operations
const (
	ErrMsgFailedToGetSummary    = "failed to get stats summary"
	ErrMsgFailedToApplyDelta    = "failed to apply stats delta"
	ErrMsgFailedToInitSummary   = "failed to init stats summary"
	ErrMsgFailedToSaveSnapshot  = "failed to save stats snapshot"
	ErrMsgFailedToGetDetail     = "failed to get detail stats"
	ErrMsgFailedToSaveMetrics   = "failed to save user metrics"
	ErrMsgFailedToGetStaleUsers = "failed to get stale users"
	ErrMsgFailedToMarshalDetail = "failed to marshal detail stats"
	ErrMsgFailedToScanDetail    = "failed to unmarshal detail stats"
)

// Error Messages - Leaderboard Operations
const (
	ErrMsgFailedToGetMetricValues  = "failed to get metric values"
	ErrMsgFailedToSaveUserRanks    = "failed to save user ranks"
	ErrMsgFailedToSaveLeaderboard  = "failed to save leaderboard"
	ErrMsgFailedToGetLeaderboard   = "failed to get leaderboard"
	ErrMsgFailedToGetUserRank      = "failed to get user rank"
	ErrMsgFailedToMarshalEntries   = "failed to marshal leaderboard entries"
	ErrMsgFailedToUnmarshalEntries = "failed to unmarshal leaderboard entries"
)

// Error Messages - Achievement Operations
const (
	ErrMsgFailedToInsertUnlock      = "failed to insert achievement unlock"
	ErrMsgFailedToInsertNotify      = "failed to insert achievement notification"
	ErrMsgFailedToRevokeUnlock      = "failed to revoke achievement unlock"
	ErrMsgFailedToGetUnlocked       = "failed to get unlocked achievements"
	ErrMsgFailedToGetNotifications  = "failed to get achievement notifications"
	ErrMsgFailedToMarkNotifications = "failed to mark notifications shown"
	ErrMsgFailedToRecordLineUsed    = "failed to record line used"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToGetUser         = "failed to get user"
	ErrMsgFailedToSetProStatus    = "failed to set pro status"
	ErrMsgFailedToTouchLastActive = "failed to touch last active"
)
