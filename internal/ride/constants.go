package ride

// Suspected false ride bounds: a long duration with almost no distance looks
// like a sensor left running, not a trip
const (
	SuspectedFalseRideMinSeconds = 600
	SuspectedFalseRideMaxMiles   = 0.1
)

// RecentItemsLimit caps each most-recent-first selection list
const RecentItemsLimit = 5

// Recent selection document naming
const (
	RecentFieldLine      = "line"
	RecentFieldStartStop = "startStop"
	RecentFieldEndStop   = "endStop"
	RecentLineNone       = "none"
	FallbackStartStopDoc = "startStop"
)

// Error messages
const (
	ErrMsgInsertRide  = "failed to insert ride: %w"
	ErrMsgGetRide     = "failed to get ride %s: %w"
	ErrMsgUpdateRide  = "failed to update ride %s: %w"
	ErrMsgDeleteRide  = "failed to delete ride %s: %w"
	ErrMsgGetStreak   = "failed to get streak: %w"
	ErrMsgSaveStreak  = "failed to save streak: %w"
	ErrMsgGetRecents  = "failed to get recent selections: %w"
	ErrMsgSaveRecents = "failed to save recent selections: %w"
)

// Log messages
const (
	LogMsgRideStarted         = "Live ride started"
	LogMsgRideUpdated         = "Live ride updated"
	LogMsgRideSuspectedFalse  = "Ride update flagged as suspected false ride"
	LogMsgRideEnded           = "Ride finalized"
	LogMsgRideDiscarded       = "Ride discarded"
	LogMsgManualRideCreated   = "Manual ride recorded"
	LogMsgStreakUpdated       = "Ride streak updated"
	LogMsgStreakPublishFailed = "Failed to publish streak updated event"
	LogMsgRidePublishFailed   = "Failed to publish ride event"
	LogMsgRecentsUpdateFailed = "Failed to update recent selections"
	LogMsgStreakUpdateFailed  = "Failed to update streak"
)
