package user

// Error messages
const (
	ErrMsgGetUser         = "failed to get user %s: %w"
	ErrMsgSetProStatus    = "failed to set pro status for %s: %w"
	ErrMsgTouchLastActive = "failed to record activity for %s: %w"
)

// Log messages
const (
	LogMsgProUpgraded        = "User upgraded to pro"
	LogMsgProRevoked         = "Pro status revoked"
	LogMsgProUnchanged       = "Pro status already set, skipping"
	LogMsgActivityRecorded   = "User activity recorded"
	LogMsgProPublishFailed   = "Failed to publish pro status changed event"
	LogMsgActivityDecodeFail = "Failed to decode user activity payload"
)
