package debounce

// Log messages
const (
	LogMsgScheduledRecompute    = "Scheduled debounced recompute"
	LogMsgCoalescedRecompute    = "Coalesced pending recompute"
	LogMsgCapacityFlush         = "Pending timer capacity reached, flushing all"
	LogMsgExecutingRecompute    = "Executing debounced recompute"
	LogMsgRecomputeFailed       = "Debounced recompute failed"
	LogMsgShuttingDown          = "Shutting down debounce scheduler"
	LogMsgCancelledPending      = "Cancelled pending recompute"
	LogMsgShutdownComplete      = "Debounce scheduler shutdown complete"
	LogMsgShutdownTimeout       = "Debounce scheduler shutdown timeout, some recomputes may still be running"
	LogMsgScheduleAfterShutdown = "Schedule called after shutdown, ignoring"
)
