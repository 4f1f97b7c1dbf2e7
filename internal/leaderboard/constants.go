package leaderboard

import "time"

// TopEntriesLimit is the number of entries kept in a global leaderboard document
const TopEntriesLimit = 100

// Eligibility recency cutoffs per window. Users with no activity inside the
// cutoff are excluded so abandoned accounts do not occupy ranks.
const (
	RecencyCutoff1w      = 30 * 24 * time.Hour
	RecencyCutoff1m      = 90 * 24 * time.Hour
	RecencyCutoff1y      = 365 * 24 * time.Hour
	RecencyCutoffAllTime = 2 * 365 * 24 * time.Hour
)

// Error messages
const (
	ErrMsgFetchMetricValues = "failed to fetch metric values for %s: %w"
	ErrMsgSaveRanks         = "failed to save user ranks for %s: %w"
	ErrMsgSaveLeaderboard   = "failed to save leaderboard %s: %w"
	ErrMsgGetLeaderboard    = "failed to get leaderboard %s: %w"
	ErrMsgGetUserRank       = "failed to get user rank for %s on %s: %w"
)

// Log messages
const (
	LogMsgRankingRunStarted  = "Leaderboard ranking run started"
	LogMsgRankingRunComplete = "Leaderboard ranking run complete"
	LogMsgBoardRanked        = "Leaderboard ranked"
	LogMsgBoardRunFailed     = "Leaderboard run failed for board, continuing"
	LogMsgPublishFailed      = "Failed to publish leaderboard updated event"
	LogMsgNoEligibleUsers    = "No eligible users for board"
)
