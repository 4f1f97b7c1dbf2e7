package worker

// Log messages for the leaderboard worker
const (
	LogMsgLeaderboardWorkerStarted = "Leaderboard worker started"
	LogMsgLeaderboardWorkerStopped = "Leaderboard worker stopped"
	LogMsgLeaderboardRunFailed     = "Leaderboard run failed"
	LogMsgLeaderboardRunTriggered  = "Leaderboard run manually triggered"
)

// Log messages for the sweep worker
const (
	LogMsgSweepWorkerStarted = "Sweep worker started"
	LogMsgSweepWorkerStopped = "Sweep worker stopped"
	LogMsgSweepRunFailed     = "Stale stats sweep failed"
)

// SweepBatchLimit caps how many stale users one sweep pass refreshes so a
// large backlog drains across cycles instead of monopolizing the database
const SweepBatchLimit = 200
