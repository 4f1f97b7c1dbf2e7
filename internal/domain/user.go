package domain

import "time"

// User is the per-user record carrying the fields the background jobs own:
// the metrics projection read by the leaderboard ranker, streak state, and
// the pro flag.
type User struct {
	ID            string    `json:"user_id"`
	Username      string    `json:"username"`
	IsPro         bool      `json:"is_pro"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastRideDate  time.Time `json:"last_ride_date"`
	LastActiveAt  time.Time `json:"last_active_at"`
	CreatedAt     time.Time `json:"created_at"`
	// Metrics is the projection consumed by the leaderboard job,
	// keyed by (window, category)
	Metrics map[BoardKey]float64 `json:"-"`
}

// LinesUsed tracks the distinct lines a user has ridden, for the
// line-set completion achievements.
type LinesUsed struct {
	UserID     string   `json:"user_id"`
	TrainLines []string `json:"train_lines"`
	BusLines   []string `json:"bus_lines"`
}

// Contains reports whether a line id is already recorded
func contains(lines []string, line string) bool {
	for _, l := range lines {
		if l == line {
			return true
		}
	}
	return false
}

// HasTrainLine reports whether the user has ridden the given train line
func (l *LinesUsed) HasTrainLine(line string) bool { return contains(l.TrainLines, line) }

// HasBusLine reports whether the user has ridden the given bus line
func (l *LinesUsed) HasBusLine(line string) bool { return contains(l.BusLines, line) }

// AllTrainLines is the full train line set required for all_aboard
var AllTrainLines = []string{"Red", "Blue", "Brown", "Green", "Orange", "Purple", "Pink", "Yellow"}

// BusLineCompletionCount is the distinct bus line count required for
// wheels_of_the_city
const BusLineCompletionCount = 120

// Streak is the day-granularity ride streak state for one user
type Streak struct {
	UserID        string    `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastRideDate  time.Time `json:"last_ride_date"`
}
