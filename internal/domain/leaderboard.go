package domain

import "time"

// Category is the metric a leaderboard ranks users by
type Category string

const (
	CategoryRides    Category = "rides"
	CategoryDistance Category = "distance"
	CategoryCO2      Category = "co2"
)

// Categories lists every leaderboard category in a stable order
func Categories() []Category {
	return []Category{CategoryRides, CategoryDistance, CategoryCO2}
}

// IsValid reports whether the category is a known value
func (c Category) IsValid() bool {
	switch c {
	case CategoryRides, CategoryDistance, CategoryCO2:
		return true
	}
	return false
}

// BoardKey identifies one leaderboard: a (window, category) pair
type BoardKey struct {
	Window   Window
	Category Category
}

// BoardKeys returns every (window, category) pair in a stable order
func BoardKeys() []BoardKey {
	keys := make([]BoardKey, 0, len(Windows())*len(Categories()))
	for _, w := range Windows() {
		for _, c := range Categories() {
			keys = append(keys, BoardKey{Window: w, Category: c})
		}
	}
	return keys
}

// DocID renders the key in the persisted document id format
func (k BoardKey) DocID() string {
	return string(k.Window) + "_" + string(k.Category)
}

// MetricValue is one eligible user's value for a board, as read from the
// metrics projection. The data source returns these pre-sorted descending.
type MetricValue struct {
	UserID string
	Value  float64
}

// LeaderboardEntry is one row of a global top-100 document
type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	Rank        int     `json:"rank"`
	MetricValue float64 `json:"metric_value"`
}

// UserRank is the per-user rank document for one (window, category) pair
type UserRank struct {
	UserID      string    `json:"user_id"`
	Window      Window    `json:"window"`
	Category    Category  `json:"category"`
	Rank        int       `json:"rank"`
	Percentile  float64   `json:"percentile"`
	MetricValue float64   `json:"metric_value"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Leaderboard is the global document for one (window, category) pair
type Leaderboard struct {
	Window     Window             `json:"window"`
	Category   Category           `json:"category"`
	Top100     []LeaderboardEntry `json:"top100"`
	TotalUsers int                `json:"total_users"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
