package leaderboard

import (
	"math"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Rank assigns competition ranks ("1,2,2,4" style) and percentiles to metric
// values already sorted descending. Each tie group shares the rank and
// percentile of its first member.
func Rank(key domain.BoardKey, values []domain.MetricValue, now time.Time) []domain.UserRank {
	n := len(values)
	ranks := make([]domain.UserRank, 0, n)

	currentRank := 0
	currentPercentile := 0.0
	var previous float64

	for i, mv := range values {
		if i == 0 || mv.Value != previous {
			currentRank = i + 1
			currentPercentile = percentileAt(n, i)
			previous = mv.Value
		}

		ranks = append(ranks, domain.UserRank{
			UserID:      mv.UserID,
			Window:      key.Window,
			Category:    key.Category,
			Rank:        currentRank,
			Percentile:  currentPercentile,
			MetricValue: mv.Value,
			UpdatedAt:   now,
		})
	}

	return ranks
}

// percentileAt computes the positional percentile for index i of n entries.
// A single-entry board is the 100th percentile.
func percentileAt(n, i int) float64 {
	if n <= 1 {
		return 100
	}
	return round2(float64(n-i-1) / float64(n-1) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TopEntries collects the leading ranked users into global leaderboard rows
func TopEntries(ranks []domain.UserRank, limit int) []domain.LeaderboardEntry {
	if len(ranks) < limit {
		limit = len(ranks)
	}
	entries := make([]domain.LeaderboardEntry, 0, limit)
	for _, r := range ranks[:limit] {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      r.UserID,
			Rank:        r.Rank,
			MetricValue: r.MetricValue,
		})
	}
	return entries
}

// EligibilityCutoff returns the earliest last-active time a user may have and
// still be ranked on a board for the given window
func EligibilityCutoff(w domain.Window, now time.Time) time.Time {
	switch w {
	case domain.Window1W:
		return now.Add(-RecencyCutoff1w)
	case domain.Window1M:
		return now.Add(-RecencyCutoff1m)
	case domain.Window1Y, domain.WindowYTD:
		return now.Add(-RecencyCutoff1y)
	default:
		return now.Add(-RecencyCutoffAllTime)
	}
}
