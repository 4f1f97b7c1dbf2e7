package stats

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// Aggregate reduces a user's ride set into the summary for one (window, mode)
// key. The ride set may be unfiltered: window and mode filtering happens here.
// Any internal failure yields a zeroed summary instead of propagating, so one
// user's bad data cannot abort a batch covering other windows or users.
func Aggregate(ctx context.Context, userID string, rides []domain.Ride, key domain.StatsKey, now time.Time) (summary domain.StatsSummary) {
	summary = zeroSummary(userID, key, now)

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgAggregationPanic,
				"user_id", userID, "window", key.Window, "mode", key.Mode, "panic", r)
			summary = zeroSummary(userID, key, now)
		}
	}()

	included := filterRides(rides, key, now)

	// Deterministic order for session-cost charging
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].StartTime.Before(included[j].StartTime)
	})

	lineCounts := make(map[string]int)
	lineOrder := make([]string, 0)
	var lastChargeTime time.Time
	var haveCharge bool
	var longest *domain.Ride

	for i := range included {
		ride := &included[i]

		summary.TotalDistance += nonNegative(ride.DistanceKm)
		summary.TotalTimeMinutes += maxInt(ride.DurationMinutes, 0)
		summary.TotalRides++

		if !haveCharge || ride.StartTime.Sub(lastChargeTime) > domain.SessionGap {
			summary.TotalCost += ride.Type.Fare()
			lastChargeTime = ride.StartTime
			haveCharge = true
		}

		summary.CO2Saved += nonNegative(ride.DistanceKm) * ride.Type.CO2PerKm()

		if line := strings.TrimSpace(ride.Line); line != "" {
			if _, seen := lineCounts[line]; !seen {
				lineOrder = append(lineOrder, line)
			}
			lineCounts[line]++
		}

		if longest == nil || ride.DistanceKm > longest.DistanceKm {
			longest = ride
		}
	}

	summary.SplitTime()

	if summary.TotalDistance > 0 {
		summary.CostPerMile = summary.TotalCost / summary.TotalDistance
	}

	// Stable by first-seen order, so ties go to the line seen first
	sort.SliceStable(lineOrder, func(i, j int) bool {
		return lineCounts[lineOrder[i]] > lineCounts[lineOrder[j]]
	})
	if len(lineOrder) > 0 {
		summary.MostUsedLine = lineOrder[0]
		summary.MostUsedLineCount = lineCounts[lineOrder[0]]
	}

	if longest != nil {
		summary.LongestRideMiles = longest.DistanceKm * domain.KmToMiles
		summary.LongestRideLine = longest.Line
		if longest.StartStop != "" && longest.EndStop != "" {
			summary.LongestRideRoute = longest.StartStop + " → " + longest.EndStop
		}
	}

	if cutoff, bounded := key.Window.CutoffAt(now); bounded {
		elapsedWeeks := now.Sub(cutoff).Hours() / (24 * 7)
		if elapsedWeeks > 0 {
			summary.AverageDistancePerWeek = summary.TotalDistance / elapsedWeeks
		}
	}

	if key.Window == domain.WindowAllTime {
		summary.RideCountChange, summary.CO2Change = monthOverMonth(rides, key.Mode, now)
	}

	return summary
}

// monthOverMonth computes this-calendar-month minus previous-calendar-month
// ride count and CO2, from the same ride set pre-filtered to each sub-range
func monthOverMonth(rides []domain.Ride, mode domain.Mode, now time.Time) (int, float64) {
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)

	var thisCount, lastCount int
	var thisCO2, lastCO2 float64

	for i := range rides {
		ride := &rides[i]
		if ride.InProgress || !mode.Matches(ride.Type) {
			continue
		}
		co2 := nonNegative(ride.DistanceKm) * ride.Type.CO2PerKm()
		switch {
		case !ride.StartTime.Before(startOfThisMonth):
			thisCount++
			thisCO2 += co2
		case !ride.StartTime.Before(startOfLastMonth):
			lastCount++
			lastCO2 += co2
		}
	}

	return thisCount - lastCount, thisCO2 - lastCO2
}

func filterRides(rides []domain.Ride, key domain.StatsKey, now time.Time) []domain.Ride {
	included := make([]domain.Ride, 0, len(rides))
	for i := range rides {
		if domain.Includes(&rides[i], key.Window, key.Mode, now) {
			included = append(included, rides[i])
		}
	}
	return included
}

func zeroSummary(userID string, key domain.StatsKey, now time.Time) domain.StatsSummary {
	return domain.StatsSummary{
		UserID:    userID,
		Window:    key.Window,
		Mode:      key.Mode,
		UpdatedAt: now,
	}
}

// nonNegative treats missing or corrupted numeric fields as zero so NaN and
// negative garbage never propagate into totals
func nonNegative(v float64) float64 {
	if v != v || v < 0 { // v != v catches NaN
		return 0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
