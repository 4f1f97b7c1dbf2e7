package stats

import (
	"context"
	"sort"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// AggregateDetails reduces a user's ride set into the per-line breakdowns for
// one (window, mode) key. Like Aggregate, any internal failure yields an empty
// result rather than aborting the batch. Rankings truncate to TopLinesLimit;
// ties beyond the sort key keep insertion order, which callers must not rely on.
func AggregateDetails(ctx context.Context, userID string, rides []domain.Ride, key domain.StatsKey, now time.Time) (details domain.DetailStats) {
	details = emptyDetails(userID, key, now)

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgDetailAggregationPanic,
				"user_id", userID, "window", key.Window, "mode", key.Mode, "panic", r)
			details = emptyDetails(userID, key, now)
		}
	}()

	included := filterRides(rides, key, now)
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].StartTime.Before(included[j].StartTime)
	})

	lineStats := make(map[string]*domain.LineStats)
	lineOrder := make([]string, 0)
	stopVisits := make(map[string]map[string]int)
	// Session charging applied independently per line
	lastChargeByLine := make(map[string]time.Time)
	costByLine := make(map[string]float64)
	digests := make([]domain.RideDigest, 0, len(included))

	for i := range included {
		ride := &included[i]
		line := ride.Line

		if last, ok := lastChargeByLine[line]; !ok || ride.StartTime.Sub(last) > domain.SessionGap {
			costByLine[line] += ride.Type.Fare()
			lastChargeByLine[line] = ride.StartTime
		}

		ls, ok := lineStats[line]
		if !ok {
			ls = &domain.LineStats{Line: line}
			lineStats[line] = ls
			lineOrder = append(lineOrder, line)
		}
		ls.TotalDistanceKm += nonNegative(ride.DistanceKm)
		ls.TotalMinutes += maxInt(ride.DurationMinutes, 0)
		ls.RideCount++
		ls.CO2Kg += nonNegative(ride.DistanceKm) * ride.Type.CO2PerKm()

		visits, ok := stopVisits[line]
		if !ok {
			visits = make(map[string]int)
			stopVisits[line] = visits
		}
		if ride.StartStop != "" {
			visits[ride.StartStop]++
		}
		if ride.EndStop != "" {
			visits[ride.EndStop]++
		}

		digests = append(digests, domain.RideDigest{
			RideID:     ride.ID,
			Line:       line,
			DistanceKm: ride.DistanceKm,
			StartStop:  ride.StartStop,
			EndStop:    ride.EndStop,
			StopCount:  ride.StopCount,
		})
	}

	details.DistanceTopLines = topLines(lineStats, lineOrder, func(ls *domain.LineStats) float64 { return ls.TotalDistanceKm })
	details.TimeTopLines = topLines(lineStats, lineOrder, func(ls *domain.LineStats) float64 { return float64(ls.TotalMinutes) })
	details.RideTopLines = topLines(lineStats, lineOrder, func(ls *domain.LineStats) float64 { return float64(ls.RideCount) })
	details.CO2TopLines = topLines(lineStats, lineOrder, func(ls *domain.LineStats) float64 { return ls.CO2Kg })

	var totalCost float64
	costRanking := make([]domain.LineCost, 0, len(lineOrder))
	for _, line := range lineOrder {
		cost := costByLine[line]
		totalCost += cost
		miles := lineStats[line].TotalDistanceKm * domain.KmToMiles
		lc := domain.LineCost{Line: line}
		if miles > 0 {
			lc.CostPerMile = cost / miles
		}
		costRanking = append(costRanking, lc)
	}
	sort.SliceStable(costRanking, func(i, j int) bool {
		return costRanking[i].CostPerMile > costRanking[j].CostPerMile
	})
	details.CostAnalysis = domain.CostAnalysis{
		TotalSavings:       totalCost,
		TopExpensiveRoutes: truncateCosts(costRanking, TopLinesLimit),
	}

	if mostUsed := mostUsedLine(lineStats, lineOrder); mostUsed != "" {
		details.MostUsedLineDetails = &domain.MostUsedLineDetails{
			Line:             mostUsed,
			LongestRideStops: maxStopCount(digests, mostUsed),
			TopStops:         topStops(stopVisits[mostUsed], TopLinesLimit),
		}
	}

	sort.SliceStable(digests, func(i, j int) bool {
		return digests[i].DistanceKm > digests[j].DistanceKm
	})
	if len(digests) > TopLinesLimit {
		digests = digests[:TopLinesLimit]
	}
	details.LongestRides = digests

	return details
}

func topLines(lineStats map[string]*domain.LineStats, order []string, metric func(*domain.LineStats) float64) []domain.LineStats {
	ranked := make([]domain.LineStats, 0, len(order))
	for _, line := range order {
		ranked = append(ranked, *lineStats[line])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(&ranked[i]) > metric(&ranked[j])
	})
	if len(ranked) > TopLinesLimit {
		ranked = ranked[:TopLinesLimit]
	}
	return ranked
}

func mostUsedLine(lineStats map[string]*domain.LineStats, order []string) string {
	best := ""
	bestCount := 0
	for _, line := range order {
		if lineStats[line].RideCount > bestCount {
			best = line
			bestCount = lineStats[line].RideCount
		}
	}
	return best
}

func maxStopCount(digests []domain.RideDigest, line string) int {
	best := 0
	for i := range digests {
		if digests[i].Line == line && digests[i].StopCount > best {
			best = digests[i].StopCount
		}
	}
	return best
}

func topStops(visits map[string]int, limit int) []string {
	stops := make([]string, 0, len(visits))
	for stop := range visits {
		stops = append(stops, stop)
	}
	sort.SliceStable(stops, func(i, j int) bool {
		if visits[stops[i]] != visits[stops[j]] {
			return visits[stops[i]] > visits[stops[j]]
		}
		return stops[i] < stops[j]
	})
	if len(stops) > limit {
		stops = stops[:limit]
	}
	return stops
}

func truncateCosts(costs []domain.LineCost, limit int) []domain.LineCost {
	if len(costs) > limit {
		return costs[:limit]
	}
	return costs
}

func emptyDetails(userID string, key domain.StatsKey, now time.Time) domain.DetailStats {
	return domain.DetailStats{
		UserID:    userID,
		Window:    key.Window,
		Mode:      key.Mode,
		UpdatedAt: now,
	}
}
