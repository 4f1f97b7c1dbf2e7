package stats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

func TestAggregateDetails_EmptyRideSet(t *testing.T) {
	details := AggregateDetails(context.Background(), "u1", nil, allTimeAll, testNow)

	assert.Equal(t, "u1", details.UserID)
	assert.Empty(t, details.RideTopLines)
	assert.Nil(t, details.MostUsedLineDetails)
	assert.Empty(t, details.LongestRides)
	assert.Zero(t, details.CostAnalysis.TotalSavings)
}

func TestAggregateDetails_PerLineSessionCharging(t *testing.T) {
	base := testNow.Add(-24 * time.Hour)

	// Two lines ridden in alternation within one global session window.
	// Per-line charging bills each line once.
	red := trainRide("r1", base, 3, 15)
	bus := busRide("r2", base.Add(30*time.Minute), 2, 10)
	redAgain := trainRide("r3", base.Add(60*time.Minute), 3, 15)

	details := AggregateDetails(context.Background(), "u1", []domain.Ride{red, bus, redAgain}, allTimeAll, testNow)

	assert.InDelta(t, domain.FareTrain+domain.FareBus, details.CostAnalysis.TotalSavings, 0.0001)
}

func TestAggregateDetails_LineAccumulation(t *testing.T) {
	base := testNow.Add(-48 * time.Hour)
	rides := []domain.Ride{
		trainRide("r1", base, 4, 20),
		trainRide("r2", base.Add(5*time.Hour), 6, 25),
		busRide("r3", base.Add(10*time.Hour), 2, 10),
	}

	details := AggregateDetails(context.Background(), "u1", rides, allTimeAll, testNow)

	require.Len(t, details.RideTopLines, 2)
	assert.Equal(t, "Red", details.RideTopLines[0].Line)
	assert.Equal(t, 2, details.RideTopLines[0].RideCount)
	assert.Equal(t, 10.0, details.RideTopLines[0].TotalDistanceKm)
	assert.Equal(t, 45, details.RideTopLines[0].TotalMinutes)
	assert.InDelta(t, 10*domain.CO2PerKmTrain, details.RideTopLines[0].CO2Kg, 0.0001)

	// Distance ranking orders by km, not ride count
	assert.Equal(t, "Red", details.DistanceTopLines[0].Line)
	assert.Equal(t, "22", details.DistanceTopLines[1].Line)
}

func TestAggregateDetails_TopLinesTruncated(t *testing.T) {
	base := testNow.Add(-72 * time.Hour)
	rides := make([]domain.Ride, 0, 8)
	for i := 0; i < 8; i++ {
		r := busRide(fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*3*time.Hour), float64(i+1), 10)
		r.Line = fmt.Sprintf("line-%d", i)
		rides = append(rides, r)
	}

	details := AggregateDetails(context.Background(), "u1", rides, allTimeAll, testNow)

	assert.Len(t, details.DistanceTopLines, TopLinesLimit)
	assert.Equal(t, "line-7", details.DistanceTopLines[0].Line)
	assert.Len(t, details.CostAnalysis.TopExpensiveRoutes, TopLinesLimit)
	assert.Len(t, details.LongestRides, TopLinesLimit)
}

func TestAggregateDetails_CostRanking(t *testing.T) {
	base := testNow.Add(-24 * time.Hour)

	// Short line pays the same fare over less distance, so it ranks as
	// more expensive per mile
	short := busRide("r1", base, 1, 5)
	short.Line = "short"
	long := busRide("r2", base.Add(10*time.Minute), 10, 40)
	long.Line = "long"

	details := AggregateDetails(context.Background(), "u1", []domain.Ride{short, long}, allTimeAll, testNow)

	require.Len(t, details.CostAnalysis.TopExpensiveRoutes, 2)
	assert.Equal(t, "short", details.CostAnalysis.TopExpensiveRoutes[0].Line)
	assert.Greater(t, details.CostAnalysis.TopExpensiveRoutes[0].CostPerMile,
		details.CostAnalysis.TopExpensiveRoutes[1].CostPerMile)
}

func TestAggregateDetails_MostUsedLineDetails(t *testing.T) {
	base := testNow.Add(-48 * time.Hour)

	r1 := trainRide("r1", base, 3, 15)
	r1.StartStop = "Clark"
	r1.EndStop = "Lake"
	r1.StopCount = 4
	r2 := trainRide("r2", base.Add(5*time.Hour), 3, 15)
	r2.StartStop = "Clark"
	r2.EndStop = "Belmont"
	r2.StopCount = 9
	r3 := busRide("r3", base.Add(10*time.Hour), 3, 15)

	details := AggregateDetails(context.Background(), "u1", []domain.Ride{r1, r2, r3}, allTimeAll, testNow)

	require.NotNil(t, details.MostUsedLineDetails)
	assert.Equal(t, "Red", details.MostUsedLineDetails.Line)
	assert.Equal(t, 9, details.MostUsedLineDetails.LongestRideStops)
	// Clark visited twice, the rest once with lexical tie-break
	assert.Equal(t, []string{"Clark", "Belmont", "Lake"}, details.MostUsedLineDetails.TopStops)
}

func TestAggregateDetails_LongestRides(t *testing.T) {
	base := testNow.Add(-24 * time.Hour)
	rides := []domain.Ride{
		busRide("r1", base, 2, 10),
		trainRide("r2", base.Add(3*time.Hour), 12, 40),
		busRide("r3", base.Add(6*time.Hour), 7, 25),
	}

	details := AggregateDetails(context.Background(), "u1", rides, allTimeAll, testNow)

	require.Len(t, details.LongestRides, 3)
	assert.Equal(t, "r2", details.LongestRides[0].RideID)
	assert.Equal(t, "r3", details.LongestRides[1].RideID)
	assert.Equal(t, "r1", details.LongestRides[2].RideID)
}

func TestAggregateDetails_WindowFiltering(t *testing.T) {
	rides := []domain.Ride{
		busRide("recent", testNow.Add(-48*time.Hour), 5, 20),
		busRide("old", testNow.Add(-40*24*time.Hour), 5, 20),
	}

	key := domain.StatsKey{Window: domain.Window1M, Mode: domain.ModeAll}
	details := AggregateDetails(context.Background(), "u1", rides, key, testNow)

	require.Len(t, details.LongestRides, 1)
	assert.Equal(t, "recent", details.LongestRides[0].RideID)
}
