package stats

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

var (
	testNow    = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	allTimeAll = domain.StatsKey{Window: domain.WindowAllTime, Mode: domain.ModeAll}
)

func busRide(id string, start time.Time, distanceKm float64, minutes int) domain.Ride {
	return domain.Ride{
		ID:              id,
		UserID:          "u1",
		Type:            domain.TransitBus,
		Line:            "22",
		StartStop:       "A",
		EndStop:         "B",
		StartTime:       start,
		DistanceKm:      distanceKm,
		DurationMinutes: minutes,
	}
}

func trainRide(id string, start time.Time, distanceKm float64, minutes int) domain.Ride {
	r := busRide(id, start, distanceKm, minutes)
	r.Type = domain.TransitTrain
	r.Line = "Red"
	return r
}

func TestAggregate_EmptyRideSet(t *testing.T) {
	summary := Aggregate(context.Background(), "u1", nil, allTimeAll, testNow)

	assert.Equal(t, "u1", summary.UserID)
	assert.Zero(t, summary.TotalRides)
	assert.Zero(t, summary.TotalDistance)
	assert.Zero(t, summary.TotalCost)
	assert.Zero(t, summary.CostPerMile)
	assert.Empty(t, summary.MostUsedLine)
}

func TestAggregate_TimeSplitInvariant(t *testing.T) {
	rides := []domain.Ride{
		busRide("r1", testNow.Add(-48*time.Hour), 5, 47),
		busRide("r2", testNow.Add(-24*time.Hour), 3, 95),
		busRide("r3", testNow.Add(-12*time.Hour), 2, 13),
	}

	summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)

	assert.Equal(t, 155, summary.TotalTimeMinutes)
	assert.Equal(t, summary.TotalTimeMinutes, summary.TotalTimeHours*60+summary.TotalTimeRemainingMinutes)
	assert.Equal(t, 2, summary.TotalTimeHours)
	assert.Equal(t, 35, summary.TotalTimeRemainingMinutes)
}

func TestAggregate_CostPerMileGuard(t *testing.T) {
	// Rides with zero distance must not divide by zero
	rides := []domain.Ride{
		busRide("r1", testNow.Add(-time.Hour), 0, 10),
	}

	summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)

	assert.Zero(t, summary.TotalDistance)
	assert.Zero(t, summary.CostPerMile)
	assert.Equal(t, domain.FareBus, summary.TotalCost)
}

func TestAggregate_SessionCharging(t *testing.T) {
	base := testNow.Add(-24 * time.Hour)

	t.Run("rides 90 minutes apart share one fare", func(t *testing.T) {
		rides := []domain.Ride{
			busRide("r1", base, 2, 20),
			busRide("r2", base.Add(90*time.Minute), 2, 20),
		}
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, domain.FareBus, summary.TotalCost)
	})

	t.Run("rides 3 hours apart charge twice", func(t *testing.T) {
		rides := []domain.Ride{
			busRide("r1", base, 2, 20),
			busRide("r2", base.Add(3*time.Hour), 2, 20),
		}
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, 2*domain.FareBus, summary.TotalCost)
	})

	t.Run("train fare is 2.50", func(t *testing.T) {
		rides := []domain.Ride{
			trainRide("r1", base, 5, 25),
		}
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, domain.FareTrain, summary.TotalCost)
	})

	t.Run("charge follows the charged ride, not the previous ride", func(t *testing.T) {
		// r2 is within the gap of r1; r3 is within the gap of r2 but past
		// the gap of r1, so a second fare applies at r3
		rides := []domain.Ride{
			busRide("r1", base, 2, 20),
			busRide("r2", base.Add(110*time.Minute), 2, 20),
			busRide("r3", base.Add(190*time.Minute), 2, 20),
		}
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, 2*domain.FareBus, summary.TotalCost)
	})
}

func TestAggregate_CO2(t *testing.T) {
	rides := []domain.Ride{
		busRide("r1", testNow.Add(-2*time.Hour), 10, 30),
		trainRide("r2", testNow.Add(-26*time.Hour), 10, 30),
	}

	summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)

	assert.InDelta(t, 10*domain.CO2PerKmBus+10*domain.CO2PerKmTrain, summary.CO2Saved, 0.0001)
}

func TestAggregate_MostUsedLine(t *testing.T) {
	base := testNow.Add(-72 * time.Hour)

	t.Run("highest ride count wins", func(t *testing.T) {
		rides := []domain.Ride{
			trainRide("r1", base, 2, 10),
			trainRide("r2", base.Add(4*time.Hour), 2, 10),
			busRide("r3", base.Add(8*time.Hour), 2, 10),
		}
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, "Red", summary.MostUsedLine)
		assert.Equal(t, 2, summary.MostUsedLineCount)
	})

	t.Run("tie goes to the line seen first", func(t *testing.T) {
		first := trainRide("r1", base, 2, 10)
		first.Line = "Blue"
		second := busRide("r2", base.Add(time.Hour), 2, 10)
		second.Line = "147"

		summary := Aggregate(context.Background(), "u1", []domain.Ride{first, second}, allTimeAll, testNow)
		assert.Equal(t, "Blue", summary.MostUsedLine)
		assert.Equal(t, 1, summary.MostUsedLineCount)
	})

	t.Run("blank lines are ignored", func(t *testing.T) {
		ride := busRide("r1", base, 2, 10)
		ride.Line = "  "
		summary := Aggregate(context.Background(), "u1", []domain.Ride{ride}, allTimeAll, testNow)
		assert.Empty(t, summary.MostUsedLine)
	})
}

func TestAggregate_LongestRide(t *testing.T) {
	base := testNow.Add(-48 * time.Hour)
	r1 := trainRide("r1", base, 12, 40)
	r2 := busRide("r2", base.Add(5*time.Hour), 12, 35)
	r3 := busRide("r3", base.Add(10*time.Hour), 4, 15)

	summary := Aggregate(context.Background(), "u1", []domain.Ride{r1, r2, r3}, allTimeAll, testNow)

	// Strict greater-than keeps the earlier ride on a tie
	assert.Equal(t, "Red", summary.LongestRideLine)
	assert.InDelta(t, 12*domain.KmToMiles, summary.LongestRideMiles, 0.0001)
	assert.Equal(t, "A → B", summary.LongestRideRoute)
}

func TestAggregate_WindowFiltering(t *testing.T) {
	rides := []domain.Ride{
		busRide("recent", testNow.Add(-48*time.Hour), 5, 20),
		busRide("old", testNow.Add(-30*24*time.Hour), 5, 20),
	}

	t.Run("weekly window excludes old rides", func(t *testing.T) {
		key := domain.StatsKey{Window: domain.Window1W, Mode: domain.ModeAll}
		summary := Aggregate(context.Background(), "u1", rides, key, testNow)
		assert.Equal(t, 1, summary.TotalRides)
	})

	t.Run("all time includes everything", func(t *testing.T) {
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, 2, summary.TotalRides)
	})
}

func TestAggregate_ModeFiltering(t *testing.T) {
	rides := []domain.Ride{
		busRide("r1", testNow.Add(-2*time.Hour), 5, 20),
		trainRide("r2", testNow.Add(-26*time.Hour), 8, 30),
	}

	busOnly := Aggregate(context.Background(), "u1", rides, domain.StatsKey{Window: domain.WindowAllTime, Mode: domain.ModeBus}, testNow)
	trainOnly := Aggregate(context.Background(), "u1", rides, domain.StatsKey{Window: domain.WindowAllTime, Mode: domain.ModeTrain}, testNow)

	assert.Equal(t, 1, busOnly.TotalRides)
	assert.Equal(t, 5.0, busOnly.TotalDistance)
	assert.Equal(t, 1, trainOnly.TotalRides)
	assert.Equal(t, 8.0, trainOnly.TotalDistance)
}

func TestAggregate_InProgressExcluded(t *testing.T) {
	live := busRide("r1", testNow.Add(-time.Hour), 3, 15)
	live.InProgress = true

	summary := Aggregate(context.Background(), "u1", []domain.Ride{live}, allTimeAll, testNow)
	assert.Zero(t, summary.TotalRides)
}

func TestAggregate_CorruptNumericFields(t *testing.T) {
	bad := busRide("r1", testNow.Add(-time.Hour), math.NaN(), -30)
	good := busRide("r2", testNow.Add(-26*time.Hour), 5, 20)

	summary := Aggregate(context.Background(), "u1", []domain.Ride{bad, good}, allTimeAll, testNow)

	assert.Equal(t, 2, summary.TotalRides)
	assert.Equal(t, 5.0, summary.TotalDistance)
	assert.Equal(t, 20, summary.TotalTimeMinutes)
	assert.False(t, math.IsNaN(summary.CO2Saved))
}

func TestAggregate_MonthOverMonth(t *testing.T) {
	thisMonth := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	rides := []domain.Ride{
		busRide("r1", thisMonth, 10, 30),
		busRide("r2", thisMonth.Add(26*time.Hour), 10, 30),
		busRide("r3", lastMonth, 10, 30),
	}

	t.Run("all time carries the monthly deltas", func(t *testing.T) {
		summary := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
		assert.Equal(t, 1, summary.RideCountChange)
		assert.InDelta(t, 10*domain.CO2PerKmBus, summary.CO2Change, 0.0001)
	})

	t.Run("bounded windows do not", func(t *testing.T) {
		key := domain.StatsKey{Window: domain.Window1Y, Mode: domain.ModeAll}
		summary := Aggregate(context.Background(), "u1", rides, key, testNow)
		assert.Zero(t, summary.RideCountChange)
		assert.Zero(t, summary.CO2Change)
	})
}

func TestAggregate_AverageDistancePerWeek(t *testing.T) {
	rides := []domain.Ride{
		busRide("r1", testNow.Add(-24*time.Hour), 7, 20),
	}

	key := domain.StatsKey{Window: domain.Window1W, Mode: domain.ModeAll}
	summary := Aggregate(context.Background(), "u1", rides, key, testNow)

	// One week elapsed in the weekly window
	assert.InDelta(t, 7.0, summary.AverageDistancePerWeek, 0.01)

	allTime := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
	assert.Zero(t, allTime.AverageDistancePerWeek)
}

func TestAggregate_DeletionRoundTrip(t *testing.T) {
	// A recompute over an empty ride set must return the window to zero
	rides := []domain.Ride{busRide("r1", testNow.Add(-time.Hour), 5, 20)}

	withRide := Aggregate(context.Background(), "u1", rides, allTimeAll, testNow)
	assert.NotZero(t, withRide.TotalRides)

	after := Aggregate(context.Background(), "u1", []domain.Ride{}, allTimeAll, testNow)
	assert.Equal(t, zeroSummary("u1", allTimeAll, testNow), after)
}
