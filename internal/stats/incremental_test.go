package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

func TestApplyRideDelta_PatchesIncludedKeysOnly(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	// A bus ride from an hour ago falls inside every window but only
	// matches the all and bus modes
	ride := busRide("r1", time.Now().Add(-time.Hour), 5, 20)

	existing := &domain.StatsSummary{
		UserID: "u1", Window: domain.WindowAllTime, Mode: domain.ModeAll,
		TotalRides: 3, TotalDistance: 20, CO2Saved: 3,
	}
	repo.On("GetSummary", mock.Anything, "u1", allTimeAll).Return(existing, nil)
	repo.On("ApplyDelta", mock.Anything, "u1", mock.Anything, mock.Anything).Return(true, nil)

	before, after, err := svc.ApplyRideDelta(context.Background(), &ride, +1)

	require.NoError(t, err)
	assert.Equal(t, domain.Totals{Rides: 3, DistanceKm: 20, CO2Kg: 3}, before)
	assert.Equal(t, 4, after.Rides)
	assert.Equal(t, 25.0, after.DistanceKm)
	assert.InDelta(t, 3+5*domain.CO2PerKmBus, after.CO2Kg, 0.0001)

	// 5 windows x {all, bus}; never the train mode
	repo.AssertNumberOfCalls(t, "ApplyDelta", 2*len(domain.Windows()))
	for _, call := range repo.Calls {
		if call.Method != "ApplyDelta" {
			continue
		}
		key := call.Arguments.Get(2).(domain.StatsKey)
		assert.NotEqual(t, domain.ModeTrain, key.Mode)
	}
}

func TestApplyRideDelta_InitializesMissingDocuments(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	ride := trainRide("r1", time.Now().Add(-time.Hour), 4, 18)

	repo.On("GetSummary", mock.Anything, "u1", allTimeAll).Return(nil, nil)
	repo.On("ApplyDelta", mock.Anything, "u1", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("InitSummary", mock.Anything, mock.MatchedBy(func(s *domain.StatsSummary) bool {
		return s.UserID == "u1" && s.TotalRides == 1
	})).Return(nil)

	before, after, err := svc.ApplyRideDelta(context.Background(), &ride, +1)

	require.NoError(t, err)
	assert.Zero(t, before)
	assert.Equal(t, 1, after.Rides)
	repo.AssertNumberOfCalls(t, "InitSummary", 2*len(domain.Windows()))
}

func TestApplyRideDelta_DeletionNeverInitializes(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	ride := busRide("r1", time.Now().Add(-time.Hour), 5, 20)

	existing := &domain.StatsSummary{
		UserID: "u1", Window: domain.WindowAllTime, Mode: domain.ModeAll,
		TotalRides: 1, TotalDistance: 5, CO2Saved: 0.75,
	}
	repo.On("GetSummary", mock.Anything, "u1", allTimeAll).Return(existing, nil)
	repo.On("ApplyDelta", mock.Anything, "u1", mock.Anything, mock.Anything).Return(false, nil)

	before, after, err := svc.ApplyRideDelta(context.Background(), &ride, -1)

	require.NoError(t, err)
	assert.Equal(t, 1, before.Rides)
	assert.Zero(t, after.Rides)
	assert.Zero(t, after.DistanceKm)
	repo.AssertNotCalled(t, "InitSummary", mock.Anything, mock.Anything)
}

func TestApplyRideDelta_MissingUserID(t *testing.T) {
	svc := NewService(new(MockRepository), nil)
	ride := busRide("r1", time.Now(), 5, 20)
	ride.UserID = ""

	_, _, err := svc.ApplyRideDelta(context.Background(), &ride, +1)
	assert.Error(t, err)
}

func TestApplyRideDelta_DeltaError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	ride := busRide("r1", time.Now().Add(-time.Hour), 5, 20)

	repo.On("GetSummary", mock.Anything, "u1", allTimeAll).Return(nil, nil)
	repo.On("ApplyDelta", mock.Anything, "u1", mock.Anything, mock.Anything).Return(false, errors.New("write conflict"))

	_, _, err := svc.ApplyRideDelta(context.Background(), &ride, +1)
	assert.Error(t, err)
}
