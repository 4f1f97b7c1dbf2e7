package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertUnlock(ctx context.Context, unlock domain.UnlockedAchievement, notification domain.AchievementNotification) (bool, error) {
	args := m.Called(ctx, unlock, notification)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RevokeUnlock(ctx context.Context, userID string, id domain.AchievementID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRepository) GetUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnlockedAchievement), args.Error(1)
}

func (m *MockRepository) GetPendingNotifications(ctx context.Context, userID string) ([]domain.AchievementNotification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementNotification), args.Error(1)
}

func (m *MockRepository) MarkNotificationsShown(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) RecordLineUsed(ctx context.Context, userID string, transitType domain.TransitType, line string) (*domain.LinesUsed, error) {
	args := m.Called(ctx, userID, transitType, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinesUsed), args.Error(1)
}

func unlockMatcher(id domain.AchievementID) interface{} {
	return mock.MatchedBy(func(u domain.UnlockedAchievement) bool {
		return u.ID == id
	})
}

func TestEvaluateCrossing_SingleThreshold(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertUnlock", mock.Anything, unlockMatcher(domain.AchWarmingUp), mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)
	err := svc.EvaluateCrossing(context.Background(), "u1",
		domain.Totals{DistanceKm: 8},
		domain.Totals{DistanceKm: 12})
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "InsertUnlock", 1)
}

func TestEvaluateCrossing_NoCrossingNoWrites(t *testing.T) {
	repo := new(MockRepository)

	svc := NewService(repo, nil)
	err := svc.EvaluateCrossing(context.Background(), "u1",
		domain.Totals{DistanceKm: 26},
		domain.Totals{DistanceKm: 28})
	require.NoError(t, err)

	repo.AssertNotCalled(t, "InsertUnlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluateCrossing_MultipleCounters(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertUnlock", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)
	err := svc.EvaluateCrossing(context.Background(), "u1",
		domain.Totals{Rides: 0, DistanceKm: 0, CO2Kg: 0},
		domain.Totals{Rides: 1, DistanceKm: 12, CO2Kg: 2})
	require.NoError(t, err)

	// first ride and the 10km distance milestone, CO2 still below 10
	repo.AssertNumberOfCalls(t, "InsertUnlock", 2)
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchGettingStarted), mock.Anything)
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchWarmingUp), mock.Anything)
}

func TestUnlock_Idempotent(t *testing.T) {
	repo := new(MockRepository)
	// Store reports a duplicate; that is a no-op, not an error
	repo.On("InsertUnlock", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	svc := NewService(repo, nil)
	err := svc.RecordShare(context.Background(), "u1")
	require.NoError(t, err)
}

func TestUnlock_CacheSkipsRepeatEvaluation(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertUnlock", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)

	require.NoError(t, svc.RecordShare(context.Background(), "u1"))
	require.NoError(t, svc.RecordShare(context.Background(), "u1"))

	// Second call is answered from the unlock cache
	repo.AssertNumberOfCalls(t, "InsertUnlock", 1)
}

func TestEvaluateRide_TimeOfDay(t *testing.T) {
	tests := []struct {
		name        string
		hour        int
		manualEntry bool
		wantID      domain.AchievementID
		wantUnlocks int
	}{
		{name: "night owl at 23:15", hour: 23, wantID: domain.AchNightOwl, wantUnlocks: 1},
		{name: "early bird at 05:30", hour: 5, wantID: domain.AchEarlyBird, wantUnlocks: 1},
		{name: "midday ride unlocks nothing", hour: 12, wantUnlocks: 0},
		{name: "manual entry skips time checks", hour: 23, manualEntry: true, wantUnlocks: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.wantUnlocks > 0 {
				repo.On("InsertUnlock", mock.Anything, unlockMatcher(tt.wantID), mock.Anything).Return(true, nil)
			}

			svc := NewService(repo, nil)
			ride := &domain.Ride{
				ID:          "r1",
				UserID:      "u1",
				Type:        domain.TransitTrain,
				StartStop:   "Clark/Lake",
				EndStop:     "Belmont",
				StartTime:   time.Date(2024, 6, 1, tt.hour, 15, 0, 0, time.UTC),
				StopCount:   5,
				ManualEntry: tt.manualEntry,
			}

			require.NoError(t, svc.EvaluateRide(context.Background(), ride))
			repo.AssertNumberOfCalls(t, "InsertUnlock", tt.wantUnlocks)
		})
	}
}

func TestEvaluateRide_StopCountExtremes(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertUnlock", mock.Anything, unlockMatcher(domain.AchScenicRoute), mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)
	ride := &domain.Ride{
		ID:        "r1",
		UserID:    "u1",
		Type:      domain.TransitBus,
		StartStop: "A",
		EndStop:   "B",
		StartTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		StopCount: 15,
	}

	require.NoError(t, svc.EvaluateRide(context.Background(), ride))
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchScenicRoute), mock.Anything)
}

func TestEvaluateRide_LoopRide(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertUnlock", mock.Anything, unlockMatcher(domain.AchLoopDeLoop), mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)
	ride := &domain.Ride{
		ID:        "r1",
		UserID:    "u1",
		Type:      domain.TransitTrain,
		StartStop: "Clark/Lake",
		EndStop:   "Clark/Lake",
		StartTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		StopCount: 8,
	}

	require.NoError(t, svc.EvaluateRide(context.Background(), ride))
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchLoopDeLoop), mock.Anything)
}

func TestEvaluateRide_TrainLineSetCompletion(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RecordLineUsed", mock.Anything, "u1", domain.TransitTrain, "Yellow").Return(&domain.LinesUsed{
		UserID:     "u1",
		TrainLines: []string{"Red", "Blue", "Brown", "Green", "Orange", "Purple", "Pink", "Yellow"},
	}, nil)
	repo.On("InsertUnlock", mock.Anything, unlockMatcher(domain.AchAllAboard), mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)
	ride := &domain.Ride{
		ID:        "r1",
		UserID:    "u1",
		Type:      domain.TransitTrain,
		Line:      "Yellow",
		StartStop: "Howard",
		EndStop:   "Skokie",
		StartTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		StopCount: 2,
	}

	require.NoError(t, svc.EvaluateRide(context.Background(), ride))
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchAllAboard), mock.Anything)
}

func TestEvaluateRide_TrainLineSetIncomplete(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RecordLineUsed", mock.Anything, "u1", domain.TransitTrain, "Red").Return(&domain.LinesUsed{
		UserID:     "u1",
		TrainLines: []string{"Red", "Blue"},
	}, nil)

	svc := NewService(repo, nil)
	ride := &domain.Ride{
		ID:        "r1",
		UserID:    "u1",
		Type:      domain.TransitTrain,
		Line:      "Red",
		StartStop: "Howard",
		EndStop:   "Belmont",
		StartTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		StopCount: 6,
	}

	require.NoError(t, svc.EvaluateRide(context.Background(), ride))
	repo.AssertNotCalled(t, "InsertUnlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluateStreak(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertUnlock", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	svc := NewService(repo, nil)
	require.NoError(t, svc.EvaluateStreak(context.Background(), "u1", 7))

	// 3-day and 7-day milestones both satisfied
	repo.AssertNumberOfCalls(t, "InsertUnlock", 2)
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchQuickStreak), mock.Anything)
	repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchOneWeekWarrior), mock.Anything)
}

func TestEvaluateProStatus(t *testing.T) {
	t.Run("upgrade unlocks", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("InsertUnlock", mock.Anything, unlockMatcher(domain.AchProStatus), mock.Anything).Return(true, nil)

		svc := NewService(repo, nil)
		require.NoError(t, svc.EvaluateProStatus(context.Background(), "u1", true))
		repo.AssertCalled(t, "InsertUnlock", mock.Anything, unlockMatcher(domain.AchProStatus), mock.Anything)
	})

	t.Run("downgrade revokes", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RevokeUnlock", mock.Anything, "u1", domain.AchProStatus).Return(nil)

		svc := NewService(repo, nil)
		require.NoError(t, svc.EvaluateProStatus(context.Background(), "u1", false))
		repo.AssertCalled(t, "RevokeUnlock", mock.Anything, "u1", domain.AchProStatus)
	})

	t.Run("revoked pro can be re-unlocked", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("InsertUnlock", mock.Anything, unlockMatcher(domain.AchProStatus), mock.Anything).Return(true, nil)
		repo.On("RevokeUnlock", mock.Anything, "u1", domain.AchProStatus).Return(nil)

		svc := NewService(repo, nil)
		require.NoError(t, svc.EvaluateProStatus(context.Background(), "u1", true))
		require.NoError(t, svc.EvaluateProStatus(context.Background(), "u1", false))
		require.NoError(t, svc.EvaluateProStatus(context.Background(), "u1", true))

		// Revoke clears the cache entry so the second upgrade reaches the store
		repo.AssertNumberOfCalls(t, "InsertUnlock", 2)
	})
}

func TestGetUserAchievements_MissingUserID(t *testing.T) {
	svc := NewService(new(MockRepository), nil)

	_, err := svc.GetUserAchievements(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingParameter)
}
