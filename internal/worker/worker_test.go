package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// stubLeaderboardService counts ranking runs
type stubLeaderboardService struct {
	runs atomic.Int32
}

func (s *stubLeaderboardService) RunAll(ctx context.Context) error {
	s.runs.Add(1)
	return nil
}

func (s *stubLeaderboardService) RunBoard(ctx context.Context, key domain.BoardKey) error {
	return nil
}

func (s *stubLeaderboardService) GetLeaderboard(ctx context.Context, key domain.BoardKey) (*domain.Leaderboard, error) {
	return nil, nil
}

func (s *stubLeaderboardService) GetUserRank(ctx context.Context, userID string, key domain.BoardKey) (*domain.UserRank, error) {
	return nil, nil
}

// stubStatsService records sweep invocations
type stubStatsService struct {
	sweeps    atomic.Int32
	lastLimit atomic.Int32
}

func (s *stubStatsService) RecomputeUser(ctx context.Context, userID string) error { return nil }

func (s *stubStatsService) ApplyRideDelta(ctx context.Context, ride *domain.Ride, sign int) (domain.Totals, domain.Totals, error) {
	return domain.Totals{}, domain.Totals{}, nil
}

func (s *stubStatsService) GetUserStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.StatsSummary, error) {
	return nil, nil
}

func (s *stubStatsService) GetUserDetailStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.DetailStats, error) {
	return nil, nil
}

func (s *stubStatsService) SweepStale(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	s.sweeps.Add(1)
	s.lastLimit.Store(int32(limit))
	return 0, nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestLeaderboardWorker_RunsOnInterval(t *testing.T) {
	svc := &stubLeaderboardService{}
	w := NewLeaderboardWorker(svc, 20*time.Millisecond)

	w.Start()
	waitFor(t, time.Second, func() bool { return svc.runs.Load() >= 2 })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestLeaderboardWorker_TriggerNow(t *testing.T) {
	svc := &stubLeaderboardService{}
	w := NewLeaderboardWorker(svc, time.Hour)

	require.NoError(t, w.TriggerNow(context.Background()))
	assert.Equal(t, int32(1), svc.runs.Load())
}

func TestLeaderboardWorker_ShutdownStopsRuns(t *testing.T) {
	svc := &stubLeaderboardService{}
	w := NewLeaderboardWorker(svc, 10*time.Millisecond)
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	settled := svc.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, svc.runs.Load())
}

func TestSweepWorker_RunsWithBatchLimit(t *testing.T) {
	svc := &stubStatsService{}
	w := NewSweepWorker(svc, 20*time.Millisecond, 24*time.Hour)

	w.Start()
	waitFor(t, time.Second, func() bool { return svc.sweeps.Load() >= 1 })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	assert.Equal(t, int32(SweepBatchLimit), svc.lastLimit.Load())
}

func TestSweepWorker_ShutdownIdempotent(t *testing.T) {
	w := NewSweepWorker(&stubStatsService{}, time.Hour, 24*time.Hour)
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
	require.NoError(t, w.Shutdown(ctx))
}
