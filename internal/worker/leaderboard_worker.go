package worker

import (
	"context"
	"sync"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/leaderboard"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// LeaderboardWorker periodically re-ranks every (window, category) board.
// Rankings are rebuilt wholesale each cycle; there is no incremental path.
type LeaderboardWorker struct {
	service  leaderboard.Service
	interval time.Duration
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewLeaderboardWorker creates a new LeaderboardWorker
func NewLeaderboardWorker(service leaderboard.Service, interval time.Duration) *LeaderboardWorker {
	return &LeaderboardWorker{
		service:  service,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the ranking loop. The first run happens after one full
// interval so startup is not front-loaded with a heavy ranking pass.
func (w *LeaderboardWorker) Start() {
	log := logger.FromContext(context.Background())
	log.Info(LogMsgLeaderboardWorkerStarted, "interval", w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.run()
			case <-w.shutdown:
				return
			}
		}
	}()
}

// TriggerNow runs one ranking pass immediately, outside the ticker cadence
func (w *LeaderboardWorker) TriggerNow(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgLeaderboardRunTriggered)
	return w.service.RunAll(ctx)
}

func (w *LeaderboardWorker) run() {
	ctx := context.Background()
	if err := w.service.RunAll(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgLeaderboardRunFailed, "error", err)
	}
}

// Shutdown stops the loop and waits for an in-flight run to finish
func (w *LeaderboardWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgLeaderboardWorkerStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
