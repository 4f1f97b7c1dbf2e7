package worker

import (
	"context"
	"sync"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/stats"
)

// SweepWorker is the correctness backstop behind the debounced recompute:
// on each cycle it refreshes every user whose stats documents have gone
// stale, catching timers lost to crashes or restarts.
type SweepWorker struct {
	service   stats.Service
	interval  time.Duration
	staleness time.Duration
	shutdown  chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
}

// NewSweepWorker creates a new SweepWorker
func NewSweepWorker(service stats.Service, interval, staleness time.Duration) *SweepWorker {
	return &SweepWorker{
		service:   service,
		interval:  interval,
		staleness: staleness,
		shutdown:  make(chan struct{}),
	}
}

// Start launches the sweep loop
func (w *SweepWorker) Start() {
	log := logger.FromContext(context.Background())
	log.Info(LogMsgSweepWorkerStarted, "interval", w.interval, "staleness", w.staleness)

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

func (w *SweepWorker) run() {
	ctx := context.Background()
	olderThan := time.Now().Add(-w.staleness)
	if _, err := w.service.SweepStale(ctx, olderThan, SweepBatchLimit); err != nil {
		logger.FromContext(ctx).Error(LogMsgSweepRunFailed, "error", err)
	}
}

// Shutdown stops the loop and waits for an in-flight sweep to finish
func (w *SweepWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgSweepWorkerStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
