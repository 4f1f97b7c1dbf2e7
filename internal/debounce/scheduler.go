package debounce

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
)

// RecomputeFunc is invoked when a user's debounce window elapses
type RecomputeFunc func(ctx context.Context, userID string) error

// Scheduler coalesces recompute requests per user. Each Schedule call resets
// the user's timer, so a burst of ride mutations produces a single recompute
// after the quiet period. When the pending timer count reaches maxPending,
// all timers fire immediately to bound memory under write storms.
type Scheduler struct {
	delay      time.Duration
	maxPending int
	fire       RecomputeFunc

	mu       sync.Mutex
	timers   map[string]*time.Timer
	closed   bool
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a debounce scheduler that invokes fire after delay
func NewScheduler(delay time.Duration, maxPending int, fire RecomputeFunc) *Scheduler {
	return &Scheduler{
		delay:      delay,
		maxPending: maxPending,
		fire:       fire,
		timers:     make(map[string]*time.Timer),
		shutdown:   make(chan struct{}),
	}
}

// Schedule arms or resets the debounce timer for a user
func (s *Scheduler) Schedule(userID string) {
	log := logger.FromContext(context.Background())

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Warn(LogMsgScheduleAfterShutdown, "userID", userID)
		return
	}

	metrics.DebounceScheduled.Inc()

	if existing, ok := s.timers[userID]; ok {
		existing.Stop()
		delete(s.timers, userID)
		metrics.DebounceCoalesced.Inc()
		log.Debug(LogMsgCoalescedRecompute, "userID", userID)
	}

	timer := time.AfterFunc(s.delay, func() {
		select {
		case <-s.shutdown:
			return
		default:
		}

		s.mu.Lock()
		delete(s.timers, userID)
		metrics.DebouncePending.Set(float64(len(s.timers)))
		s.mu.Unlock()

		s.execute(userID)
	})

	s.timers[userID] = timer
	metrics.DebouncePending.Set(float64(len(s.timers)))
	log.Debug(LogMsgScheduledRecompute, "userID", userID, "delay", s.delay)

	if len(s.timers) >= s.maxPending {
		s.flushLocked(log)
	}
	s.mu.Unlock()
}

// Pending returns the number of armed timers
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Flush fires every pending timer immediately
func (s *Scheduler) Flush() {
	log := logger.FromContext(context.Background())
	s.mu.Lock()
	s.flushLocked(log)
	s.mu.Unlock()
}

// flushLocked stops all timers and executes their recomputes. Caller holds mu.
func (s *Scheduler) flushLocked(log *slog.Logger) {
	if len(s.timers) == 0 {
		return
	}

	log.Info(LogMsgCapacityFlush, "pending", len(s.timers))
	metrics.DebounceFlushes.Inc()

	for userID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, userID)
		s.execute(userID)
	}
	metrics.DebouncePending.Set(0)
}

// execute runs the recompute in a tracked goroutine
func (s *Scheduler) execute(userID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Debug(LogMsgExecutingRecompute, "userID", userID)

		if err := s.fire(ctx, userID); err != nil {
			log.Error(LogMsgRecomputeFailed, "userID", userID, "error", err)
		}
	}()
}

// Shutdown fires all pending recomputes and waits for in-flight executions.
// Pending work is executed rather than dropped so no user is left stale.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	close(s.shutdown)

	s.mu.Lock()
	s.closed = true
	for userID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, userID)
		log.Info(LogMsgCancelledPending, "userID", userID)
		s.execute(userID)
	}
	metrics.DebouncePending.Set(0)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
