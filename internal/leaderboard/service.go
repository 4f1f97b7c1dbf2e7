package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/metrics"
)

// Service defines the interface for leaderboard operations
type Service interface {
	// RunAll ranks every (window, category) board. Per-board failures are
	// logged and skipped so one board cannot stall the run.
	RunAll(ctx context.Context) error

	// RunBoard ranks a single board and persists the results
	RunBoard(ctx context.Context, key domain.BoardKey) error

	// GetLeaderboard returns the global top-entries document for a board
	GetLeaderboard(ctx context.Context, key domain.BoardKey) (*domain.Leaderboard, error)

	// GetUserRank returns a user's rank document for a board, or nil when unranked
	GetUserRank(ctx context.Context, userID string, key domain.BoardKey) (*domain.UserRank, error)
}

// service implements the Service interface
type service struct {
	repo        Repository
	bus         event.Bus
	batchSize   int
	pacingDelay time.Duration
}

// NewService creates a new leaderboard service. Rank writes are grouped into
// batches of batchSize with pacingDelay between groups to avoid saturating
// the store during a full run.
func NewService(repo Repository, bus event.Bus, batchSize int, pacingDelay time.Duration) Service {
	return &service{
		repo:        repo,
		bus:         bus,
		batchSize:   batchSize,
		pacingDelay: pacingDelay,
	}
}

func (s *service) RunAll(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRankingRunStarted)

	started := time.Now()
	var failed int
	for _, key := range domain.BoardKeys() {
		if err := s.RunBoard(ctx, key); err != nil {
			log.Warn(LogMsgBoardRunFailed, "board", key.DocID(), "error", err)
			failed++
		}
	}

	metrics.LeaderboardDuration.Observe(time.Since(started).Seconds())
	log.Info(LogMsgRankingRunComplete, "boards", len(domain.BoardKeys()), "failed", failed, "duration_ms", time.Since(started).Milliseconds())
	return nil
}

func (s *service) RunBoard(ctx context.Context, key domain.BoardKey) error {
	log := logger.FromContext(ctx)
	now := time.Now()

	values, err := s.repo.GetMetricValues(ctx, key, EligibilityCutoff(key.Window, now))
	if err != nil {
		return fmt.Errorf(ErrMsgFetchMetricValues, key.DocID(), err)
	}

	ranks := Rank(key, values, now)
	if len(ranks) == 0 {
		log.Debug(LogMsgNoEligibleUsers, "board", key.DocID())
	}

	for start := 0; start < len(ranks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ranks) {
			end = len(ranks)
		}
		if err := s.repo.SaveUserRanks(ctx, ranks[start:end]); err != nil {
			return fmt.Errorf(ErrMsgSaveRanks, key.DocID(), err)
		}
		if end < len(ranks) && s.pacingDelay > 0 {
			time.Sleep(s.pacingDelay)
		}
	}

	board := domain.Leaderboard{
		Window:     key.Window,
		Category:   key.Category,
		Top100:     TopEntries(ranks, TopEntriesLimit),
		TotalUsers: len(ranks),
		UpdatedAt:  now,
	}
	if err := s.repo.SaveLeaderboard(ctx, board); err != nil {
		return fmt.Errorf(ErrMsgSaveLeaderboard, key.DocID(), err)
	}

	log.Info(LogMsgBoardRanked, "board", key.DocID(), "users", len(ranks))

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.LeaderboardUpdated,
			Payload: event.LeaderboardUpdatedPayloadV1{
				Window:     string(key.Window),
				Category:   string(key.Category),
				TotalUsers: len(ranks),
				Timestamp:  now.Unix(),
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgPublishFailed, "board", key.DocID(), "error", err)
		}
	}

	return nil
}

func (s *service) GetLeaderboard(ctx context.Context, key domain.BoardKey) (*domain.Leaderboard, error) {
	board, err := s.repo.GetLeaderboard(ctx, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLeaderboard, key.DocID(), err)
	}
	if board == nil {
		// Board has never been ranked; serve an empty document
		return &domain.Leaderboard{
			Window:   key.Window,
			Category: key.Category,
			Top100:   []domain.LeaderboardEntry{},
		}, nil
	}
	return board, nil
}

func (s *service) GetUserRank(ctx context.Context, userID string, key domain.BoardKey) (*domain.UserRank, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameter
	}
	rank, err := s.repo.GetUserRank(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserRank, userID, key.DocID(), err)
	}
	return rank, nil
}
