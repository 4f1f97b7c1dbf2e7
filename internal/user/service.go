package user

import (
	"context"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// Service defines the interface for user operations
type Service interface {
	// GetUser returns the user record
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpgradeToPro sets the pro flag and announces the change
	UpgradeToPro(ctx context.Context, userID string) error

	// RevokePro clears the pro flag and announces the change
	RevokePro(ctx context.Context, userID string) error

	// RecordActivity marks the user as active now for leaderboard
	// eligibility
	RecordActivity(ctx context.Context, userID, source string) error
}

// service implements the Service interface
type service struct {
	repo Repository
	bus  event.Bus
}

// NewService creates a new user service
func NewService(repo Repository, bus event.Bus) Service {
	return &service{
		repo: repo,
		bus:  bus,
	}
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameter
	}
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUser, userID, err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *service) UpgradeToPro(ctx context.Context, userID string) error {
	return s.setProStatus(ctx, userID, true)
}

func (s *service) RevokePro(ctx context.Context, userID string) error {
	return s.setProStatus(ctx, userID, false)
}

func (s *service) setProStatus(ctx context.Context, userID string, isPro bool) error {
	log := logger.FromContext(ctx)

	if userID == "" {
		return domain.ErrMissingParameter
	}

	wasPro, err := s.repo.SetProStatus(ctx, userID, isPro)
	if err != nil {
		return fmt.Errorf(ErrMsgSetProStatus, userID, err)
	}

	if wasPro == isPro {
		log.Debug(LogMsgProUnchanged, "user_id", userID, "is_pro", isPro)
		return nil
	}

	if isPro {
		log.Info(LogMsgProUpgraded, "user_id", userID)
	} else {
		log.Info(LogMsgProRevoked, "user_id", userID)
	}

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.ProStatusChanged,
			Payload: event.ProStatusChangedPayloadV1{
				UserID:    userID,
				WasPro:    wasPro,
				IsPro:     isPro,
				Timestamp: time.Now().Unix(),
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgProPublishFailed, "user_id", userID, "error", err)
		}
	}

	return nil
}

func (s *service) RecordActivity(ctx context.Context, userID, source string) error {
	log := logger.FromContext(ctx)

	if userID == "" {
		return domain.ErrMissingParameter
	}

	now := time.Now()
	if err := s.repo.TouchLastActive(ctx, userID, now); err != nil {
		return fmt.Errorf(ErrMsgTouchLastActive, userID, err)
	}

	log.Debug(LogMsgActivityRecorded, "user_id", userID, "source", source)

	return nil
}
