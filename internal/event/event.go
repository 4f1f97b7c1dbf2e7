package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Common event types
const (
	RideCompleted       Type = "ride.completed"
	RideDeleted         Type = "ride.deleted"
	RideUpdated         Type = "ride.updated"
	StatsRecomputed     Type = "stats.recomputed"
	StatsDeltaApplied   Type = "stats.delta_applied"
	StreakUpdated       Type = "streak.updated"
	AchievementUnlocked Type = "achievement.unlocked"
	LeaderboardUpdated  Type = "leaderboard.updated"
	ProStatusChanged    Type = "user.pro_status_changed"
	UserActivity        Type = "user.activity"
)

// Typed event payloads for type safety

// RidePayloadV1 carries the full ride record for ride mutation events
type RidePayloadV1 struct {
	Ride      domain.Ride `json:"ride"`
	Timestamp int64       `json:"timestamp"`
}

// StatsRecomputedPayloadV1 announces a finished authoritative recompute.
// Before and After snapshot the all-time totals around the recompute so the
// achievement engine can detect crossings the fast path missed.
type StatsRecomputedPayloadV1 struct {
	UserID    string        `json:"user_id"`
	Documents int           `json:"documents"`
	Before    domain.Totals `json:"before"`
	After     domain.Totals `json:"after"`
	Timestamp int64         `json:"timestamp"`
}

// StatsDeltaAppliedPayloadV1 carries the exact before/after totals of a single
// ride's incremental update, for delta-based achievement detection
type StatsDeltaAppliedPayloadV1 struct {
	UserID    string        `json:"user_id"`
	Ride      domain.Ride   `json:"ride"`
	Before    domain.Totals `json:"before"`
	After     domain.Totals `json:"after"`
	Timestamp int64         `json:"timestamp"`
}

// StreakUpdatedPayloadV1 carries the before/after streak values
type StreakUpdatedPayloadV1 struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Timestamp     int64  `json:"timestamp"`
}

// AchievementUnlockedPayloadV1 announces a newly unlocked achievement
type AchievementUnlockedPayloadV1 struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Timestamp     int64  `json:"timestamp"`
}

// LeaderboardUpdatedPayloadV1 announces a finished ranking run
type LeaderboardUpdatedPayloadV1 struct {
	Window     string `json:"window"`
	Category   string `json:"category"`
	TotalUsers int    `json:"total_users"`
	Timestamp  int64  `json:"timestamp"`
}

// ProStatusChangedPayloadV1 carries the before/after pro flag
type ProStatusChangedPayloadV1 struct {
	UserID    string `json:"user_id"`
	WasPro    bool   `json:"was_pro"`
	IsPro     bool   `json:"is_pro"`
	Timestamp int64  `json:"timestamp"`
}

// UserActivityPayloadV1 marks a user as active for leaderboard eligibility
type UserActivityPayloadV1 struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// NewRideEvent builds a ride mutation event with the current schema version
func NewRideEvent(t Type, ride domain.Ride) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: RidePayloadV1{
			Ride:      ride,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously in subscription order. Callers that
	// need fire-and-forget semantics go through the ResilientPublisher.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
