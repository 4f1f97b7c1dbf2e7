package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// Scheduler is the slice of the debounce scheduler the handler needs
type Scheduler interface {
	Schedule(userID string)
}

// EventHandler reacts to ride mutations: immediate incremental update, then
// a debounced authoritative recompute
type EventHandler struct {
	service   Service
	scheduler Scheduler
	bus       event.Bus
}

// NewEventHandler creates a new stats event handler
func NewEventHandler(service Service, scheduler Scheduler, bus event.Bus) *EventHandler {
	return &EventHandler{
		service:   service,
		scheduler: scheduler,
		bus:       bus,
	}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.RideCompleted, h.HandleRideCompleted)
	bus.Subscribe(event.RideDeleted, h.HandleRideDeleted)
}

// HandleRideCompleted applies the incremental fast path for a finished ride,
// announces the exact before/after totals for crossing detection, and
// schedules the debounced recompute
func (h *EventHandler) HandleRideCompleted(ctx context.Context, evt event.Event) error {
	return h.handleRideMutation(ctx, evt, +1)
}

// HandleRideDeleted symmetrically removes a deleted ride's contribution
func (h *EventHandler) HandleRideDeleted(ctx context.Context, evt event.Event) error {
	return h.handleRideMutation(ctx, evt, -1)
}

func (h *EventHandler) handleRideMutation(ctx context.Context, evt event.Event, sign int) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.RidePayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode ride payload: %w", err)
	}

	ride := payload.Ride
	if ride.InProgress {
		// Totals are still accumulating; nothing to aggregate yet
		return nil
	}

	before, after, err := h.service.ApplyRideDelta(ctx, &ride, sign)
	if err != nil {
		// The debounced recompute rebuilds from persisted state, so a failed
		// fast path costs latency, not correctness
		log.Warn(LogMsgDeltaSkipped, "error", err, "user_id", ride.UserID, "ride_id", ride.ID)
	} else if sign > 0 && h.bus != nil {
		deltaEvt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.StatsDeltaApplied,
			Payload: event.StatsDeltaAppliedPayloadV1{
				UserID:    ride.UserID,
				Ride:      ride,
				Before:    before,
				After:     after,
				Timestamp: time.Now().Unix(),
			},
		}
		if err := h.bus.Publish(ctx, deltaEvt); err != nil {
			log.Warn("Failed to publish stats delta event", "error", err, "user_id", ride.UserID)
		}
	}

	h.scheduler.Schedule(ride.UserID)
	return nil
}
