package achievement

import (
	"context"

	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// EventHandler drives achievement evaluation from the event bus
type EventHandler struct {
	service Service
}

// NewEventHandler creates an achievement event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to every event that can unlock something
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.StatsDeltaApplied, h.handleDeltaApplied)
	bus.Subscribe(event.StatsRecomputed, h.handleRecomputed)
	bus.Subscribe(event.RideCompleted, h.handleRideCompleted)
	bus.Subscribe(event.StreakUpdated, h.handleStreakUpdated)
	bus.Subscribe(event.ProStatusChanged, h.handleProStatusChanged)
}

// handleDeltaApplied is the fast path: the incremental update carries exact
// before/after totals around a single ride
func (h *EventHandler) handleDeltaApplied(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.StatsDeltaAppliedPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	return h.service.EvaluateCrossing(ctx, payload.UserID, payload.Before, payload.After)
}

// handleRecomputed is the backstop: a full recompute can span several rides
// worth of totals when it repairs staleness, so its interval may cross more
// than one threshold
func (h *EventHandler) handleRecomputed(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.StatsRecomputedPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	return h.service.EvaluateCrossing(ctx, payload.UserID, payload.Before, payload.After)
}

func (h *EventHandler) handleRideCompleted(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.RidePayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	if err := h.service.EvaluateRide(ctx, &payload.Ride); err != nil {
		log.Warn(LogMsgSpecialtyEvalFailed, "ride_id", payload.Ride.ID, "error", err)
	}
	return nil
}

func (h *EventHandler) handleStreakUpdated(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.StreakUpdatedPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	if err := h.service.EvaluateStreak(ctx, payload.UserID, payload.CurrentStreak); err != nil {
		log.Warn(LogMsgStreakEvalFailed, "user_id", payload.UserID, "error", err)
	}
	return nil
}

func (h *EventHandler) handleProStatusChanged(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.ProStatusChangedPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	if payload.WasPro == payload.IsPro {
		return nil
	}

	if err := h.service.EvaluateProStatus(ctx, payload.UserID, payload.IsPro); err != nil {
		log.Warn(LogMsgProStatusEvalFailed, "user_id", payload.UserID, "error", err)
	}
	return nil
}
