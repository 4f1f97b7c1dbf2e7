package user

import (
	"context"

	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// EventHandler feeds activity events into the eligibility record
type EventHandler struct {
	service Service
}

// NewEventHandler creates a user activity event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to activity events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.UserActivity, h.handleUserActivity)
}

func (h *EventHandler) handleUserActivity(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.UserActivityPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgActivityDecodeFail, "type", evt.Type, "error", err)
		return nil
	}

	return h.service.RecordActivity(ctx, payload.UserID, payload.Source)
}
