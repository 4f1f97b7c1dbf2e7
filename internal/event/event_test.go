package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Error("Expected error from Publish when handler fails")
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: Type("unknown")})
	if err != nil {
		t.Errorf("Publish to no subscribers should be a no-op, got %v", err)
	}
}

func TestNewRideEvent(t *testing.T) {
	ride := domain.Ride{
		ID:         "ride-1",
		UserID:     "user-1",
		Type:       domain.TransitBus,
		Line:       "22",
		StartTime:  time.Now(),
		DistanceKm: 4.2,
	}

	evt := NewRideEvent(RideCompleted, ride)

	if evt.Version != EventSchemaVersion {
		t.Errorf("Expected version %s, got %s", EventSchemaVersion, evt.Version)
	}
	if evt.Type != RideCompleted {
		t.Errorf("Expected type %s, got %s", RideCompleted, evt.Type)
	}

	payload, err := DecodePayload[RidePayloadV1](evt.Payload)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if payload.Ride.ID != "ride-1" {
		t.Errorf("Expected ride id ride-1, got %s", payload.Ride.ID)
	}
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	// Simulates a payload that arrived as a generic map from a serialized source
	raw := map[string]interface{}{
		"user_id":        "user-1",
		"current_streak": 3,
		"longest_streak": 7,
	}

	payload, err := DecodePayload[StreakUpdatedPayloadV1](raw)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}

	if payload.UserID != "user-1" || payload.CurrentStreak != 3 || payload.LongestStreak != 7 {
		t.Errorf("Unexpected decoded payload: %+v", payload)
	}
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	expected := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second, 32 * time.Second}

	for i, want := range expected {
		got := CalculateRetryDelay(base, i+1)
		if got != want {
			t.Errorf("Attempt %d: expected %s, got %s", i+1, want, got)
		}
	}
}
