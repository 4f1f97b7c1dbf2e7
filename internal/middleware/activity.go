package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/transitstats/TransitStats_Go/internal/event"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// ActivityTracker is middleware that marks users as recently active, which
// feeds leaderboard eligibility. Tracking is fire-and-forget: a failed
// publish never fails the request.
type ActivityTracker struct {
	eventBus event.Bus
}

// NewActivityTracker creates a new activity tracking middleware
func NewActivityTracker(eventBus event.Bus) *ActivityTracker {
	return &ActivityTracker{
		eventBus: eventBus,
	}
}

// Track wraps an HTTP handler so any request that names a user refreshes
// that user's last-active timestamp
func (a *ActivityTracker) Track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		userID := extractUserID(r)
		if userID == EmptyUserID {
			return
		}

		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.UserActivity,
			Payload: event.UserActivityPayloadV1{
				UserID:    userID,
				Source:    ActivitySourceAPI,
				Timestamp: time.Now().Unix(),
			},
		}

		// The request context may already be cancelled once the response
		// is written, so publish on a background context
		if err := a.eventBus.Publish(context.Background(), evt); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgActivityEventPublishFailed,
				"error", err, "user_id", userID)
		}
	})
}

// extractUserID extracts the user id from the route, the context, or the
// query string, in that order
func extractUserID(r *http.Request) string {
	if userID := chi.URLParam(r, URLParamUserID); userID != EmptyUserID {
		return userID
	}
	if userID := GetUserID(r.Context()); userID != EmptyUserID {
		return userID
	}
	return r.URL.Query().Get(QueryParamUserID)
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// UserIDKey is the context key for user ID
const UserIDKey contextKey = "user_id"

// WithUserID adds user ID to request context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	if userID := ctx.Value(UserIDKey); userID != nil {
		if uid, ok := userID.(string); ok {
			return uid
		}
	}
	return EmptyUserID
}
