package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "203.0.113.50"
	req := httptest.NewRequest("GET", "/api/v1/leaderboards", nil)
	req.RemoteAddr = ip + ":1234"

	// Requests up to the 1000-per-window limit pass through
	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, rec.Code)
		}
	}

	// The request over the limit is blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 Too Many Requests, got %d", rec.Code)
	}

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()

	if count != 1001 {
		t.Errorf("expected count 1001, got %d", count)
	}
}

func TestSecurityLoggingMiddleware_LimitIsPerIP(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	blocked := httptest.NewRequest("GET", "/api/v1/rides", nil)
	blocked.RemoteAddr = "203.0.113.60:1234"

	for i := 0; i < 1001; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, blocked)
	}

	// A different client is unaffected
	other := httptest.NewRequest("GET", "/api/v1/rides", nil)
	other.RemoteAddr = "203.0.113.61:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for unrelated IP, got %d", rec.Code)
	}
}
