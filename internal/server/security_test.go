package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	detector := NewSuspiciousActivityDetector()
	middleware := AuthMiddleware(apiKey, nil, detector)

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid API Key",
			providedKey:    apiKey,
			path:           "/api/v1/rides",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid API Key",
			providedKey:    "wrong-key",
			path:           "/api/v1/rides",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing API Key",
			providedKey:    "",
			path:           "/api/v1/leaderboards",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Public Path - Healthz",
			providedKey:    "",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Readyz",
			providedKey:    "",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Metrics",
			providedKey:    "",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Swagger",
			providedKey:    "",
			path:           "/swagger/index.html",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			req.RemoteAddr = "203.0.113.7:4321"
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RecordsFailedAuth(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := AuthMiddleware("secret-key", nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/rides", nil)
	req.RemoteAddr = "198.51.100.9:2222"
	req.Header.Set(HeaderAPIKey, "wrong-key")

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", i, rec.Code)
		}
	}

	detector.mu.Lock()
	count := detector.failedAuthByIP["198.51.100.9"]
	detector.mu.Unlock()

	if count != 3 {
		t.Errorf("expected 3 recorded failed auths, got %d", count)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwardedFor   string
		trustedProxies []string
		expected       string
	}{
		{
			name:       "Direct connection",
			remoteAddr: "203.0.113.7:4321",
			expected:   "203.0.113.7",
		},
		{
			name:         "Forwarded header ignored from untrusted source",
			remoteAddr:   "203.0.113.7:4321",
			forwardedFor: "10.0.0.1",
			expected:     "203.0.113.7",
		},
		{
			name:           "Forwarded header honored from trusted proxy",
			remoteAddr:     "192.0.2.10:443",
			forwardedFor:   "203.0.113.7",
			trustedProxies: []string{"192.0.2.10"},
			expected:       "203.0.113.7",
		},
		{
			name:           "Rightmost forwarded entry wins",
			remoteAddr:     "192.0.2.10:443",
			forwardedFor:   "198.51.100.9, 203.0.113.7",
			trustedProxies: []string{"192.0.2.10"},
			expected:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/rides", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwardedFor)
			}

			if got := extractIP(req, tt.trustedProxies); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
