package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/handler"
)

// MockStatsService is a mock implementation of stats.Service
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) RecomputeUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStatsService) ApplyRideDelta(ctx context.Context, ride *domain.Ride, sign int) (domain.Totals, domain.Totals, error) {
	args := m.Called(ctx, ride, sign)
	return args.Get(0).(domain.Totals), args.Get(1).(domain.Totals), args.Error(2)
}

func (m *MockStatsService) GetUserStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.StatsSummary, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsSummary), args.Error(1)
}

func (m *MockStatsService) GetUserDetailStats(ctx context.Context, userID string, key domain.StatsKey) (*domain.DetailStats, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailStats), args.Error(1)
}

func (m *MockStatsService) SweepStale(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	args := m.Called(ctx, olderThan, limit)
	return args.Int(0), args.Error(1)
}

func newStatsRouter(h *handler.StatsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/users/{userID}/stats", h.HandleGetStats)
	r.Get("/users/{userID}/stats/details", h.HandleGetDetailStats)
	r.Post("/users/{userID}/stats/recompute", h.HandleRecomputeStats)
	return r
}

func TestStatsHandler_GetStats(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockStatsService)
		expectedStatus int
	}{
		{
			name:   "Defaults to all-time all modes",
			target: "/users/u1/stats",
			setupMock: func(m *MockStatsService) {
				m.On("GetUserStats", mock.Anything, "u1",
					domain.StatsKey{Window: domain.WindowAllTime, Mode: domain.ModeAll}).
					Return(&domain.StatsSummary{UserID: "u1", TotalRides: 12}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Explicit window and mode",
			target: "/users/u1/stats?window=1w&mode=bus",
			setupMock: func(m *MockStatsService) {
				m.On("GetUserStats", mock.Anything, "u1",
					domain.StatsKey{Window: domain.Window1W, Mode: domain.ModeBus}).
					Return(&domain.StatsSummary{UserID: "u1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid window",
			target:         "/users/u1/stats?window=fortnight",
			setupMock:      func(m *MockStatsService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid mode",
			target:         "/users/u1/stats?mode=ferry",
			setupMock:      func(m *MockStatsService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Service failure",
			target: "/users/u1/stats",
			setupMock: func(m *MockStatsService) {
				m.On("GetUserStats", mock.Anything, "u1", mock.Anything).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockStatsService)
			tt.setupMock(mockSvc)
			router := newStatsRouter(handler.NewStatsHandler(mockSvc))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestStatsHandler_GetStats_Body(t *testing.T) {
	mockSvc := new(MockStatsService)
	mockSvc.On("GetUserStats", mock.Anything, "u1",
		domain.StatsKey{Window: domain.WindowAllTime, Mode: domain.ModeAll}).
		Return(&domain.StatsSummary{
			UserID:        "u1",
			Window:        domain.WindowAllTime,
			Mode:          domain.ModeAll,
			TotalRides:    12,
			TotalDistance: 84.5,
		}, nil)
	router := newStatsRouter(handler.NewStatsHandler(mockSvc))

	req := httptest.NewRequest(http.MethodGet, "/users/u1/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp domain.StatsSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.TotalRides)
	assert.InDelta(t, 84.5, resp.TotalDistance, 0.001)
}

func TestStatsHandler_GetDetailStats(t *testing.T) {
	mockSvc := new(MockStatsService)
	mockSvc.On("GetUserDetailStats", mock.Anything, "u1",
		domain.StatsKey{Window: domain.Window1M, Mode: domain.ModeTrain}).
		Return(&domain.DetailStats{
			UserID: "u1",
			Window: domain.Window1M,
			Mode:   domain.ModeTrain,
		}, nil)
	router := newStatsRouter(handler.NewStatsHandler(mockSvc))

	req := httptest.NewRequest(http.MethodGet, "/users/u1/stats/details?window=1m&mode=train", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestStatsHandler_RecomputeStats(t *testing.T) {
	mockSvc := new(MockStatsService)
	mockSvc.On("RecomputeUser", mock.Anything, "u1").Return(nil)
	router := newStatsRouter(handler.NewStatsHandler(mockSvc))

	req := httptest.NewRequest(http.MethodPost, "/users/u1/stats/recompute", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
