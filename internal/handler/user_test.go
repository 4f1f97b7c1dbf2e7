package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/handler"
)

// MockUserService is a mock implementation of user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpgradeToPro(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) RevokePro(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) RecordActivity(ctx context.Context, userID, source string) error {
	args := m.Called(ctx, userID, source)
	return args.Error(0)
}

func newUserRouter(svc *MockUserService) http.Handler {
	r := chi.NewRouter()
	r.Get("/users/{userID}", handler.HandleGetUser(svc))
	r.Post("/users/{userID}/pro", handler.HandleUpgradePro(svc))
	r.Delete("/users/{userID}/pro", handler.HandleRevokePro(svc))
	return r
}

func TestHandleGetUser(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, "u1").Return(&domain.User{
		ID:       "u1",
		Username: "rider",
		IsPro:    true,
	}, nil)
	router := newUserRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/users/u1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp domain.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rider", resp.Username)
	assert.True(t, resp.IsPro)
}

func TestHandleGetUser_NotFound(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
	router := newUserRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, strings.ToLower(w.Body.String()), "user not found")
}

func TestHandleUpgradePro(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("UpgradeToPro", mock.Anything, "u1").Return(nil)
	router := newUserRouter(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/users/u1/pro", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHandleRevokePro(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("RevokePro", mock.Anything, "u1").Return(nil)
	router := newUserRouter(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/users/u1/pro", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
