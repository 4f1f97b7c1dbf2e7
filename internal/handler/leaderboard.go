package handler

import (
	"net/http"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/leaderboard"
)

// LeaderboardHandler handles leaderboard queries
type LeaderboardHandler struct {
	service leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// HandleGetLeaderboard returns the global top-entries document for one board
// @Summary Get leaderboard
// @Description Returns the top 100 users for a (window, category) board
// @Tags leaderboards
// @Produce json
// @Param window query string false "Time window (allTime, 1w, 1m, 1y, ytd)" default(allTime)
// @Param category query string false "Metric category (rides, distance, co2)" default(rides)
// @Success 200 {object} domain.Leaderboard
// @Failure 400 {object} ErrorResponse
// @Router /leaderboards [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	key, ok := GetBoardKeyParams(r, w)
	if !ok {
		return
	}

	board, err := h.service.GetLeaderboard(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetLeaderboardFailed, err)
		return
	}
	if board == nil {
		// Board has not been ranked yet; return an empty document
		board = &domain.Leaderboard{
			Window:   key.Window,
			Category: key.Category,
			Top100:   []domain.LeaderboardEntry{},
		}
	}

	respondJSON(w, http.StatusOK, board)
}

// UserRankResponse wraps a user's rank document; Ranked is false when the
// user has no entry on this board yet
type UserRankResponse struct {
	Ranked bool             `json:"ranked"`
	Rank   *domain.UserRank `json:"rank,omitempty"`
}

// HandleGetUserRank returns a user's rank document for one board
// @Summary Get user rank
// @Description Returns the user's rank and percentile for a (window, category) board
// @Tags leaderboards
// @Produce json
// @Param userID path string true "User ID"
// @Param window query string false "Time window (allTime, 1w, 1m, 1y, ytd)" default(allTime)
// @Param category query string false "Metric category (rides, distance, co2)" default(rides)
// @Success 200 {object} UserRankResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/{userID}/rank [get]
func (h *LeaderboardHandler) HandleGetUserRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}
	key, ok := GetBoardKeyParams(r, w)
	if !ok {
		return
	}

	rank, err := h.service.GetUserRank(r.Context(), userID, key)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetUserRankFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, UserRankResponse{Ranked: rank != nil, Rank: rank})
}
