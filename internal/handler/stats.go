package handler

import (
	"net/http"

	"github.com/transitstats/TransitStats_Go/internal/stats"
)

// StatsHandler handles aggregated stats queries
type StatsHandler struct {
	service stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// HandleGetStats returns the summary stats document for one (window, mode) pair
// @Summary Get user stats
// @Description Returns the aggregated summary for a time window and transit mode
// @Tags stats
// @Produce json
// @Param userID path string true "User ID"
// @Param window query string false "Time window (allTime, 1w, 1m, 1y, ytd)" default(allTime)
// @Param mode query string false "Transit mode (all, bus, train)" default(all)
// @Success 200 {object} domain.StatsSummary
// @Failure 400 {object} ErrorResponse
// @Router /users/{userID}/stats [get]
func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}
	key, ok := GetStatsKeyParams(r, w)
	if !ok {
		return
	}

	summary, err := h.service.GetUserStats(r.Context(), userID, key)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStatsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// HandleGetDetailStats returns the detail stats document for one (window, mode) pair
// @Summary Get user detail stats
// @Description Returns per-line breakdowns, top lines, and longest rides for a time window and transit mode
// @Tags stats
// @Produce json
// @Param userID path string true "User ID"
// @Param window query string false "Time window (allTime, 1w, 1m, 1y, ytd)" default(allTime)
// @Param mode query string false "Transit mode (all, bus, train)" default(all)
// @Success 200 {object} domain.DetailStats
// @Failure 400 {object} ErrorResponse
// @Router /users/{userID}/stats/details [get]
func (h *StatsHandler) HandleGetDetailStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}
	key, ok := GetStatsKeyParams(r, w)
	if !ok {
		return
	}

	details, err := h.service.GetUserDetailStats(r.Context(), userID, key)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetDetailStatsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// HandleRecomputeStats forces a full authoritative recompute for the user
// @Summary Recompute user stats
// @Description Rebuilds every stats document for the user from the ride history
// @Tags stats
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/stats/recompute [post]
func (h *StatsHandler) HandleRecomputeStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	if err := h.service.RecomputeUser(r.Context(), userID); err != nil {
		respondServiceError(w, r, ErrMsgRecomputeFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecomputeStartedSuccess})
}
