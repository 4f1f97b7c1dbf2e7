package handler

import (
	"net/http"
	"time"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/logger"
	"github.com/transitstats/TransitStats_Go/internal/ride"
)

// RideHandler handles ride lifecycle requests
type RideHandler struct {
	service ride.Service
}

// NewRideHandler creates a new ride handler
func NewRideHandler(service ride.Service) *RideHandler {
	return &RideHandler{service: service}
}

// StartRideRequest is the request to open a live-tracked ride
type StartRideRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Type      string `json:"type" validate:"required,transittype"`
	Line      string `json:"line"`
	StartStop string `json:"start_stop"`
}

// StartRideResponse returns the id of the newly opened ride
type StartRideResponse struct {
	RideID string `json:"ride_id"`
}

// HandleStartRide opens a live-tracked ride
// @Summary Start a ride
// @Description Opens a live-tracked ride for the user
// @Tags rides
// @Accept json
// @Produce json
// @Param request body StartRideRequest true "Ride start details"
// @Success 201 {object} StartRideResponse
// @Failure 400 {object} ErrorResponse
// @Router /rides [post]
func (h *RideHandler) HandleStartRide(w http.ResponseWriter, r *http.Request) {
	var req StartRideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start ride"); err != nil {
		return
	}

	rideID, err := h.service.StartRide(r.Context(), req.UserID, domain.TransitType(req.Type), req.Line, req.StartStop)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartRideFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, StartRideResponse{RideID: rideID})
}

// UpdateRideRequest carries live-tracking increments for an open ride
type UpdateRideRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	DeltaMiles   float64 `json:"delta_miles" validate:"gte=0"`
	DeltaSeconds int     `json:"delta_seconds" validate:"gte=0"`
}

// UpdateRideResponse reports whether the ride now looks like sensor noise
type UpdateRideResponse struct {
	SuspectedFalseRide bool `json:"suspected_false_ride"`
}

// HandleUpdateRide accumulates live distance and duration onto an open ride
// @Summary Update a live ride
// @Description Adds distance and duration increments to an in-progress ride
// @Tags rides
// @Accept json
// @Produce json
// @Param rideID path string true "Ride ID"
// @Param request body UpdateRideRequest true "Tracking increments"
// @Success 200 {object} UpdateRideResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rides/{rideID} [patch]
func (h *RideHandler) HandleUpdateRide(w http.ResponseWriter, r *http.Request) {
	rideID, ok := GetURLParam(r, w, "rideID")
	if !ok {
		return
	}

	var req UpdateRideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update ride"); err != nil {
		return
	}

	suspected, err := h.service.UpdateRide(r.Context(), rideID, req.UserID, req.DeltaMiles, req.DeltaSeconds)
	if err != nil {
		respondServiceError(w, r, ErrMsgUpdateRideFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, UpdateRideResponse{SuspectedFalseRide: suspected})
}

// EndRideRequest finalizes a live ride
type EndRideRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	EndStop string `json:"end_stop"`
}

// HandleEndRide finalizes a live ride and returns the completed record
// @Summary End a ride
// @Description Finalizes an in-progress ride and announces its completion
// @Tags rides
// @Accept json
// @Produce json
// @Param rideID path string true "Ride ID"
// @Param request body EndRideRequest true "Ride end details"
// @Success 200 {object} domain.Ride
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rides/{rideID}/end [post]
func (h *RideHandler) HandleEndRide(w http.ResponseWriter, r *http.Request) {
	rideID, ok := GetURLParam(r, w, "rideID")
	if !ok {
		return
	}

	var req EndRideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "End ride"); err != nil {
		return
	}

	completed, err := h.service.EndRide(r.Context(), rideID, req.UserID, req.EndStop)
	if err != nil {
		respondServiceError(w, r, ErrMsgEndRideFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, completed)
}

// HandleDiscardRide deletes a ride
// @Summary Discard a ride
// @Description Deletes a ride; discarding a completed ride removes its stats contribution
// @Tags rides
// @Produce json
// @Param rideID path string true "Ride ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rides/{rideID} [delete]
func (h *RideHandler) HandleDiscardRide(w http.ResponseWriter, r *http.Request) {
	rideID, ok := GetURLParam(r, w, "rideID")
	if !ok {
		return
	}
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	if err := h.service.DiscardRide(r.Context(), rideID, userID); err != nil {
		respondServiceError(w, r, ErrMsgDiscardRideFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRideDiscardedSuccess})
}

// ManualRideRequest is a completed ride entered by hand
type ManualRideRequest struct {
	UserID          string  `json:"user_id" validate:"required"`
	Type            string  `json:"type" validate:"required,transittype"`
	Line            string  `json:"line"`
	StartStop       string  `json:"start_stop"`
	EndStop         string  `json:"end_stop"`
	StartTime       string  `json:"start_time" validate:"required"`
	DistanceKm      float64 `json:"distance_km" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
	StopCount       int     `json:"stop_count" validate:"gte=0"`
}

// HandleCreateManualRide records a completed ride entered by hand
// @Summary Record a manual ride
// @Description Records a completed ride without live tracking; manual rides never advance streaks
// @Tags rides
// @Accept json
// @Produce json
// @Param request body ManualRideRequest true "Ride details"
// @Success 201 {object} StartRideResponse
// @Failure 400 {object} ErrorResponse
// @Router /rides/manual [post]
func (h *RideHandler) HandleCreateManualRide(w http.ResponseWriter, r *http.Request) {
	var req ManualRideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Manual ride"); err != nil {
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid manual ride start time", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidStartTime)
		return
	}

	entry := &domain.Ride{
		UserID:          req.UserID,
		Type:            domain.TransitType(req.Type),
		Line:            req.Line,
		StartStop:       req.StartStop,
		EndStop:         req.EndStop,
		StartTime:       startTime,
		DistanceKm:      req.DistanceKm,
		DurationMinutes: req.DurationMinutes,
		StopCount:       req.StopCount,
		ManualEntry:     true,
	}

	rideID, err := h.service.CreateManualRide(r.Context(), entry)
	if err != nil {
		respondServiceError(w, r, ErrMsgManualRideFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, StartRideResponse{RideID: rideID})
}

// HandleGetRide returns a single ride owned by the user
// @Summary Get a ride
// @Tags rides
// @Produce json
// @Param rideID path string true "Ride ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Ride
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rides/{rideID} [get]
func (h *RideHandler) HandleGetRide(w http.ResponseWriter, r *http.Request) {
	rideID, ok := GetURLParam(r, w, "rideID")
	if !ok {
		return
	}
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	record, err := h.service.GetRide(r.Context(), rideID, userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRideFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// HandleGetStreak returns the user's current streak state
// @Summary Get ride streak
// @Tags rides
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.Streak
// @Router /users/{userID}/streak [get]
func (h *RideHandler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	streak, err := h.service.GetStreak(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStreakFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, streak)
}

// RecentSelectionsResponse lists most-recent-first UI selections for a field
type RecentSelectionsResponse struct {
	Field string   `json:"field"`
	Items []string `json:"items"`
}

// HandleGetRecents returns recent UI selections for pre-filling ride forms
// @Summary Get recent selections
// @Description Returns the most-recent-first selections for a ride form field
// @Tags rides
// @Produce json
// @Param userID path string true "User ID"
// @Param type query string true "Transit type"
// @Param field query string true "Form field (line, startStop, endStop)"
// @Param line query string false "Line to scope stop suggestions to"
// @Success 200 {object} RecentSelectionsResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/{userID}/recents [get]
func (h *RideHandler) HandleGetRecents(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}
	transitType, ok := GetQueryParam(r, w, "type")
	if !ok {
		return
	}
	if !domain.TransitType(transitType).IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTransitTypeError)
		return
	}
	field, ok := GetQueryParam(r, w, "field")
	if !ok {
		return
	}
	line := GetOptionalQueryParam(r, "line", "")

	items, err := h.service.GetRecentSelections(r.Context(), userID, domain.TransitType(transitType), line, field)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRecentsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, RecentSelectionsResponse{Field: field, Items: items})
}
