package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/transitstats/TransitStats_Go/internal/domain"
	"github.com/transitstats/TransitStats_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req StartRideRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Start ride"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	// Decode JSON body
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	// Log the decoded request at debug level
	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	// Validate the request struct
	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves and validates a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
//
// If ok is false, the HTTP response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
// Unlike GetQueryParam, this does not write an error response if the parameter is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetURLParam retrieves a required chi route parameter from the request.
// If the parameter is missing, it writes an error response and returns false.
func GetURLParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := chi.URLParam(r, paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s path parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingURLParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetStatsKeyParams resolves the window and mode query parameters into a
// stats key, defaulting to the all-time, all-modes pair. Invalid values
// write an error response; the handler should return when ok is false.
func GetStatsKeyParams(r *http.Request, w http.ResponseWriter) (domain.StatsKey, bool) {
	window := domain.Window(GetOptionalQueryParam(r, "window", string(domain.WindowAllTime)))
	if !window.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidWindowError)
		return domain.StatsKey{}, false
	}

	mode := domain.Mode(GetOptionalQueryParam(r, "mode", string(domain.ModeAll)))
	if !mode.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidModeError)
		return domain.StatsKey{}, false
	}

	return domain.StatsKey{Window: window, Mode: mode}, true
}

// GetBoardKeyParams resolves the window and category query parameters into a
// board key, defaulting to the all-time rides board. Invalid values write an
// error response; the handler should return when ok is false.
func GetBoardKeyParams(r *http.Request, w http.ResponseWriter) (domain.BoardKey, bool) {
	window := domain.Window(GetOptionalQueryParam(r, "window", string(domain.WindowAllTime)))
	if !window.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidWindowError)
		return domain.BoardKey{}, false
	}

	category := domain.Category(GetOptionalQueryParam(r, "category", string(domain.CategoryRides)))
	if !category.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCategoryError)
		return domain.BoardKey{}, false
	}

	return domain.BoardKey{Window: window, Category: category}, true
}

// LogRequestFields is a helper to log common request fields in a structured way.
// This provides consistency across handlers when logging request details.
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}
