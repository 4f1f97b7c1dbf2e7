package handler

import (
	"net/http"

	"github.com/transitstats/TransitStats_Go/internal/user"
)

// HandleGetUser returns a user record
// @Summary Get user
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /users/{userID} [get]
func HandleGetUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetURLParam(r, w, "userID")
		if !ok {
			return
		}

		record, err := userService.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, record)
	}
}

// HandleUpgradePro sets the user's pro flag
// @Summary Upgrade to pro
// @Description Marks the user as a pro subscriber and unlocks the pro achievement
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{userID}/pro [post]
func HandleUpgradePro(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetURLParam(r, w, "userID")
		if !ok {
			return
		}

		if err := userService.UpgradeToPro(r.Context(), userID); err != nil {
			respondServiceError(w, r, ErrMsgUpgradeFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProUpgradedSuccess})
	}
}

// HandleRevokePro clears the user's pro flag
// @Summary Revoke pro status
// @Description Clears the pro flag and revokes the pro achievement
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{userID}/pro [delete]
func HandleRevokePro(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetURLParam(r, w, "userID")
		if !ok {
			return
		}

		if err := userService.RevokePro(r.Context(), userID); err != nil {
			respondServiceError(w, r, ErrMsgRevokeProFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProRevokedSuccess})
	}
}
