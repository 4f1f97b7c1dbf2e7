package handler

import (
	"net/http"

	"github.com/transitstats/TransitStats_Go/internal/achievement"
)

// AchievementHandler handles achievement queries and acknowledgements
type AchievementHandler struct {
	service achievement.Service
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(service achievement.Service) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// HandleGetUserAchievements returns everything the user has unlocked
// @Summary Get unlocked achievements
// @Tags achievements
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} domain.UnlockedAchievement
// @Router /users/{userID}/achievements [get]
func (h *AchievementHandler) HandleGetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	unlocked, err := h.service.GetUserAchievements(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetAchievementsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, unlocked)
}

// HandleRecordShare records that the user shared their stats
// @Summary Record a stats share
// @Description Records a share action; the first share unlocks an achievement
// @Tags achievements
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Router /users/{userID}/achievements/share [post]
func (h *AchievementHandler) HandleRecordShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	if err := h.service.RecordShare(r.Context(), userID); err != nil {
		respondServiceError(w, r, ErrMsgRecordShareFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShareRecordedSuccess})
}

// HandleGetNotifications returns pending unlock notifications
// @Summary Get pending achievement notifications
// @Description Returns unlock notifications the client has not yet shown
// @Tags achievements
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} domain.AchievementNotification
// @Router /users/{userID}/notifications [get]
func (h *AchievementHandler) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	pending, err := h.service.GetPendingNotifications(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetNotificationsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, pending)
}

// HandleMarkNotificationsShown acknowledges all pending notifications
// @Summary Acknowledge achievement notifications
// @Tags achievements
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Router /users/{userID}/notifications/shown [post]
func (h *AchievementHandler) HandleMarkNotificationsShown(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	if err := h.service.MarkNotificationsShown(r.Context(), userID); err != nil {
		respondServiceError(w, r, ErrMsgMarkShownFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationsShownSuccess})
}
