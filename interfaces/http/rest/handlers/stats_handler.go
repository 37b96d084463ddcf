package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"moji-backend/application/services"
	"moji-backend/pkg/common"
)

// StatsHandler serves the derived statistics endpoints.
type StatsHandler struct {
	service *services.StatsService
	logger  *zap.Logger
}

func NewStatsHandler(service *services.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{service: service, logger: logger}
}

// Overview handles GET /api/v1/stats/overview
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	overview, err := h.service.GetOverview(r.Context(), user.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, overview)
}

// EmotionCurve handles GET /api/v1/stats/emotion-curve
func (h *StatsHandler) EmotionCurve(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	days := queryInt(r, "days", 30)
	curve, err := h.service.GetEmotionCurve(r.Context(), user.UserID, days)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"curve": curve})
}

// Timeline handles GET /api/v1/stats/timeline
func (h *StatsHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	timeline, err := h.service.GetTimeline(r.Context(), user.UserID, page, limit)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, timeline)
}
