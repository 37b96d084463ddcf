package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"moji-backend/application/services"
	"moji-backend/pkg/common"
)

// GardenHandler handles garden reads.
type GardenHandler struct {
	service *services.GardenService
	logger  *zap.Logger
}

func NewGardenHandler(service *services.GardenService, logger *zap.Logger) *GardenHandler {
	return &GardenHandler{service: service, logger: logger}
}

// Get handles GET /api/v1/garden and GET /api/v1/garden/plants
func (h *GardenHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	plants, err := h.service.GetUserGarden(r.Context(), user.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"plants": plants,
	})
}
