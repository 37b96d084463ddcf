package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"moji-backend/application/services"
	"moji-backend/pkg/common"
)

// EntryHandler handles diary entry requests.
type EntryHandler struct {
	service *services.EntryService
	logger  *zap.Logger
}

func NewEntryHandler(service *services.EntryService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{service: service, logger: logger}
}

// Create handles POST /api/v1/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var in services.CreateEntryInput
	if err := decodeJSON(r, &in); err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.service.SubmitEntry(r.Context(), user.UserID, in)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// List handles GET /api/v1/entries
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	entries, total, err := h.service.ListEntries(r.Context(), user.UserID, page, limit)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	totalPages := (total + limit - 1) / limit
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"pagination": common.PaginationInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Get handles GET /api/v1/entries/{entryID}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	entryID, err := idParam(r, "entryID")
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	entry, err := h.service.GetEntry(r.Context(), user.UserID, entryID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/v1/entries/{entryID}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	entryID, err := idParam(r, "entryID")
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.service.DeleteEntry(r.Context(), user.UserID, entryID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
