package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"moji-backend/application/services"
	"moji-backend/pkg/common"
	apperrors "moji-backend/pkg/errors"
	"moji-backend/pkg/utils"
)

// LiteratureHandler serves the curated corpus and the administrative
// append endpoints.
type LiteratureHandler struct {
	service *services.LiteratureService
	logger  *zap.Logger
}

func NewLiteratureHandler(service *services.LiteratureService, logger *zap.Logger) *LiteratureHandler {
	return &LiteratureHandler{service: service, logger: logger}
}

// ListAuthors handles GET /api/v1/authors
func (h *LiteratureHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.GetAllAuthors(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"authors": authors})
}

// GetAuthor handles GET /api/v1/authors/{authorID}
func (h *LiteratureHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := idParam(r, "authorID")
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	author, err := h.service.GetAuthor(r.Context(), authorID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, author)
}

// GetPassage handles GET /api/v1/passages/{passageID}
func (h *LiteratureHandler) GetPassage(w http.ResponseWriter, r *http.Request) {
	passageID, err := idParam(r, "passageID")
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	passage, err := h.service.GetPassage(r.Context(), passageID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, passage)
}

// CreateAuthor handles POST /api/v1/authors
func (h *LiteratureHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in services.CreateAuthorInput
	if err := decodeJSON(r, &in); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	author, err := h.service.CreateAuthor(r.Context(), in)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, author)
}

// CreateWork handles POST /api/v1/works
func (h *LiteratureHandler) CreateWork(w http.ResponseWriter, r *http.Request) {
	var in services.CreateWorkInput
	if err := decodeJSON(r, &in); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	work, err := h.service.CreateWork(r.Context(), in)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, work)
}

// CreatePassage handles POST /api/v1/passages
func (h *LiteratureHandler) CreatePassage(w http.ResponseWriter, r *http.Request) {
	var in services.CreatePassageInput
	if err := decodeJSON(r, &in); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	passage, err := h.service.CreatePassage(r.Context(), in)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, passage)
}
