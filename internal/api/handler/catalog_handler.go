package handler

import (
	"net/http"

	"dsa_sheet/internal/app/service"
	"dsa_sheet/internal/common"
)

// CatalogHandler serves the shared topic and problem collections. All
// authenticated users see the same catalog; there is no per-user filtering.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(cs *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func (h *CatalogHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.catalogService.ListTopics(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topics)
}

func (h *CatalogHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	problems, err := h.catalogService.ListProblems(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}
