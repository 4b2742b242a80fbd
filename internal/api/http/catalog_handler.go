package http

import (
	"net/http"

	"labreserve-backend/internal/service"
)

// CatalogHandler serves the read-only tool and reagent listings that feed the
// client-side cart.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

func (h *CatalogHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	tools, total, err := h.catalogSvc.ListTools(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: tools, Total: total, Page: page, PageSize: pageSize})
}

func (h *CatalogHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	tool, err := h.catalogSvc.GetTool(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tool)
}

func (h *CatalogHandler) ListReagents(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	reagents, total, err := h.catalogSvc.ListReagents(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: reagents, Total: total, Page: page, PageSize: pageSize})
}

func (h *CatalogHandler) GetReagent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	reagent, err := h.catalogSvc.GetReagent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reagent)
}
