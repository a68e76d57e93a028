package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
)

type CounselHandler struct {
	counselService *service.CounselService
}

func NewCounselHandler(counselService *service.CounselService) *CounselHandler {
	return &CounselHandler{counselService: counselService}
}

func (h *CounselHandler) List(w http.ResponseWriter, r *http.Request) {
	counsel, err := h.counselService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch counsel")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"counsel": counsel})
}

func (h *CounselHandler) Get(w http.ResponseWriter, r *http.Request) {
	counsel, err := h.counselService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, domain.ErrCounselNotFound) {
			writeError(w, http.StatusNotFound, "Counsel not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch counsel")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"counsel": counsel})
}
