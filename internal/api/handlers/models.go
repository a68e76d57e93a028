package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/intelligentspm/syndicate-studio/internal/api/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
)

type ModelHandler struct {
	modelService *service.ModelService
}

func NewModelHandler(modelService *service.ModelService) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

// List is public: the catalog is browsable on every tier.
func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	models, err := h.modelService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch models")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

// Get requires the workingModels capability.
func (h *ModelHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	model, err := h.modelService.Get(r.Context(), user, chi.URLParam(r, "slug"))
	if err != nil {
		var limitErr *domain.TierLimitError
		switch {
		case errors.As(err, &limitErr):
			writeUpgradeRequired(w, limitErr)
		case errors.Is(err, domain.ErrModelNotFound):
			writeError(w, http.StatusNotFound, "Model not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to fetch model")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"model": model})
}

// Sync seeds the built-in catalog.
func (h *ModelHandler) Sync(w http.ResponseWriter, r *http.Request) {
	count, err := h.modelService.SyncCatalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sync models")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"synced": count})
}
