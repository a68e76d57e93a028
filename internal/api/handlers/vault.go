package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/api/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
)

type VaultHandler struct {
	vaultService *service.VaultService
}

func NewVaultHandler(vaultService *service.VaultService) *VaultHandler {
	return &VaultHandler{vaultService: vaultService}
}

type CreateCollectionRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	collections, err := h.vaultService.ListCollections(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch collections")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"collections": collections})
}

func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection, err := h.vaultService.CreateCollection(r.Context(), user, req.Title, req.Description)
	if err != nil {
		var limitErr *domain.TierLimitError
		switch {
		case errors.Is(err, service.ErrMissingTitle):
			writeError(w, http.StatusBadRequest, "Title is required")
		case errors.As(err, &limitErr):
			writeUpgradeRequired(w, limitErr)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create collection")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"collection": collection})
}

func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	if err := h.vaultService.DeleteCollection(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrCollectionNotFound), errors.Is(err, domain.ErrNotCollectionOwner):
			// Another user's collection is indistinguishable from a missing one.
			writeError(w, http.StatusNotFound, "Collection not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete collection")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type SaveCounselRequest struct {
	CollectionID string `json:"collectionId"`
}

// SaveCounsel puts the counsel behind {slug} into one of the caller's
// collections. Saving twice is a no-op.
func (h *VaultHandler) SaveCounsel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SaveCounselRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collectionID, err := uuid.Parse(req.CollectionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	item, err := h.vaultService.SaveCounsel(r.Context(), user, collectionID, chi.URLParam(r, "slug"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCounselNotFound):
			writeError(w, http.StatusNotFound, "Counsel not found")
		case errors.Is(err, domain.ErrCollectionNotFound), errors.Is(err, domain.ErrNotCollectionOwner):
			writeError(w, http.StatusNotFound, "Collection not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to save counsel")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

// UnsaveCounsel removes the counsel from the collection named in the
// collectionId query parameter.
func (h *VaultHandler) UnsaveCounsel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	collectionID, err := uuid.Parse(r.URL.Query().Get("collectionId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	if err := h.vaultService.UnsaveCounsel(r.Context(), user, collectionID, chi.URLParam(r, "slug")); err != nil {
		switch {
		case errors.Is(err, domain.ErrCounselNotFound):
			writeError(w, http.StatusNotFound, "Counsel not found")
		case errors.Is(err, domain.ErrCollectionNotFound), errors.Is(err, domain.ErrNotCollectionOwner):
			writeError(w, http.StatusNotFound, "Collection not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to remove counsel")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *VaultHandler) Export(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	export, err := h.vaultService.ExportCollection(r.Context(), user, id)
	if err != nil {
		var limitErr *domain.TierLimitError
		switch {
		case errors.As(err, &limitErr):
			writeUpgradeRequired(w, limitErr)
		case errors.Is(err, domain.ErrCollectionNotFound), errors.Is(err, domain.ErrNotCollectionOwner):
			writeError(w, http.StatusNotFound, "Collection not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to export collection")
		}
		return
	}

	writeJSON(w, http.StatusOK, export)
}
