package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
)

type BillingHandler struct {
	billingService *service.BillingService
}

func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// HandleTierEvent receives a signed tier-change event from the billing
// provider. The body is the compact JWS itself; nothing is applied unless
// the signature verifies.
func (h *BillingHandler) HandleTierEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.billingService.ApplyTierChange(r.Context(), strings.TrimSpace(string(body)))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBillingEvent), errors.Is(err, domain.ErrUnknownTier):
			writeError(w, http.StatusBadRequest, "Invalid billing event")
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to apply billing event")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"userId":  user.ID.String(),
		"tier":    user.Tier,
	})
}
