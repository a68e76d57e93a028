package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
)

const upgradeURL = "/settings/billing"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// upgradePayload renders a tier denial as a structured upgrade prompt so the
// UI can distinguish "over limit" from a hard authorization failure.
type upgradePayload struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	UpgradeURL string `json:"upgradeUrl"`
}

func writeUpgradeRequired(w http.ResponseWriter, limitErr *domain.TierLimitError) {
	payload := upgradePayload{UpgradeURL: upgradeURL}

	switch limitErr.Feature {
	case domain.FeatureChatMessages:
		payload.Error = "MESSAGE_LIMIT_REACHED"
		payload.Message = fmt.Sprintf("You have reached the free tier limit of %d messages. Upgrade to SPARCC for unlimited chat.", *limitErr.Limit)
	case domain.FeatureCollections:
		payload.Error = "COLLECTION_LIMIT_REACHED"
		payload.Message = fmt.Sprintf("You have reached the free tier limit of %d collections. Upgrade to SPARCC for unlimited collections.", *limitErr.Limit)
	default:
		payload.Error = "UPGRADE_REQUIRED"
		payload.Message = "This feature is not included in your current plan. Upgrade to SPARCC to unlock it."
	}

	writeJSON(w, http.StatusForbidden, payload)
}
