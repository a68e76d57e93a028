package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/intelligentspm/syndicate-studio/internal/api/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
	"gorm.io/datatypes"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type PostMessageRequest struct {
	Content string          `json:"content"`
	Context json.RawMessage `json:"context,omitempty"`
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := h.chatService.PostMessage(r.Context(), user, req.Content, datatypes.JSON(req.Context))
	if err != nil {
		var limitErr *domain.TierLimitError
		switch {
		case errors.Is(err, service.ErrMissingContent):
			writeError(w, http.StatusBadRequest, "Message content is required")
		case errors.As(err, &limitErr):
			writeUpgradeRequired(w, limitErr)
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	remaining, err := h.chatService.Remaining(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   message,
		"remaining": remaining,
	})
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.chatService.History(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch chat history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
