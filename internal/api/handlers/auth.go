package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/intelligentspm/syndicate-studio/internal/api/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/config"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type MagicLinkRequest struct {
	Email string `json:"email"`
}

type UserResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  *string     `json:"name"`
	Tier  domain.Tier `json:"tier"`
}

func userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Tier:  user.Tier,
	}
}

// RequestMagicLink issues a one-time sign-in token and emails the link.
func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req MagicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.authService.RequestMagicLink(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, domain.ErrEmailDelivery):
			writeError(w, http.StatusBadGateway, "Failed to send magic link. Please try again.")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Verify consumes the emailed token and establishes the session. Missing,
// unknown and expired tokens all land on the same sign-in error page.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	email := r.URL.Query().Get("email")

	sessionToken, _, err := h.authService.VerifyMagicLink(r.Context(), token, email)
	if err != nil {
		http.Redirect(w, r, "/sign-in?error=invalid", http.StatusFound)
		return
	}

	h.setSessionCookie(w, sessionToken)
	http.Redirect(w, r, "/studio", http.StatusFound)
}

// Logout destroys the session behind the cookie, if any. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.DestroySession(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, "Logout failed")
			return
		}
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me reports the current user, or {"user": null} for anonymous callers.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	user, err := h.authService.ResolveSession(r.Context(), cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": userResponse(user)})
}

// DevSignin mints a SPARCC test session without email round-trips.
// Development environments only.
func (h *AuthHandler) DevSignin(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.IsDevelopment() {
		writeError(w, http.StatusForbidden, "Not available in production")
		return
	}

	user, err := h.authService.EnsureDevUser(r.Context(), h.cfg.DevSigninEmail, "Dev User")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create dev session")
		return
	}

	sessionToken, err := h.authService.IssueSession(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create dev session")
		return
	}

	h.setSessionCookie(w, sessionToken)
	http.Redirect(w, r, "/studio", http.StatusFound)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})
}
