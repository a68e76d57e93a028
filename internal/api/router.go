package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/api/handlers"
	"github.com/intelligentspm/syndicate-studio/internal/api/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/config"
	"github.com/intelligentspm/syndicate-studio/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AppURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	chatHandler := handlers.NewChatHandler(services.Chat)
	vaultHandler := handlers.NewVaultHandler(services.Vault)
	counselHandler := handlers.NewCounselHandler(services.Counsel)
	modelHandler := handlers.NewModelHandler(services.Model)
	billingHandler := handlers.NewBillingHandler(services.Billing)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (session resolution happens inside the handlers)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/magic-link", authHandler.RequestMagicLink)
			r.Get("/verify", authHandler.Verify)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Get("/dev-signin", authHandler.DevSignin)
		})

		// Counsel library (public reads, saving requires a session)
		r.Route("/counsel", func(r chi.Router) {
			r.Get("/", counselHandler.List)
			r.Get("/{slug}", counselHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(services.Auth))
				r.Post("/{slug}/save", vaultHandler.SaveCounsel)
				r.Delete("/{slug}/save", vaultHandler.UnsaveCounsel)
			})
		})

		// Working model catalog (public browse)
		r.Get("/models", modelHandler.List)
		r.Post("/models/sync", modelHandler.Sync) // Should be admin-only in production

		// Billing provider webhook (authenticated by event signature)
		r.Post("/webhooks/billing", billingHandler.HandleTierEvent)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(services.Auth))

			r.Get("/models/{slug}", modelHandler.Get)

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", chatHandler.PostMessage)
				r.Get("/history", chatHandler.History)
			})

			r.Route("/vault/collections", func(r chi.Router) {
				r.Get("/", vaultHandler.List)
				r.Post("/", vaultHandler.Create)
				r.Delete("/{id}", vaultHandler.Delete)
				r.Get("/{id}/export", vaultHandler.Export)
			})
		})
	})

	return r
}
