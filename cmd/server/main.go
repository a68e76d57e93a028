package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intelligentspm/syndicate-studio/internal/api"
	"github.com/intelligentspm/syndicate-studio/internal/config"
	"github.com/intelligentspm/syndicate-studio/internal/email"
	"github.com/intelligentspm/syndicate-studio/internal/repository/postgres"
	"github.com/intelligentspm/syndicate-studio/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Magic-link delivery: SMTP when configured, otherwise log the links
	var mailer email.Mailer
	if cfg.SMTPHost != "" {
		smtpMailer, err := email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize mailer")
		}
		mailer = smtpMailer
	} else {
		logger.Warn("SMTP_HOST not set, magic links will be logged instead of mailed")
		mailer = &email.LogMailer{Logger: logger}
	}

	// Initialize services
	services := service.NewServices(repos, cfg, mailer, logger)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server stopped")
}
