package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, pgLogHandler)))

	// Log cleanup (30-day retention)
	cleanup, err := logging.StartCleanup(database.DB)
	if err != nil {
		slog.Error("log cleanup scheduling failed", "error", err)
		os.Exit(1)
	}

	metrics.Init()

	store, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		slog.Error("document storage init failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		Timeout:  cfg.SMTPTimeout,
	})
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.LeadTokenTTL)
	validate := validation.New()

	// Services
	authService := services.NewAuthService(database.DB, sender, store)
	leadService := services.NewLeadService(database.DB, sender)

	// Handlers
	secure := cfg.IsProduction()
	pagesHandler := handlers.NewPagesHandler("TutEx")
	healthHandler := handlers.NewHealthHandler(database.DB)
	authHandler := handlers.NewAuthHandler(authService, sessions, validate, secure)
	leadHandler := handlers.NewLeadHandler(leadService, sessions, validate, secure)
	tutorHandler := handlers.NewTutorHandler(leadService, validate)
	adminHandler := handlers.NewAdminHandler(leadService, validate)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; the body limit leaves room for two identity documents
	app := fiber.New(fiber.Config{
		BodyLimit:    2*storage.MaxUploadSize + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, sessions, pagesHandler, healthHandler, authHandler, leadHandler, tutorHandler, adminHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	authService.Wait()
	<-cleanup.Stop().Done()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
