// Command createadmin creates the initial admin account from ADMIN_USERNAME,
// ADMIN_PASSWORD and ADMIN_EMAIL. Running it again is harmless.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	if cfg.AdminPassword == "" {
		slog.Error("ADMIN_PASSWORD environment variable is required")
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Admin creation neither sends mail nor stores documents.
	authService := services.NewAuthService(database.DB, nil, nil)
	admin, created, err := authService.CreateAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
	if err != nil {
		slog.Error("admin creation failed", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("admin created", "username", admin.Username, "user_id", admin.ID)
	} else {
		slog.Info("admin already exists", "username", admin.Username, "user_id", admin.ID)
	}
}
