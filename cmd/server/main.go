// Package main implements the entry point for the adsurf API server: a
// marketplace where users fund satoshi-budgeted ads and earn satoshi by
// surfing other members' ads.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/adsurf/adsurf-api/internal/config"
	"github.com/adsurf/adsurf-api/internal/platform/logger"
)

func main() {
	// A missing .env is fine; real deployments configure via environment.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	app, err := newApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.run(); err != nil {
		app.logger.Error("server exited with error", slog.String("error", err.Error()))
		app.cleanup()
		log.Fatalf("server error: %v", err)
	}
}

// loadConfigAndLogger loads configuration and configures the process-wide
// structured logger from it.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("identity_mode", cfg.Identity.Mode))

	return cfg, appLogger, nil
}
