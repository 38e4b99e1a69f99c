package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/adsurf/adsurf-api/internal/config"
	"github.com/adsurf/adsurf-api/internal/platform/identity"
	"github.com/adsurf/adsurf-api/internal/platform/postgres"
	"github.com/adsurf/adsurf-api/internal/service/ads"
	"github.com/adsurf/adsurf-api/internal/service/auth"
	"github.com/adsurf/adsurf-api/internal/store"
)

// application holds the explicitly constructed dependency graph. Everything
// downstream receives its collaborators through constructors; there are no
// package-level singletons to reach for.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	adStore      store.AdStore
	provider     identity.Provider
	tokenService auth.TokenService
	adService    ads.AdService
}

// newApplication wires the full application: config, logging, database with
// migrations, identity provider, stores and services.
func newApplication() (*application, error) {
	cfg, appLogger, err := loadConfigAndLogger()
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeQuietly(db, appLogger)
		return nil, err
	}

	provider, err := buildIdentityProvider(cfg, db, appLogger)
	if err != nil {
		closeQuietly(db, appLogger)
		return nil, err
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	adStore := postgres.NewPostgresAdStore(db, appLogger)
	adService := ads.NewAdService(adStore, userStore, ads.NewTxRunner(db), appLogger)

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		userStore:    userStore,
		adStore:      adStore,
		provider:     provider,
		tokenService: tokenService,
		adService:    adService,
	}, nil
}

// buildIdentityProvider selects the identity provider implementation from
// configuration.
func buildIdentityProvider(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
) (identity.Provider, error) {
	switch cfg.Identity.Mode {
	case "http":
		return identity.NewHTTPProvider(cfg.Identity, logger), nil
	case "postgres":
		return identity.NewPostgresProvider(db, logger), nil
	default:
		return nil, fmt.Errorf("unknown identity provider mode %q", cfg.Identity.Mode)
	}
}

// cleanup releases application resources. Safe to call more than once.
func (app *application) cleanup() {
	if app.db != nil {
		closeQuietly(app.db, app.logger)
		app.db = nil
	}
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", slog.String("error", err.Error()))
	}
}
