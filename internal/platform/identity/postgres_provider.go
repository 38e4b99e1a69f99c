package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/adsurf/adsurf-api/internal/platform/logger"
	"github.com/adsurf/adsurf-api/internal/store"
)

// PostgresProvider is a self-contained identity provider backed by the
// identity_credentials table, with bcrypt-hashed passwords. It serves
// development and test deployments that have no external identity service.
type PostgresProvider struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresProvider implements Provider interface
var _ Provider = (*PostgresProvider)(nil)

// NewPostgresProvider creates a Postgres-backed identity provider.
// If logger is nil, the default logger is used.
func NewPostgresProvider(db store.DBTX, logger *slog.Logger) *PostgresProvider {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProvider{
		db:     db,
		logger: logger.With(slog.String("component", "identity_postgres")),
	}
}

// CreateAccount implements Provider.CreateAccount
func (p *PostgresProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	providerID := uuid.New().String()

	query := `
		INSERT INTO identity_credentials (provider_id, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := p.db.ExecContext(ctx, query, providerID, email, hash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrEmailTaken
		}
		log.Error("failed to store credential", slog.String("error", err.Error()))
		return "", err
	}

	log.Info("identity account created", slog.String("provider_id", providerID))
	return providerID, nil
}

// SignInWithPassword implements Provider.SignInWithPassword
func (p *PostgresProvider) SignInWithPassword(ctx context.Context, email, password string) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	var hash []byte
	query := `SELECT password_hash FROM identity_credentials WHERE email = $1`
	if err := p.db.QueryRowContext(ctx, query, email).Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		log.Error("failed to load credential", slog.String("error", err.Error()))
		return err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}

// SendPasswordReset implements Provider.SendPasswordReset
// There is no mail transport in the local provider; the reset is logged so
// developers can pick the event up from the log stream.
func (p *PostgresProvider) SendPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM identity_credentials WHERE email = $1)`
	if err := p.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		log.Error("failed to check credential existence", slog.String("error", err.Error()))
		return err
	}
	if !exists {
		return ErrAccountNotFound
	}

	log.Info("password reset requested")
	return nil
}

// VerifyIDToken implements Provider.VerifyIDToken
// Third-party sign-in needs an external identity service to vouch for the
// token, which the local provider cannot do.
func (p *PostgresProvider) VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	return nil, fmt.Errorf("%w: third-party sign-in requires the http identity provider", ErrInvalidIDToken)
}
