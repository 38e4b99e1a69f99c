package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/platform/logger"
	"github.com/adsurf/adsurf-api/internal/store"
)

// PostgresAdStore implements the store.AdStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAdStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdStore creates a new PostgreSQL implementation of the AdStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresAdStore(db store.DBTX, logger *slog.Logger) *PostgresAdStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdStore{
		db:     db,
		logger: logger.With(slog.String("component", "ad_store")),
	}
}

// Ensure PostgresAdStore implements store.AdStore interface
var _ store.AdStore = (*PostgresAdStore)(nil)

// WithTx implements store.AdStore.WithTx
func (s *PostgresAdStore) WithTx(tx *sql.Tx) store.AdStore {
	return &PostgresAdStore{
		db:     tx,
		logger: s.logger,
	}
}

const adColumns = `id, owner_id, title, description, target_url, reward, satoshi_balance, published, created_at, updated_at`

// Create implements store.AdStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		log.Warn("ad validation failed during create",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return err
	}

	query := `
		INSERT INTO ads (` + adColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		ad.ID,
		ad.OwnerID,
		ad.Title,
		ad.Description,
		ad.TargetURL,
		ad.Reward,
		ad.SatoshiBalance,
		ad.Published,
		ad.CreatedAt,
		ad.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during ad creation",
				slog.String("ad_id", ad.ID.String()),
				slog.String("owner_id", ad.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, ad.OwnerID)
		}

		log.Error("failed to create ad",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return err
	}

	log.Info("ad created successfully",
		slog.String("ad_id", ad.ID.String()),
		slog.String("owner_id", ad.OwnerID.String()))
	return nil
}

// GetByID implements store.AdStore.GetByID
// Returns store.ErrAdNotFound if the ad does not exist.
func (s *PostgresAdStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + adColumns + ` FROM ads WHERE id = $1`

	var ad domain.Ad
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ad.ID,
		&ad.OwnerID,
		&ad.Title,
		&ad.Description,
		&ad.TargetURL,
		&ad.Reward,
		&ad.SatoshiBalance,
		&ad.Published,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("ad not found", slog.String("ad_id", id.String()))
			return nil, store.ErrAdNotFound
		}
		log.Error("failed to get ad by ID",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return nil, err
	}

	return &ad, nil
}

// ListPublished implements store.AdStore.ListPublished
func (s *PostgresAdStore) ListPublished(ctx context.Context) ([]*domain.Ad, error) {
	query := `
		SELECT ` + adColumns + `
		FROM ads
		WHERE published AND satoshi_balance >= reward
		ORDER BY created_at DESC
	`
	return s.queryAds(ctx, query)
}

// ListByOwner implements store.AdStore.ListByOwner
func (s *PostgresAdStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error) {
	query := `
		SELECT ` + adColumns + `
		FROM ads
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	return s.queryAds(ctx, query, ownerID)
}

// queryAds runs a SELECT returning ad rows and scans them into a slice.
func (s *PostgresAdStore) queryAds(ctx context.Context, query string, args ...any) ([]*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query ads", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	ads := []*domain.Ad{}
	for rows.Next() {
		var ad domain.Ad
		err := rows.Scan(
			&ad.ID,
			&ad.OwnerID,
			&ad.Title,
			&ad.Description,
			&ad.TargetURL,
			&ad.Reward,
			&ad.SatoshiBalance,
			&ad.Published,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan ad row", slog.String("error", err.Error()))
			return nil, err
		}
		ads = append(ads, &ad)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return ads, nil
}

// Update implements store.AdStore.Update
// Only content fields change here; balance mutations go through
// DebitBalance/CreditBalance so they stay conditional.
func (s *PostgresAdStore) Update(ctx context.Context, ad *domain.Ad) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		log.Warn("ad validation failed during update",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return err
	}

	query := `
		UPDATE ads
		SET title = $1, description = $2, target_url = $3, reward = $4, published = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		ad.Title,
		ad.Description,
		ad.TargetURL,
		ad.Reward,
		ad.Published,
		ad.UpdatedAt,
		ad.ID,
	)

	if err != nil {
		log.Error("failed to update ad",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("ad not found for update", slog.String("ad_id", ad.ID.String()))
		return store.ErrAdNotFound
	}

	log.Info("ad updated successfully", slog.String("ad_id", ad.ID.String()))
	return nil
}

// Delete implements store.AdStore.Delete
// The surfs ledger references ads with ON DELETE CASCADE, so entries go
// with the ad.
func (s *PostgresAdStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete ad",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("ad not found for delete", slog.String("ad_id", id.String()))
		return store.ErrAdNotFound
	}

	log.Info("ad deleted successfully", slog.String("ad_id", id.String()))
	return nil
}

// DebitBalance implements store.AdStore.DebitBalance
// The conditional WHERE makes concurrent surfs against a nearly-exhausted
// budget safe: at most one debit can win the last reward.
func (s *PostgresAdStore) DebitBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE ads
		SET satoshi_balance = satoshi_balance - $1, updated_at = NOW()
		WHERE id = $2 AND satoshi_balance >= $1
	`

	result, err := s.db.ExecContext(ctx, query, amount, id)
	if err != nil {
		if isCheckViolation(err) {
			return store.ErrBudgetExhausted
		}
		log.Error("failed to debit ad balance",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM ads WHERE id = $1)`, id).Scan(&exists); err != nil {
			log.Error("failed to check ad existence",
				slog.String("error", err.Error()),
				slog.String("ad_id", id.String()))
			return err
		}
		if !exists {
			return store.ErrAdNotFound
		}
		return store.ErrBudgetExhausted
	}

	log.Info("ad balance debited",
		slog.String("ad_id", id.String()),
		slog.Int64("amount", amount))
	return nil
}

// CreditBalance implements store.AdStore.CreditBalance
func (s *PostgresAdStore) CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE ads
		SET satoshi_balance = satoshi_balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, amount, id)
	if err != nil {
		log.Error("failed to credit ad balance",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrAdNotFound
	}

	log.Info("ad balance credited",
		slog.String("ad_id", id.String()),
		slog.Int64("amount", amount))
	return nil
}

// RecordSurf implements store.AdStore.RecordSurf
// Returns store.ErrAlreadySurfed on the (ad_id, viewer_id) unique violation.
func (s *PostgresAdStore) RecordSurf(ctx context.Context, surf *domain.Surf) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := surf.Validate(); err != nil {
		log.Warn("surf validation failed",
			slog.String("error", err.Error()),
			slog.String("surf_id", surf.ID.String()))
		return err
	}

	query := `
		INSERT INTO surfs (id, ad_id, viewer_id, reward, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		surf.ID,
		surf.AdID,
		surf.ViewerID,
		surf.Reward,
		surf.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("viewer already surfed this ad",
				slog.String("ad_id", surf.AdID.String()),
				slog.String("viewer_id", surf.ViewerID.String()))
			return store.ErrAlreadySurfed
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: surf references a missing ad or viewer",
				store.ErrInvalidEntity)
		}

		log.Error("failed to record surf",
			slog.String("error", err.Error()),
			slog.String("surf_id", surf.ID.String()))
		return err
	}

	log.Info("surf recorded",
		slog.String("ad_id", surf.AdID.String()),
		slog.String("viewer_id", surf.ViewerID.String()),
		slog.Int64("reward", surf.Reward))
	return nil
}
