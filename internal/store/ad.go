package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
)

// AdStore defines the interface for ad and surf-ledger persistence.
type AdStore interface {
	// Create saves a new ad to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, ad *domain.Ad) error

	// GetByID retrieves an ad by its unique ID.
	// Returns ErrAdNotFound if the ad does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error)

	// ListPublished retrieves all ads that are currently surfable:
	// published with a satoshi balance covering at least one reward.
	ListPublished(ctx context.Context) ([]*domain.Ad, error)

	// ListByOwner retrieves all ads created by the given user,
	// newest first, regardless of publication state.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error)

	// Update saves changes to an existing ad's content fields.
	// Returns ErrAdNotFound if the ad does not exist.
	Update(ctx context.Context, ad *domain.Ad) error

	// Delete removes an ad and its surf ledger entries.
	// Returns ErrAdNotFound if the ad does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DebitBalance removes amount satoshi from the ad's budget. The debit
	// is a conditional update: it fails with ErrBudgetExhausted when the
	// budget cannot cover the amount, so concurrent debits never overdraw.
	DebitBalance(ctx context.Context, id uuid.UUID, amount int64) error

	// CreditBalance adds amount satoshi to the ad's budget.
	// Returns ErrAdNotFound if the ad does not exist.
	CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error

	// RecordSurf appends a surf ledger entry.
	// Returns ErrAlreadySurfed if this viewer was already paid for this ad.
	RecordSurf(ctx context.Context, surf *domain.Surf) error

	// WithTx returns a new AdStore instance that uses the provided
	// transaction. Surf and deposit combine several of the operations
	// above inside one transaction.
	WithTx(tx *sql.Tx) AdStore
}
