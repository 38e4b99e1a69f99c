package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// CreditSurfingBalance adds amount satoshi to the user's surfing wallet.
	// Returns ErrUserNotFound if the user does not exist.
	CreditSurfingBalance(ctx context.Context, id uuid.UUID, amount int64) error

	// DebitAdvertisingBalance removes amount satoshi from the user's
	// advertising wallet. The debit is conditional: it fails with
	// ErrInsufficientFunds when the balance would go negative, and with
	// ErrUserNotFound when the user does not exist.
	DebitAdvertisingBalance(ctx context.Context, id uuid.UUID, amount int64) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. This allows multiple operations to be executed within
	// a single transaction managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
