package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn                  func(ctx context.Context, user *domain.User) error
	GetByIDFn                 func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn              func(ctx context.Context, email string) (*domain.User, error)
	ListFn                    func(ctx context.Context) ([]*domain.User, error)
	CreditSurfingBalanceFn    func(ctx context.Context, id uuid.UUID, amount int64) error
	DebitAdvertisingBalanceFn func(ctx context.Context, id uuid.UUID, amount int64) error

	// Data for the default implementation, keyed by email
	mu    sync.Mutex
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// AddUser seeds the in-memory map for default-behavior tests.
func (m *MockUserStore) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.Email] = user
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.Users[user.Email] = user
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	return users, nil
}

// CreditSurfingBalance implements the UserStore interface.
func (m *MockUserStore) CreditSurfingBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if m.CreditSurfingBalanceFn != nil {
		return m.CreditSurfingBalanceFn(ctx, id, amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ID == id {
			user.SurfingBalance += amount
			return nil
		}
	}

	return store.ErrUserNotFound
}

// DebitAdvertisingBalance implements the UserStore interface.
func (m *MockUserStore) DebitAdvertisingBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if m.DebitAdvertisingBalanceFn != nil {
		return m.DebitAdvertisingBalanceFn(ctx, id, amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ID == id {
			if user.AdvertisingBalance < amount {
				return store.ErrInsufficientFunds
			}
			user.AdvertisingBalance -= amount
			return nil
		}
	}

	return store.ErrUserNotFound
}

// WithTx implements the UserStore interface for transaction support.
// The mock is returned unchanged; tests supply a pass-through TxRunner.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
