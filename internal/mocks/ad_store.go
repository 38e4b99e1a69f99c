package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/store"
)

// MockAdStore implements store.AdStore for testing.
type MockAdStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, ad *domain.Ad) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Ad, error)
	ListPublishedFn func(ctx context.Context) ([]*domain.Ad, error)
	ListByOwnerFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error)
	UpdateFn        func(ctx context.Context, ad *domain.Ad) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	DebitBalanceFn  func(ctx context.Context, id uuid.UUID, amount int64) error
	CreditBalanceFn func(ctx context.Context, id uuid.UUID, amount int64) error
	RecordSurfFn    func(ctx context.Context, surf *domain.Surf) error

	// Data for the default implementation
	mu    sync.Mutex
	Ads   map[uuid.UUID]*domain.Ad
	Surfs []*domain.Surf
}

// NewMockAdStore creates a new mock store with initialized defaults.
func NewMockAdStore() *MockAdStore {
	return &MockAdStore{
		Ads: make(map[uuid.UUID]*domain.Ad),
	}
}

// AddAd seeds the in-memory map for default-behavior tests.
func (m *MockAdStore) AddAd(ad *domain.Ad) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ads[ad.ID] = ad
}

// Create implements the AdStore interface.
func (m *MockAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ad)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ads[ad.ID] = ad
	return nil
}

// GetByID implements the AdStore interface.
func (m *MockAdStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ad, exists := m.Ads[id]
	if !exists {
		return nil, store.ErrAdNotFound
	}
	return ad, nil
}

// ListPublished implements the AdStore interface.
func (m *MockAdStore) ListPublished(ctx context.Context) ([]*domain.Ad, error) {
	if m.ListPublishedFn != nil {
		return m.ListPublishedFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ads := make([]*domain.Ad, 0, len(m.Ads))
	for _, ad := range m.Ads {
		if ad.Surfable() {
			ads = append(ads, ad)
		}
	}
	return ads, nil
}

// ListByOwner implements the AdStore interface.
func (m *MockAdStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ads := make([]*domain.Ad, 0)
	for _, ad := range m.Ads {
		if ad.OwnerID == ownerID {
			ads = append(ads, ad)
		}
	}
	return ads, nil
}

// Update implements the AdStore interface.
func (m *MockAdStore) Update(ctx context.Context, ad *domain.Ad) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ad)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Ads[ad.ID]; !exists {
		return store.ErrAdNotFound
	}
	m.Ads[ad.ID] = ad
	return nil
}

// Delete implements the AdStore interface.
func (m *MockAdStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Ads[id]; !exists {
		return store.ErrAdNotFound
	}
	delete(m.Ads, id)
	return nil
}

// DebitBalance implements the AdStore interface.
func (m *MockAdStore) DebitBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if m.DebitBalanceFn != nil {
		return m.DebitBalanceFn(ctx, id, amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ad, exists := m.Ads[id]
	if !exists {
		return store.ErrAdNotFound
	}
	if ad.SatoshiBalance < amount {
		return store.ErrBudgetExhausted
	}
	ad.SatoshiBalance -= amount
	return nil
}

// CreditBalance implements the AdStore interface.
func (m *MockAdStore) CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if m.CreditBalanceFn != nil {
		return m.CreditBalanceFn(ctx, id, amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ad, exists := m.Ads[id]
	if !exists {
		return store.ErrAdNotFound
	}
	ad.SatoshiBalance += amount
	return nil
}

// RecordSurf implements the AdStore interface.
func (m *MockAdStore) RecordSurf(ctx context.Context, surf *domain.Surf) error {
	if m.RecordSurfFn != nil {
		return m.RecordSurfFn(ctx, surf)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Surfs {
		if existing.AdID == surf.AdID && existing.ViewerID == surf.ViewerID {
			return store.ErrAlreadySurfed
		}
	}
	m.Surfs = append(m.Surfs, surf)
	return nil
}

// WithTx implements the AdStore interface for transaction support.
// The mock is returned unchanged; tests supply a pass-through TxRunner.
func (m *MockAdStore) WithTx(tx *sql.Tx) store.AdStore {
	return m
}
