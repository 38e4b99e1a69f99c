package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/service/ads"
)

// MockAdService implements ads.AdService for handler tests.
type MockAdService struct {
	CreateFn        func(ctx context.Context, ownerID uuid.UUID, title, description, targetURL string, reward int64) (*domain.Ad, error)
	ListPublishedFn func(ctx context.Context) ([]*domain.Ad, error)
	ListMineFn      func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error)
	SurfFn          func(ctx context.Context, adID, viewerID uuid.UUID) (*ads.SurfResult, error)
	DepositFn       func(ctx context.Context, adID, ownerID uuid.UUID, amount int64) (*domain.Ad, error)
	UpdateFn        func(ctx context.Context, adID, ownerID uuid.UUID, patch ads.AdPatch) (*domain.Ad, error)
	DeleteFn        func(ctx context.Context, adID, ownerID uuid.UUID) error
}

// Create implements the AdService interface.
func (m *MockAdService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description, targetURL string,
	reward int64,
) (*domain.Ad, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, title, description, targetURL, reward)
	}
	return domain.NewAd(ownerID, title, description, targetURL, reward)
}

// ListPublished implements the AdService interface.
func (m *MockAdService) ListPublished(ctx context.Context) ([]*domain.Ad, error) {
	if m.ListPublishedFn != nil {
		return m.ListPublishedFn(ctx)
	}
	return []*domain.Ad{}, nil
}

// ListMine implements the AdService interface.
func (m *MockAdService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error) {
	if m.ListMineFn != nil {
		return m.ListMineFn(ctx, ownerID)
	}
	return []*domain.Ad{}, nil
}

// Surf implements the AdService interface.
func (m *MockAdService) Surf(ctx context.Context, adID, viewerID uuid.UUID) (*ads.SurfResult, error) {
	if m.SurfFn != nil {
		return m.SurfFn(ctx, adID, viewerID)
	}
	return &ads.SurfResult{}, nil
}

// Deposit implements the AdService interface.
func (m *MockAdService) Deposit(
	ctx context.Context,
	adID, ownerID uuid.UUID,
	amount int64,
) (*domain.Ad, error) {
	if m.DepositFn != nil {
		return m.DepositFn(ctx, adID, ownerID, amount)
	}
	return nil, nil
}

// Update implements the AdService interface.
func (m *MockAdService) Update(
	ctx context.Context,
	adID, ownerID uuid.UUID,
	patch ads.AdPatch,
) (*domain.Ad, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, adID, ownerID, patch)
	}
	return nil, nil
}

// Delete implements the AdService interface.
func (m *MockAdService) Delete(ctx context.Context, adID, ownerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, adID, ownerID)
	}
	return nil
}
