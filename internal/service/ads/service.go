// Package ads implements the ad lifecycle: creation, listing, surfing,
// deposits, updates and deletion. Surf and deposit move satoshi between
// wallets and budgets, so they run inside database transactions with
// conditional debits.
package ads

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
)

// Service errors.
var (
	// ErrAdNotSurfable indicates the ad exists but is not published.
	ErrAdNotSurfable = errors.New("ad is not available for surfing")
)

// SurfResult reports the outcome of a successful surf: the satoshi paid and
// the viewer's resulting surfing balance.
type SurfResult struct {
	Reward         int64
	SurfingBalance int64
}

// AdPatch carries the updatable content fields of an ad. Published is a
// pointer so an update can leave the publication state untouched.
type AdPatch struct {
	Title       string
	Description string
	TargetURL   string
	Reward      int64
	Published   *bool
}

// AdService orchestrates the ad lifecycle on top of the stores.
type AdService interface {
	// Create stores a new ad owned by ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, title, description, targetURL string, reward int64) (*domain.Ad, error)

	// ListPublished returns all currently surfable ads.
	ListPublished(ctx context.Context) ([]*domain.Ad, error)

	// ListMine returns all ads owned by ownerID.
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error)

	// Surf records a paid view of the ad by viewerID: one transaction that
	// appends the surf ledger entry, debits the ad budget and credits the
	// viewer's surfing balance.
	// Fails with store.ErrAdNotFound, ErrAdNotSurfable, domain.ErrOwnAdSurf,
	// store.ErrAlreadySurfed or store.ErrBudgetExhausted.
	Surf(ctx context.Context, adID, viewerID uuid.UUID) (*SurfResult, error)

	// Deposit moves amount satoshi from the owner's advertising balance
	// into the ad's budget, in one transaction.
	// Fails with store.ErrAdNotFound, domain.ErrUnauthorized or
	// store.ErrInsufficientFunds.
	Deposit(ctx context.Context, adID, ownerID uuid.UUID, amount int64) (*domain.Ad, error)

	// Update applies the patch to an ad owned by ownerID.
	// Fails with store.ErrAdNotFound or domain.ErrUnauthorized.
	Update(ctx context.Context, adID, ownerID uuid.UUID, patch AdPatch) (*domain.Ad, error)

	// Delete removes an ad owned by ownerID.
	// Fails with store.ErrAdNotFound or domain.ErrUnauthorized.
	Delete(ctx context.Context, adID, ownerID uuid.UUID) error
}
