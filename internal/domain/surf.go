package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common surf validation errors.
var (
	ErrEmptySurfID     = errors.New("surf ID cannot be empty")
	ErrEmptySurfAd     = errors.New("surf ad reference cannot be empty")
	ErrEmptySurfViewer = errors.New("surf viewer cannot be empty")
	ErrOwnAdSurf       = errors.New("owner cannot surf their own ad")
)

// Surf is a ledger entry recording one paid ad view: Reward satoshi moved
// from the ad's budget to the viewer's surfing balance. The store enforces
// uniqueness per (ad, viewer), so a user is paid at most once per ad.
type Surf struct {
	ID        uuid.UUID `json:"id"`
	AdID      uuid.UUID `json:"ad_id"`
	ViewerID  uuid.UUID `json:"viewer_id"`
	Reward    int64     `json:"reward"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSurf creates a ledger entry for viewer watching ad, paying the ad's
// current reward. Returns ErrOwnAdSurf if the viewer owns the ad.
func NewSurf(ad *Ad, viewerID uuid.UUID) (*Surf, error) {
	if viewerID == uuid.Nil {
		return nil, ErrEmptySurfViewer
	}
	if ad.OwnerID == viewerID {
		return nil, ErrOwnAdSurf
	}

	surf := &Surf{
		ID:        uuid.New(),
		AdID:      ad.ID,
		ViewerID:  viewerID,
		Reward:    ad.Reward,
		CreatedAt: time.Now().UTC(),
	}

	if err := surf.Validate(); err != nil {
		return nil, err
	}

	return surf, nil
}

// Validate checks if the Surf has valid data.
func (s *Surf) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySurfID
	}
	if s.AdID == uuid.Nil {
		return ErrEmptySurfAd
	}
	if s.ViewerID == uuid.Nil {
		return ErrEmptySurfViewer
	}
	if s.Reward <= 0 {
		return ErrInvalidReward
	}
	return nil
}
