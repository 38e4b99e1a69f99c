package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common ad validation errors.
var (
	ErrEmptyAdID        = errors.New("ad ID cannot be empty")
	ErrEmptyAdOwner     = errors.New("ad owner cannot be empty")
	ErrEmptyAdTitle     = errors.New("ad title cannot be empty")
	ErrInvalidTargetURL = errors.New("ad target URL must be a valid absolute URL")
	ErrInvalidReward    = errors.New("ad reward must be positive")
	ErrNegativeBudget   = errors.New("ad satoshi balance cannot be negative")
)

// Ad is a published offer funded by its owner's advertising balance. Each
// surf view pays Reward satoshi out of SatoshiBalance; an ad is only
// surfable while it is published and its balance covers at least one view.
type Ad struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TargetURL      string    `json:"target_url"`
	Reward         int64     `json:"reward"`
	SatoshiBalance int64     `json:"satoshi_balance"`
	Published      bool      `json:"published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAd creates a new Ad owned by the given user. The ad starts published
// with a zero satoshi balance; it becomes surfable once the owner deposits
// at least Reward satoshi.
func NewAd(ownerID uuid.UUID, title, description, targetURL string, reward int64) (*Ad, error) {
	now := time.Now().UTC()
	ad := &Ad{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		TargetURL:   targetURL,
		Reward:      reward,
		Published:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ad.Validate(); err != nil {
		return nil, err
	}

	return ad, nil
}

// Validate checks if the Ad has valid data.
// Returns an error if any field fails validation.
func (a *Ad) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAdID
	}

	if a.OwnerID == uuid.Nil {
		return ErrEmptyAdOwner
	}

	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyAdTitle
	}

	u, err := url.Parse(a.TargetURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidTargetURL
	}

	if a.Reward <= 0 {
		return ErrInvalidReward
	}

	if a.SatoshiBalance < 0 {
		return ErrNegativeBudget
	}

	return nil
}

// Surfable reports whether the ad can currently pay out a surf view.
func (a *Ad) Surfable() bool {
	return a.Published && a.SatoshiBalance >= a.Reward
}
