// Package auth issues and verifies the signed session tokens that carry a
// user's identity between requests.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
)

// TokenService defines operations for managing session tokens.
type TokenService interface {
	// GenerateToken creates a signed session token embedding a snapshot of
	// the user's identity fields at issuance time.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified payload of a session token. The balance fields are
// an issuance-time snapshot: they are embedded for API compatibility but
// handlers treat the token as an identity-only credential and re-fetch
// current balances from the store.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid"`

	// Name and Email are the user's profile fields at issuance time.
	Name  string `json:"name"`
	Email string `json:"email"`

	// SurfingBalance and AdvertisingBalance are issuance-time snapshots.
	SurfingBalance     int64 `json:"surfingBalance"`
	AdvertisingBalance int64 `json:"advertisingBalance"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
