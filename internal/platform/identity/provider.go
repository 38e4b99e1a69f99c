// Package identity is the anti-corruption layer between the marketplace and
// the external identity system that owns user credentials. All outbound
// calls go through a circuit breaker with bounded timeouts, and provider
// failures map to the typed errors below instead of leaking upstream
// payloads into handlers.
package identity

import (
	"context"
	"errors"
)

// Common identity provider errors.
var (
	// ErrEmailTaken indicates the address is already registered with the provider.
	ErrEmailTaken = errors.New("email already registered with identity provider")

	// ErrAccountNotFound indicates no account exists for the given email.
	ErrAccountNotFound = errors.New("identity account not found")

	// ErrInvalidCredentials indicates the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidIDToken indicates a third-party ID token failed verification.
	ErrInvalidIDToken = errors.New("invalid identity token")

	// ErrProviderUnavailable indicates the provider could not be reached or
	// returned a server error; the circuit breaker may be open.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// ExternalIdentity is a provider-authenticated identity returned by
// third-party sign-in verification.
type ExternalIdentity struct {
	ProviderID string
	Email      string
	Name       string
}

// Provider delegates credential management to an identity system. The
// marketplace never stores passwords itself; it keeps only the provider
// reference ID on the user record.
type Provider interface {
	// CreateAccount registers email/password with the provider and returns
	// the provider's account ID. Fails with ErrEmailTaken when the address
	// is already registered.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// SignInWithPassword validates credentials against the provider.
	// Fails with ErrAccountNotFound or ErrInvalidCredentials.
	SignInWithPassword(ctx context.Context, email, password string) error

	// SendPasswordReset asks the provider to email a reset link.
	// Fails with ErrAccountNotFound when the address is unknown.
	SendPasswordReset(ctx context.Context, email string) error

	// VerifyIDToken verifies a third-party sign-in token and returns the
	// provider-authenticated identity. Fails with ErrInvalidIDToken.
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}
