package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/platform/identity"
)

// MockIdentityProvider implements identity.Provider for testing.
type MockIdentityProvider struct {
	// Function fields for customizable behavior
	CreateAccountFn      func(ctx context.Context, email, password string) (string, error)
	SignInWithPasswordFn func(ctx context.Context, email, password string) error
	SendPasswordResetFn  func(ctx context.Context, email string) error
	VerifyIDTokenFn      func(ctx context.Context, idToken string) (*identity.ExternalIdentity, error)

	// Data for the default implementation
	AccountID string
	Identity  *identity.ExternalIdentity
	Err       error
}

// CreateAccount implements the Provider interface.
func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if m.CreateAccountFn != nil {
		return m.CreateAccountFn(ctx, email, password)
	}

	if m.Err != nil {
		return "", m.Err
	}

	if m.AccountID != "" {
		return m.AccountID, nil
	}
	return uuid.New().String(), nil
}

// SignInWithPassword implements the Provider interface.
func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) error {
	if m.SignInWithPasswordFn != nil {
		return m.SignInWithPasswordFn(ctx, email, password)
	}
	return m.Err
}

// SendPasswordReset implements the Provider interface.
func (m *MockIdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	if m.SendPasswordResetFn != nil {
		return m.SendPasswordResetFn(ctx, email)
	}
	return m.Err
}

// VerifyIDToken implements the Provider interface.
func (m *MockIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*identity.ExternalIdentity, error) {
	if m.VerifyIDTokenFn != nil {
		return m.VerifyIDTokenFn(ctx, idToken)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if m.Identity != nil {
		return m.Identity, nil
	}
	return nil, identity.ErrInvalidIDToken
}
