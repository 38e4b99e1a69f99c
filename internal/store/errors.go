package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrUserNotFound, ErrAdNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references another entity that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInsufficientFunds is returned when a balance debit would take a
	// user's wallet below zero. The debit is a conditional update, so the
	// balance is never actually overdrawn.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBudgetExhausted is returned when an ad's satoshi balance cannot
	// cover the requested debit. Like ErrInsufficientFunds this is enforced
	// by a conditional update, which is what makes concurrent surfs against
	// a nearly-empty ad safe.
	ErrBudgetExhausted = errors.New("ad budget exhausted")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrAdNotFound indicates that the requested ad does not exist in the store.
	ErrAdNotFound = fmt.Errorf("%w: ad", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrAlreadySurfed indicates the viewer has already been paid for this ad.
	ErrAlreadySurfed = fmt.Errorf("%w: surf", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
