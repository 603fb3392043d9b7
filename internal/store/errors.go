package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrAccountNotFound, ErrTaskNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., an account with an existing username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrStateMismatch is returned when a conditional state update finds the
	// task in a different state than expected. The write is not applied.
	ErrStateMismatch = errors.New("task state mismatch")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrAccountNotFound indicates that the requested account does not exist in the store.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrBenefactorNotFound indicates that the requested benefactor profile does not exist in the store.
	ErrBenefactorNotFound = fmt.Errorf("%w: benefactor", ErrNotFound)

	// ErrCharityNotFound indicates that the requested charity profile does not exist in the store.
	ErrCharityNotFound = fmt.Errorf("%w: charity", ErrNotFound)

	// ErrTaskNotFound indicates that the requested task does not exist in the store.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that an account with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrProfileExists indicates that the account already holds a profile of
	// the requested kind. Each account may carry at most one Benefactor and
	// one Charity profile.
	ErrProfileExists = fmt.Errorf("%w: role profile", ErrDuplicate)

	// ErrRegNumberExists indicates that a charity with the given registration number already exists.
	ErrRegNumberExists = fmt.Errorf("%w: registration number", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
