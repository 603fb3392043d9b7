package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
)

// CharityStore defines the interface for charity profile persistence.
type CharityStore interface {
	// Create saves a new charity profile to the store.
	// Returns ErrProfileExists if the account already holds a charity profile.
	// Returns ErrRegNumberExists if the registration number is already taken.
	// Returns ErrInvalidEntity if the owning account does not exist.
	// Returns validation errors from the domain Charity if data is invalid.
	Create(ctx context.Context, charity *domain.Charity) error

	// GetByAccountID retrieves the charity profile owned by the given account.
	// Returns ErrCharityNotFound if the account holds no charity profile.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Charity, error)

	// WithTx returns a new CharityStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CharityStore
}
