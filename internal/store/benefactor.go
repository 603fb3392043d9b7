package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
)

// BenefactorStore defines the interface for benefactor profile persistence.
type BenefactorStore interface {
	// Create saves a new benefactor profile to the store.
	// Returns ErrProfileExists if the account already holds a benefactor profile.
	// Returns ErrInvalidEntity if the owning account does not exist.
	// Returns validation errors from the domain Benefactor if data is invalid.
	Create(ctx context.Context, benefactor *domain.Benefactor) error

	// GetByAccountID retrieves the benefactor profile owned by the given account.
	// Returns ErrBenefactorNotFound if the account holds no benefactor profile.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Benefactor, error)

	// WithTx returns a new BenefactorStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BenefactorStore
}
