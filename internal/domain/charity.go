package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Charity
var (
	ErrEmptyCharityID        = errors.New("charity ID cannot be empty")
	ErrEmptyCharityAccountID = errors.New("charity account ID cannot be empty")
	ErrEmptyCharityName      = errors.New("charity name cannot be empty")
	ErrEmptyRegNumber        = errors.New("charity registration number cannot be empty")
)

// Charity is the organization-role profile attached to an account.
// A charity owns the tasks it posts; ownership never transfers.
type Charity struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	RegNumber string    `json:"reg_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCharity creates a new Charity bound to the given account.
// It generates a new UUID for the profile ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewCharity(accountID uuid.UUID, name, regNumber string) (*Charity, error) {
	charity := &Charity{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      name,
		RegNumber: regNumber,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := charity.Validate(); err != nil {
		return nil, err
	}

	return charity, nil
}

// Validate checks if the Charity has valid data.
// Returns an error if any field fails validation.
func (c *Charity) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCharityID
	}

	if c.AccountID == uuid.Nil {
		return ErrEmptyCharityAccountID
	}

	if c.Name == "" {
		return ErrEmptyCharityName
	}

	if c.RegNumber == "" {
		return ErrEmptyRegNumber
	}

	return nil
}
