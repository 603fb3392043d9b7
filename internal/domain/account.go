package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Account
var (
	ErrEmptyAccountID      = errors.New("account ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrNegativeAge         = errors.New("age cannot be negative")
)

// Account represents a registered account of the application. An account may
// additionally hold a Benefactor profile, a Charity profile, or both; the
// optional references below are resolved once at authentication and carried
// through every operation instead of being looked up ambiently.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used transiently during registration
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	Description    string    `json:"description"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Role profiles, nil when the account does not hold the role.
	Benefactor *Benefactor `json:"-"`
	Charity    *Charity    `json:"-"`
}

// NewAccount creates a new Account with the given registration fields.
// It generates a new UUID for the account ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the account structure with the plaintext
// password. The caller is responsible for hashing the password before storage.
func NewAccount(username, password string) (*Account, error) {
	account := &Account{
		ID:        uuid.New(),
		Username:  username,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
// Returns an error if any field fails validation.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.Username == "" {
		return ErrEmptyUsername
	}

	if a.Age < 0 {
		return ErrNegativeAge
	}

	if a.Password != "" {
		// When a plaintext password is provided, validate its length.
		// The upper bound is bcrypt's practical input limit.
		if len(a.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(a.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else {
		// Without a plaintext password the account must already carry a hash
		// (the case for accounts loaded from the database).
		if a.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// IsBenefactor reports whether the account holds a Benefactor profile.
func (a *Account) IsBenefactor() bool {
	return a.Benefactor != nil
}

// IsCharity reports whether the account holds a Charity profile.
func (a *Account) IsCharity() bool {
	return a.Charity != nil
}

// OwnsCharity reports whether the account owns the charity with the given ID.
func (a *Account) OwnsCharity(charityID uuid.UUID) bool {
	return a.Charity != nil && a.Charity.ID == charityID
}
