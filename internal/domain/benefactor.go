package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ExperienceLevel represents a benefactor's self-reported volunteering
// experience tier.
type ExperienceLevel int

// Possible experience levels, ordered from least to most experienced.
const (
	ExperienceNone ExperienceLevel = iota
	ExperienceBeginner
	ExperienceIntermediate
	ExperienceAdvanced
)

// Common validation errors for Benefactor
var (
	ErrEmptyBenefactorID        = errors.New("benefactor ID cannot be empty")
	ErrEmptyBenefactorAccountID = errors.New("benefactor account ID cannot be empty")
	ErrInvalidExperience        = errors.New("invalid experience level")
	ErrNegativeFreeTime         = errors.New("free time per week cannot be negative")
)

// Benefactor is the volunteer-role profile attached to an account.
// It is created once at registration and is immutable thereafter.
type Benefactor struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	Experience      ExperienceLevel `json:"experience"`
	FreeTimePerWeek int             `json:"free_time_per_week"` // hours
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewBenefactor creates a new Benefactor bound to the given account.
// It generates a new UUID for the profile ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewBenefactor(accountID uuid.UUID, experience ExperienceLevel, freeTimePerWeek int) (*Benefactor, error) {
	benefactor := &Benefactor{
		ID:              uuid.New(),
		AccountID:       accountID,
		Experience:      experience,
		FreeTimePerWeek: freeTimePerWeek,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := benefactor.Validate(); err != nil {
		return nil, err
	}

	return benefactor, nil
}

// Validate checks if the Benefactor has valid data.
// Returns an error if any field fails validation.
func (b *Benefactor) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBenefactorID
	}

	if b.AccountID == uuid.Nil {
		return ErrEmptyBenefactorAccountID
	}

	if !isValidExperienceLevel(b.Experience) {
		return ErrInvalidExperience
	}

	if b.FreeTimePerWeek < 0 {
		return ErrNegativeFreeTime
	}

	return nil
}

// isValidExperienceLevel checks if the given level is a valid ExperienceLevel.
func isValidExperienceLevel(level ExperienceLevel) bool {
	switch level {
	case ExperienceNone, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	default:
		return false
	}
}
