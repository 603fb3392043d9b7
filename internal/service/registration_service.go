package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/store"
)

// RegistrationService creates role profiles for authenticated accounts.
// Each account may register at most one Benefactor and one Charity profile;
// profiles are immutable once created.
type RegistrationService interface {
	// RegisterBenefactor creates a Benefactor profile bound to the account.
	// Returns domain validation errors for an invalid experience tier or
	// negative weekly hours, or store.ErrProfileExists if the account
	// already holds a benefactor profile. No task state is touched.
	RegisterBenefactor(
		ctx context.Context,
		account *domain.Account,
		experience domain.ExperienceLevel,
		freeTimePerWeek int,
	) (*domain.Benefactor, error)

	// RegisterCharity creates a Charity profile bound to the account.
	// Returns domain validation errors for an empty name or registration
	// number, store.ErrProfileExists if the account already holds a charity
	// profile, or store.ErrRegNumberExists for a duplicate registration
	// number. No task state is touched.
	RegisterCharity(
		ctx context.Context,
		account *domain.Account,
		name, regNumber string,
	) (*domain.Charity, error)
}

// registrationServiceImpl implements the RegistrationService interface
type registrationServiceImpl struct {
	db          *sql.DB
	benefactors store.BenefactorStore
	charities   store.CharityStore
	logger      *slog.Logger
	runInTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error // Injectable for testing
}

// NewRegistrationService creates a new RegistrationService.
// It returns an error if any of the required dependencies are nil.
func NewRegistrationService(
	db *sql.DB,
	benefactors store.BenefactorStore,
	charities store.CharityStore,
	logger *slog.Logger,
) (RegistrationService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if benefactors == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "benefactors store cannot be nil"}
	}
	if charities == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "charities store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &registrationServiceImpl{
		db:          db,
		benefactors: benefactors,
		charities:   charities,
		logger:      logger.With("component", "registration_service"),
		runInTx:     store.RunInTransaction,
	}, nil
}

// RegisterBenefactor creates and persists a Benefactor profile.
func (s *registrationServiceImpl) RegisterBenefactor(
	ctx context.Context,
	account *domain.Account,
	experience domain.ExperienceLevel,
	freeTimePerWeek int,
) (*domain.Benefactor, error) {
	if account.IsBenefactor() {
		return nil, store.ErrProfileExists
	}

	benefactor, err := domain.NewBenefactor(account.ID, experience, freeTimePerWeek)
	if err != nil {
		return nil, err
	}

	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.benefactors.WithTx(tx).Create(ctx, benefactor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("benefactor profile registered",
		"benefactor_id", benefactor.ID,
		"account_id", account.ID)
	return benefactor, nil
}

// RegisterCharity creates and persists a Charity profile.
func (s *registrationServiceImpl) RegisterCharity(
	ctx context.Context,
	account *domain.Account,
	name, regNumber string,
) (*domain.Charity, error) {
	if account.IsCharity() {
		return nil, store.ErrProfileExists
	}

	charity, err := domain.NewCharity(account.ID, name, regNumber)
	if err != nil {
		return nil, err
	}

	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.charities.WithTx(tx).Create(ctx, charity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("charity profile registered",
		"charity_id", charity.ID,
		"account_id", account.ID)
	return charity, nil
}
