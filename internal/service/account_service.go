package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/service/auth"
	"github.com/charitableio/charitable-api/internal/store"
)

// RegisterAccountInput carries the registration fields for a new account.
type RegisterAccountInput struct {
	Username    string
	Password    string
	Email       string
	Phone       string
	Address     string
	Gender      string
	Age         int
	Description string
	FirstName   string
	LastName    string
}

// AccountService provides account registration, authentication, and
// resolution of the acting account with its role profiles attached.
type AccountService interface {
	// Register creates a new account with a hashed password.
	// Returns store.ErrUsernameExists if the username is taken, or domain
	// validation errors for invalid input.
	Register(ctx context.Context, input RegisterAccountInput) (*domain.Account, error)

	// Authenticate verifies the username/password pair and returns the
	// account on success. Returns store.ErrAccountNotFound for an unknown
	// username and ErrPermissionDenied for a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)

	// Resolve loads the account with its Benefactor and Charity profile
	// references attached (nil for roles the account does not hold).
	// Every authenticated operation starts from the account this returns.
	Resolve(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	accounts    store.AccountStore
	benefactors store.BenefactorStore
	charities   store.CharityStore
	hasher      auth.PasswordHasher
	verifier    auth.PasswordVerifier
	logger      *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	accounts store.AccountStore,
	benefactors store.BenefactorStore,
	charities store.CharityStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (AccountService, error) {
	if accounts == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "accounts store cannot be nil"}
	}
	if benefactors == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "benefactors store cannot be nil"}
	}
	if charities == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "charities store cannot be nil"}
	}
	if hasher == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "password hasher cannot be nil"}
	}
	if verifier == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "password verifier cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		accounts:    accounts,
		benefactors: benefactors,
		charities:   charities,
		hasher:      hasher,
		verifier:    verifier,
		logger:      logger.With("component", "account_service"),
	}, nil
}

// Register creates a new account from the registration input.
func (s *accountServiceImpl) Register(ctx context.Context, input RegisterAccountInput) (*domain.Account, error) {
	account, err := domain.NewAccount(input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	account.Email = input.Email
	account.Phone = input.Phone
	account.Address = input.Address
	account.Gender = input.Gender
	account.Age = input.Age
	account.Description = input.Description
	account.FirstName = input.FirstName
	account.LastName = input.LastName

	if err := account.Validate(); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(account.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "username", input.Username)
		return nil, &ServiceError{Operation: "register_account", Message: "failed to hash password", Err: err}
	}
	account.HashedPassword = hashed
	account.Password = ""

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		"account_id", account.ID,
		"username", account.Username)
	return account, nil
}

// Authenticate verifies the given credentials.
func (s *accountServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.verifier.Compare(account.HashedPassword, password); err != nil {
		s.logger.Debug("password verification failed", "username", username)
		return nil, ErrPermissionDenied
	}

	return account, nil
}

// Resolve loads the account and attaches its role profiles.
func (s *accountServiceImpl) Resolve(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	benefactor, err := s.benefactors.GetByAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, store.ErrBenefactorNotFound) {
		return nil, err
	}
	account.Benefactor = benefactor

	charity, err := s.charities.GetByAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, store.ErrCharityNotFound) {
		return nil, err
	}
	account.Charity = charity

	return account, nil
}
