package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/platform/logger"
	"github.com/charitableio/charitable-api/internal/store"
)

// PostgresCharityStore implements the store.CharityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCharityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCharityStore creates a new PostgreSQL implementation of the CharityStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCharityStore(db store.DBTX, logger *slog.Logger) *PostgresCharityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCharityStore{
		db:     db,
		logger: logger.With(slog.String("component", "charity_store")),
	}
}

// Ensure PostgresCharityStore implements store.CharityStore interface
var _ store.CharityStore = (*PostgresCharityStore)(nil)

// Create implements store.CharityStore.Create
// Returns store.ErrProfileExists if the account already holds a charity profile.
// Returns store.ErrRegNumberExists if the registration number is already taken.
// Returns store.ErrInvalidEntity if the owning account does not exist.
func (s *PostgresCharityStore) Create(ctx context.Context, charity *domain.Charity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := charity.Validate(); err != nil {
		log.Warn("charity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("charity_id", charity.ID.String()))
		return err
	}

	query := `
		INSERT INTO charities (id, account_id, name, reg_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		charity.ID,
		charity.AccountID,
		charity.Name,
		charity.RegNumber,
		charity.CreatedAt,
		charity.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, "charities_account_id_key") {
			log.Warn("account already holds a charity profile",
				slog.String("account_id", charity.AccountID.String()))
			return store.ErrProfileExists
		}
		if IsUniqueViolation(err, "charities_reg_number_key") {
			log.Warn("duplicate registration number during charity creation",
				slog.String("reg_number", charity.RegNumber))
			return store.ErrRegNumberExists
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during charity creation",
				slog.String("account_id", charity.AccountID.String()))
			return fmt.Errorf("%w: account with ID %s not found",
				store.ErrInvalidEntity, charity.AccountID)
		}

		log.Error("failed to create charity",
			slog.String("error", err.Error()),
			slog.String("charity_id", charity.ID.String()))
		return MapError(err)
	}

	log.Info("charity profile created successfully",
		slog.String("charity_id", charity.ID.String()),
		slog.String("account_id", charity.AccountID.String()))
	return nil
}

// GetByAccountID implements store.CharityStore.GetByAccountID
// Returns store.ErrCharityNotFound if the account holds no charity profile.
func (s *PostgresCharityStore) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Charity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, account_id, name, reg_number, created_at, updated_at
		FROM charities
		WHERE account_id = $1
	`

	var charity domain.Charity
	err := s.db.QueryRowContext(ctx, query, accountID).Scan(
		&charity.ID,
		&charity.AccountID,
		&charity.Name,
		&charity.RegNumber,
		&charity.CreatedAt,
		&charity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("charity profile not found",
				slog.String("account_id", accountID.String()))
			return nil, store.ErrCharityNotFound
		}
		log.Error("failed to get charity by account ID",
			slog.String("error", err.Error()),
			slog.String("account_id", accountID.String()))
		return nil, err
	}

	return &charity, nil
}

// WithTx implements store.CharityStore.WithTx
func (s *PostgresCharityStore) WithTx(tx *sql.Tx) store.CharityStore {
	return &PostgresCharityStore{
		db:     tx,
		logger: s.logger,
	}
}
