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

// PostgresBenefactorStore implements the store.BenefactorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBenefactorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBenefactorStore creates a new PostgreSQL implementation of the BenefactorStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresBenefactorStore(db store.DBTX, logger *slog.Logger) *PostgresBenefactorStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBenefactorStore{
		db:     db,
		logger: logger.With(slog.String("component", "benefactor_store")),
	}
}

// Ensure PostgresBenefactorStore implements store.BenefactorStore interface
var _ store.BenefactorStore = (*PostgresBenefactorStore)(nil)

// Create implements store.BenefactorStore.Create
// Returns store.ErrProfileExists if the account already holds a benefactor profile.
// Returns store.ErrInvalidEntity if the owning account does not exist.
func (s *PostgresBenefactorStore) Create(ctx context.Context, benefactor *domain.Benefactor) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := benefactor.Validate(); err != nil {
		log.Warn("benefactor validation failed during create",
			slog.String("error", err.Error()),
			slog.String("benefactor_id", benefactor.ID.String()))
		return err
	}

	query := `
		INSERT INTO benefactors (id, account_id, experience, free_time_per_week, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		benefactor.ID,
		benefactor.AccountID,
		benefactor.Experience,
		benefactor.FreeTimePerWeek,
		benefactor.CreatedAt,
		benefactor.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, "benefactors_account_id_key") {
			log.Warn("account already holds a benefactor profile",
				slog.String("account_id", benefactor.AccountID.String()))
			return store.ErrProfileExists
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during benefactor creation",
				slog.String("account_id", benefactor.AccountID.String()))
			return fmt.Errorf("%w: account with ID %s not found",
				store.ErrInvalidEntity, benefactor.AccountID)
		}

		log.Error("failed to create benefactor",
			slog.String("error", err.Error()),
			slog.String("benefactor_id", benefactor.ID.String()))
		return MapError(err)
	}

	log.Info("benefactor profile created successfully",
		slog.String("benefactor_id", benefactor.ID.String()),
		slog.String("account_id", benefactor.AccountID.String()))
	return nil
}

// GetByAccountID implements store.BenefactorStore.GetByAccountID
// Returns store.ErrBenefactorNotFound if the account holds no benefactor profile.
func (s *PostgresBenefactorStore) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Benefactor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, account_id, experience, free_time_per_week, created_at, updated_at
		FROM benefactors
		WHERE account_id = $1
	`

	var benefactor domain.Benefactor
	err := s.db.QueryRowContext(ctx, query, accountID).Scan(
		&benefactor.ID,
		&benefactor.AccountID,
		&benefactor.Experience,
		&benefactor.FreeTimePerWeek,
		&benefactor.CreatedAt,
		&benefactor.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("benefactor profile not found",
				slog.String("account_id", accountID.String()))
			return nil, store.ErrBenefactorNotFound
		}
		log.Error("failed to get benefactor by account ID",
			slog.String("error", err.Error()),
			slog.String("account_id", accountID.String()))
		return nil, err
	}

	return &benefactor, nil
}

// WithTx implements store.BenefactorStore.WithTx
func (s *PostgresBenefactorStore) WithTx(tx *sql.Tx) store.BenefactorStore {
	return &PostgresBenefactorStore{
		db:     tx,
		logger: s.logger,
	}
}
