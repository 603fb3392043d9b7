package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/platform/logger"
	"github.com/charitableio/charitable-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskSelectColumns = `
	SELECT id, charity_id, assigned_benefactor_id, title, description,
	       category, deadline, state, created_at, updated_at
	FROM tasks`

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the owning charity does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (
			id, charity_id, assigned_benefactor_id, title, description,
			category, deadline, state, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.CharityID,
		task.AssignedBenefactorID,
		task.Title,
		task.Description,
		task.Category,
		task.Deadline,
		task.State,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("charity_id", task.CharityID.String()))
			return fmt.Errorf("%w: charity with ID %s not found",
				store.ErrInvalidEntity, task.CharityID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("charity_id", task.CharityID.String()),
		slog.String("state", string(task.State)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := taskSelectColumns + ` WHERE id = $1`

	var task domain.Task
	var state string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.CharityID,
		&task.AssignedBenefactorID,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.Deadline,
		&state,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	task.State = domain.TaskState(state)
	return &task, nil
}

// ListByCharity implements store.TaskStore.ListByCharity
// It retrieves tasks owned by the given charity, narrowed by the filter.
func (s *PostgresTaskStore) ListByCharity(
	ctx context.Context,
	charityID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	where := []string{"charity_id = $1"}
	args := []any{charityID}
	where, args = appendFilterClauses(where, args, filter)

	query := taskSelectColumns + "\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY created_at DESC"

	return s.queryTasks(ctx, query, args)
}

// ListForBenefactor implements store.TaskStore.ListForBenefactor
// It retrieves the union of tasks assigned to the benefactor and tasks open
// for request. A nil benefactorID yields pending tasks only.
func (s *PostgresTaskStore) ListForBenefactor(
	ctx context.Context,
	benefactorID *uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	var where []string
	var args []any

	if benefactorID != nil {
		args = append(args, *benefactorID, domain.TaskStatePending)
		where = append(where, "(assigned_benefactor_id = $1 OR state = $2)")
	} else {
		args = append(args, domain.TaskStatePending)
		where = append(where, "state = $1")
	}
	where, args = appendFilterClauses(where, args, filter)

	query := taskSelectColumns + "\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY created_at DESC"

	return s.queryTasks(ctx, query, args)
}

// UpdateState implements store.TaskStore.UpdateState
// The transition is applied as a single conditional write so that concurrent
// operations on the same task cannot both pass the state check.
// Returns store.ErrTaskNotFound or store.ErrStateMismatch when nothing was written.
func (s *PostgresTaskStore) UpdateState(
	ctx context.Context,
	id uuid.UUID,
	from, to domain.TaskState,
	assignBenefactor *uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// A NULL benefactor argument leaves the slot untouched; the slot is only
	// ever overwritten, never cleared.
	query := `
		UPDATE tasks
		SET state = $1,
		    assigned_benefactor_id = COALESCE($2, assigned_benefactor_id),
		    updated_at = $3
		WHERE id = $4 AND state = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		to,
		assignBenefactor,
		time.Now().UTC(),
		id,
		from,
	)
	if err != nil {
		log.Error("failed to update task state",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("from", string(from)),
			slog.String("to", string(to)))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		// Disambiguate: the task is either missing or no longer in the
		// expected state (a concurrent operation won the race).
		var current string
		err := s.db.QueryRowContext(ctx, `SELECT state FROM tasks WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for state update",
				slog.String("task_id", id.String()))
			return store.ErrTaskNotFound
		}
		if err != nil {
			log.Error("failed to check task state after conditional update",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
			return err
		}

		log.Debug("task state changed under conditional update",
			slog.String("task_id", id.String()),
			slog.String("expected", string(from)),
			slog.String("actual", current))
		return store.ErrStateMismatch
	}

	log.Info("task state updated successfully",
		slog.String("task_id", id.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return nil
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// appendFilterClauses extends the WHERE clause list with the allow-listed
// include and exclude filters. Title filters match as case-insensitive
// substrings; all other fields match exactly.
func appendFilterClauses(where []string, args []any, filter store.TaskFilter) ([]string, []any) {
	for column, value := range filter.Include {
		args = append(args, value)
		if column == "title" {
			where = append(where, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
		} else {
			where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	for column, value := range filter.Exclude {
		args = append(args, value)
		if column == "title" {
			where = append(where, fmt.Sprintf("title NOT ILIKE '%%' || $%d || '%%'", len(args)))
		} else {
			where = append(where, fmt.Sprintf("%s <> $%d", column, len(args)))
		}
	}
	return where, args
}

// queryTasks runs a task list query and scans the result set.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args []any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var state string

		err := rows.Scan(
			&task.ID,
			&task.CharityID,
			&task.AssignedBenefactorID,
			&task.Title,
			&task.Description,
			&task.Category,
			&task.Deadline,
			&state,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}

		task.State = domain.TaskState(state)
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}
