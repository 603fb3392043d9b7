package store

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
)

// taskFilterFields is the fixed allow-list of filterable task fields,
// mapping the exposed query-parameter name to the column it filters.
// Only fields declared here are queryable; unknown parameters are ignored.
var taskFilterFields = map[string]string{
	"state":    "state",
	"category": "category",
	"title":    "title",
}

// excludeParamPrefix marks a query parameter as an exclusion filter for the
// same allow-listed field (e.g. exclude_category=food).
const excludeParamPrefix = "exclude_"

// TaskFilter holds column-keyed inclusion and exclusion filters for task
// listing. Build it from request query parameters with TaskFilterFromQuery.
type TaskFilter struct {
	// Include maps column name to required value.
	Include map[string]string
	// Exclude maps column name to excluded value.
	Exclude map[string]string
}

// TaskFilterFromQuery builds a TaskFilter from URL query parameters,
// applying the allow-list. Parameters outside the allow-list, and empty
// values, are silently ignored.
func TaskFilterFromQuery(params url.Values) TaskFilter {
	filter := TaskFilter{
		Include: make(map[string]string),
		Exclude: make(map[string]string),
	}

	for param, column := range taskFilterFields {
		if value := params.Get(param); value != "" {
			filter.Include[column] = value
		}
		if value := params.Get(excludeParamPrefix + param); value != "" {
			filter.Exclude[column] = value
		}
	}

	return filter
}

// IsEmpty reports whether the filter constrains anything.
func (f TaskFilter) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// TaskStore defines the interface for task persistence and querying.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning charity does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByCharity retrieves tasks owned by the given charity,
	// narrowed by the filter. Returns an empty slice when nothing matches.
	ListByCharity(ctx context.Context, charityID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// ListForBenefactor retrieves the union of tasks assigned to the given
	// benefactor and tasks open for request (pending state), narrowed by the
	// filter. A nil benefactorID yields pending tasks only.
	ListForBenefactor(ctx context.Context, benefactorID *uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// UpdateState transitions a task from an expected state to a new state in
	// a single conditional write. When assignBenefactor is non-nil the
	// assigned benefactor slot is overwritten in the same write.
	// Returns ErrTaskNotFound if the task does not exist, or ErrStateMismatch
	// if the task exists but is no longer in the expected state. In either
	// failure nothing is written.
	UpdateState(
		ctx context.Context,
		id uuid.UUID,
		from, to domain.TaskState,
		assignBenefactor *uuid.UUID,
	) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
