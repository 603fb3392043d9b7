package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/store"
)

// Wire values for a charity's response to a task request.
const (
	// ResponseAccepted accepts the pending request and assigns the task.
	ResponseAccepted = "A"
	// ResponseRejected rejects the pending request and reopens the task.
	ResponseRejected = "R"
)

// CreateTaskInput carries the descriptive fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Deadline    *time.Time
}

// TaskService provides the task operations: listing with per-role
// visibility, creation, and the lifecycle transitions (request, respond,
// done). Every operation takes the resolved acting account; the
// authorization gate runs before any state is read or written, so a
// permission failure is always distinguishable from a lifecycle conflict
// or a missing task.
type TaskService interface {
	// ListTasks returns the tasks visible to the account, narrowed by the
	// filter. A charity owner sees the tasks its charity owns; any other
	// account sees the union of tasks assigned to its benefactor profile
	// (if any) and tasks open for request.
	ListTasks(ctx context.Context, account *domain.Account, filter store.TaskFilter) ([]*domain.Task, error)

	// CreateTask creates a new pending task owned by the account's charity.
	// Returns ErrPermissionDenied if the account holds no charity profile.
	CreateTask(ctx context.Context, account *domain.Account, input CreateTaskInput) (*domain.Task, error)

	// RequestTask lets a benefactor request a pending task. On success the
	// task moves to waiting and the account's benefactor takes the assigned
	// slot. Returns ErrPermissionDenied without a benefactor profile,
	// store.ErrTaskNotFound for an unknown task, or domain.ErrTaskNotPending
	// when the task is not open for request.
	RequestTask(ctx context.Context, account *domain.Account, taskID uuid.UUID) error

	// RespondToRequest lets the owning charity accept ("A") or reject ("R")
	// the current request on a waiting task. Accepting moves the task to
	// assigned; rejecting returns it to pending. Returns ErrInvalidResponse
	// for any other response value, ErrPermissionDenied if the account does
	// not own the task's charity, store.ErrTaskNotFound for an unknown task,
	// or domain.ErrTaskNotWaiting when the task has no open request.
	RespondToRequest(ctx context.Context, account *domain.Account, taskID uuid.UUID, response string) error

	// MarkDone lets the owning charity complete an assigned task. Done is
	// terminal. Returns ErrPermissionDenied if the account does not own the
	// task's charity, store.ErrTaskNotFound for an unknown task, or
	// domain.ErrTaskNotAssigned when the task is not assigned.
	MarkDone(ctx context.Context, account *domain.Account, taskID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "tasks store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

// ListTasks returns the tasks visible to the account.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	account *domain.Account,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if account.IsCharity() {
		return s.tasks.ListByCharity(ctx, account.Charity.ID, filter)
	}

	var benefactorID *uuid.UUID
	if account.IsBenefactor() {
		benefactorID = &account.Benefactor.ID
	}
	return s.tasks.ListForBenefactor(ctx, benefactorID, filter)
}

// CreateTask creates a new pending task owned by the account's charity.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	account *domain.Account,
	input CreateTaskInput,
) (*domain.Task, error) {
	if !account.IsCharity() {
		return nil, ErrPermissionDenied
	}

	task, err := domain.NewTask(account.Charity.ID, input.Title, input.Description, input.Category, input.Deadline)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"charity_id", task.CharityID)
	return task, nil
}

// RequestTask applies the request trigger on behalf of a benefactor.
func (s *taskServiceImpl) RequestTask(ctx context.Context, account *domain.Account, taskID uuid.UUID) error {
	if !account.IsBenefactor() {
		return ErrPermissionDenied
	}

	return s.transition(ctx, taskID, domain.TaskTriggerRequest, &account.Benefactor.ID, nil)
}

// RespondToRequest applies the accept or reject trigger on behalf of the
// owning charity. The response value is validated before any state is
// inspected, and the rejected task keeps its assigned benefactor reference.
func (s *taskServiceImpl) RespondToRequest(
	ctx context.Context,
	account *domain.Account,
	taskID uuid.UUID,
	response string,
) error {
	if !account.IsCharity() {
		return ErrPermissionDenied
	}

	var trigger domain.TaskTrigger
	switch response {
	case ResponseAccepted:
		trigger = domain.TaskTriggerAccept
	case ResponseRejected:
		trigger = domain.TaskTriggerReject
	default:
		return ErrInvalidResponse
	}

	return s.transition(ctx, taskID, trigger, nil, account)
}

// MarkDone applies the done trigger on behalf of the owning charity.
func (s *taskServiceImpl) MarkDone(ctx context.Context, account *domain.Account, taskID uuid.UUID) error {
	if !account.IsCharity() {
		return ErrPermissionDenied
	}

	return s.transition(ctx, taskID, domain.TaskTriggerDone, nil, account)
}

// transition loads the task, enforces charity ownership when owner is
// non-nil, resolves the transition table, and applies the resulting state
// change as a conditional write. A write that loses a race to a concurrent
// transition reports the same conflict error the earlier state check would
// have: the check and the write are a single atomic step as far as callers
// can observe.
func (s *taskServiceImpl) transition(
	ctx context.Context,
	taskID uuid.UUID,
	trigger domain.TaskTrigger,
	assignBenefactor *uuid.UUID,
	owner *domain.Account,
) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if owner != nil && !owner.OwnsCharity(task.CharityID) {
		return ErrPermissionDenied
	}

	next, err := domain.NextTaskState(task.State, trigger)
	if err != nil {
		return err
	}

	err = s.tasks.UpdateState(ctx, taskID, task.State, next, assignBenefactor)
	if err != nil {
		if errors.Is(err, store.ErrStateMismatch) {
			// A concurrent operation moved the task between our read and the
			// conditional write.
			return domain.TaskConflictError(trigger)
		}
		return err
	}

	s.logger.Info("task transitioned",
		"task_id", taskID,
		"trigger", string(trigger),
		"from", string(task.State),
		"to", string(next))
	return nil
}
