package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskState represents the lifecycle state of a task.
type TaskState string

// Possible task state values
const (
	TaskStatePending  TaskState = "pending"
	TaskStateWaiting  TaskState = "waiting"
	TaskStateAssigned TaskState = "assigned"
	TaskStateDone     TaskState = "done"
)

// TaskTrigger identifies a lifecycle operation applied to a task.
type TaskTrigger string

// Possible task triggers
const (
	// TaskTriggerRequest is a benefactor requesting to perform the task.
	TaskTriggerRequest TaskTrigger = "request"
	// TaskTriggerAccept is the owning charity accepting the current request.
	TaskTriggerAccept TaskTrigger = "accept"
	// TaskTriggerReject is the owning charity rejecting the current request.
	TaskTriggerReject TaskTrigger = "reject"
	// TaskTriggerDone is the owning charity marking the task as completed.
	TaskTriggerDone TaskTrigger = "done"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskCharityID = errors.New("task charity ID cannot be empty")
	ErrEmptyTaskTitle     = errors.New("task title cannot be empty")
	ErrInvalidTaskState   = errors.New("invalid task state")
)

// Lifecycle conflict errors, returned when a trigger is applied to a task
// whose current state does not permit it. No mutation ever accompanies these.
var (
	ErrTaskNotPending  = errors.New("task is not pending")
	ErrTaskNotWaiting  = errors.New("task is not waiting")
	ErrTaskNotAssigned = errors.New("task is not assigned")
)

// taskTransitions is the complete transition table of the task lifecycle.
// Any (state, trigger) pair absent from the table is illegal.
var taskTransitions = map[TaskState]map[TaskTrigger]TaskState{
	TaskStatePending: {
		TaskTriggerRequest: TaskStateWaiting,
	},
	TaskStateWaiting: {
		TaskTriggerAccept: TaskStateAssigned,
		TaskTriggerReject: TaskStatePending,
	},
	TaskStateAssigned: {
		TaskTriggerDone: TaskStateDone,
	},
}

// requiredState maps each trigger to the only state it is legal in.
var requiredState = map[TaskTrigger]TaskState{
	TaskTriggerRequest: TaskStatePending,
	TaskTriggerAccept:  TaskStateWaiting,
	TaskTriggerReject:  TaskStateWaiting,
	TaskTriggerDone:    TaskStateAssigned,
}

// conflictError maps each trigger to the conflict error reported when the
// task is not in the trigger's required state.
var conflictError = map[TaskTrigger]error{
	TaskTriggerRequest: ErrTaskNotPending,
	TaskTriggerAccept:  ErrTaskNotWaiting,
	TaskTriggerReject:  ErrTaskNotWaiting,
	TaskTriggerDone:    ErrTaskNotAssigned,
}

// NextTaskState resolves the transition table for the given current state and
// trigger. It returns the resulting state, or the trigger's conflict error
// when the current state does not permit the trigger.
func NextTaskState(current TaskState, trigger TaskTrigger) (TaskState, error) {
	if next, ok := taskTransitions[current][trigger]; ok {
		return next, nil
	}
	if conflict, ok := conflictError[trigger]; ok {
		return "", conflict
	}
	return "", ErrInvalidTaskState
}

// RequiredTaskState returns the only state in which the given trigger is
// legal. The second return value is false for unknown triggers.
func RequiredTaskState(trigger TaskTrigger) (TaskState, bool) {
	state, ok := requiredState[trigger]
	return state, ok
}

// TaskConflictError returns the conflict error reported when the given
// trigger is applied in a state that does not permit it.
func TaskConflictError(trigger TaskTrigger) error {
	if conflict, ok := conflictError[trigger]; ok {
		return conflict
	}
	return ErrInvalidTaskState
}

// Task is a unit of work posted by a charity, progressing through the fixed
// lifecycle pending -> waiting -> assigned -> done (waiting may fall back to
// pending on rejection). The owning charity is fixed at creation.
type Task struct {
	ID                   uuid.UUID  `json:"id"`
	CharityID            uuid.UUID  `json:"charity_id"`
	AssignedBenefactorID *uuid.UUID `json:"assigned_benefactor_id,omitempty"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Deadline             *time.Time `json:"deadline,omitempty"`
	State                TaskState  `json:"state"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given charity, in the pending
// state. It generates a new UUID for the task ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(charityID uuid.UUID, title, description, category string, deadline *time.Time) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		CharityID:   charityID,
		Title:       title,
		Description: description,
		Category:    category,
		Deadline:    deadline,
		State:       TaskStatePending,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.CharityID == uuid.Nil {
		return ErrEmptyTaskCharityID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !isValidTaskState(t.State) {
		return ErrInvalidTaskState
	}

	return nil
}

// isValidTaskState checks if the given state is a valid TaskState.
func isValidTaskState(state TaskState) bool {
	switch state {
	case TaskStatePending, TaskStateWaiting, TaskStateAssigned, TaskStateDone:
		return true
	default:
		return false
	}
}
