package service

import (
	"errors"
	"fmt"
)

// Common service-level sentinel errors.
var (
	// ErrPermissionDenied is returned when the acting account lacks the role
	// or ownership an operation requires. It is always distinguishable from
	// the lifecycle conflict and not-found errors raised past the gate.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidResponse is returned when a charity's response to a task
	// request is neither "A" (accepted) nor "R" (rejected).
	ErrInvalidResponse = errors.New(`response must be "A" (accepted) or "R" (rejected)`)
)

// ServiceError wraps errors from the service layer with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "request_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
