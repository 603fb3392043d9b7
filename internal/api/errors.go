package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/service/auth"
	"github.com/charitableio/charitable-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Individual
// endpoints override this mapping where their contract differs (the response
// endpoint reports a missing task as 400, for example); this is the default.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrBenefactorNotFound),
		errors.Is(err, store.ErrCharityNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Lifecycle conflicts surface as 404 on their endpoints, matching the
	// not-found treatment of a task that is not in the required state.
	case errors.Is(err, domain.ErrTaskNotPending),
		errors.Is(err, domain.ErrTaskNotWaiting),
		errors.Is(err, domain.ErrTaskNotAssigned):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrProfileExists),
		errors.Is(err, store.ErrRegNumberExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrInvalidResponse),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
// Internal detail never reaches the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrPermissionDenied):
		return "You do not have permission to perform this action."

	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, domain.ErrTaskNotPending):
		return "This task is not pending."

	case errors.Is(err, domain.ErrTaskNotWaiting):
		return "This task is not waiting."

	case errors.Is(err, domain.ErrTaskNotAssigned):
		return "Task is not assigned yet."

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrProfileExists):
		return "Profile already registered for this account"

	case errors.Is(err, store.ErrRegNumberExists):
		return "Registration number already exists"

	case errors.Is(err, service.ErrInvalidResponse):
		return `Response must be "A" or "R".`

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a client-safe message
// naming the offending field without echoing submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// "Key: 'LoginRequest.Username' Error:Field validation for 'Username' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				if len(fieldParts) >= 5 {
					return "Invalid " + field + ": " + validationTagMessage(fieldParts[3])
				}
				return "Invalid " + field
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
