package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors with proper types for error handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the caller is not allowed to perform the operation
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput indicates missing or invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid caller identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict indicates a conflict with existing data
	ErrConflict = errors.New("conflict")

	// ErrSlotUnavailable indicates the requested slot cannot be booked anymore
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrTransport indicates a network or database failure talking to a collaborator
	ErrTransport = errors.New("transport failure")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// reasonError carries the human-readable reason shown to API callers.
// Error() keeps the full wrapped text for logs.
type reasonError struct {
	reason string
	err    error
}

func (e *reasonError) Error() string { return e.err.Error() }

func (e *reasonError) Unwrap() error { return e.err }

func withReason(reason string, err error) error {
	return &reasonError{reason: reason, err: err}
}

// Reason returns the caller-facing reason of err, or "" when none was attached
func Reason(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.reason
	}
	return ""
}

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return withReason(upperFirst(resource)+" not found", fmt.Errorf("%s %w", resource, ErrNotFound))
}

// AccessDeniedError creates an access denied error with context
func AccessDeniedError(reason string) error {
	if reason != "" {
		return withReason(reason, fmt.Errorf("%s: %w", reason, ErrAccessDenied))
	}
	return ErrAccessDenied
}

// InvalidInputError creates an invalid input error for a field; the reason reads "<field> <reason>"
func InvalidInputError(field, reason string) error {
	return withReason(field+" "+reason, fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput))
}

// ValidationError creates an invalid input error whose reason is msg as given
func ValidationError(msg string) error {
	return withReason(msg, fmt.Errorf("%s: %w", msg, ErrInvalidInput))
}

// AuthRequiredError creates an unauthorized error with context
func AuthRequiredError(reason string) error {
	if reason != "" {
		return withReason(reason, fmt.Errorf("%s: %w", reason, ErrUnauthorized))
	}
	return ErrUnauthorized
}

// ConflictError creates a conflict error with context
func ConflictError(reason string) error {
	return withReason(reason, fmt.Errorf("%s: %w", reason, ErrConflict))
}

// SlotUnavailableError creates a slot unavailable error with context
func SlotUnavailableError(reason string) error {
	if reason != "" {
		return withReason(reason, fmt.Errorf("%s: %w", reason, ErrSlotUnavailable))
	}
	return ErrSlotUnavailable
}

// TransportError wraps a collaborator failure, keeping both the cause and ErrTransport in the chain.
// The reason reads "Failed to <operation>".
func TransportError(operation string, cause error) error {
	reason := "Failed to " + operation
	if cause == nil {
		return withReason(reason, fmt.Errorf("%s: %w", operation, ErrTransport))
	}
	return withReason(reason, fmt.Errorf("%s: %w: %w", operation, ErrTransport, cause))
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
