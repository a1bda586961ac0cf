package common

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated when no caller identity is present.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrPermissionDenied when the caller role is not granted to perform the action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSelfAction when a moderating action targets the caller's own account.
	ErrSelfAction = errors.New("cannot perform this action over your own account")
)

// ValidationError reports malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid builds a validation error for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// LookupFailed wraps infrastructure failures coming from the store.
type LookupFailed struct {
	Op  string
	Err error
}

func (e *LookupFailed) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *LookupFailed) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsLookupFailed reports whether err is a *LookupFailed.
func IsLookupFailed(err error) bool {
	var l *LookupFailed
	return errors.As(err, &l)
}
