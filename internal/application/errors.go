package application

import (
	"errors"
	"strings"

	"github.com/oksasatya/giftlink/pkg/validation"
)

var (
	ErrDuplicateUser      = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpdateFailed       = errors.New("failed to update user")
	ErrForbidden          = errors.New("cannot modify another user's profile")
	ErrGiftNotFound       = errors.New("gift not found")
	ErrNoGifts            = errors.New("no gifts found")
	ErrSearchUnavailable  = errors.New("text search is not configured")
	ErrStorageUnavailable = errors.New("image storage is not configured")
)

// ValidationError carries every rule the caller's input violated.
type ValidationError struct {
	Violations []validation.FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field+" "+v.Message)
	}
	return "validation failed: " + strings.Join(fields, "; ")
}

func newValidationError(err error) error {
	return &ValidationError{Violations: validation.Violations(err)}
}

func fieldError(field, tag, value, message string) error {
	return &ValidationError{Violations: []validation.FieldViolation{{
		Field: field, Tag: tag, Value: value, Message: message,
	}}}
}
