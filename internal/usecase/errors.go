package usecase

import (
	"errors"
	"fmt"

	"feedback-portal/internal/data/repository"
)

// Error kinds. Handlers map them to status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// Error carries a caller-facing message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func forbiddenError(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func notFoundError(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func unauthenticatedError(format string, args ...any) error {
	return newError(ErrUnauthenticated, format, args...)
}

func isRepoNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
