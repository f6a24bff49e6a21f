package domain

import "fmt"

// ValidationError covers malformed or out-of-range caller input, like a
// non-positive simulation horizon or an unparseable transaction. It is
// always surfaced to the caller, never retried.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError covers lookups of unknown catalog entries, like a stress
// scenario or time machine preset id that doesn't exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
