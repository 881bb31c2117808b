package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup of an identifier that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks input the caller must fix before retrying.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyMatched is returned by match storage when the (job, professional) pair
	// is already persisted. Callers treat it as a skip, not a failure.
	ErrAlreadyMatched = errors.New("match already exists")
)

// NotFound returns an error wrapping ErrNotFound for the given entity and id.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s with id %d: %w", entity, id, ErrNotFound)
}

// Invalid returns an error wrapping ErrValidation with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
