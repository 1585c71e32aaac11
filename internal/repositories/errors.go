package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record, or a referenced record,
	// does not exist.
	ErrNotFound = errors.New("requested record not found")

	// ErrValidation is returned when caller-supplied data fails shape
	// or range checks before reaching storage.
	ErrValidation = errors.New("validation failed")
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func notFoundErr(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}
