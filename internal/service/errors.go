package service

import (
	"errors"
	"fmt"

	"github.com/examhall/backend/internal/store"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrGenerationConflict = errors.New("test generation conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal error")
)

// ValidationError identifies the offending input. Index is the position of
// the entry in a batch, or -1 when the error is not about a batch entry.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("entry %d: %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Index: -1, Field: field, Reason: err.Error()}
}

// classify maps store failures onto the service error set. Errors that
// already belong to it pass through unchanged.
func classify(err error) error {
	var ve *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrGenerationConflict),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
