package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrSameStation        = errors.New("origin and destination must be different stations")
	ErrNoFareRoute        = errors.New("no fare available for this trip")
	ErrCatalogUnavailable = errors.New("fare tables are not loaded")
)

// ValidationError is a malformed or out-of-range request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
