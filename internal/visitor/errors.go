package visitor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoreUnavailable marks any failed call against the record store.
	ErrStoreUnavailable = errors.New("visitor store unavailable")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)

// StoreError describes a failed store operation. It matches
// ErrStoreUnavailable with errors.Is and unwraps to the underlying cause.
type StoreError struct {
	Op  string // "fetch" or "insert"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s visitors: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// FieldProblem is one rejected input field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a new visitor is missing required data.
// Nothing is written to the store.
type ValidationError struct {
	Problems []FieldProblem `json:"problems"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return "invalid visitor: " + strings.Join(msgs, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}
