package mda

import (
	"errors"
	"fmt"
)

// DomainError reports a failure during a specific per-step plan evaluation:
// a step index outside a plan's valid domain, or a skip predicate that
// references an axis absent from the current iteration context.
//
// Domain errors are fail-fast and non-recoverable: the engine surfaces them
// to the caller immediately and aborts the in-progress iteration. Events
// already pulled remain valid.
type DomainError struct {
	// Code identifies the error category.
	Code DomainErrorCode

	// Axis identifies the plan the evaluation belonged to.
	Axis Axis

	// Step is the offending step index (for out-of-range errors).
	Step int

	// Length is the plan's valid domain size (for out-of-range errors).
	Length int

	// Message is a human-readable description.
	Message string
}

// DomainErrorCode categorizes domain errors.
type DomainErrorCode string

const (
	// ErrCodeStepOutOfRange indicates a step index outside [0, length).
	ErrCodeStepOutOfRange DomainErrorCode = "STEP_OUT_OF_RANGE"

	// ErrCodeAxisNotInContext indicates a skip predicate referenced an axis
	// that is not present in the current iteration context.
	ErrCodeAxisNotInContext DomainErrorCode = "AXIS_NOT_IN_CONTEXT"
)

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Code == ErrCodeStepOutOfRange {
		return fmt.Sprintf("%s: axis %q step %d outside domain [0,%d)", e.Code, e.Axis, e.Step, e.Length)
	}
	return fmt.Sprintf("%s: %s (axis=%s)", e.Code, e.Message, e.Axis)
}

// IsDomainError reports whether err is (or wraps) a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// NewStepError creates a DomainError for an out-of-domain step index.
func NewStepError(axis Axis, step, length int) *DomainError {
	return &DomainError{
		Code:   ErrCodeStepOutOfRange,
		Axis:   axis,
		Step:   step,
		Length: length,
	}
}

// NewContextError creates a DomainError for a skip predicate that referenced
// an axis missing from the iteration context.
func NewContextError(axis Axis, missing Axis) *DomainError {
	return &DomainError{
		Code:    ErrCodeAxisNotInContext,
		Axis:    axis,
		Message: fmt.Sprintf("skip predicate references axis %q which is not in context", missing),
	}
}
