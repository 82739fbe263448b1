package engine

import (
	"errors"
	"fmt"

	"github.com/mdakit/mdaseq/internal/mda"
)

// ConfigError represents a malformed sequence configuration detected before
// iteration begins.
//
// Configuration errors include:
//   - Axis ordering: unknown tag, duplicate tag, present axis omitted
//   - Dynamic-length axis nested inside a faster-varying axis
//   - Cyclic sub-sequence nesting
//
// ConfigError is fail-fast and non-recoverable: Iterate() refuses to
// construct a stream for a malformed sequence.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Message is a human-readable description.
	Message string

	// Axis identifies the offending axis tag, when one applies.
	Axis mda.Axis
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeUnknownAxis indicates an axis-order tag that is not a known axis.
	ErrCodeUnknownAxis ConfigErrorCode = "UNKNOWN_AXIS"

	// ErrCodeDuplicateAxis indicates an axis appearing more than once in the
	// requested order.
	ErrCodeDuplicateAxis ConfigErrorCode = "DUPLICATE_AXIS"

	// ErrCodeMissingAxis indicates a present axis omitted from a non-empty
	// requested order.
	ErrCodeMissingAxis ConfigErrorCode = "MISSING_AXIS"

	// ErrCodeDynamicNotOutermost indicates a dynamic-length time plan nested
	// inside a faster-varying axis.
	ErrCodeDynamicNotOutermost ConfigErrorCode = "DYNAMIC_AXIS_NOT_OUTERMOST"

	// ErrCodeCyclicSubsequence indicates a sequence that contains itself,
	// directly or transitively, through nested stage positions.
	ErrCodeCyclicSubsequence ConfigErrorCode = "CYCLIC_SUBSEQUENCE"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Axis != "" {
		return fmt.Sprintf("%s: %s (axis=%s)", e.Code, e.Message, e.Axis)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// newAxisError creates a ConfigError tied to one axis tag.
func newAxisError(code ConfigErrorCode, axis mda.Axis, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    code,
		Axis:    axis,
		Message: fmt.Sprintf(format, args...),
	}
}

// newCycleError creates a ConfigError for cyclic sub-sequence nesting.
func newCycleError(depth int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeCyclicSubsequence,
		Message: fmt.Sprintf("sequence nests itself at depth %d", depth),
	}
}
