package crafting

import (
	"errors"
	"fmt"

	"github.com/roach88/craftkit/internal/modifier"
)

// RuntimeError is a fatal error that aborted a crafting pass.
//
// Missing resources are never errors; they are reported as
// ir.FailureMissingInput or a false tick. A RuntimeError means the recipe
// or its modifiers are misconfigured.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// RecipeID identifies the recipe being crafted.
	RecipeID string

	// ExecutionID identifies the craft.
	ExecutionID string

	// Phase is the pass that failed.
	Phase Phase

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeUnknownOperation indicates a modifier with an unknown operation.
	ErrCodeUnknownOperation RuntimeErrorCode = "UNKNOWN_MODIFIER_OPERATION"

	// ErrCodeDegenerateDuration indicates modifiers reduced the recipe
	// duration to zero or below.
	ErrCodeDegenerateDuration RuntimeErrorCode = "DEGENERATE_DURATION"

	// ErrCodeRequirementFailed indicates a requirement returned an error.
	ErrCodeRequirementFailed RuntimeErrorCode = "REQUIREMENT_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s (recipe=%s, phase=%s)", e.Code, e.Message, e.RecipeID, e.Phase)
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// newRuntimeError classifies err. An err that already is a *RuntimeError
// is returned unchanged.
func newRuntimeError(recipeID, executionID string, phase Phase, err error) *RuntimeError {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re
	}

	code := ErrCodeRequirementFailed
	var opErr *modifier.OperationError
	switch {
	case errors.As(err, &opErr):
		code = ErrCodeUnknownOperation
	case errors.Is(err, modifier.ErrDegenerateDuration):
		code = ErrCodeDegenerateDuration
	}

	return &RuntimeError{
		Code:        code,
		Message:     err.Error(),
		RecipeID:    recipeID,
		ExecutionID: executionID,
		Phase:       phase,
		Err:         err,
	}
}

// IsConfigError returns true for errors caused by recipe or modifier
// configuration (unknown operation, degenerate duration).
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	return IsUnknownOperation(err) || IsDegenerateDuration(err)
}

// IsUnknownOperation returns true if err reports an unknown modifier
// operation.
func IsUnknownOperation(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUnknownOperation
	}
	var opErr *modifier.OperationError
	return errors.As(err, &opErr)
}

// IsDegenerateDuration returns true if err reports a non-positive
// modified duration.
func IsDegenerateDuration(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeDegenerateDuration
	}
	return errors.Is(err, modifier.ErrDegenerateDuration)
}
