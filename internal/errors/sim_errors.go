package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory groups simulation errors by how callers should react.
type ErrorCategory string

const (
	// ErrorCategoryValidation covers bad configuration or sweep parameters.
	// Detected before any grid evaluation begins; aborts the whole sweep.
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	// ErrorCategoryData covers unusable price series input.
	ErrorCategoryData ErrorCategory = "DATA"
	// ErrorCategorySweep covers failures of the sweep itself, as opposed to
	// an individual candidate (those are logged and skipped).
	ErrorCategorySweep ErrorCategory = "SWEEP"
)

// ErrInsufficientData is returned when a price series has fewer than two
// points, which is fatal for that simulation only.
var ErrInsufficientData = errors.New("price series must contain at least two points")

// ErrNoValidCandidates is returned when every grid candidate of a sweep
// failed.
var ErrNoValidCandidates = errors.New("no grid candidate produced a valid simulation")

// InvalidConfigError reports a configuration or sweep-parameter field that
// violates its positivity or ordering constraint.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// SimError is a categorized error with the component and operation that
// produced it, used when surfacing failures across package boundaries.
type SimError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
}

func (e *SimError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

func (e *SimError) Unwrap() error {
	return e.Underlying
}

// IsFatal reports whether the error should abort a sweep rather than skip
// one candidate.
func (e *SimError) IsFatal() bool {
	return e.Category == ErrorCategoryValidation
}

// Wrap attaches category, component and operation context to an error.
func Wrap(err error, category ErrorCategory, component, operation string) *SimError {
	if err == nil {
		return nil
	}
	return &SimError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
	}
}
