package extractor

import (
	"context"
	"errors"
	"fmt"

	"html-extract-go/pkg/models"
)

// ErrElementNotFound is wrapped by every backend when nothing matches the lookup.
var ErrElementNotFound = errors.New("element not found")

// ExtractionError is the single error type surfaced for a failed extraction.
// Stage is informational only.
type ExtractionError struct {
	Stage   Stage
	Message string
	Cause   error
}

// Error returns the underlying failure message unchanged.
func (e *ExtractionError) Error() string {
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newExtractionError(stage Stage, cause error) *ExtractionError {
	var existing *ExtractionError
	if errors.As(cause, &existing) {
		return existing
	}
	msg := "extraction failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &ExtractionError{
		Stage:   stage,
		Message: msg,
		Cause:   cause,
	}
}

func newNotFoundError(strategy models.LookupStrategy, value string, cause error) *ExtractionError {
	err := fmt.Errorf("%w: no element with %s %q", ErrElementNotFound, strategy, value)
	if cause != nil {
		err = fmt.Errorf("%w: no element with %s %q (%v)", ErrElementNotFound, strategy, value, cause)
	}
	return newExtractionError(StageLocate, err)
}

// contextError turns a cancelled or expired context into an ExtractionError.
func contextError(stage Stage, err error) *ExtractionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newExtractionError(stage, fmt.Errorf("extraction timed out during %s: %w", stage, err))
	}
	return newExtractionError(stage, fmt.Errorf("extraction cancelled during %s: %w", stage, err))
}
