package statistics

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySample is returned when a sample has no values; its mean is undefined.
	ErrEmptySample = errors.New("sample is empty")

	// ErrNoTrials is returned when fewer than one bootstrap trial is requested.
	ErrNoTrials = errors.New("no trials requested")

	// ErrConfidenceRange is returned for confidence percentages outside [1, 99].
	ErrConfidenceRange = errors.New("confidence must be between 1 and 99")

	// ErrNegativeWorkers is returned for a negative worker count.
	ErrNegativeWorkers = errors.New("worker count must not be negative")

	// ErrNonFiniteMean is returned when the values are finite but a resample
	// of them could sum past the float64 range.
	ErrNonFiniteMean = errors.New("sample values too large for a finite mean")
)

// InputError reports a sample that cannot be bootstrapped: it is empty, or one
// of its records could not be read as a number.
type InputError struct {
	// Path names the source of the sample, when known.
	Path string
	// Line is the 1-based record number that failed, or 0.
	Line int
	Err  error
}

func (e *InputError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("input %s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("input %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("input: %v", e.Err)
	}
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ValidationError reports a run parameter rejected before any resampling starts.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
