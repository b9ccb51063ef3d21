package segment

import (
	"errors"
	"fmt"
)

// Common errors returned by the segment package.
var (
	// ErrNegativeInterval is returned when a segment ends before it starts.
	ErrNegativeInterval = errors.New("invalid interval: end before start")

	// ErrInvalidCoverage is returned when coverage is outside the closed set.
	ErrInvalidCoverage = errors.New("invalid coverage: must be observed or unobserved_gap")

	// ErrInvalidSource is returned when source is outside the closed set.
	ErrInvalidSource = errors.New("invalid source: must be tracker, manual, or import")

	// ErrNegativeUID is returned when a report identity has a negative UID.
	ErrNegativeUID = errors.New("invalid uid: must be non-negative")
)

// ValidationError reports which segment in a list failed validation.
// Segment identity is positional, so the index is the only handle a
// caller has on the offending input.
type ValidationError struct {
	Index int   // Position in the input list (0-indexed)
	Err   error // Underlying error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid segment at index %d: %v", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
