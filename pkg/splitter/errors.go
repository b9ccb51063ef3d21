package splitter

import "errors"

// Common errors returned by the splitter package.
var (
	// ErrNilLocation is returned when no timezone location is supplied.
	ErrNilLocation = errors.New("nil timezone location")

	// ErrInvalidGranularity is returned when granularity is outside the closed set.
	ErrInvalidGranularity = errors.New("invalid granularity: must be day or hour")
)
