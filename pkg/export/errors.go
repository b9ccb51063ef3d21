package export

import "errors"

// Common errors returned by the export package.
var (
	// ErrInvalidRange is returned when a range ends before it starts.
	ErrInvalidRange = errors.New("invalid range: end before start")
)
