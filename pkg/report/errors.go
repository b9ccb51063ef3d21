package report

import "errors"

// Common errors returned by the report package.
var (
	// ErrNilLocation is returned when no timezone location is supplied.
	ErrNilLocation = errors.New("nil timezone location")

	// ErrInvalidHourGrouping is returned when the hour grouping mode is
	// outside the closed set.
	ErrInvalidHourGrouping = errors.New("invalid hour grouping: must be app, tag, or app_window")
)
