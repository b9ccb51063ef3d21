package discovery

import "errors"

// Common errors returned by the discovery package.
var (
	// ErrNoPeriodFiles is returned when no period dump files are found.
	ErrNoPeriodFiles = errors.New("no period dump files found")
)
