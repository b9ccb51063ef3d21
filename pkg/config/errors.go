package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoTimezone is returned when no report timezone is specified.
	ErrNoTimezone = errors.New("no report timezone specified")

	// ErrUnresolvableTimezone is returned when the timezone name cannot
	// be resolved against the system timezone database.
	ErrUnresolvableTimezone = errors.New("unresolvable timezone name")

	// ErrInvalidHourGrouping is returned when hour grouping is not recognized.
	ErrInvalidHourGrouping = errors.New("invalid hour grouping: must be app, tag, or app_window")

	// ErrInvalidExportFormat is returned when export format is not recognized.
	ErrInvalidExportFormat = errors.New("invalid export format: must be csv or json")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
