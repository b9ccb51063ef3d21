// Package config provides configuration management for trackline.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file
// 3. Default values (lowest priority)
//
// The report timezone is resolved eagerly during validation, so an
// unresolvable identifier is rejected here as a configuration error
// before any day/hour splitting or aggregation runs.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loc, _ := cfg.Report.Location()
//	fmt.Printf("Reporting in %s\n", loc)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - Report.Timezone must resolve via the system timezone database
// - Report.HourGrouping must be app, tag, or app_window
// - Export.Format must be csv or json
// - Logging.Level and Logging.Format must be recognized values.
type Config struct {
	// Report settings
	Report ReportConfig `yaml:"report"`

	// Export settings
	Export ExportConfig `yaml:"export"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig contains report computation settings.
type ReportConfig struct {
	// IANA timezone name used for day and hour boundaries
	Timezone string `yaml:"timezone"`

	// Hour bucket grouping mode (app, tag, app_window)
	HourGrouping string `yaml:"hour_grouping"`
}

// Location resolves the configured timezone.
func (r ReportConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, ErrUnresolvableTimezone
	}
	return loc, nil
}

// ExportConfig contains export settings.
type ExportConfig struct {
	// Output format (csv, json)
	Format string `yaml:"format"`

	// Whether window title content is included in exports
	IncludeTitles bool `yaml:"include_titles"`

	// Fixed UTC offset in seconds for CSV local timestamps
	TZOffsetSeconds int `yaml:"tz_offset_seconds"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Returns an error if any invariant is violated:
//   - Unresolvable timezone name
//   - Unknown hour grouping mode
//   - Unknown export format
//   - Invalid log level or format
//
// Thread-safety: This method is read-only and thread-safe.
func (c *Config) Validate() error {
	if c.Report.Timezone == "" {
		return ErrNoTimezone
	}
	if _, err := c.Report.Location(); err != nil {
		return err
	}

	validGroupings := map[string]bool{
		"app":        true,
		"tag":        true,
		"app_window": true,
	}
	if !validGroupings[c.Report.HourGrouping] {
		return ErrInvalidHourGrouping
	}

	validFormats := map[string]bool{
		"csv":  true,
		"json": true,
	}
	if !validFormats[c.Export.Format] {
		return ErrInvalidExportFormat
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Timezone:     "UTC",
			HourGrouping: "app",
		},
		Export: ExportConfig{
			Format:        "csv",
			IncludeTitles: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}
