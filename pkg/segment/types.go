// Package segment defines the effective segment model consumed by the
// reporting core. An effective segment is a reconciled, classified
// interval of tracked activity (or an untracked gap) produced by the
// upstream timeline component.
//
// Segments are immutable value types: nothing in this module mutates a
// segment after construction, and every derived output is freshly
// allocated.
//
// Example usage:
//
//	seg := segment.EffectiveSegment{
//	    StartUs:     1700000000000000,
//	    EndUs:       1700000060000000,
//	    Source:      segment.SourceTracker,
//	    AppBundleID: "com.example.editor",
//	    AppName:     "Editor",
//	    Coverage:    segment.CoverageObserved,
//	}
//	if err := seg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Duration: %.1fs\n", seg.Seconds())
package segment

import (
	"time"
)

// Coverage classifies a segment as observed activity or an unobserved gap.
//
// The set of values is closed; anything else fails validation.
type Coverage string

const (
	// CoverageObserved marks a segment backed by observed activity.
	CoverageObserved Coverage = "observed"

	// CoverageUnobservedGap marks an interval with no observations.
	// Gap segments never contribute to working time or grouped totals.
	CoverageUnobservedGap Coverage = "unobserved_gap"
)

// Valid reports whether the coverage value is a member of the closed set.
func (c Coverage) Valid() bool {
	switch c {
	case CoverageObserved, CoverageUnobservedGap:
		return true
	default:
		return false
	}
}

// Source marks the provenance of a segment. The reporting core passes
// it through opaquely; it only validates membership in the closed set.
type Source string

const (
	// SourceTracker marks a segment produced by the automatic tracker.
	SourceTracker Source = "tracker"

	// SourceManual marks a segment entered by hand.
	SourceManual Source = "manual"

	// SourceImport marks a segment imported from an external system.
	SourceImport Source = "import"
)

// Valid reports whether the source value is a member of the closed set.
func (s Source) Valid() bool {
	switch s {
	case SourceTracker, SourceManual, SourceImport:
		return true
	default:
		return false
	}
}

// EffectiveSegment is an immutable half-open UTC interval with
// classification attributes.
//
// Invariant: StartUs <= EndUs (equal means zero duration).
// Invariant: Coverage and Source are members of their closed sets.
//
// AppBundleID may be empty; that is a valid, distinct category, not an
// error. WindowTitle is optional; nil means absent, which is likewise a
// valid, distinct category. Sentinel display labels for these cases are
// applied at the aggregation/export boundary, never stored here.
type EffectiveSegment struct {
	// StartUs is the interval start, microseconds since the UNIX epoch (UTC).
	StartUs int64 `json:"start_us"`

	// EndUs is the interval end, microseconds since the UNIX epoch (UTC).
	EndUs int64 `json:"end_us"`

	// Source marks provenance; passed through opaquely.
	Source Source `json:"source"`

	// AppBundleID identifies the application. Empty is a valid category.
	AppBundleID string `json:"app_bundle_id"`

	// AppName is the application display name, not unique per bundle ID.
	AppName string `json:"app_name"`

	// WindowTitle is the window title, nil when absent.
	WindowTitle *string `json:"window_title,omitempty"`

	// Tags is an ordered list of tags, used set-like but not deduplicated.
	Tags []string `json:"tags,omitempty"`

	// Coverage classifies the segment as observed or an unobserved gap.
	Coverage Coverage `json:"coverage"`

	// SupportingIDs is an opaque passthrough list, never interpreted here.
	SupportingIDs []string `json:"supporting_ids,omitempty"`
}

// Start returns the interval start as a UTC time.
func (e EffectiveSegment) Start() time.Time {
	return time.UnixMicro(e.StartUs).UTC()
}

// End returns the interval end as a UTC time.
func (e EffectiveSegment) End() time.Time {
	return time.UnixMicro(e.EndUs).UTC()
}

// DurationUs returns the elapsed microseconds of the interval.
func (e EffectiveSegment) DurationUs() int64 {
	return e.EndUs - e.StartUs
}

// Duration returns the elapsed time of the interval.
func (e EffectiveSegment) Duration() time.Duration {
	return time.Duration(e.DurationUs()) * time.Microsecond
}

// Seconds returns the elapsed time of the interval in seconds,
// converted from the integer microsecond duration.
func (e EffectiveSegment) Seconds() float64 {
	return float64(e.DurationUs()) / 1e6
}

// IsGap reports whether the segment is an unobserved gap.
func (e EffectiveSegment) IsGap() bool {
	return e.Coverage == CoverageUnobservedGap
}

// Validate checks whether the segment satisfies all invariants.
//
// Returns an error if:
//   - EndUs < StartUs
//   - Coverage is not a member of the closed coverage set
//   - Source is not a member of the closed source set
//
// A zero-duration segment (StartUs == EndUs) is valid.
func (e EffectiveSegment) Validate() error {
	if e.EndUs < e.StartUs {
		return ErrNegativeInterval
	}
	if !e.Coverage.Valid() {
		return ErrInvalidCoverage
	}
	if !e.Source.Valid() {
		return ErrInvalidSource
	}
	return nil
}

// ValidateAll validates every segment in the list.
//
// Returns nil if all segments are valid, otherwise a *ValidationError
// naming the position of the first invalid segment. The reporting core
// applies this uniformly: the splitter, every aggregator, and both
// exporters reject malformed input before producing any output.
func ValidateAll(segments []EffectiveSegment) error {
	for i, seg := range segments {
		if err := seg.Validate(); err != nil {
			return &ValidationError{Index: i, Err: err}
		}
	}
	return nil
}

// ReportIdentity identifies the machine and user a report was generated
// for. The reporting core passes it through opaquely.
//
// Invariant: UID >= 0.
type ReportIdentity struct {
	// MachineID identifies the host machine.
	MachineID string `json:"machine_id"`

	// Username is the login name of the reporting user.
	Username string `json:"username"`

	// UID is the numeric user ID, non-negative.
	UID int `json:"uid"`
}

// Validate checks that the identity satisfies its invariants.
func (r ReportIdentity) Validate() error {
	if r.UID < 0 {
		return ErrNegativeUID
	}
	return nil
}
