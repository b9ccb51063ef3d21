// Package export serializes a segment list plus report identity and
// range metadata into the two canonical text formats, CSV and JSON,
// with fixed schemas for downstream analytics or invoicing.
//
// Both exporters emit segments in the same order: stable-sorted
// ascending by interval start, independent of input order. Enumeration
// values serialize as lowercase snake_case strings in both formats
// (for example unobservedGap coverage is always "unobserved_gap").
//
// Example usage:
//
//	csvText, err := export.CSV(segments, identity, export.CSVOptions{
//	    IncludeTitles:   true,
//	    TZOffsetSeconds: 3600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(csvText)
package export

import (
	"time"

	"github.com/tracklinehq/trackline/pkg/segment"
)

// localTimeLayout renders local timestamps with an explicit numeric
// offset so exported rows are unambiguous without the report metadata.
const localTimeLayout = "2006-01-02T15:04:05-07:00"

// Columns is the fixed CSV schema, in order. Both the header row and
// every data row carry exactly these 13 columns.
var Columns = []string{
	"start_local",
	"end_local",
	"duration_seconds",
	"app_bundle_id",
	"app_name",
	"window_title",
	"tags",
	"source",
	"coverage",
	"machine_id",
	"username",
	"uid",
	"supporting_ids",
}

// CSVOptions configures the CSV exporter.
type CSVOptions struct {
	// IncludeTitles controls whether window title content is emitted.
	// When false the window_title column is blanked but still present,
	// keeping the column count constant.
	IncludeTitles bool

	// TZOffsetSeconds is the fixed UTC offset used to render the local
	// start and end timestamps.
	TZOffsetSeconds int
}

// Range is the reporting period covered by an export, as half-open
// microsecond UTC timestamps.
type Range struct {
	// StartUs is the period start, microseconds since the UNIX epoch.
	StartUs int64

	// EndUs is the period end, microseconds since the UNIX epoch.
	EndUs int64
}

// JSONOptions configures the JSON exporter.
type JSONOptions struct {
	// IncludeTitles controls whether window titles are emitted. When
	// false every segment's window_title serializes as null.
	IncludeTitles bool

	// Now supplies the export wall-clock instant for exported_at_utc.
	// Defaults to time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// jsonReport is the top-level JSON export object.
type jsonReport struct {
	ReportID      string                 `json:"report_id"`
	Identity      segment.ReportIdentity `json:"identity"`
	ExportedAtUTC string                 `json:"exported_at_utc"`
	Range         jsonRange              `json:"range"`
	Segments      []jsonSegment          `json:"segments"`
}

// jsonRange is the reporting period in the JSON export.
type jsonRange struct {
	StartUTC string `json:"start_utc"`
	EndUTC   string `json:"end_utc"`
}

// jsonSegment is one exported segment element.
type jsonSegment struct {
	StartUTC        string   `json:"start_utc"`
	EndUTC          string   `json:"end_utc"`
	DurationSeconds float64  `json:"duration_seconds"`
	AppBundleID     string   `json:"app_bundle_id"`
	AppName         string   `json:"app_name"`
	WindowTitle     *string  `json:"window_title"`
	Tags            []string `json:"tags"`
	Source          string   `json:"source"`
	Coverage        string   `json:"coverage"`
	SupportingIDs   []string `json:"supporting_ids"`
}
