// Package splitter divides effective segments at local calendar-day or
// clock-hour boundaries so that no output part crosses a boundary of
// the chosen granularity. Per-day and per-hour totals computed from the
// parts are then meaningful in the user's timezone, including across
// daylight-saving transitions.
//
// Splitting is instant-driven: boundary instants are computed with
// timezone-aware calendar arithmetic and converted back to UTC, so a
// DST-shifted day of 23 or 25 wall-clock hours is handled transparently
// and each part's duration reflects true elapsed UTC time.
//
// Example usage:
//
//	loc, err := time.LoadLocation("Europe/Berlin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	parts, err := splitter.Split(segments, loc, splitter.GranularityDay)
//	if err != nil {
//	    log.Fatal(err)
//	}
package splitter

// Granularity selects the boundary interval the splitter honors.
type Granularity string

const (
	// GranularityDay splits at local calendar-day boundaries (midnight).
	GranularityDay Granularity = "day"

	// GranularityHour splits at local clock-hour boundaries.
	GranularityHour Granularity = "hour"
)

// Valid reports whether the granularity is a member of the closed set.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityHour:
		return true
	default:
		return false
	}
}
