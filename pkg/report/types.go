// Package report computes derived totals from a list of effective
// segments: overall working and gap time, and totals sliced by
// application, tag, window title, local calendar day, and local clock
// hour.
//
// Every function is a pure, single-pass computation over the input
// list (tag fan-out adds a factor of tags-per-segment). Nothing is
// shared between calls, inputs are never mutated, and results are
// associative per grouping key, so callers may shard large inputs,
// aggregate shards concurrently, and merge partial maps by per-key
// summation.
//
// Example usage:
//
//	byApp, err := report.TotalsByApplication(segments)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for bundleID, seconds := range byApp {
//	    fmt.Printf("%s: %.1fs\n", bundleID, seconds)
//	}
package report

// Sentinel display labels applied when a grouping key is missing on a
// segment. These are presentation values only; the segment model keeps
// absence explicit (empty bundle ID, nil title, empty tag list).
const (
	// SentinelNoBundleID labels segments with an empty app bundle ID.
	SentinelNoBundleID = "(no bundle id)"

	// SentinelUntagged labels segments with an empty tag list.
	SentinelUntagged = "(untagged)"

	// SentinelNoTitle labels segments with no window title.
	SentinelNoTitle = "(no title)"
)

// HourGrouping selects the label dimension for TotalsByHour.
type HourGrouping string

const (
	// GroupApp labels hour buckets with the application name.
	GroupApp HourGrouping = "app"

	// GroupTag fans each segment out to one bucket per tag.
	GroupTag HourGrouping = "tag"

	// GroupAppWindow labels hour buckets with "AppName — WindowTitle".
	GroupAppWindow HourGrouping = "app_window"
)

// Valid reports whether the grouping is a member of the closed set.
func (g HourGrouping) Valid() bool {
	switch g {
	case GroupApp, GroupTag, GroupAppWindow:
		return true
	default:
		return false
	}
}

// HourBucket is one (local hour, label) total.
//
// Multiple buckets may share an hour across different labels, but no
// two buckets share an identical (Hour, Label) pair; overlapping
// contributions to the same pair are summed. Consumers must match on
// the pair, not on position.
type HourBucket struct {
	// Hour is the local clock hour, 0-23.
	Hour int

	// Label is the grouping label for this bucket.
	Label string

	// Seconds is the total within-hour duration for the label.
	Seconds float64
}
