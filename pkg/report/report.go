package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/tracklinehq/trackline/pkg/segment"
	"github.com/tracklinehq/trackline/pkg/splitter"
)

// TotalWorkingTime returns the total observed seconds across segments.
// Unobserved gaps are excluded; every observed segment counts exactly
// once regardless of how many tags it carries.
func TotalWorkingTime(segments []segment.EffectiveSegment) (float64, error) {
	if err := segment.ValidateAll(segments); err != nil {
		return 0, err
	}

	var us int64
	for _, seg := range segments {
		if seg.IsGap() {
			continue
		}
		us += seg.DurationUs()
	}
	return usToSeconds(us), nil
}

// TotalUnobservedGaps returns the total seconds covered only by
// unobserved gap segments.
func TotalUnobservedGaps(segments []segment.EffectiveSegment) (float64, error) {
	if err := segment.ValidateAll(segments); err != nil {
		return 0, err
	}

	var us int64
	for _, seg := range segments {
		if !seg.IsGap() {
			continue
		}
		us += seg.DurationUs()
	}
	return usToSeconds(us), nil
}

// TotalsByApplication returns observed seconds grouped by app bundle ID.
// An empty bundle ID groups under the "(no bundle id)" sentinel.
func TotalsByApplication(segments []segment.EffectiveSegment) (map[string]float64, error) {
	return totalsBy(segments, func(seg segment.EffectiveSegment) string {
		if seg.AppBundleID == "" {
			return SentinelNoBundleID
		}
		return seg.AppBundleID
	})
}

// TotalsByWindowTitle returns observed seconds grouped by window title.
// Segments without a title group under the "(no title)" sentinel.
func TotalsByWindowTitle(segments []segment.EffectiveSegment) (map[string]float64, error) {
	return totalsBy(segments, func(seg segment.EffectiveSegment) string {
		if seg.WindowTitle == nil {
			return SentinelNoTitle
		}
		return *seg.WindowTitle
	})
}

// TotalsByTag returns observed seconds grouped by tag, with fan-out: a
// segment with n tags contributes its full duration to each of the n
// tag buckets independently. The over-count across the tag map is
// deliberate and never affects TotalWorkingTime. A segment with no tags
// groups under the "(untagged)" sentinel. Duplicate tags on one segment
// accumulate once per occurrence.
func TotalsByTag(segments []segment.EffectiveSegment) (map[string]float64, error) {
	if err := segment.ValidateAll(segments); err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, seg := range segments {
		if seg.IsGap() {
			continue
		}
		if len(seg.Tags) == 0 {
			totals[SentinelUntagged] += seg.DurationUs()
			continue
		}
		for _, tag := range seg.Tags {
			totals[tag] += seg.DurationUs()
		}
	}
	return toSeconds(totals), nil
}

// TotalsByDay returns observed seconds grouped by local calendar day,
// keyed "YYYY-MM-DD" in loc. Segments are split at day boundaries
// first, so a segment crossing midnight contributes only its
// within-day duration to each date and the parts sum exactly to the
// segment's duration.
func TotalsByDay(segments []segment.EffectiveSegment, loc *time.Location) (map[string]float64, error) {
	if loc == nil {
		return nil, ErrNilLocation
	}

	parts, err := splitter.Split(segments, loc, splitter.GranularityDay)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, part := range parts {
		if part.IsGap() {
			continue
		}
		day := part.Start().In(loc).Format("2006-01-02")
		totals[day] += part.DurationUs()
	}
	return toSeconds(totals), nil
}

// TotalsByHour returns observed seconds grouped by local clock hour and
// a label chosen by the grouping mode:
//
//   - GroupApp: label is the application name
//   - GroupTag: fan-out, one bucket per (hour, tag) pair, each carrying
//     the segment's full within-hour duration for that tag
//   - GroupAppWindow: label is "AppName — WindowTitle", with the
//     "(no title)" sentinel when the title is absent
//
// Segments are split at hour boundaries first. No two buckets share an
// identical (Hour, Label) pair. The output is sorted by hour then label
// for determinism, but the order is not part of the contract; consumers
// must match on the pair.
func TotalsByHour(segments []segment.EffectiveSegment, loc *time.Location, mode HourGrouping) ([]HourBucket, error) {
	if loc == nil {
		return nil, ErrNilLocation
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHourGrouping, mode)
	}

	parts, err := splitter.Split(segments, loc, splitter.GranularityHour)
	if err != nil {
		return nil, err
	}

	type hourKey struct {
		hour  int
		label string
	}

	totals := make(map[hourKey]int64)
	for _, part := range parts {
		if part.IsGap() {
			continue
		}
		hour := part.Start().In(loc).Hour()

		switch mode {
		case GroupTag:
			tags := part.Tags
			if len(tags) == 0 {
				tags = []string{SentinelUntagged}
			}
			for _, tag := range tags {
				totals[hourKey{hour, tag}] += part.DurationUs()
			}
		case GroupAppWindow:
			title := SentinelNoTitle
			if part.WindowTitle != nil {
				title = *part.WindowTitle
			}
			totals[hourKey{hour, part.AppName + " — " + title}] += part.DurationUs()
		default:
			totals[hourKey{hour, part.AppName}] += part.DurationUs()
		}
	}

	buckets := make([]HourBucket, 0, len(totals))
	for key, us := range totals {
		buckets = append(buckets, HourBucket{
			Hour:    key.hour,
			Label:   key.label,
			Seconds: usToSeconds(us),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Hour != buckets[j].Hour {
			return buckets[i].Hour < buckets[j].Hour
		}
		return buckets[i].Label < buckets[j].Label
	})

	return buckets, nil
}

// totalsBy groups observed seconds by a single label per segment.
func totalsBy(segments []segment.EffectiveSegment, label func(segment.EffectiveSegment) string) (map[string]float64, error) {
	if err := segment.ValidateAll(segments); err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, seg := range segments {
		if seg.IsGap() {
			continue
		}
		totals[label(seg)] += seg.DurationUs()
	}
	return toSeconds(totals), nil
}

// usToSeconds converts an integer microsecond total to float seconds.
func usToSeconds(us int64) float64 {
	return float64(us) / 1e6
}

// toSeconds converts a microsecond-keyed total map to float seconds.
func toSeconds(totals map[string]int64) map[string]float64 {
	result := make(map[string]float64, len(totals))
	for key, us := range totals {
		result[key] = usToSeconds(us)
	}
	return result
}
