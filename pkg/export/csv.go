package export

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tracklinehq/trackline/pkg/segment"
)

// CSV serializes segments into the fixed 13-column CSV schema.
//
// Parameters:
//   - segments: Segments to export, any order
//   - identity: Report identity, passed through onto every row
//   - opts: Title inclusion and local timezone offset
//
// Returns the UTF-8, comma-delimited text: one header row, one row per
// segment, rows stable-sorted ascending by interval start (ties keep
// input order). Tags and supporting IDs are joined with ";". The
// validation of segments and identity happens before any output is
// produced; there is no partial-success mode.
func CSV(segments []segment.EffectiveSegment, identity segment.ReportIdentity, opts CSVOptions) (string, error) {
	if err := segment.ValidateAll(segments); err != nil {
		return "", err
	}
	if err := identity.Validate(); err != nil {
		return "", err
	}

	zone := time.FixedZone("", opts.TZOffsetSeconds)
	sorted := sortByStart(segments)

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, seg := range sorted {
		title := ""
		if opts.IncludeTitles && seg.WindowTitle != nil {
			title = *seg.WindowTitle
		}

		row := []string{
			seg.Start().In(zone).Format(localTimeLayout),
			seg.End().In(zone).Format(localTimeLayout),
			strconv.FormatFloat(seg.Seconds(), 'f', 6, 64),
			seg.AppBundleID,
			seg.AppName,
			title,
			strings.Join(seg.Tags, ";"),
			string(seg.Source),
			string(seg.Coverage),
			identity.MachineID,
			identity.Username,
			strconv.Itoa(identity.UID),
			strings.Join(seg.SupportingIDs, ";"),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.String(), nil
}

// sortByStart returns a copy of segments stable-sorted ascending by
// interval start. Ties keep input order.
func sortByStart(segments []segment.EffectiveSegment) []segment.EffectiveSegment {
	sorted := make([]segment.EffectiveSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartUs < sorted[j].StartUs
	})
	return sorted
}
