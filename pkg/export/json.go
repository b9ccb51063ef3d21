package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tracklinehq/trackline/pkg/segment"
)

// JSON serializes segments and report metadata into the canonical JSON
// export object.
//
// Parameters:
//   - segments: Segments to export, any order
//   - identity: Report identity, emitted under the "identity" key
//   - rng: Reporting period, emitted under the "range" key
//   - opts: Title inclusion and export clock
//
// Returns the UTF-8 JSON text: a single object with report_id,
// identity, exported_at_utc, range, and segments keys. Segments appear
// in the same sort order as the CSV export. Enumeration values
// serialize as lowercase snake_case strings. Validation happens before
// any output is produced.
func JSON(segments []segment.EffectiveSegment, identity segment.ReportIdentity, rng Range, opts JSONOptions) (string, error) {
	if err := segment.ValidateAll(segments); err != nil {
		return "", err
	}
	if err := identity.Validate(); err != nil {
		return "", err
	}
	if rng.EndUs < rng.StartUs {
		return "", ErrInvalidRange
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	sorted := sortByStart(segments)
	elements := make([]jsonSegment, 0, len(sorted))
	for _, seg := range sorted {
		var title *string
		if opts.IncludeTitles && seg.WindowTitle != nil {
			t := *seg.WindowTitle
			title = &t
		}

		tags := seg.Tags
		if tags == nil {
			tags = []string{}
		}
		supporting := seg.SupportingIDs
		if supporting == nil {
			supporting = []string{}
		}

		elements = append(elements, jsonSegment{
			StartUTC:        seg.Start().Format(time.RFC3339Nano),
			EndUTC:          seg.End().Format(time.RFC3339Nano),
			DurationSeconds: seg.Seconds(),
			AppBundleID:     seg.AppBundleID,
			AppName:         seg.AppName,
			WindowTitle:     title,
			Tags:            tags,
			Source:          string(seg.Source),
			Coverage:        string(seg.Coverage),
			SupportingIDs:   supporting,
		})
	}

	doc := jsonReport{
		ReportID:      uuid.NewString(),
		Identity:      identity,
		ExportedAtUTC: now().UTC().Format(time.RFC3339Nano),
		Range: jsonRange{
			StartUTC: time.UnixMicro(rng.StartUs).UTC().Format(time.RFC3339Nano),
			EndUTC:   time.UnixMicro(rng.EndUs).UTC().Format(time.RFC3339Nano),
		},
		Segments: elements,
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.String(), nil
}
