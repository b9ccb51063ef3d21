package splitter

import (
	"fmt"
	"slices"
	"time"

	"github.com/tracklinehq/trackline/pkg/segment"
)

// Split divides segments at local boundaries of the given granularity.
//
// Parameters:
//   - segments: Input segments, in the order the caller wants preserved
//   - loc: Resolved timezone location for boundary arithmetic
//   - g: Boundary granularity (day or hour)
//
// Returns:
//   - Parts, none of which crosses a local boundary of the granularity
//   - Error if loc is nil, g is unknown, or a segment is malformed
//
// Output preserves input order: the parts of one segment appear
// contiguously in chronological order, and distinct segments keep their
// relative input order. Every field except start/end is copied verbatim
// onto each part, and the parts of one segment sum exactly to its
// duration in microseconds.
//
// A segment that lies fully within one boundary interval yields exactly
// one part identical to the input. A zero-duration segment always
// yields exactly one zero-duration part, never split. A segment
// starting exactly at a boundary belongs to the interval beginning
// there.
func Split(segments []segment.EffectiveSegment, loc *time.Location, g Granularity) ([]segment.EffectiveSegment, error) {
	if loc == nil {
		return nil, ErrNilLocation
	}
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	if err := segment.ValidateAll(segments); err != nil {
		return nil, err
	}

	parts := make([]segment.EffectiveSegment, 0, len(segments))
	for _, seg := range segments {
		parts = appendParts(parts, seg, loc, g)
	}
	return parts, nil
}

// appendParts walks one segment across boundary intervals, appending
// one part per interval touched.
func appendParts(parts []segment.EffectiveSegment, seg segment.EffectiveSegment, loc *time.Location, g Granularity) []segment.EffectiveSegment {
	cur := seg.StartUs
	for {
		boundary := nextBoundaryUs(cur, loc, g)

		end := seg.EndUs
		if boundary < end {
			end = boundary
		}

		part := seg
		part.StartUs = cur
		part.EndUs = end
		part.Tags = slices.Clone(seg.Tags)
		part.SupportingIDs = slices.Clone(seg.SupportingIDs)
		parts = append(parts, part)

		if end >= seg.EndUs {
			return parts
		}
		cur = end
	}
}

// nextBoundaryUs returns the UTC microsecond instant of the first
// boundary strictly after ts.
//
// Candidate boundaries are built by widening the wall-clock field of
// the local time of ts itself, never of a normalized candidate: a wall
// time skipped by a forward transition normalizes to an instant that
// can sit at or before ts, and re-deriving the next candidate from it
// would regenerate the same skipped wall time indefinitely. The elapsed
// UTC span to the boundary may differ from the nominal interval length
// (a local day can be 23 or 25 wall-clock hours, a local clock hour can
// cover zero or two elapsed hours).
func nextBoundaryUs(ts int64, loc *time.Location, g Granularity) int64 {
	t := time.UnixMicro(ts)
	lt := t.In(loc)

	for i := 1; ; i++ {
		var next time.Time
		switch g {
		case GranularityHour:
			next = boundaryInstant(lt.Year(), lt.Month(), lt.Day(), lt.Hour()+i, loc)
		default:
			next = boundaryInstant(lt.Year(), lt.Month(), lt.Day()+i, 0, loc)
		}
		if next.After(t) {
			return next.UnixMicro()
		}
	}
}

// boundaryInstant resolves the wall-clock boundary (year, month, day,
// hour, with minute and second zero) to an instant in loc. A boundary
// whose wall time is skipped by a forward transition resolves to the
// transition instant itself, the first instant at which the new day or
// hour is in effect.
func boundaryInstant(year int, month time.Month, day, hour int, loc *time.Location) time.Time {
	c := time.Date(year, month, day, hour, 0, 0, 0, loc)

	// Compare requested and resulting wall clocks in a zone-free frame;
	// time.Date normalizes out-of-range fields on both sides.
	want := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	got := time.Date(c.Year(), c.Month(), c.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC)
	if got.Equal(want) {
		return c
	}

	// The wall time is skipped: c carries one of the two offsets in
	// play, the other interpretation sits want-got away, and the
	// transition instant lies between them.
	other := c.Add(want.Sub(got))
	lo, hi := other, c
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	return transitionAfter(lo, hi, loc)
}

// transitionAfter returns the first instant in (lo, hi] whose zone
// offset differs from lo's. lo and hi must straddle exactly one
// transition.
func transitionAfter(lo, hi time.Time, loc *time.Location) time.Time {
	_, loOffset := lo.In(loc).Zone()
	for hi.Sub(lo) > time.Microsecond {
		mid := lo.Add(hi.Sub(lo) / 2)
		if _, offset := mid.In(loc).Zone(); offset == loOffset {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}
