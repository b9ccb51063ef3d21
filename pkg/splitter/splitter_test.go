package splitter

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklinehq/trackline/pkg/segment"
)

// mustLoad resolves a timezone or fails the test.
func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err, "timezone %s must resolve", name)
	return loc
}

// seg builds an observed tracker segment between two instants.
func seg(start, end time.Time) segment.EffectiveSegment {
	return segment.EffectiveSegment{
		StartUs:     start.UnixMicro(),
		EndUs:       end.UnixMicro(),
		Source:      segment.SourceTracker,
		AppBundleID: "com.example.editor",
		AppName:     "Editor",
		Coverage:    segment.CoverageObserved,
	}
}

func TestSplit_WithinOneDay(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	input := seg(
		time.Date(2024, 6, 10, 9, 0, 0, 0, berlin),
		time.Date(2024, 6, 10, 17, 30, 0, 0, berlin),
	)
	input.Tags = []string{"billable"}

	parts, err := Split([]segment.EffectiveSegment{input}, berlin, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, input, parts[0])
}

func TestSplit_MidnightCrossing(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	input := seg(
		time.Date(2024, 6, 10, 23, 30, 0, 0, berlin),
		time.Date(2024, 6, 11, 0, 30, 0, 0, berlin),
	)

	parts, err := Split([]segment.EffectiveSegment{input}, berlin, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, int64(1800_000_000), parts[0].DurationUs())
	assert.Equal(t, int64(1800_000_000), parts[1].DurationUs())
	assert.Equal(t, "2024-06-10", parts[0].Start().In(berlin).Format("2006-01-02"))
	assert.Equal(t, "2024-06-11", parts[1].Start().In(berlin).Format("2006-01-02"))
	assert.Equal(t, parts[0].EndUs, parts[1].StartUs)
}

func TestSplit_TwoMidnights(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	start := time.Date(2024, 6, 10, 22, 0, 0, 0, berlin)
	input := seg(start, start.Add(28*time.Hour))

	parts, err := Split([]segment.EffectiveSegment{input}, berlin, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, int64(7200_000_000), parts[0].DurationUs())
	assert.Equal(t, int64(86400_000_000), parts[1].DurationUs())
	assert.Equal(t, int64(7200_000_000), parts[2].DurationUs())

	dates := []string{
		parts[0].Start().In(berlin).Format("2006-01-02"),
		parts[1].Start().In(berlin).Format("2006-01-02"),
		parts[2].Start().In(berlin).Format("2006-01-02"),
	}
	assert.Equal(t, []string{"2024-06-10", "2024-06-11", "2024-06-12"}, dates)
}

func TestSplit_SpringForwardDay(t *testing.T) {
	t.Parallel()

	// 2024-03-10 in New York has 23 wall-clock hours.
	ny := mustLoad(t, "America/New_York")
	input := seg(
		time.Date(2024, 3, 10, 0, 0, 0, 0, ny),
		time.Date(2024, 3, 11, 0, 0, 0, 0, ny),
	)

	parts, err := Split([]segment.EffectiveSegment{input}, ny, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, int64(23*3600_000_000), parts[0].DurationUs())
}

func TestSplit_FallBackDay(t *testing.T) {
	t.Parallel()

	// 2024-11-03 in New York has 25 wall-clock hours.
	ny := mustLoad(t, "America/New_York")
	input := seg(
		time.Date(2024, 11, 3, 0, 0, 0, 0, ny),
		time.Date(2024, 11, 4, 0, 0, 0, 0, ny),
	)

	parts, err := Split([]segment.EffectiveSegment{input}, ny, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, int64(25*3600_000_000), parts[0].DurationUs())
}

func TestSplit_SpringForwardHours(t *testing.T) {
	t.Parallel()

	// Crossing the 02:00 gap: local 01:30 EST to 03:30 EDT is one
	// elapsed hour, split at the (skipped) hour boundary.
	ny := mustLoad(t, "America/New_York")
	start := time.Date(2024, 3, 10, 1, 30, 0, 0, ny)
	input := seg(start, start.Add(time.Hour))

	parts, err := Split([]segment.EffectiveSegment{input}, ny, GranularityHour)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, int64(1800_000_000), parts[0].DurationUs())
	assert.Equal(t, int64(1800_000_000), parts[1].DurationUs())
}

func TestSplit_SkippedMidnightDay(t *testing.T) {
	t.Parallel()

	// Santiago's forward jump skips midnight itself: 2024-09-08 begins
	// at 01:00 local. The day boundary must land on the transition
	// instant, not on a normalization of the nonexistent 00:00.
	scl := mustLoad(t, "America/Santiago")
	input := seg(
		time.Date(2024, 9, 7, 22, 0, 0, 0, scl),
		time.Date(2024, 9, 8, 3, 0, 0, 0, scl),
	)

	parts, err := Split([]segment.EffectiveSegment{input}, scl, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, int64(7200_000_000), parts[0].DurationUs())
	assert.Equal(t, int64(7200_000_000), parts[1].DurationUs())
	assert.Equal(t, "2024-09-07", parts[0].Start().In(scl).Format("2006-01-02"))
	assert.Equal(t, "2024-09-08", parts[1].Start().In(scl).Format("2006-01-02"))
	assert.Equal(t, 1, parts[1].Start().In(scl).Hour(), "second part starts when the new day actually begins")
}

func TestSplit_SkippedMidnightHours(t *testing.T) {
	t.Parallel()

	// Hour granularity across the same skipped midnight: local 23:30 to
	// 01:30 is one elapsed hour, split at the transition instant.
	scl := mustLoad(t, "America/Santiago")
	input := seg(
		time.Date(2024, 9, 7, 23, 30, 0, 0, scl),
		time.Date(2024, 9, 8, 1, 30, 0, 0, scl),
	)

	parts, err := Split([]segment.EffectiveSegment{input}, scl, GranularityHour)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, int64(1800_000_000), parts[0].DurationUs())
	assert.Equal(t, int64(1800_000_000), parts[1].DurationUs())
	assert.Equal(t, 1, parts[1].Start().In(scl).Hour())
}

func TestSplit_HourBoundaries(t *testing.T) {
	t.Parallel()

	utc := time.UTC
	start := time.Date(2024, 6, 10, 9, 45, 0, 0, utc)
	input := seg(start, start.Add(150*time.Minute)) // crosses 10:00, 11:00, 12:00

	parts, err := Split([]segment.EffectiveSegment{input}, utc, GranularityHour)
	require.NoError(t, err)
	require.Len(t, parts, 4)

	var total int64
	for _, part := range parts {
		total += part.DurationUs()
	}
	assert.Equal(t, input.DurationUs(), total)
	assert.Equal(t, int64(15*60_000_000), parts[0].DurationUs())
	assert.Equal(t, int64(15*60_000_000), parts[3].DurationUs())
}

func TestSplit_StartExactlyAtBoundary(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	input := seg(
		time.Date(2024, 6, 10, 0, 0, 0, 0, berlin),
		time.Date(2024, 6, 10, 8, 0, 0, 0, berlin),
	)

	parts, err := Split([]segment.EffectiveSegment{input}, berlin, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, input, parts[0])
}

func TestSplit_ZeroDuration(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	midnight := time.Date(2024, 6, 11, 0, 0, 0, 0, berlin)

	for _, g := range []Granularity{GranularityDay, GranularityHour} {
		parts, err := Split([]segment.EffectiveSegment{seg(midnight, midnight)}, berlin, g)
		require.NoError(t, err)
		require.Len(t, parts, 1, "granularity %s", g)
		assert.Equal(t, int64(0), parts[0].DurationUs())
	}
}

func TestSplit_PreservesOrderAndAttributes(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	title := "report.md"

	late := seg(
		time.Date(2024, 6, 10, 23, 0, 0, 0, berlin),
		time.Date(2024, 6, 11, 1, 0, 0, 0, berlin),
	)
	late.Tags = []string{"billable", "writing"}
	late.WindowTitle = &title
	late.SupportingIDs = []string{"ev-1", "ev-2"}
	late.Source = segment.SourceManual

	early := seg(
		time.Date(2024, 6, 10, 9, 0, 0, 0, berlin),
		time.Date(2024, 6, 10, 10, 0, 0, 0, berlin),
	)

	// Input deliberately not chronological: output keeps input order.
	parts, err := Split([]segment.EffectiveSegment{late, early}, berlin, GranularityDay)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, late.StartUs, parts[0].StartUs)
	assert.Equal(t, parts[0].EndUs, parts[1].StartUs)
	assert.Equal(t, early, parts[2])

	for _, part := range parts[:2] {
		assert.Equal(t, late.Tags, part.Tags)
		assert.Equal(t, late.WindowTitle, part.WindowTitle)
		assert.Equal(t, late.SupportingIDs, part.SupportingIDs)
		assert.Equal(t, segment.SourceManual, part.Source)
		assert.Equal(t, segment.CoverageObserved, part.Coverage)
	}
}

func TestSplit_DurationConservation(t *testing.T) {
	t.Parallel()

	zones := []string{
		"UTC",
		"America/New_York",
		"Europe/Berlin",
		"Asia/Kathmandu",      // +05:45 offset
		"Australia/Lord_Howe", // 30-minute DST shift
	}

	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro()

	segments := make([]segment.EffectiveSegment, 0, 200)
	var wantTotal int64
	for i := 0; i < 200; i++ {
		start := base + rng.Int63n(365*24*3600_000_000)
		length := rng.Int63n(72 * 3600_000_000) // up to three days
		s := segment.EffectiveSegment{
			StartUs:  start,
			EndUs:    start + length,
			Source:   segment.SourceTracker,
			AppName:  "App",
			Coverage: segment.CoverageObserved,
		}
		segments = append(segments, s)
		wantTotal += length
	}

	for _, name := range zones {
		loc := mustLoad(t, name)
		for _, g := range []Granularity{GranularityDay, GranularityHour} {
			parts, err := Split(segments, loc, g)
			require.NoError(t, err)

			var total int64
			for _, part := range parts {
				total += part.DurationUs()
			}
			assert.Equal(t, wantTotal, total, "zone %s granularity %s", name, g)
		}
	}
}

func TestSplit_Errors(t *testing.T) {
	t.Parallel()

	berlin := mustLoad(t, "Europe/Berlin")
	ok := seg(
		time.Date(2024, 6, 10, 9, 0, 0, 0, berlin),
		time.Date(2024, 6, 10, 10, 0, 0, 0, berlin),
	)

	_, err := Split([]segment.EffectiveSegment{ok}, nil, GranularityDay)
	assert.ErrorIs(t, err, ErrNilLocation)

	_, err = Split([]segment.EffectiveSegment{ok}, berlin, Granularity("week"))
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	bad := ok
	bad.StartUs, bad.EndUs = bad.EndUs, bad.StartUs
	_, err = Split([]segment.EffectiveSegment{ok, bad}, berlin, GranularityDay)
	assert.ErrorIs(t, err, segment.ErrNegativeInterval)

	var verr *segment.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
}
