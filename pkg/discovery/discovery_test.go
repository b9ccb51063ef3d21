package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tracklinehq/trackline/pkg/logger"
)

func writeDump(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDump(t, dir, "2024-06-11.jsonl")
	writeDump(t, dir, "2024-06-10.jsonl")
	writeDump(t, dir, "notes.txt")
	writeDump(t, dir, "not-a-date.jsonl")
	writeDump(t, dir, "2024-6-10.jsonl")

	d := New([]string{dir}, logger.Noop())
	files, err := d.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Discover() returned %d files, want 2", len(files))
	}
	// Sorted ascending by date stamp.
	if files[0].Date != "2024-06-10" || files[1].Date != "2024-06-11" {
		t.Errorf("Discover() dates = %s, %s; want 2024-06-10, 2024-06-11", files[0].Date, files[1].Date)
	}
	if files[0].Size == 0 {
		t.Error("Discover() did not record file size")
	}
}

func TestDiscover_MissingDirSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDump(t, dir, "2024-06-10.jsonl")

	d := New([]string{filepath.Join(dir, "missing"), dir}, logger.Noop())
	files, err := d.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Discover() returned %d files, want 1", len(files))
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDump(t, dir, "2024-06-10.jsonl")
	writeDump(t, dir, "2024-06-12.jsonl")
	writeDump(t, dir, "2024-06-11.jsonl")

	d := New([]string{dir}, logger.Noop())
	latest, err := d.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Date != "2024-06-12" {
		t.Errorf("Latest().Date = %s, want 2024-06-12", latest.Date)
	}
}

func TestLatest_Empty(t *testing.T) {
	t.Parallel()

	d := New([]string{t.TempDir()}, logger.Noop())
	if _, err := d.Latest(); !errors.Is(err, ErrNoPeriodFiles) {
		t.Errorf("Latest() error = %v, want ErrNoPeriodFiles", err)
	}
}

func TestIsValidDateStamp(t *testing.T) {
	t.Parallel()

	valid := []string{"2024-06-10", "1999-12-31"}
	for _, s := range valid {
		if !isValidDateStamp(s) {
			t.Errorf("isValidDateStamp(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2024-6-10", "2024/06/10", "20240610", "2024-06-10x", "yyyy-mm-dd"}
	for _, s := range invalid {
		if isValidDateStamp(s) {
			t.Errorf("isValidDateStamp(%q) = true, want false", s)
		}
	}
}
