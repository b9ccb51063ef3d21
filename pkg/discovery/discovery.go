// Package discovery locates effective segment dump files produced by
// the upstream timeline component.
//
// It scans configured data directories for period dumps named
// YYYY-MM-DD.jsonl, one file per reporting period.
//
// Example usage:
//
//	d := discovery.New(config.DefaultDataDirs(), logger.Default())
//	dumps, err := d.Discover()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, dump := range dumps {
//	    fmt.Printf("Period: %s, File: %s\n", dump.Date, dump.FilePath)
//	}
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tracklinehq/trackline/pkg/logger"
)

// PeriodFile represents a discovered segment dump file.
type PeriodFile struct {
	// Date is the period date stamp extracted from the filename (YYYY-MM-DD).
	Date string

	// FilePath is the absolute path to the JSONL file.
	FilePath string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time as a Unix timestamp.
	ModTime int64
}

// Discoverer provides methods for discovering segment dump files.
type Discoverer interface {
	// Discover scans configured directories and returns all period
	// dumps found, sorted ascending by date stamp.
	//
	// Skips files that do not match the YYYY-MM-DD.jsonl pattern.
	// Missing directories are skipped with a warning.
	Discover() ([]PeriodFile, error)

	// Latest returns the period dump with the most recent date stamp.
	//
	// Returns ErrNoPeriodFiles if no dumps are found.
	Latest() (*PeriodFile, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	dataDirs []string
	log      logger.Logger
}

// New creates a new Discoverer instance.
//
// Parameters:
//   - dataDirs: Data directories to scan
//   - log: Logger for diagnostic messages
func New(dataDirs []string, log logger.Logger) Discoverer {
	if log == nil {
		log = logger.Noop()
	}
	return &discoverer{
		dataDirs: dataDirs,
		log:      log,
	}
}

// Discover implements Discoverer.Discover.
func (d *discoverer) Discover() ([]PeriodFile, error) {
	var all []PeriodFile

	for _, dir := range d.dataDirs {
		expanded := expandHome(dir)

		if _, err := os.Stat(expanded); err != nil {
			if os.IsNotExist(err) {
				d.log.Warn("directory not found, skipping", "path", expanded)
				continue
			}
			return nil, fmt.Errorf("failed to stat directory %s: %w", expanded, err)
		}

		files, err := d.scanDirectory(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", expanded, err)
		}

		all = append(all, files...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Date < all[j].Date
	})

	d.log.Info("discovery complete", "period_files", len(all))
	return all, nil
}

// Latest implements Discoverer.Latest.
func (d *discoverer) Latest() (*PeriodFile, error) {
	files, err := d.Discover()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoPeriodFiles
	}
	latest := files[len(files)-1]
	return &latest, nil
}

// scanDirectory scans one directory for period dump files.
func (d *discoverer) scanDirectory(dir string) ([]PeriodFile, error) {
	files := make([]PeriodFile, 0, 10)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}

		date := strings.TrimSuffix(entry.Name(), ".jsonl")
		if !isValidDateStamp(date) {
			d.log.Debug("skipping non-period file",
				"file", entry.Name(),
				"reason", "invalid date stamp")
			continue
		}

		filePath := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			d.log.Warn("failed to get file info",
				"path", filePath,
				"error", err)
			continue
		}

		files = append(files, PeriodFile{
			Date:     date,
			FilePath: filePath,
			Size:     info.Size(),
			ModTime:  info.ModTime().Unix(),
		})
	}

	d.log.Debug("scanned data directory",
		"path", dir,
		"period_files", len(files))

	return files, nil
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}

// isValidDateStamp checks a YYYY-MM-DD date stamp.
func isValidDateStamp(s string) bool {
	if len(s) != 10 {
		return false
	}

	if s[4] != '-' || s[7] != '-' {
		return false
	}

	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
