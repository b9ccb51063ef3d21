package main

import (
	"fmt"
	"os"
	"os/user"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tracklinehq/trackline/pkg/config"
	"github.com/tracklinehq/trackline/pkg/discovery"
	"github.com/tracklinehq/trackline/pkg/export"
	"github.com/tracklinehq/trackline/pkg/logger"
	"github.com/tracklinehq/trackline/pkg/parser"
	"github.com/tracklinehq/trackline/pkg/report"
	"github.com/tracklinehq/trackline/pkg/segment"
)

// reportCommand computes and prints working-time totals.
type reportCommand struct {
	configPath   string
	segmentsPath string
	timezone     string
	hourGrouping string
}

// Execute runs the report command.
func (c *reportCommand) Execute() error {
	cfg, log, err := initialize(c.configPath)
	if err != nil {
		return err
	}

	if c.timezone != "" {
		cfg.Report.Timezone = c.timezone
	}
	if c.hourGrouping != "" {
		cfg.Report.HourGrouping = c.hourGrouping
	}

	loc, err := cfg.Report.Location()
	if err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.Report.Timezone, err)
	}

	segments, err := loadSegments(c.segmentsPath, log)
	if err != nil {
		return err
	}

	return printReport(segments, loc, report.HourGrouping(cfg.Report.HourGrouping))
}

// exportCommand serializes a segment dump as CSV or JSON.
type exportCommand struct {
	configPath   string
	segmentsPath string
	format       string
	machineID    string
	username     string
	uid          int
}

// Execute runs the export command.
func (c *exportCommand) Execute() error {
	cfg, log, err := initialize(c.configPath)
	if err != nil {
		return err
	}

	format := cfg.Export.Format
	if c.format != "" {
		format = c.format
	}

	segments, err := loadSegments(c.segmentsPath, log)
	if err != nil {
		return err
	}

	identity, err := resolveIdentity(c.machineID, c.username, c.uid)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		text, err := export.CSV(segments, identity, export.CSVOptions{
			IncludeTitles:   cfg.Export.IncludeTitles,
			TZOffsetSeconds: cfg.Export.TZOffsetSeconds,
		})
		if err != nil {
			return fmt.Errorf("csv export failed: %w", err)
		}
		fmt.Print(text)
		return nil
	case "json":
		text, err := export.JSON(segments, identity, segmentRange(segments), export.JSONOptions{
			IncludeTitles: cfg.Export.IncludeTitles,
		})
		if err != nil {
			return fmt.Errorf("json export failed: %w", err)
		}
		fmt.Print(text)
		return nil
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidExportFormat, format)
	}
}

// initialize loads configuration and builds the logger.
func initialize(configPath string) (*config.Config, logger.Logger, error) {
	// An empty path makes the loader fall back to env and standard
	// locations, so one call covers both cases.
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		Format: cfg.Logging.Format,
	})

	return cfg, log, nil
}

// loadSegments parses the named segment dump, or the latest discovered
// dump when no path is given.
func loadSegments(path string, log logger.Logger) ([]segment.EffectiveSegment, error) {
	if path == "" {
		d := discovery.New(config.DefaultDataDirs(), log)
		latest, err := d.Latest()
		if err != nil {
			return nil, fmt.Errorf("no segments file given and discovery failed: %w", err)
		}
		log.Info("using discovered period dump", "date", latest.Date, "path", latest.FilePath)
		path = latest.FilePath
	}

	p := parser.New(log)
	segments, err := p.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse segments: %w", err)
	}

	return segments, nil
}

// resolveIdentity fills report identity from flags, falling back to the
// host environment.
func resolveIdentity(machineID, username string, uid int) (segment.ReportIdentity, error) {
	if machineID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return segment.ReportIdentity{}, fmt.Errorf("failed to resolve hostname: %w", err)
		}
		machineID = hostname
	}

	if username == "" || uid < 0 {
		current, err := user.Current()
		if err != nil {
			return segment.ReportIdentity{}, fmt.Errorf("failed to resolve current user: %w", err)
		}
		if username == "" {
			username = current.Username
		}
		if uid < 0 {
			parsed, err := strconv.Atoi(current.Uid)
			if err != nil {
				return segment.ReportIdentity{}, fmt.Errorf("failed to parse uid %q: %w", current.Uid, err)
			}
			uid = parsed
		}
	}

	identity := segment.ReportIdentity{
		MachineID: machineID,
		Username:  username,
		UID:       uid,
	}
	if err := identity.Validate(); err != nil {
		return segment.ReportIdentity{}, err
	}
	return identity, nil
}

// segmentRange returns the reporting period spanned by the segments.
func segmentRange(segments []segment.EffectiveSegment) export.Range {
	if len(segments) == 0 {
		return export.Range{}
	}

	rng := export.Range{StartUs: segments[0].StartUs, EndUs: segments[0].EndUs}
	for _, seg := range segments[1:] {
		if seg.StartUs < rng.StartUs {
			rng.StartUs = seg.StartUs
		}
		if seg.EndUs > rng.EndUs {
			rng.EndUs = seg.EndUs
		}
	}
	return rng
}

// printReport renders the summary totals as plain text.
func printReport(segments []segment.EffectiveSegment, loc *time.Location, grouping report.HourGrouping) error {
	working, err := report.TotalWorkingTime(segments)
	if err != nil {
		return err
	}
	gaps, err := report.TotalUnobservedGaps(segments)
	if err != nil {
		return err
	}
	byApp, err := report.TotalsByApplication(segments)
	if err != nil {
		return err
	}
	byTag, err := report.TotalsByTag(segments)
	if err != nil {
		return err
	}
	byDay, err := report.TotalsByDay(segments, loc)
	if err != nil {
		return err
	}
	byHour, err := report.TotalsByHour(segments, loc, grouping)
	if err != nil {
		return err
	}

	fmt.Printf("Working time:    %s\n", formatSeconds(working))
	fmt.Printf("Unobserved gaps: %s\n", formatSeconds(gaps))

	printTotals("By application", byApp)
	printTotals("By tag", byTag)
	printTotals("By day", byDay)

	fmt.Printf("\nBy hour (%s)\n", grouping)
	for _, bucket := range byHour {
		fmt.Printf("  %02d:00  %-40s %s\n", bucket.Hour, bucket.Label, formatSeconds(bucket.Seconds))
	}

	return nil
}

// printTotals renders one totals map with keys sorted for stable output.
func printTotals(title string, totals map[string]float64) {
	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s\n", title)
	for _, key := range keys {
		fmt.Printf("  %-40s %s\n", key, formatSeconds(totals[key]))
	}
}

// formatSeconds renders a seconds total as hours, minutes, and seconds.
func formatSeconds(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return d.Round(time.Second).String()
}

// showConfig prints the resolved configuration as YAML.
func showConfig(configPath string) error {
	cfg, _, err := initialize(configPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Print(string(data))
	return nil
}
