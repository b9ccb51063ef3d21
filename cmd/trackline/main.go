// Package main provides the trackline CLI application.
//
// Trackline computes derived reports from effective segment dumps
// produced by the upstream timeline component: working-time totals
// sliced by application, tag, window title, hour, and local day, plus
// CSV and JSON exports. All file I/O and flag handling lives here; the
// reporting core packages are pure.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Parse()

	if *showVersion {
		fmt.Printf("trackline %s\n", version)
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "report":
		return runReportCommand(*configPath, args[1:])
	case "export":
		return runExportCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runReportCommand runs the report command.
func runReportCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	segmentsPath := fs.String("segments", "", "path to segment JSONL dump (default: latest discovered dump)")
	timezone := fs.String("timezone", "", "IANA timezone for day/hour grouping (overrides config)")
	hourGrouping := fs.String("hour-grouping", "", "hour bucket grouping: app, tag, app_window (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &reportCommand{
		configPath:   configPath,
		segmentsPath: *segmentsPath,
		timezone:     *timezone,
		hourGrouping: *hourGrouping,
	}
	return cmd.Execute()
}

// runExportCommand runs the export command.
func runExportCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	segmentsPath := fs.String("segments", "", "path to segment JSONL dump (default: latest discovered dump)")
	format := fs.String("format", "", "export format: csv or json (overrides config)")
	machineID := fs.String("machine-id", "", "machine identifier (default: hostname)")
	username := fs.String("username", "", "reporting username (default: current user)")
	uid := fs.Int("uid", -1, "numeric user ID (default: current user)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &exportCommand{
		configPath:   configPath,
		segmentsPath: *segmentsPath,
		format:       strings.ToLower(*format),
		machineID:    *machineID,
		username:     *username,
		uid:          *uid,
	}
	return cmd.Execute()
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		return showConfig(configPath)
	}
	return fmt.Errorf("unknown config subcommand: %s", args[0])
}

// showUsage displays usage information.
func showUsage() error {
	fmt.Print(`trackline - time tracking reports from effective segments

Usage:
  trackline [flags] <command> [command flags]

Commands:
  report    Compute working-time totals for a segment dump
  export    Export a segment dump as CSV or JSON
  config    Show the resolved configuration
  help      Show this help

Global flags:
  -config   Path to configuration file
  -version  Show version information

Run 'trackline <command> -h' for command flags.
`)
	return nil
}
