// Package parser provides JSONL parsing for effective segment dumps.
// Each line is one JSON object in the segment wire shape produced by
// the upstream timeline component.
//
// The parser is designed to handle malformed lines gracefully by
// logging warnings and skipping invalid entries rather than failing;
// the reporting core then receives only well-formed segments.
//
// Example usage:
//
//	p := parser.New(logger.Default())
//	segments, err := p.ParseFile("/path/to/2024-05-01.jsonl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Parsed %d segments\n", len(segments))
package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tracklinehq/trackline/pkg/logger"
	"github.com/tracklinehq/trackline/pkg/segment"
)

const (
	// MaxFileSize is the maximum allowed JSONL file size (100MB).
	// Files larger than this are rejected to prevent memory exhaustion.
	MaxFileSize = 100 * 1024 * 1024

	// MaxLineLength is the maximum allowed line length (1MB).
	MaxLineLength = 1024 * 1024
)

// Parser provides methods for parsing segment JSONL dumps.
type Parser interface {
	// ParseFile reads a JSONL segment dump and returns the parsed
	// segments in file order.
	//
	// Parameters:
	//   - path: Path to the JSONL file
	//
	// Returns:
	//   - Slice of successfully parsed segments
	//   - Error if the file cannot be read or is too large
	//
	// Malformed or invalid lines are logged at warn level and skipped
	// rather than causing failure.
	ParseFile(path string) ([]segment.EffectiveSegment, error)

	// Parse reads JSONL segment lines from r, in the same
	// skip-and-warn fashion as ParseFile.
	Parse(r io.Reader) ([]segment.EffectiveSegment, error)

	// ParseLine parses a single JSONL line into a segment.
	//
	// Returns an error if the line is not valid JSON or the segment
	// fails validation.
	ParseLine(line string) (*segment.EffectiveSegment, error)
}

// jsonlParser implements the Parser interface.
type jsonlParser struct {
	log logger.Logger
}

// New creates a new Parser instance.
//
// Parameters:
//   - log: Logger for reporting skipped lines; logger.Noop() disables it
func New(log logger.Logger) Parser {
	if log == nil {
		log = logger.Noop()
	}
	return &jsonlParser{log: log}
}

// ParseFile implements Parser.ParseFile.
func (p *jsonlParser) ParseFile(path string) ([]segment.EffectiveSegment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: size=%d, max=%d",
			ErrFileTooLarge, info.Size(), MaxFileSize)
	}

	// #nosec G304: path is validated by caller
	f, err := os.Open(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			p.log.Warn("failed to close segment file", "path", path, "error", closeErr)
		}
	}()

	return p.Parse(f)
}

// Parse implements Parser.Parse.
func (p *jsonlParser) Parse(r io.Reader) ([]segment.EffectiveSegment, error) {
	segments := make([]segment.EffectiveSegment, 0, 100)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxLineLength)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		seg, parseErr := p.ParseLine(line)
		if parseErr != nil {
			p.log.Warn("skipping segment line", "line", lineNum, "error", parseErr)
			continue
		}

		segments = append(segments, *seg)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return segments, fmt.Errorf("scanner error at line %d: %w", lineNum, scanErr)
	}

	return segments, nil
}

// ParseLine implements Parser.ParseLine.
func (p *jsonlParser) ParseLine(line string) (*segment.EffectiveSegment, error) {
	if line == "" {
		return nil, fmt.Errorf("%w: empty line", ErrMalformedJSON)
	}

	var seg segment.EffectiveSegment
	if err := json.Unmarshal([]byte(line), &seg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if err := seg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &seg, nil
}
