package parser

import "errors"

// Common errors returned by the parser package.
var (
	// ErrMalformedJSON is returned when a JSONL line cannot be parsed.
	ErrMalformedJSON = errors.New("malformed JSON line")

	// ErrFileTooLarge is returned when a file exceeds the maximum size limit.
	ErrFileTooLarge = errors.New("file size exceeds maximum limit")
)
