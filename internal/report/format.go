package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned when a format string does not name a
// supported output format. This allows callers to check error types
// with errors.Is().
var ErrUnknownFormat = errors.New("unknown output format")

// Format identifies an output format for report writers.
type Format string

// Supported output formats.
const (
	// FormatSimple is human-readable terminal text.
	FormatSimple Format = "simple"
	// FormatMarkdown is GitHub-flavored markdown.
	FormatMarkdown Format = "markdown"
	// FormatJSON is machine-readable JSON.
	FormatJSON Format = "json"
)

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat converts a format flag value into a Format.
// Matching is case-insensitive and accepts "md" for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "text", "":
		return FormatSimple, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (want simple, markdown, or json)", ErrUnknownFormat, s)
	}
}

// NewWriter creates the Writer implementation for the given format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatSimple:
		return NewSimpleWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
