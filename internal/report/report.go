// Package report renders scan results for human and machine consumption. It
// is a thin assembler over the scanner's per-file records: all extraction and
// classification policy lives in the elfmeta core; this package only decides
// how fields are presented.
//
// The "N/A" sentinel for a missing build-id exists only here. The core and
// the scanner keep the field empty so programmatic callers can always
// distinguish an absent identifier from a decoded one.
package report

import (
	"errors"

	"github.com/serpent-os/elfmeta/internal/scanner"
)

// BuildIDMissing is the sentinel rendered when no valid GNU build-id note was
// found for a file.
const BuildIDMissing = "N/A"

// OutputFormat selects the report renderer.
type OutputFormat int

const (
	// OutputFormatText renders a human-readable per-file report.
	OutputFormatText OutputFormat = iota

	// OutputFormatJSON renders one JSON document for the whole scan.
	OutputFormatJSON
)

// Static errors
var (
	// ErrInvalidOutputFormat is returned for format names other than "text"
	// and "json".
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// ParseOutputFormat converts a format name to an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch format {
	case "text":
		return OutputFormatText, nil
	case "json":
		return OutputFormatJSON, nil
	default:
		return OutputFormatText, ErrInvalidOutputFormat
	}
}

// Renderer writes a rendered form of the scan results.
type Renderer interface {
	Render(results []scanner.Result) error
}

// buildID applies the missing-build-id sentinel.
func buildID(r scanner.Result) string {
	if r.BuildID == "" {
		return BuildIDMissing
	}
	return r.BuildID
}
