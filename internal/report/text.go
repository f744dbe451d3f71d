package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/serpent-os/elfmeta/internal/scanner"
	"github.com/serpent-os/elfmeta/internal/terminal"
)

// TextRenderer renders a human-readable per-file report.
type TextRenderer struct {
	w io.Writer

	// Verbose lists every exported and imported symbol name and includes
	// files that failed to parse; otherwise symbol lists are summarized as
	// counts and non-ELF files are listed on one line.
	Verbose bool

	styler terminal.Styler
}

// NewTextRenderer creates a text renderer writing to w. When color is
// enabled, section labels and file headers are styled with ANSI sequences.
func NewTextRenderer(w io.Writer, color, verbose bool) *TextRenderer {
	return &TextRenderer{
		w:       w,
		Verbose: verbose,
		styler:  terminal.NewStyler(color),
	}
}

// Render writes the report for all results in their given order.
func (r *TextRenderer) Render(results []scanner.Result) error {
	var buf strings.Builder
	for _, res := range results {
		r.renderOne(&buf, res)
	}
	_, err := io.WriteString(r.w, buf.String())
	return err
}

func (r *TextRenderer) renderOne(buf *strings.Builder, res scanner.Result) {
	if res.Err != nil {
		if r.Verbose {
			fmt.Fprintf(buf, "%s: %v\n", res.Path, res.Err)
		}
		return
	}

	header := fmt.Sprintf("%s (%s, %s, %s)", res.Path, res.Class, res.Machine, res.Type)
	buf.WriteString(r.styler.Header(header))
	buf.WriteByte('\n')

	r.field(buf, "build-id", buildID(res))
	r.field(buf, "soname", res.Soname)
	r.list(buf, "needed", res.Needed)

	if r.Verbose {
		r.list(buf, "exported", res.Exported)
		r.list(buf, "imported", res.Imported)
	} else {
		r.field(buf, "exported", fmt.Sprintf("%d symbols", len(res.Exported)))
		r.field(buf, "imported", fmt.Sprintf("%d symbols", len(res.Imported)))
	}

	if res.SkippedSymbols > 0 {
		r.field(buf, "skipped", r.styler.Warn(fmt.Sprintf("%d malformed symbol records", res.SkippedSymbols)))
	}
	buf.WriteByte('\n')
}

// field writes one "label : value" line with the label padded to a fixed
// width so values line up within a file block.
func (r *TextRenderer) field(buf *strings.Builder, label, value string) {
	fmt.Fprintf(buf, "  %s : %s\n", r.styler.Label(fmt.Sprintf("%-8s", label)), value)
}

// list writes a multi-line field, one entry per line, continuation lines
// aligned under the first value.
func (r *TextRenderer) list(buf *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		r.field(buf, label, "(none)")
		return
	}
	r.field(buf, label, values[0])
	for _, v := range values[1:] {
		fmt.Fprintf(buf, "  %-8s   %s\n", "", v)
	}
}
