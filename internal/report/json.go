package report

import (
	"encoding/json"
	"io"

	"github.com/serpent-os/elfmeta/internal/scanner"
)

// fileRecord is the machine-readable per-file record. Field names mirror the
// text report; symbol lists are always present (empty, not null) so consumers
// can index them without nil checks.
type fileRecord struct {
	FileName string   `json:"fileName"`
	Path     string   `json:"path"`
	BuildID  string   `json:"buildId"`
	Soname   string   `json:"soname"`
	Needed   []string `json:"needed"`
	Exported []string `json:"exported"`
	Imported []string `json:"imported"`

	Class   string `json:"class,omitempty"`
	Machine string `json:"machine,omitempty"`
	Type    string `json:"type,omitempty"`

	SkippedSymbols int    `json:"skippedSymbols,omitempty"`
	Error          string `json:"error,omitempty"`
}

// JSONRenderer renders the whole scan as a single JSON array.
type JSONRenderer struct {
	w io.Writer

	// Verbose includes files that failed to parse, with their error string.
	Verbose bool
}

// NewJSONRenderer creates a JSON renderer writing to w.
func NewJSONRenderer(w io.Writer, verbose bool) *JSONRenderer {
	return &JSONRenderer{w: w, Verbose: verbose}
}

// Render writes the report for all results in their given order.
func (r *JSONRenderer) Render(results []scanner.Result) error {
	records := make([]fileRecord, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			if r.Verbose {
				records = append(records, fileRecord{
					FileName: res.FileName,
					Path:     res.Path,
					BuildID:  BuildIDMissing,
					Needed:   []string{},
					Exported: []string{},
					Imported: []string{},
					Error:    res.Err.Error(),
				})
			}
			continue
		}
		records = append(records, fileRecord{
			FileName:       res.FileName,
			Path:           res.Path,
			BuildID:        buildID(res),
			Soname:         res.Soname,
			Needed:         emptyIfNil(res.Needed),
			Exported:       emptyIfNil(res.Exported),
			Imported:       emptyIfNil(res.Imported),
			Class:          res.Class.String(),
			Machine:        res.Machine.String(),
			Type:           res.Type.String(),
			SkippedSymbols: res.SkippedSymbols,
		})
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
