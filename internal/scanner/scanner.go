// Package scanner orchestrates per-file metadata extraction over a set of
// input paths. Directories are expanded to the regular files they contain;
// each file is then processed independently by a bounded worker pool.
//
// Extraction has no shared mutable state across files, so the pool is free to
// schedule files in any order. Results are written into an index-addressed
// slice keyed by input position, which keeps the aggregate report in the
// caller-supplied file order regardless of scheduling.
package scanner

import (
	"context"
	"debug/elf"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/serpent-os/elfmeta/internal/elffile"
	"github.com/serpent-os/elfmeta/internal/elfmeta"
)

// buildIDSection is the conventional name of the GNU build-id note section.
const buildIDSection = ".note.gnu.build-id"

// Options configures a Scanner.
type Options struct {
	// Recursive controls whether directories are descended into beyond their
	// first level.
	Recursive bool

	// Jobs bounds the number of files processed concurrently. Zero or
	// negative means one worker per CPU.
	Jobs int

	// MaxFileSize is passed through to the file accessor; zero means the
	// accessor default.
	MaxFileSize int64
}

// Result is the per-file record handed to the report layer. Field-level
// extraction failures degrade the corresponding field and are never fatal:
// Err is set only for the scan-level "not an ELF file" case (or an I/O
// failure opening the file).
type Result struct {
	// Path is the file as named by the caller (after directory expansion).
	Path string

	// FileName is the base name, used as the SONAME fallback.
	FileName string

	// BuildID is the lowercase hex build identifier, or empty when the note
	// is absent or malformed.
	BuildID string

	Soname string
	Needed []string

	Exported []string
	Imported []string

	// SkippedSymbols counts symbol records dropped because of decode errors.
	SkippedSymbols int

	Class   elf.Class
	Machine elf.Machine
	Type    elf.Type

	Err error
}

// Scanner extracts ABI metadata from a set of files.
type Scanner struct {
	opts Options
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan expands paths and extracts metadata from every file found. The
// returned slice preserves the expanded input order. Scan fails only when a
// caller-supplied path cannot be expanded or the context is cancelled;
// per-file problems are recorded in the corresponding Result.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]Result, error) {
	files, err := s.expand(paths)
	if err != nil {
		return nil, err
	}

	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanFile runs the three extractors over one file. The extractors have no
// data dependency on one another; they are run sequentially here because each
// is bounded by section size and the win from intra-file parallelism is
// noise next to the per-file pool.
func (s *Scanner) scanFile(path string) Result {
	result := Result{Path: path, FileName: filepath.Base(path)}

	f, err := elffile.OpenWithOptions(path, elffile.Options{MaxFileSize: s.opts.MaxFileSize})
	if err != nil {
		slog.Debug("skipping file", "path", path, "error", err)
		result.Err = err
		return result
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("error closing file after scan", "path", path, "error", closeErr)
		}
	}()

	result.Class = f.Class()
	result.Machine = f.Machine()
	result.Type = f.Type()

	if sec, ok := f.Section(buildIDSection); ok {
		id, err := elfmeta.DecodeBuildID(sec)
		switch {
		case err == nil:
			result.BuildID = id
		case errors.Is(err, elfmeta.ErrNotApplicable):
			// No GNU build-id note; expected for plenty of binaries.
		default:
			slog.Warn("malformed build-id note", "path", path, "error", err)
		}
	}

	meta := elfmeta.ResolveDynamic(f.DynamicTable(), f.Name())
	result.Soname = meta.Soname
	result.Needed = meta.Needed

	classified := elfmeta.Classify(f.SymbolRecords())
	result.Exported = classified.Exported
	result.Imported = classified.Imported
	result.SkippedSymbols = classified.Skipped
	if classified.Skipped > 0 {
		slog.Warn("skipped malformed symbol records", "path", path, "count", classified.Skipped)
	}

	return result
}

// expand resolves the caller-supplied paths into the flat list of files to
// scan. Files are kept as-is; directories contribute their regular files in
// lexical walk order. Unreadable entries inside a directory are logged and
// skipped, but a top-level path that cannot be inspected fails the scan.
func (s *Scanner) expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		entries, err := s.expandOne(path)
		if err != nil {
			return nil, err
		}
		files = append(files, entries...)
	}
	return files, nil
}

func (s *Scanner) expandOne(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("cannot read directory entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !s.opts.Recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
