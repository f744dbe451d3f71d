// Package elffile is the ELF-container accessor for the metadata core. It
// wraps debug/elf behind the narrow surface the extractors need: section
// lookup by name, the dynamic-table projection, and decoded symbol records
// from .symtab and .dynsym.
//
// Opening a file validates it up front (regular file, bounded size, ELF magic)
// before handing it to the container parser, so a failure to open cleanly
// separates "not an ELF file" from a genuine I/O problem.
package elffile

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// elfMagicStr is the ELF magic number string literal.
const elfMagicStr = "\x7fELF"

// elfMagic is the ELF magic number bytes.
var elfMagic = []byte(elfMagicStr)

// elfMagicLen is the number of bytes in the ELF magic number.
const elfMagicLen = len(elfMagicStr)

// DefaultMaxFileSize is the maximum file size accepted for analysis (1 GB).
const DefaultMaxFileSize = 1 << 30

// Static errors
var (
	// ErrNotELF indicates the file is not an ELF container. This is the only
	// scan-level failure: every other problem degrades a single output field.
	ErrNotELF = errors.New("file is not an ELF binary")

	// ErrNotRegularFile indicates the path is a directory, device, FIFO or
	// other non-regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// Options controls how files are opened.
type Options struct {
	// MaxFileSize bounds the size of files accepted for analysis. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64
}

// File is an opened ELF container. It owns the underlying file handle; Close
// must be called when processing of the file is finished.
type File struct {
	path string
	f    *os.File
	elf  *elf.File
}

// Open opens path with the default options.
func Open(path string) (*File, error) {
	return OpenWithOptions(path, Options{})
}

// OpenWithOptions validates and opens path as an ELF container.
//
// Returns ErrNotRegularFile and ErrFileTooLarge for files that should not be
// analyzed at all, ErrNotELF (possibly wrapped) when the content is not an
// ELF container, and other errors for I/O failures.
func OpenWithOptions(path string, opts Options) (*File, error) {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, info.Mode())
	}
	if info.Size() > maxSize {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), maxSize)
	}

	// Sniff the magic before handing the file to the full parser so that the
	// common "this is a script or text file" case never reads further.
	magic := make([]byte, elfMagicLen)
	if _, err := io.ReadFull(f, magic); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotELF, path)
	}
	if !bytes.Equal(magic, elfMagic) {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotELF, path)
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrNotELF, path, err)
	}

	return &File{path: path, f: f, elf: ef}, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.f.Close()
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Name returns the base name of the opened file, used as the SONAME fallback.
func (f *File) Name() string { return filepath.Base(f.path) }

// Class returns the file's ELF class (32 or 64 bit).
func (f *File) Class() elf.Class { return f.elf.Class }

// Machine returns the target architecture from the ELF header.
func (f *File) Machine() elf.Machine { return f.elf.Machine }

// Type returns the object file type (executable, shared object, ...).
func (f *File) Type() elf.Type { return f.elf.Type }
