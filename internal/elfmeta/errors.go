package elfmeta

import "errors"

// Static errors
var (
	// ErrNotApplicable indicates the section is absent, of the wrong type, or
	// holds a note other than the one being decoded. This is expected for many
	// binaries and is not a corruption signal.
	ErrNotApplicable = errors.New("section not applicable")

	// ErrTruncated indicates a structure claims a size larger than the
	// remaining buffer.
	ErrTruncated = errors.New("structure truncated")

	// ErrOutOfBounds indicates computed offsets do not reconcile with the
	// section's declared length (e.g. a note descriptor that does not end
	// exactly at the end of the section).
	ErrOutOfBounds = errors.New("offsets out of bounds")
)
