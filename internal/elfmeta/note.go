package elfmeta

import (
	"debug/elf"
	"encoding/hex"
)

const (
	// noteHeaderLen is the fixed note header: namesz, descsz and type, each a
	// 32-bit word in the file's byte order.
	noteHeaderLen = 12

	// ntGNUBuildID is NT_GNU_BUILD_ID from the GNU note ABI.
	ntGNUBuildID = 3

	// gnuNoteName is the owner field of a GNU vendor note, including the
	// mandatory NUL terminator.
	gnuNoteName = "GNU\x00"

	// gnuNoteNameLen is the declared namesz of a GNU vendor note.
	gnuNoteNameLen = uint32(len(gnuNoteName))
)

// DecodeBuildID decodes the first note of a .note.gnu.build-id section into a
// lowercase hex string, two digits per descriptor byte.
//
// The section must be SHT_NOTE and must hold a single NT_GNU_BUILD_ID note
// whose descriptor runs exactly to the end of the section; the name and
// descriptor follow the 12-byte header contiguously. GNU build-id notes carry
// 4-byte-aligned name and descriptor sizes, so no alignment padding is
// expected between the fields; a descriptor that does not end at the section
// boundary is reported as ErrOutOfBounds rather than truncated to fit.
//
// Returns ErrNotApplicable for non-NOTE sections and for well-formed notes of
// a different vendor or type, ErrTruncated when a declared size exceeds the
// section, and ErrOutOfBounds when the descriptor end does not reconcile with
// the section length.
func DecodeBuildID(sec Section) (string, error) {
	if sec.Type != elf.SHT_NOTE {
		return "", ErrNotApplicable
	}
	data := sec.Data
	if len(data) < noteHeaderLen {
		return "", ErrTruncated
	}

	order := sec.byteOrder()
	nameSize := order.Uint32(data[0:4])
	descSize := order.Uint32(data[4:8])
	noteType := order.Uint32(data[8:12])

	nameEnd := uint64(noteHeaderLen) + uint64(nameSize)
	if nameEnd > uint64(len(data)) {
		return "", ErrTruncated
	}
	name := data[noteHeaderLen:nameEnd]

	// Only the GNU build-id note is of interest; any other vendor or note
	// type simply means this section carries no build-id for us.
	if noteType != ntGNUBuildID || nameSize != gnuNoteNameLen || string(name) != gnuNoteName {
		return "", ErrNotApplicable
	}

	descEnd := nameEnd + uint64(descSize)
	if descEnd != uint64(len(data)) {
		return "", ErrOutOfBounds
	}
	return hex.EncodeToString(data[nameEnd:descEnd]), nil
}
