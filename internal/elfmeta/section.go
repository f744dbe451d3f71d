package elfmeta

import (
	"debug/elf"
	"encoding/binary"
)

// Section is the read-only view of one ELF section that the extractors
// operate on. It is produced by the elffile accessor and is immutable for the
// lifetime of one file's processing.
type Section struct {
	// Name is the section name as found in the section header string table
	// (e.g. ".note.gnu.build-id").
	Name string

	// Type is the section header type (SHT_NOTE, SHT_DYNAMIC, ...).
	Type elf.SectionType

	// Order is the byte order declared by the containing file's ELF identity.
	// A nil Order is treated as little-endian.
	Order binary.ByteOrder

	// Data is the raw section content.
	Data []byte
}

// byteOrder returns the effective byte order for decoding fixed-width fields
// out of Data.
func (s Section) byteOrder() binary.ByteOrder {
	if s.Order == nil {
		return binary.LittleEndian
	}
	return s.Order
}
