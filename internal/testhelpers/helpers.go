// Package testhelpers provides common helper functions for tests, chiefly a
// builder for small synthetic ELF images so tests do not depend on binaries
// present on the host.
package testhelpers

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MinimalSharedObject synthesizes a little-endian ELF64 shared object with
// three sections: the null section, a .note.gnu.build-id note carrying desc
// as its descriptor, and the section header string table.
func MinimalSharedObject(tb testing.TB, desc []byte) []byte {
	tb.Helper()

	shstrtab := []byte("\x00.note.gnu.build-id\x00.shstrtab\x00")
	note := &bytes.Buffer{}
	require.NoError(tb, binary.Write(note, binary.LittleEndian, uint32(4)))
	require.NoError(tb, binary.Write(note, binary.LittleEndian, uint32(len(desc))))
	require.NoError(tb, binary.Write(note, binary.LittleEndian, uint32(3))) // NT_GNU_BUILD_ID
	note.WriteString("GNU\x00")
	note.Write(desc)

	const (
		ehdrSize = 64
		shdrSize = 64
		shnum    = 3
		noteOff  = ehdrSize + shnum*shdrSize
		nameNote = 1  // offset of ".note.gnu.build-id" in shstrtab
		nameStrs = 20 // offset of ".shstrtab" in shstrtab
		shstrndx = 2
	)
	strtabOff := noteOff + note.Len()

	buf := &bytes.Buffer{}
	// ELF identity: magic, ELFCLASS64, ELFDATA2LSB, EV_CURRENT.
	buf.Write([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	for _, v := range []any{
		uint16(elf.ET_DYN),    // e_type
		uint16(elf.EM_X86_64), // e_machine
		uint32(1),             // e_version
		uint64(0),             // e_entry
		uint64(0),             // e_phoff
		uint64(ehdrSize),      // e_shoff
		uint32(0),             // e_flags
		uint16(ehdrSize),      // e_ehsize
		uint16(0),             // e_phentsize
		uint16(0),             // e_phnum
		uint16(shdrSize),      // e_shentsize
		uint16(shnum),         // e_shnum
		uint16(shstrndx),      // e_shstrndx
	} {
		require.NoError(tb, binary.Write(buf, binary.LittleEndian, v))
	}
	require.Equal(tb, ehdrSize, buf.Len())

	writeShdr := func(sh elf.Section64) {
		require.NoError(tb, binary.Write(buf, binary.LittleEndian, sh))
	}
	writeShdr(elf.Section64{}) // SHN_UNDEF
	writeShdr(elf.Section64{
		Name: nameNote,
		Type: uint32(elf.SHT_NOTE),
		Off:  noteOff,
		Size: uint64(note.Len()),
	})
	writeShdr(elf.Section64{
		Name: nameStrs,
		Type: uint32(elf.SHT_STRTAB),
		Off:  uint64(strtabOff),
		Size: uint64(len(shstrtab)),
	})
	require.Equal(tb, noteOff, buf.Len())

	buf.Write(note.Bytes())
	buf.Write(shstrtab)
	return buf.Bytes()
}

// WriteFile writes content under dir with the given name and returns the full
// path.
func WriteFile(tb testing.TB, dir, name string, content []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, content, 0o644))
	return path
}
