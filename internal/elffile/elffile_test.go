package elffile

import (
	"bytes"
	"debug/elf"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serpent-os/elfmeta/internal/elfmeta"
	"github.com/serpent-os/elfmeta/internal/testhelpers"
)

func TestOpen_SyntheticSharedObject(t *testing.T) {
	desc := []byte{0xca, 0xfe, 0xba, 0xbe, 0x00, 0x11, 0x22, 0x33}
	path := testhelpers.WriteFile(t, t.TempDir(), "libsynth.so.1",
		testhelpers.MinimalSharedObject(t, desc))

	f, err := Open(path)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, f.Close())
	}()

	assert.Equal(t, "libsynth.so.1", f.Name())
	assert.Equal(t, elf.ELFCLASS64, f.Class())
	assert.Equal(t, elf.EM_X86_64, f.Machine())
	assert.Equal(t, elf.ET_DYN, f.Type())

	sec, ok := f.Section(".note.gnu.build-id")
	require.True(t, ok)
	assert.Equal(t, elf.SHT_NOTE, sec.Type)

	id, err := elfmeta.DecodeBuildID(sec)
	require.NoError(t, err)
	assert.Equal(t, "cafebabe00112233", id)

	_, ok = f.Section(".does-not-exist")
	assert.False(t, ok)

	// No .dynamic and no symbol tables in the synthetic object: both must
	// degrade to empty, not fail.
	assert.False(t, f.DynamicTable().Present)
	assert.Empty(t, f.SymbolRecords())
}

func TestOpen_NotELF(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "shell script", content: []byte("#!/bin/sh\necho hi\n")},
		{name: "empty file", content: nil},
		{name: "short file", content: []byte{0x7f, 'E'}},
		{name: "magic only, truncated container", content: []byte("\x7fELF")},
		{name: "magic then garbage", content: append([]byte("\x7fELF"), bytes.Repeat([]byte{0xff}, 60)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testhelpers.WriteFile(t, t.TempDir(), "candidate", tt.content)
			_, err := Open(path)
			assert.ErrorIs(t, err, ErrNotELF)
		})
	}
}

func TestOpen_NotRegularFile(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRegularFile)
}

func TestOpen_FileTooLarge(t *testing.T) {
	path := testhelpers.WriteFile(t, t.TempDir(), "big", bytes.Repeat([]byte{0}, 128))
	_, err := OpenWithOptions(path, Options{MaxFileSize: 64})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestOpen_HostBinary(t *testing.T) {
	// /bin/sh exists on any system this test runs on; it may be a script
	// wrapper on exotic setups, so only assert on the successful case.
	f, err := Open("/bin/sh")
	if err != nil {
		t.Skipf("cannot open /bin/sh as ELF: %v", err)
	}
	defer func() {
		assert.NoError(t, f.Close())
	}()

	tab := f.DynamicTable()
	if !tab.Present {
		t.Skip("/bin/sh is statically linked")
	}
	assert.NotEmpty(t, tab.Needed, "a dynamically linked shell imports at least libc")

	classified := elfmeta.Classify(f.SymbolRecords())
	assert.NotEmpty(t, classified.Imported)
}
