package report

import (
	"bytes"
	"debug/elf"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serpent-os/elfmeta/internal/elffile"
	"github.com/serpent-os/elfmeta/internal/scanner"
)

func sampleResult() scanner.Result {
	return scanner.Result{
		Path:     "/usr/lib/libfoo.so.1.2.3",
		FileName: "libfoo.so.1.2.3",
		BuildID:  "cafebabe00112233",
		Soname:   "libfoo.so.1",
		Needed:   []string{"libc.so.6", "libm.so.6"},
		Exported: []string{"foo_init", "foo_version"},
		Imported: []string{"malloc", "memcpy"},
		Class:    elf.ELFCLASS64,
		Machine:  elf.EM_X86_64,
		Type:     elf.ET_DYN,
	}
}

func TestParseOutputFormat(t *testing.T) {
	got, err := ParseOutputFormat("text")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatText, got)

	got, err = ParseOutputFormat("json")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, got)

	_, err = ParseOutputFormat("yaml")
	assert.ErrorIs(t, err, ErrInvalidOutputFormat)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, false, false)
	require.NoError(t, r.Render([]scanner.Result{sampleResult()}))

	out := buf.String()
	assert.Contains(t, out, "/usr/lib/libfoo.so.1.2.3")
	assert.Contains(t, out, "cafebabe00112233")
	assert.Contains(t, out, "libfoo.so.1")
	assert.Contains(t, out, "libc.so.6")
	assert.Contains(t, out, "libm.so.6")
	assert.Contains(t, out, "2 symbols")
	assert.NotContains(t, out, "foo_init", "symbol names only appear in verbose mode")
	assert.NotContains(t, out, "\033[", "no ANSI sequences without color")
}

func TestTextRenderer_Verbose(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, false, true)
	require.NoError(t, r.Render([]scanner.Result{sampleResult()}))

	out := buf.String()
	assert.Contains(t, out, "foo_init")
	assert.Contains(t, out, "foo_version")
	assert.Contains(t, out, "malloc")
	assert.Contains(t, out, "memcpy")
}

func TestTextRenderer_MissingBuildIDSentinel(t *testing.T) {
	res := sampleResult()
	res.BuildID = ""

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf, false, false).Render([]scanner.Result{res}))
	assert.Contains(t, buf.String(), BuildIDMissing)
}

func TestTextRenderer_NonELF(t *testing.T) {
	res := scanner.Result{Path: "/etc/hosts", FileName: "hosts", Err: elffile.ErrNotELF}

	var quiet bytes.Buffer
	require.NoError(t, NewTextRenderer(&quiet, false, false).Render([]scanner.Result{res}))
	assert.Empty(t, quiet.String(), "failed files are silent unless verbose")

	var verbose bytes.Buffer
	require.NoError(t, NewTextRenderer(&verbose, false, true).Render([]scanner.Result{res}))
	assert.Contains(t, verbose.String(), "/etc/hosts")
	assert.Contains(t, verbose.String(), "not an ELF binary")
}

func TestTextRenderer_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf, true, false).Render([]scanner.Result{sampleResult()}))
	assert.Contains(t, buf.String(), "\033[1m", "file header is bold when color is on")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf, false).Render([]scanner.Result{sampleResult()}))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "libfoo.so.1.2.3", rec["fileName"])
	assert.Equal(t, "cafebabe00112233", rec["buildId"])
	assert.Equal(t, "libfoo.so.1", rec["soname"])
	assert.Equal(t, []any{"libc.so.6", "libm.so.6"}, rec["needed"])
	assert.Equal(t, []any{"foo_init", "foo_version"}, rec["exported"])
	assert.Equal(t, []any{"malloc", "memcpy"}, rec["imported"])
	assert.NotContains(t, rec, "error")
}

func TestJSONRenderer_EmptyListsNotNull(t *testing.T) {
	res := sampleResult()
	res.BuildID = ""
	res.Needed = nil
	res.Exported = nil
	res.Imported = nil

	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf, false).Render([]scanner.Result{res}))

	out := buf.String()
	assert.NotContains(t, out, "null")
	assert.True(t, strings.Contains(out, `"buildId": "N/A"`))
}

func TestJSONRenderer_FailedFiles(t *testing.T) {
	res := scanner.Result{Path: "/etc/hosts", FileName: "hosts", Err: elffile.ErrNotELF}

	var quiet bytes.Buffer
	require.NoError(t, NewJSONRenderer(&quiet, false).Render([]scanner.Result{res}))
	assert.Equal(t, "[]\n", quiet.String())

	var verbose bytes.Buffer
	require.NoError(t, NewJSONRenderer(&verbose, true).Render([]scanner.Result{res}))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(verbose.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Contains(t, records[0]["error"], "not an ELF binary")
}
