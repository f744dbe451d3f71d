package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serpent-os/elfmeta/internal/elffile"
	"github.com/serpent-os/elfmeta/internal/testhelpers"
)

func TestScan_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := testhelpers.WriteFile(t, dir, "libone.so.1",
		testhelpers.MinimalSharedObject(t, []byte{0x01, 0x02, 0x03, 0x04}))

	results, err := New(Options{}).Scan(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.NoError(t, r.Err)
	assert.Equal(t, "libone.so.1", r.FileName)
	assert.Equal(t, "01020304", r.BuildID)
	// No .dynamic in the synthetic object: SONAME falls back to the file name.
	assert.Equal(t, "libone.so.1", r.Soname)
	assert.Empty(t, r.Needed)
	assert.Empty(t, r.Exported)
	assert.Empty(t, r.Imported)
	assert.Zero(t, r.SkippedSymbols)
}

func TestScan_NonELFDegradesNotFails(t *testing.T) {
	dir := t.TempDir()
	good := testhelpers.WriteFile(t, dir, "lib.so",
		testhelpers.MinimalSharedObject(t, []byte{0xaa}))
	bad := testhelpers.WriteFile(t, dir, "notes.txt", []byte("not a binary"))

	results, err := New(Options{}).Scan(context.Background(), []string{bad, good})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, elffile.ErrNotELF)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "aa", results[1].BuildID)
}

func TestScan_PreservesInputOrderUnderParallelism(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 32; i++ {
		name := fmt.Sprintf("lib%02d.so", i)
		paths = append(paths, testhelpers.WriteFile(t, dir, name,
			testhelpers.MinimalSharedObject(t, []byte{byte(i)})))
	}

	results, err := New(Options{Jobs: 8}).Scan(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path, "result order must match input order")
		assert.Equal(t, fmt.Sprintf("%02x", byte(i)), r.BuildID)
	}
}

func TestScan_DirectoryExpansion(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	testhelpers.WriteFile(t, root, "a.so", testhelpers.MinimalSharedObject(t, []byte{1}))
	testhelpers.WriteFile(t, root, "b.so", testhelpers.MinimalSharedObject(t, []byte{2}))
	testhelpers.WriteFile(t, sub, "c.so", testhelpers.MinimalSharedObject(t, []byte{3}))

	t.Run("flat", func(t *testing.T) {
		results, err := New(Options{}).Scan(context.Background(), []string{root})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a.so", results[0].FileName)
		assert.Equal(t, "b.so", results[1].FileName)
	})

	t.Run("recursive", func(t *testing.T) {
		results, err := New(Options{Recursive: true}).Scan(context.Background(), []string{root})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "a.so", results[0].FileName)
		assert.Equal(t, "b.so", results[1].FileName)
		assert.Equal(t, "c.so", results[2].FileName)
	})
}

func TestScan_MissingPathFailsScan(t *testing.T) {
	_, err := New(Options{}).Scan(context.Background(), []string{"/no/such/path"})
	assert.Error(t, err)
}

func TestScan_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := testhelpers.WriteFile(t, dir, "lib.so",
		testhelpers.MinimalSharedObject(t, []byte{1}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Scan(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}
