package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thekorn/fastfilter-search/layeredfilter"
)

func buildSample(t *testing.T) *layeredfilter.LayeredFilter {
	t.Helper()
	lf := layeredfilter.New(1000, layeredfilter.DefaultOptions)
	lf.Insert(layeredfilter.NewSliceProducer([]uint64{1, 2, 3}), layeredfilter.BytesResult("doc one"))
	lf.Insert(layeredfilter.NewSliceProducer([]uint64{3, 4, 5}), layeredfilter.BytesResult("doc two"))
	require.NoError(t, lf.Index())
	return lf
}

func TestSaveLoadRoundTrip(t *testing.T) {
	lf := buildSample(t)

	var buf bytes.Buffer
	require.NoError(t, Save(lf, &buf))

	loaded, err := Load(&buf, layeredfilter.DefaultOptions)
	require.NoError(t, err)

	require.Equal(t, lf.Keys, loaded.Keys)
	require.Equal(t, lf.TotalKeysEstimate, loaded.TotalKeysEstimate)

	for _, k := range []uint64{1, 2, 3, 4, 5} {
		require.Equal(t, lf.Contains(k), loaded.Contains(k))
	}

	var origResults, loadedResults []string
	lf.QueryOr([]uint64{1, 4}, func(r layeredfilter.Result) {
		origResults = append(origResults, string(r.(layeredfilter.BytesResult)))
	})
	loaded.QueryOr([]uint64{1, 4}, func(r layeredfilter.Result) {
		loadedResults = append(loadedResults, string(r.(layeredfilter.BytesResult)))
	})
	require.Equal(t, origResults, loadedResults)
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	lf := buildSample(t)
	var buf bytes.Buffer
	require.NoError(t, Save(lf, &buf))

	corrupted := buf.Bytes()
	corrupted[0] = 99 // low byte of the u16 version field

	_, err := Load(bytes.NewReader(corrupted), layeredfilter.DefaultOptions)
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestLoadRejectsOptionsMismatch(t *testing.T) {
	lf := buildSample(t)
	var buf bytes.Buffer
	require.NoError(t, Save(lf, &buf))

	wrongOpts := layeredfilter.DefaultOptions
	wrongOpts.Divisions = layeredfilter.D + 1

	_, err := Load(bytes.NewReader(buf.Bytes()), wrongOpts)
	require.ErrorIs(t, err, ErrOptionsMismatch)
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	lf := buildSample(t)
	var buf bytes.Buffer
	require.NoError(t, Save(lf, &buf))

	truncated := buf.Bytes()[:len(buf.Bytes())/2]
	_, err := Load(bytes.NewReader(truncated), layeredfilter.DefaultOptions)
	require.ErrorIs(t, err, ErrEndOfStream)
}

func TestSaveToFileAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lf := buildSample(t)

	require.NoError(t, SaveToFile(lf, dir, "index.bin"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1) // no leftover temp file
	require.Equal(t, "index.bin", entries[0].Name())

	loaded, err := LoadFromFile(dir, "index.bin", layeredfilter.DefaultOptions)
	require.NoError(t, err)
	require.Equal(t, lf.Keys, loaded.Keys)
}

func TestSaveToFileReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.bin"), []byte("previous contents"), 0o644))

	// lf with nothing indexed still serializes fine; a successful save
	// renames the temp file over the existing destination, replacing its
	// previous contents.
	lf := layeredfilter.New(10, layeredfilter.DefaultOptions)
	require.NoError(t, SaveToFile(lf, dir, "index.bin"))

	data, err := os.ReadFile(filepath.Join(dir, "index.bin"))
	require.NoError(t, err)
	require.NotEqual(t, "previous contents", string(data))
}
