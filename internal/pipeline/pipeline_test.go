package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/pqconvert/internal/config"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

// --- Discover tests ---

func TestDiscover_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "events.parquet")

	files, isDir, err := Discover(path)
	require.NoError(t, err)
	assert.False(t, isDir)
	assert.Equal(t, []string{path}, files)
}

func TestDiscover_SingleFileWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "events.csv")

	_, _, err := Discover(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a parquet file")
}

func TestDiscover_MissingPath(t *testing.T) {
	_, _, err := Discover(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
}

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.parquet")
	touch(t, dir, "b.parquet")
	touch(t, dir, "notes.txt")
	touch(t, dir, "data.csv")
	touch(t, dir, "data.ndjson")

	files, isDir, err := Discover(dir)
	require.NoError(t, err)
	assert.True(t, isDir)
	require.Len(t, files, 2)
	assert.Equal(t, "a.parquet", filepath.Base(files[0]))
	assert.Equal(t, "b.parquet", filepath.Base(files[1]))
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024", "01"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024", "02"), 0o755))
	touch(t, filepath.Join(dir, "2024", "02"), "z.parquet")
	touch(t, filepath.Join(dir, "2024", "01"), "b.parquet")
	touch(t, filepath.Join(dir, "2024", "01"), "a.parquet")
	touch(t, dir, "root.parquet")

	files, _, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 4)
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i], "discovery output must be sorted")
	}
}

func TestDiscover_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "UPPER.PARQUET")
	touch(t, dir, "Mixed.Parquet")

	files, _, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscover_EmptyDir(t *testing.T) {
	_, _, err := Discover(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatches))
}

// --- Work item tests ---

func TestBuildWorkItems_NonMerge(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatNDJSON

	files := []string{"/data/a.parquet", "/data/sub/b.parquet"}
	items := BuildWorkItems(files, &cfg, "")

	require.Len(t, items, 2)
	assert.Equal(t, WorkItem{Index: 0, Source: "/data/a.parquet", Dest: "/data/a.ndjson"}, items[0])
	assert.Equal(t, WorkItem{Index: 1, Source: "/data/sub/b.parquet", Dest: "/data/sub/b.ndjson"}, items[1])
}

func TestBuildWorkItems_ParquetCollisionSuffix(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatParquet

	items := BuildWorkItems([]string{"/data/a.parquet"}, &cfg, "")
	require.Len(t, items, 1)
	assert.Equal(t, "/data/a_converted.parquet", items[0].Dest)
}

func TestBuildWorkItems_MergeUsesScratch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatCSV
	cfg.SingleFile = true

	files := []string{"/x/data.parquet", "/y/data.parquet"}
	items := BuildWorkItems(files, &cfg, "/tmp/scratch")

	require.Len(t, items, 2)
	assert.Equal(t, "/tmp/scratch/0000_data.csv", items[0].Dest)
	assert.Equal(t, "/tmp/scratch/0001_data.csv", items[1].Dest)
	// Filename order must equal enumeration order for deterministic merges.
	assert.Less(t, filepath.Base(items[0].Dest), filepath.Base(items[1].Dest))
}
