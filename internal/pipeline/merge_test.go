package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/pqconvert/internal/config"
	"github.com/backmassage/pqconvert/internal/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	require.NoError(t, err)
	return log
}

func writeIntermediate(t *testing.T, dir string, item WorkItem, content string) WorkItem {
	t.Helper()
	item.Dest = filepath.Join(dir, filepath.Base(item.Dest))
	require.NoError(t, os.WriteFile(item.Dest, []byte(content), 0o644))
	return item
}

func TestConcatText_NDJSONLineCounts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatNDJSON

	items := []WorkItem{
		writeIntermediate(t, dir, WorkItem{Index: 0, Dest: "0000_a.ndjson"},
			"{\"id\":1}\n{\"id\":2}\n"),
		writeIntermediate(t, dir, WorkItem{Index: 1, Dest: "0001_b.ndjson"},
			"{\"id\":3}\n{\"id\":4}\n{\"id\":5}\n"),
	}

	output := filepath.Join(dir, "combined.ndjson")
	require.NoError(t, ConcatText(&cfg, testLogger(t), items, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 5)
	// Enumeration order, not completion order.
	assert.Equal(t, "{\"id\":1}", lines[0])
	assert.Equal(t, "{\"id\":5}", lines[4])
}

func TestConcatText_CSVSingleHeader(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatCSV

	items := []WorkItem{
		writeIntermediate(t, dir, WorkItem{Index: 0, Dest: "0000_a.csv"},
			"id,name\n1,alpha\n2,beta\n"),
		writeIntermediate(t, dir, WorkItem{Index: 1, Dest: "0001_b.csv"},
			"id,name\n3,gamma\n"),
	}

	output := filepath.Join(dir, "combined.csv")
	require.NoError(t, ConcatText(&cfg, testLogger(t), items, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	got := string(data)
	assert.Equal(t, "id,name\n1,alpha\n2,beta\n3,gamma\n", got)
	assert.Equal(t, 1, strings.Count(got, "id,name"), "merged csv must carry exactly one header")
}

func TestConcatText_CSVEmptyIntermediate(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatCSV

	// A zero-row source still produces a header-only intermediate; it must
	// contribute nothing beyond position 0.
	items := []WorkItem{
		writeIntermediate(t, dir, WorkItem{Index: 0, Dest: "0000_a.csv"},
			"id,name\n1,alpha\n"),
		writeIntermediate(t, dir, WorkItem{Index: 1, Dest: "0001_empty.csv"},
			"id,name\n"),
		writeIntermediate(t, dir, WorkItem{Index: 2, Dest: "0002_c.csv"},
			"id,name\n2,beta\n"),
	}

	output := filepath.Join(dir, "combined.csv")
	require.NoError(t, ConcatText(&cfg, testLogger(t), items, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,alpha\n2,beta\n", string(data))
}

func TestConcatText_MissingIntermediateAborts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatNDJSON

	items := []WorkItem{
		writeIntermediate(t, dir, WorkItem{Index: 0, Dest: "0000_a.ndjson"}, "{\"id\":1}\n"),
		{Index: 1, Dest: filepath.Join(dir, "0001_gone.ndjson")},
	}

	output := filepath.Join(dir, "combined.ndjson")
	err := ConcatText(&cfg, testLogger(t), items, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMergeAborted))

	// No partial merge output is left behind.
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

// --- Scratch tests ---

func TestScratch_CreateAndCleanup(t *testing.T) {
	s, err := NewScratch()
	require.NoError(t, err)
	require.DirExists(t, s.Dir)
	assert.Contains(t, filepath.Base(s.Dir), "pqconvert-")

	inner := filepath.Join(s.Dir, "0000_a.ndjson")
	require.NoError(t, os.WriteFile(inner, []byte("{}\n"), 0o644))

	dir := s.Dir
	s.Cleanup()
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "scratch dir and contents must be removed")
}

func TestScratch_CleanupIdempotent(t *testing.T) {
	s, err := NewScratch()
	require.NoError(t, err)
	s.Cleanup()
	s.Cleanup() // second call is a no-op

	var nilScratch *Scratch
	nilScratch.Cleanup() // nil receiver is safe
}

func TestScratch_UniquePerRun(t *testing.T) {
	a, err := NewScratch()
	require.NoError(t, err)
	defer a.Cleanup()
	b, err := NewScratch()
	require.NoError(t, err)
	defer b.Cleanup()

	assert.NotEqual(t, a.Dir, b.Dir)
}
