// Package probe reads parquet footers to describe source files before
// conversion. Only metadata is touched; no row data is decoded, so probing
// stays cheap even for large inputs.
package probe

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Info describes one parquet source file.
type Info struct {
	Rows      int64 // Total row count from the footer.
	Columns   int   // Top-level column count.
	RowGroups int
	Bytes     int64 // On-disk file size.
}

// Probe opens path as a parquet file and returns its footer metadata.
// A file that cannot be opened as parquet yields an error; callers treat
// that as informational since the engine is the authority on readability.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet footer: %w", err)
	}

	return &Info{
		Rows:      pf.NumRows(),
		Columns:   len(pf.Schema().Fields()),
		RowGroups: len(pf.RowGroups()),
		Bytes:     st.Size(),
	}, nil
}
