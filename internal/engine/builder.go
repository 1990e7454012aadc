// Package engine builds and executes DuckDB invocations. Every conversion is
// one subprocess call carrying a single COPY statement; the engine owns all
// parquet decoding and output encoding.
package engine

import (
	"strings"

	"github.com/backmassage/pqconvert/internal/config"
)

// Binary is the engine executable looked up on PATH.
const Binary = "duckdb"

// QuoteLiteral returns s as a single-quoted SQL string literal with embedded
// quotes doubled. Paths come from the filesystem walk, so the only metadata
// character that needs handling is the quote itself.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ReadExpr returns the read_parquet() relation expression over one or more
// source files. Multiple sources are read as a single unioned relation,
// which is how the parquet merge avoids intermediate files.
func ReadExpr(sources []string) string {
	if len(sources) == 1 {
		return "read_parquet(" + QuoteLiteral(sources[0]) + ")"
	}
	quoted := make([]string, len(sources))
	for i, s := range sources {
		quoted[i] = QuoteLiteral(s)
	}
	return "read_parquet([" + strings.Join(quoted, ", ") + "])"
}

// FormatOptions returns the COPY options clause for the output format.
// FORMAT json writes newline-delimited JSON; csv always emits a header row.
func FormatOptions(f config.Format) string {
	switch f {
	case config.FormatCSV:
		return "FORMAT csv, HEADER"
	case config.FormatParquet:
		return "FORMAT parquet"
	default:
		return "FORMAT json"
	}
}

// CopyStatement builds the full COPY instruction reading all rows of the
// sources and writing them to dest in the requested format.
func CopyStatement(sources []string, dest string, f config.Format) string {
	return "COPY (SELECT * FROM " + ReadExpr(sources) + ") TO " +
		QuoteLiteral(dest) + " (" + FormatOptions(f) + ")"
}
