package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExtension is the only accepted input type. Matching is by extension
// only; the engine is the authority on whether the content is readable.
const sourceExtension = ".parquet"

// ErrNoMatches is returned when a directory input contains no parquet files.
var ErrNoMatches = errors.New("no matching parquet files")

// Discover resolves the input path into the ordered list of source files:
// the path itself when it is a parquet file, or every parquet file reachable
// by a recursive walk when it is a directory. Results are sorted
// lexicographically so the enumeration order (and therefore merged output
// order) is reproducible across runs. The second return reports whether the
// input was a directory.
func Discover(inputPath string) ([]string, bool, error) {
	fi, err := os.Stat(inputPath)
	if err != nil {
		return nil, false, fmt.Errorf("input not found: %s", inputPath)
	}

	if !fi.IsDir() {
		if !hasSourceExtension(inputPath) {
			return nil, false, fmt.Errorf("not a parquet file: %s", inputPath)
		}
		return []string{inputPath}, false, nil
	}

	var files []string
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if hasSourceExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, true, fmt.Errorf("walking %s: %w", inputPath, err)
	}
	if len(files) == 0 {
		return nil, true, fmt.Errorf("%w under %s", ErrNoMatches, inputPath)
	}
	sort.Strings(files)
	return files, true, nil
}

func hasSourceExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), sourceExtension)
}
