// Package naming builds destination paths: per-file outputs alongside their
// sources, temp file names inside the scratch directory, and the default
// merge output name.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DestinationPath returns the per-file output path for a source: the source
// path with its extension replaced by ext, alongside the source. When the
// result would equal the source itself (parquet output from a parquet
// source), the stem gets a "_converted" suffix so the engine never writes
// over the file it is reading.
func DestinationPath(source, ext string) string {
	dest := filepath.Join(filepath.Dir(source), Stem(source)+ext)
	if dest == source {
		dest = filepath.Join(filepath.Dir(source), Stem(source)+"_converted"+ext)
	}
	return dest
}

// TempName returns the intermediate file name for the source at the given
// enumerated position. The zero-padded index makes lexicographic filename
// order equal enumeration order and keeps same-stem sources from different
// directories distinct.
func TempName(index int, source, ext string) string {
	return fmt.Sprintf("%04d_%s%s", index, Stem(source), ext)
}

// DefaultMergeName derives the merge output name from the input path:
// the directory's base name for a directory input, the file's stem for a
// single-file input, plus the format extension. As with DestinationPath,
// a derived name that resolves to the input itself (parquet merge of a
// bare parquet path) gets a "_converted" stem suffix so the engine never
// writes over the file it is reading.
func DefaultMergeName(inputPath string, isDir bool, ext string) string {
	if isDir {
		return filepath.Base(inputPath) + ext
	}
	name := Stem(inputPath) + ext
	if filepath.Clean(name) == filepath.Clean(inputPath) {
		name = Stem(inputPath) + "_converted" + ext
	}
	return name
}
