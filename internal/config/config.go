// Package config holds runtime configuration: defaults, CLI argument parsing,
// and validation. Validate resolves the last derived value (a zero
// parallelism); after that the Config is passed by pointer to the pipeline
// and read-only from there on.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// --- Enum types for validated string fields ---

// Format is the output format written by the engine.
type Format string

const (
	FormatNDJSON  Format = "ndjson"  // One JSON object per line (default).
	FormatParquet Format = "parquet" // Binary columnar output.
	FormatCSV     Format = "csv"     // Comma-separated values with header row.
)

// Ext returns the file extension for the format, with leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatCSV:
		return ".csv"
	default:
		return ".ndjson"
	}
}

// Binary reports whether the format is binary columnar (merged natively by
// the engine) rather than line-oriented text (merged by concatenation).
func (f Format) Binary() bool { return f == FormatParquet }

// ParseFormat converts a user-supplied token into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ndjson":
		return FormatNDJSON, nil
	case "parquet":
		return FormatParquet, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use 'ndjson', 'parquet' or 'csv')", s)
	}
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// defaultParallelism is used when the logical CPU count cannot be detected.
const defaultParallelism = 4

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseArgs] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Input (set from positional args).
	InputPath   string
	Parallelism int // Max concurrent engine invocations. 0 = use default.

	// Output.
	Format      Format // Default: ndjson.
	SingleFile  bool   // Merge all per-file outputs into one file.
	MergeOutput string // Merge output path; empty = derive from InputPath.

	// Behavior flags.
	DryRun   bool // List planned conversions without invoking the engine.
	FailFast bool // Stop handing out work after the first failure.

	// Display and logging.
	Verbose       bool
	ShowFileStats bool      // Default: true. Per-file row/size stats line.
	ColorMode     ColorMode // Default: "auto".
	LogFile       string    // Optional log file path.
	CheckOnly     bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseArgs] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Parallelism:   DetectParallelism(),
		Format:        FormatNDJSON,
		ShowFileStats: true,
		ColorMode:     ColorAuto,
	}
}

// DetectParallelism returns the logical CPU count, or a constant fallback
// when detection yields nothing usable.
func DetectParallelism() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return defaultParallelism
}

// NormalizePathArg strips trailing slashes from a path argument.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizePathArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and, when not in CheckOnly mode, that an input
// path was given. An explicit parallelism of 0 is replaced by the default.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatNDJSON, FormatParquet, FormatCSV:
		// valid
	default:
		return fmt.Errorf("unsupported format %q (use 'ndjson', 'parquet' or 'csv')", c.Format)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative (got %d)", c.Parallelism)
	}
	if c.Parallelism == 0 {
		c.Parallelism = DetectParallelism()
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" {
		return errors.New("need an input file or directory")
	}
	if !c.SingleFile && c.MergeOutput != "" {
		return errors.New("output name requires --single-file")
	}
	return nil
}
