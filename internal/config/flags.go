package config

// This file implements CLI argument parsing and help text.
//
// The grammar is a hand-rolled token scanner rather than the stdlib flag
// package: the input path and the parallelism override are positional (in
// any position relative to flags), and --single-file optionally consumes
// the following non-flag token as the merge output name. Neither shape is
// expressible with flag.FlagSet.

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseArgs parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (unknown flag, malformed
// value, excess positional arguments).
func ParseArgs(cfg *Config, version string, args []string) error {
	positionals := 0

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			printUsage(version)
			os.Exit(0)

		case arg == "--version" || arg == "-V":
			fmt.Fprintln(os.Stdout, "pqconvert v"+version)
			os.Exit(0)

		case arg == "--format" || arg == "-f":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			f, err := ParseFormat(args[i])
			if err != nil {
				return err
			}
			cfg.Format = f

		case strings.HasPrefix(arg, "--format="):
			f, err := ParseFormat(strings.TrimPrefix(arg, "--format="))
			if err != nil {
				return err
			}
			cfg.Format = f

		case arg == "--single-file" || arg == "-s":
			cfg.SingleFile = true
			// Optional trailing value: the next token names the merge
			// output unless it looks like another flag.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				cfg.MergeOutput = args[i]
			}

		case arg == "--log" || arg == "-l":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			cfg.LogFile = args[i]

		case strings.HasPrefix(arg, "--log="):
			cfg.LogFile = strings.TrimPrefix(arg, "--log=")

		case arg == "--dry-run" || arg == "-d":
			cfg.DryRun = true

		case arg == "--fail-fast":
			cfg.FailFast = true

		case arg == "--no-stats":
			cfg.ShowFileStats = false

		case arg == "--color":
			cfg.ColorMode = ColorAlways

		case arg == "--no-color":
			cfg.ColorMode = ColorNever

		case arg == "--verbose" || arg == "-v":
			cfg.Verbose = true

		case arg == "--check" || arg == "-c":
			cfg.CheckOnly = true

		case strings.HasPrefix(arg, "-") && arg != "-":
			return fmt.Errorf("unknown flag %q (see --help)", arg)

		default:
			switch positionals {
			case 0:
				cfg.InputPath = NormalizePathArg(arg)
			case 1:
				n, err := strconv.Atoi(arg)
				if err != nil || n < 0 {
					return fmt.Errorf("parallelism must be a non-negative number (got %q)", arg)
				}
				cfg.Parallelism = n
			default:
				return fmt.Errorf("unexpected argument %q", arg)
			}
			positionals++
		}
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "pqconvert v" + version + " — batch parquet converter (DuckDB-powered)"},
		{"", ""},
		{"  pqconvert <input_path> [parallelism] [OPTIONS]", ""},
		{"", ""},
		{"Arguments", ""},
		{"  <input_path>", "Parquet file, or directory scanned recursively"},
		{"  [parallelism]", "Max concurrent conversions (default: CPU count)"},
		{"", ""},
		{"Output", ""},
		{"  -f, --format <fmt>", "Output format: ndjson | parquet | csv (default: ndjson)"},
		{"  -s, --single-file [name]", "Merge all outputs into one file (default name:"},
		{"", "<input basename> plus the format extension)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "List planned conversions; do not run the engine"},
		{"  --fail-fast", "Stop dispatching after the first failed file"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Hide per-file row/size stats"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output (includes engine stderr)"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Engine diagnostics (duckdb presence, formats)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, strings.Repeat(" ", col1)+l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
