// Package check provides engine diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the DuckDB executable.
package check

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/backmassage/pqconvert/internal/config"
	"github.com/backmassage/pqconvert/internal/engine"
)

// ErrEngineNotFound is returned by CheckDeps when the engine executable is
// missing from PATH. Checked before any other work begins.
var ErrEngineNotFound = errors.New("duckdb not found on PATH (install from https://duckdb.org)")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: engine presence, version, and
// a tiny round-trip conversion probe per output format. Informational only;
// the return value reports whether every probe passed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Engine Check ===")

	if _, err := exec.LookPath(engine.Binary); err != nil {
		log.Error("duckdb not found on PATH")
		return false
	}

	if v, err := engine.Version(context.Background()); err != nil {
		log.Warn("duckdb found but --version failed: %v", err)
	} else {
		log.Success("duckdb: %s", v)
	}

	ok := true
	for _, f := range []config.Format{config.FormatNDJSON, config.FormatParquet, config.FormatCSV} {
		if checkFormat(f) {
			log.Success("format %s works", f)
		} else {
			log.Error("format %s test conversion failed", f)
			ok = false
		}
	}
	return ok
}

// CheckDeps is the pre-pipeline validation: the engine must be on PATH.
// Everything else (format support, file readability) is surfaced per file
// by the dispatcher.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(engine.Binary); err != nil {
		return ErrEngineNotFound
	}
	return nil
}

// checkFormat generates a one-row parquet file in a scratch location and
// converts it to the given format, verifying the full read/write path.
func checkFormat(f config.Format) bool {
	dir, err := os.MkdirTemp("", "pqconvert-check-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "probe.parquet")
	seed := "COPY (SELECT 42 AS answer) TO " + engine.QuoteLiteral(src) + " (FORMAT parquet)"
	if !runSilent(engine.Binary, "-batch", "-c", seed) {
		return false
	}

	dest := filepath.Join(dir, "probe"+f.Ext())
	return runSilent(engine.Binary, "-batch", "-c", engine.CopyStatement([]string{src}, dest, f))
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
