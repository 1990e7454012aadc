package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/pqconvert/internal/config"
)

// ExecResult holds the outcome of a single engine invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs the engine with a single -c statement. When verbose is
// enabled, stderr is tee'd to os.Stderr in real time; otherwise it is
// captured silently for error classification. Cancelling ctx kills the
// subprocess.
func Execute(ctx context.Context, cfg *config.Config, sql string) ExecResult {
	cmd := exec.CommandContext(ctx, Binary, "-batch", "-c", sql)

	var stderrBuf bytes.Buffer
	if cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// Convert runs one COPY from sources to dest and turns a nonzero engine exit
// into a classified error carrying the most useful stderr line.
func Convert(ctx context.Context, cfg *config.Config, sources []string, dest string, f config.Format) error {
	sql := CopyStatement(sources, dest, f)
	res := Execute(ctx, cfg, sql)
	if res.Err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	msg := firstErrorLine(res.Stderr)
	if cause := Classify(res.Stderr); cause != "" {
		return fmt.Errorf("engine failed (%s): %s", cause, msg)
	}
	if msg == "" {
		return fmt.Errorf("engine failed: %w", res.Err)
	}
	return fmt.Errorf("engine failed: %s", msg)
}

// Version returns the engine version line, e.g. "v1.1.3 19864453f7".
func Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, Binary, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// firstErrorLine picks the first non-empty stderr line, preferring one that
// carries an engine error marker. DuckDB prints its error type and message
// on a single line, so one line is almost always the whole story.
func firstErrorLine(stderr string) string {
	first := ""
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first == "" {
			first = line
		}
		if strings.Contains(line, "Error") {
			return line
		}
	}
	return first
}
