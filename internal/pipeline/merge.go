package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/backmassage/pqconvert/internal/config"
	"github.com/backmassage/pqconvert/internal/engine"
	"github.com/backmassage/pqconvert/internal/logging"
)

// ErrMergeAborted is returned when merge mode cannot produce a final output
// because one or more per-file conversions failed or the run was
// interrupted. No partial merge output is left behind.
var ErrMergeAborted = errors.New("merge aborted")

// MergeParquet issues the single engine call that reads all sources as one
// unioned relation and writes the combined binary output. No intermediates
// are involved.
func MergeParquet(ctx context.Context, cfg *config.Config, log *logging.Logger, files []string, output string) error {
	log.Merge("Merging %d files -> %s", len(files), output)
	if err := engine.Convert(ctx, cfg, files, output, config.FormatParquet); err != nil {
		return fmt.Errorf("parquet merge: %w", err)
	}
	return nil
}

// ConcatText concatenates the per-file intermediates in enumeration order
// into output. For csv the header line of the first intermediate is kept and
// the first line of every later intermediate is dropped, so the merged file
// carries exactly one header. Any read or write error removes the partial
// output and aborts.
func ConcatText(cfg *config.Config, log *logging.Logger, items []WorkItem, output string) error {
	log.Merge("Concatenating %d intermediate files -> %s", len(items), output)

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cannot create merge output: %w", err)
	}

	for i, item := range items {
		dropHeader := cfg.Format == config.FormatCSV && i > 0
		if err := appendFile(out, item.Dest, dropHeader); err != nil {
			out.Close()
			os.Remove(output)
			return fmt.Errorf("%w: reading %s: %v", ErrMergeAborted, item.Dest, err)
		}
	}

	if err := out.Close(); err != nil {
		os.Remove(output)
		return fmt.Errorf("finalizing merge output: %w", err)
	}
	return nil
}

// appendFile copies one intermediate into w, optionally dropping its first
// line (the csv header). An empty intermediate with dropHeader contributes
// nothing, which is correct: its only line was the header.
func appendFile(w io.Writer, path string, dropHeader bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if dropHeader {
		if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
			return err
		}
	}
	_, err = io.Copy(w, r)
	return err
}
