// Package pipeline orchestrates source discovery, the bounded-parallel
// conversion fan-out, and the optional merge finalizer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/backmassage/pqconvert/internal/config"
	"github.com/backmassage/pqconvert/internal/display"
	"github.com/backmassage/pqconvert/internal/engine"
	"github.com/backmassage/pqconvert/internal/logging"
	"github.com/backmassage/pqconvert/internal/naming"
	"github.com/backmassage/pqconvert/internal/probe"
)

// ErrInterrupted is returned when the run context was cancelled before the
// batch completed.
var ErrInterrupted = errors.New("interrupted")

// Run is the top-level batch entry point: discover sources, dispatch the
// conversion pool, finalize the merge when requested, and report. The
// returned error covers structural failures (discovery, scratch, merge);
// per-file failures are counted in RunStats.Failed.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	files, isDir, err := Discover(cfg.InputPath)
	if err != nil {
		return stats, err
	}
	stats.Total = len(files)

	mergeOutput := ""
	if cfg.SingleFile {
		mergeOutput = cfg.MergeOutput
		if mergeOutput == "" {
			mergeOutput = naming.DefaultMergeName(cfg.InputPath, isDir, cfg.Format.Ext())
		}
	}

	logBatchHeader(cfg, log, &stats, mergeOutput)

	if cfg.DryRun {
		dryRun(cfg, log, files, mergeOutput)
		return stats, nil
	}

	// Native parquet merge: one engine call over all sources, no per-file
	// dispatch and no intermediates.
	if cfg.SingleFile && cfg.Format.Binary() {
		if err := MergeParquet(ctx, cfg, log, files, mergeOutput); err != nil {
			return stats, err
		}
		stats.Converted = len(files)
		log.Success("Merged %d files into %s", len(files), mergeOutput)
		logSummary(log, &stats)
		return stats, nil
	}

	var scratch *Scratch
	scratchDir := ""
	if cfg.SingleFile {
		scratch, err = NewScratch()
		if err != nil {
			return stats, fmt.Errorf("cannot create scratch directory: %w", err)
		}
		// Removed on every exit path from here on, including interrupt.
		defer scratch.Cleanup()
		scratchDir = scratch.Dir
		log.Debug(cfg.Verbose, "Scratch dir: %s", scratchDir)
	}

	items := BuildWorkItems(files, cfg, scratchDir)
	stats.Results = dispatch(ctx, cfg, log, items)
	stats.aggregate()

	if cfg.SingleFile {
		if ctx.Err() != nil || stats.Failed > 0 {
			log.Error("Not merging: %d failed, %d skipped of %d files", stats.Failed, stats.Skipped, stats.Total)
			return stats, fmt.Errorf("%w: %d of %d conversions did not complete",
				ErrMergeAborted, stats.Failed+stats.Skipped, stats.Total)
		}
		if err := ConcatText(cfg, log, items, mergeOutput); err != nil {
			return stats, err
		}
		log.Success("Merged %d files into %s", len(items), mergeOutput)
	}

	logSummary(log, &stats)
	renderResults(cfg, &stats)

	if ctx.Err() != nil {
		return stats, ErrInterrupted
	}
	return stats, nil
}

// dispatch fans items out to at most cfg.Parallelism workers, each running
// one blocking engine invocation per item. Submission follows enumeration
// order; results are stored by enumerated position so completion order never
// affects reporting or merge order.
func dispatch(ctx context.Context, cfg *config.Config, log *logging.Logger, items []WorkItem) []FileResult {
	results := make([]FileResult, len(items))
	for i, item := range items {
		results[i] = FileResult{Source: item.Source, Dest: item.Dest, Rows: -1, Skipped: true}
	}

	workers := cfg.Parallelism
	if workers > len(items) {
		workers = len(items)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan WorkItem)
	var anyFailed atomic.Bool
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				r := convertOne(ctx, cfg, log, item, len(items))
				if r.Err != nil {
					anyFailed.Store(true)
				}
				results[item.Index] = r
			}
		}()
	}

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		if cfg.FailFast && anyFailed.Load() {
			log.Warn("Fail-fast: not dispatching remaining files")
			break
		}
		jobs <- item
	}
	close(jobs)
	wg.Wait()
	return results
}

// convertOne handles one WorkItem: probe, invoke the engine, stat the
// output. Failures are surfaced with the offending path and a partial
// destination is removed.
func convertOne(ctx context.Context, cfg *config.Config, log *logging.Logger, item WorkItem, total int) FileResult {
	res := FileResult{Source: item.Source, Dest: item.Dest, Rows: -1}
	label := fmt.Sprintf("[%d/%d]", item.Index+1, total)

	log.Info("%s Converting %s", label, item.Source)

	if info, err := probe.Probe(item.Source); err != nil {
		log.Debug(cfg.Verbose, "%s footer probe failed: %v", label, err)
	} else {
		res.Rows = info.Rows
		res.InBytes = info.Bytes
		if cfg.ShowFileStats {
			log.Info("%s   %s rows | %d cols | %d row groups | %s", label,
				display.FormatRows(info.Rows), info.Columns, info.RowGroups,
				display.FormatBytes(info.Bytes))
		}
	}

	start := time.Now()
	err := engine.Convert(ctx, cfg, []string{item.Source}, item.Dest, cfg.Format)
	res.Elapsed = time.Since(start)

	if err != nil {
		os.Remove(item.Dest)
		if ctx.Err() != nil {
			log.Warn("%s Interrupted: %s", label, item.Source)
			res.Skipped = true
			return res
		}
		log.Error("%s %s: %v", label, item.Source, err)
		res.Err = err
		return res
	}

	if fi, statErr := os.Stat(item.Dest); statErr == nil {
		res.OutBytes = fi.Size()
	}
	log.Success("%s Done %s -> %s (%s in %.1fs)", label, item.Source, item.Dest,
		display.FormatBytes(res.OutBytes), res.Elapsed.Seconds())
	return res
}

// dryRun prints the planned conversions without touching the engine or the
// filesystem.
func dryRun(cfg *config.Config, log *logging.Logger, files []string, mergeOutput string) {
	if cfg.SingleFile {
		for _, f := range files {
			log.Info("[DRY] Would read %s", f)
		}
		log.Success("[DRY] Would merge %d files into %s", len(files), mergeOutput)
		return
	}
	for _, f := range files {
		log.Success("[DRY] Would convert %s -> %s", f, naming.DestinationPath(f, cfg.Format.Ext()))
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats, mergeOutput string) {
	log.Info("Found %d parquet files", stats.Total)
	log.Info("Format: %s", cfg.Format)
	log.Info("Parallelism: %d", cfg.Parallelism)
	if cfg.SingleFile {
		log.Info("Merge: single output -> %s", mergeOutput)
	}
	if cfg.FailFast {
		log.Info("Failure policy: fail-fast")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Info("")
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	if stats.Converted > 0 {
		log.Info("  Read %s, wrote %s",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	}
}

// renderResults prints the per-file results table for multi-file runs.
func renderResults(cfg *config.Config, stats *RunStats) {
	if !cfg.ShowFileStats || len(stats.Results) < 2 {
		return
	}
	rows := make([]display.SummaryRow, 0, len(stats.Results))
	for _, r := range stats.Results {
		row := display.SummaryRow{
			Source: r.Source,
			Status: "ok",
		}
		if r.Rows >= 0 {
			row.Rows = display.FormatRows(r.Rows)
		}
		if r.OutBytes > 0 {
			row.Output = display.FormatBytes(r.OutBytes)
		}
		switch {
		case r.Skipped:
			row.Status = "skipped"
		case r.Err != nil:
			row.Status = "failed"
		default:
			row.Elapsed = fmt.Sprintf("%.1fs", r.Elapsed.Seconds())
		}
		rows = append(rows, row)
	}
	display.RenderSummary(os.Stdout, rows)
}
