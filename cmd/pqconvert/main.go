// Command pqconvert is the CLI entrypoint for the batch parquet converter.
//
// It parses arguments, validates configuration, and either runs engine
// diagnostics (--check) or the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/pqconvert/internal/check"
	"github.com/backmassage/pqconvert/internal/config"
	"github.com/backmassage/pqconvert/internal/display"
	"github.com/backmassage/pqconvert/internal/logging"
	"github.com/backmassage/pqconvert/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseArgs(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pqconvert: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "pqconvert: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqconvert: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== pqconvert v%s (%s) ===", version, commit)
	log.Info("In: %s", cfg.InputPath)
	log.Info("")

	// Fail fast if the engine is unavailable, before any work begins.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pool stops between files and scratch cleanup still runs.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Run pipeline (discover → dispatch → merge → summary).
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if stats.Failed > 0 {
		return 1
	}
	return 0
}
