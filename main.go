// ════════════════════════════════════════════════════════════════════════════════════════════════
// Dual-Lane Benchmark - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: Main Entry Point & Run Orchestration
//
// Description:
//   Phased orchestration around one dispatcher: configuration and logging, platform checks,
//   measurement with the collector disabled, then reporting and archival.
//
// Architecture:
//   - Phase 0: Configuration, logging and platform start-up checks
//   - Phase 1: Dispatcher construction and memory settling
//   - Phase 2: Calibration (when requested) and measured runs with GC disabled
//   - Phase 3: Report output and result archival
//
// Archive queries (-history, -show) skip the benchmark and read the result store instead.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	rtdebug "runtime/debug"
	"syscall"
	"time"

	"dualmark/config"
	"dualmark/control"
	"dualmark/debug"
	"dualmark/dispatch"
	"dualmark/harness"
	"dualmark/platform"
	"dualmark/report"
	"dualmark/store"
	"dualmark/workload"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one benchmark invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// PHASE 0: Configuration, logging and platform checks
	fs := flag.NewFlagSet("dualmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := debug.Configure(stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if cfg.ConfigFile != "" {
		debug.DropMessage("CONFIG", "loaded", "file", cfg.ConfigFile)
	}

	if cfg.History > 0 || cfg.Show > 0 {
		if err := query(context.Background(), stdout, cfg); err != nil {
			debug.DropError("STORE", err)
			return 1
		}
		return 0
	}

	var portable platform.Portable
	if err := platform.Init(&portable, platform.Target{PointerBits: cfg.TargetPointerBits}, cfg.StrictPlatform); err != nil {
		return 3
	}
	defer platform.Fini(&portable)

	setupSignalHandling()

	// PHASE 1: Dispatcher construction
	opts := []dispatch.Option{
		dispatch.WithSecondaryCore(cfg.SecondaryCore),
		dispatch.WithWaitTimeout(cfg.WaitTimeout),
		dispatch.WithPollInterval(cfg.PollInterval),
		dispatch.WithLogger(debug.Logger()),
	}
	if y := cfg.YieldMode(); y != "" {
		opts = append(opts, dispatch.WithYield(y))
	}
	d, err := dispatch.New(cfg.Kind, workload.Iterate, opts...)
	if err != nil {
		debug.DropError("DISPATCH", err)
		return 2
	}
	defer d.Close()
	debug.DropMessage("READY", "dispatcher started", "backend", d.Backend(), "core", cfg.SecondaryCore)

	runner, err := harness.New(d, harness.Options{
		Iterations:  cfg.Iterations,
		Runs:        cfg.Runs,
		Seed:        cfg.Seed,
		MinDuration: cfg.MinDuration,
		Stopping:    control.Stopping,
	})
	if err != nil {
		debug.DropError("HARNESS", err)
		return 3
	}

	// Settle the heap so no collection lands inside a measured run.
	runtime.GC()
	rtdebug.FreeOSMemory()

	// PHASE 2: Measurement
	prevGC := rtdebug.SetGCPercent(-1)
	rep, runErr := runner.Run(context.Background())
	rtdebug.SetGCPercent(prevGC)

	if rep == nil {
		debug.DropError("RUN", runErr)
		return 1
	}
	if runErr != nil {
		debug.DropError("RUN", runErr)
	}

	// PHASE 3: Output and archival
	if err := emit(stdout, rep, cfg.JSON); err != nil {
		debug.DropError("REPORT", err)
		return 1
	}
	if cfg.DBPath != "" && len(rep.Runs) > 0 {
		if err := archive(context.Background(), cfg.DBPath, rep); err != nil {
			debug.DropError("STORE", err)
		}
	}

	switch {
	case runErr != nil:
		return 1
	case !rep.Validated:
		return 4
	case !rep.DurationValid:
		return 5
	default:
		return 0
	}
}

func emit(w io.Writer, rep *report.Report, asJSON bool) error {
	if !asJSON {
		return rep.Print(w)
	}
	b, err := report.Encode(rep)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func archive(ctx context.Context, path string, rep *report.Report) error {
	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.Save(ctx, rep)
	if err != nil {
		return err
	}
	debug.DropMessage("STORE", "report archived", "id", id, "path", path)
	return nil
}

// query answers -history and -show from the archive.
func query(ctx context.Context, w io.Writer, cfg *config.Config) error {
	s, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.Show > 0 {
		rep, err := s.Load(ctx, cfg.Show)
		if err != nil {
			return err
		}
		if err := emit(w, rep, cfg.JSON); err != nil {
			return err
		}
	}

	if cfg.History > 0 {
		recent, err := s.Recent(ctx, cfg.History)
		if err != nil {
			return err
		}
		for _, sum := range recent {
			fmt.Fprintf(w, "#%d %s %-10s per_lane=%d runs=%d ticks=%d iter/s=%.2f %s\n",
				sum.ID, sum.StartedAt.Format(time.RFC3339), sum.Backend, sum.IterationsPerLane,
				sum.Runs, sum.TotalTicks, sum.MeanIterPerSec, status(sum))
			runs, err := s.Runs(ctx, sum.ID)
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Fprintf(w, "    [%d] ticks=%d iter/s=%.2f crc=0x%08x/0x%08x\n",
					run.Index, run.Ticks, run.IterPerSec, run.Checksums[0], run.Checksums[1])
			}
		}
	}
	return nil
}

func status(s store.Summary) string {
	switch {
	case !s.Validated:
		return "invalid"
	case !s.DurationValid:
		return "short"
	default:
		return "ok"
	}
}

// setupSignalHandling turns the first SIGINT/SIGTERM into a graceful stop
// after the current run; a second one exits immediately.
func setupSignalHandling() {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		debug.DropMessage("SIGNAL", "Received interrupt, stopping after current run")
		control.Shutdown()

		<-sigChan
		debug.DropMessage("SIGNAL", "Second interrupt, exiting")
		os.Exit(130)
	}()
}
