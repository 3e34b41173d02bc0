// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⏱️ BENCHMARK HARNESS
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: Run Driver
//
// Description:
//   Splits the requested iterations evenly over the two lanes, gives both lanes the same seed,
//   and times each StartParallel/StopParallel pair with the platform millisecond clock. Lane
//   checksums must agree for a run to count as correct. A zero iteration count calibrates
//   first: the per-lane count grows tenfold until one run passes the calibration floor, then
//   scales so the measured run reaches the minimum valid duration.
//
// Lane assignment:
//   - results[1] is submitted to the secondary lane via StartParallel
//   - results[0] runs on the caller inside StopParallel
// ════════════════════════════════════════════════════════════════════════════════════════════════

package harness

import (
	"context"
	"fmt"
	"math"
	"time"

	"dualmark/constants"
	"dualmark/debug"
	"dualmark/dispatch"
	"dualmark/platform"
	"dualmark/report"
	"dualmark/workload"
)

// Options configures a Runner. Zero fields take the defaults noted.
type Options struct {
	// Iterations is the total across both lanes; zero calibrates.
	Iterations int
	// Runs is the number of measured pairs (default 1).
	Runs int
	Seed uint64
	// MinDuration is the shortest total run reported valid.
	MinDuration time.Duration
	// CalibrationFloor is the time a calibration probe must reach
	// (default constants.CalibrationFloor).
	CalibrationFloor time.Duration
	// Clock defaults to the system millisecond clock.
	Clock platform.Clock
	// Stopping aborts between runs when it reports true.
	Stopping func() bool
}

// Runner drives one dispatcher through a benchmark.
type Runner struct {
	d       dispatch.Dispatcher[*workload.Results]
	opts    Options
	timer   *platform.Timer
	results [constants.Lanes]workload.Results
}

// New returns a Runner over d, whose entry must be workload.Iterate.
func New(d dispatch.Dispatcher[*workload.Results], opts Options) (*Runner, error) {
	if opts.Runs == 0 {
		opts.Runs = constants.DefaultRuns
	}
	if opts.Runs < 0 {
		return nil, fmt.Errorf("%w: runs %d", platform.ErrConfiguration, opts.Runs)
	}
	if opts.CalibrationFloor <= 0 {
		opts.CalibrationFloor = constants.CalibrationFloor
	}
	if opts.Clock == nil {
		opts.Clock = platform.NewSystemClock()
	}
	if opts.Stopping == nil {
		opts.Stopping = func() bool { return false }
	}
	if opts.Iterations != 0 {
		if _, err := Split(opts.Iterations); err != nil {
			return nil, err
		}
	}
	return &Runner{d: d, opts: opts, timer: platform.NewTimer(opts.Clock)}, nil
}

// Split divides total iterations between the lanes.
func Split(total int) (int, error) {
	if total <= 0 || total%constants.Lanes != 0 {
		return 0, fmt.Errorf("%w: %d iterations cannot be split evenly across %d lanes",
			platform.ErrConfiguration, total, constants.Lanes)
	}
	return total / constants.Lanes, nil
}

// Measure times one parallel pair of perLane iterations per lane.
func (r *Runner) Measure(ctx context.Context, perLane int) (uint32, [constants.Lanes]uint32, error) {
	var sums [constants.Lanes]uint32
	for i := range r.results {
		r.results[i].Reset(i, r.opts.Seed, perLane)
	}

	r.timer.Start()
	if err := r.d.StartParallel(&r.results[1]); err != nil {
		return 0, sums, fmt.Errorf("harness: start: %w", err)
	}
	if err := r.d.StopParallel(ctx, &r.results[0]); err != nil {
		return 0, sums, fmt.Errorf("harness: stop: %w", err)
	}
	r.timer.Stop()

	for i := range r.results {
		sums[i] = r.results[i].Checksum
	}
	return r.timer.Ticks(), sums, nil
}

// Calibrate finds a per-lane count that runs for at least MinDuration.
func (r *Runner) Calibrate(ctx context.Context) (int, error) {
	perLane := 1
	var ticks uint32
	for {
		var err error
		if ticks, _, err = r.Measure(ctx, perLane); err != nil {
			return 0, err
		}
		if platform.Duration(ticks) >= r.opts.CalibrationFloor {
			break
		}
		if r.opts.Stopping() {
			return 0, context.Canceled
		}
		if perLane > math.MaxInt/10 {
			return 0, fmt.Errorf("%w: calibration overflow at %d iterations per lane",
				platform.ErrConfiguration, perLane)
		}
		perLane *= 10
	}

	elapsed := platform.Duration(ticks)
	scale := 1 + int(float64(r.opts.MinDuration)/float64(elapsed))
	if perLane > math.MaxInt/scale {
		return 0, fmt.Errorf("%w: calibration overflow at %d iterations per lane",
			platform.ErrConfiguration, perLane)
	}
	perLane *= scale

	debug.DropMessage("CALIBRATE", "iterations selected",
		"per_lane", perLane, "probe_ms", ticks, "scale", scale)
	return perLane, nil
}

// Run calibrates if needed, measures every run and returns the summarised
// report. A run interrupted by Stopping or ctx returns the partial report
// with the error.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	perLane := 0
	calibrated := r.opts.Iterations == 0
	if calibrated {
		n, err := r.Calibrate(ctx)
		if err != nil {
			return nil, fmt.Errorf("harness: calibrate: %w", err)
		}
		perLane = n
	} else {
		perLane, _ = Split(r.opts.Iterations)
	}

	rep := report.New(r.d.Backend().String(), constants.Lanes, r.opts.Seed, perLane)
	rep.Calibrated = calibrated

	for i := 0; i < r.opts.Runs; i++ {
		if r.opts.Stopping() {
			rep.Summarize(r.opts.MinDuration)
			return rep, fmt.Errorf("harness: stopped after %d of %d runs: %w", i, r.opts.Runs, context.Canceled)
		}
		ticks, sums, err := r.Measure(ctx, perLane)
		if err != nil {
			rep.Summarize(r.opts.MinDuration)
			return rep, fmt.Errorf("harness: run %d: %w", i, err)
		}
		rep.Add(ticks, sums)
		if sums[0] != sums[1] {
			debug.DropMessage("RUN", "lane checksums differ",
				"run", i, "primary", sums[0], "secondary", sums[1])
		}
	}

	rep.Summarize(r.opts.MinDuration)
	return rep, nil
}
