// Package report turns measured runs into the benchmark result: summary
// statistics, the console listing and the JSON archive form.
package report

import (
	"runtime"
	"time"

	"dualmark/platform"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Run is one measured StartParallel/StopParallel pair.
type Run struct {
	Index      int       `json:"index"`
	Ticks      uint32    `json:"ticks"`
	Iterations int       `json:"iterations"`
	IterPerSec float64   `json:"iter_per_sec"`
	Checksums  [2]uint32 `json:"checksums"`
	Agree      bool      `json:"agree"`
}

// Report is the result of one harness invocation.
type Report struct {
	Backend           string    `json:"backend"`
	Lanes             int       `json:"lanes"`
	Seed              uint64    `json:"seed"`
	IterationsPerLane int       `json:"iterations_per_lane"`
	Calibrated        bool      `json:"calibrated"`
	StartedAt         time.Time `json:"started_at"`
	GoVersion         string    `json:"go_version"`
	Platform          string    `json:"platform"`

	Runs []Run `json:"runs"`

	TotalTicks       uint32  `json:"total_ticks"`
	MeanIterPerSec   float64 `json:"mean_iter_per_sec"`
	StdDevIterPerSec float64 `json:"stddev_iter_per_sec"`
	MinIterPerSec    float64 `json:"min_iter_per_sec"`
	MaxIterPerSec    float64 `json:"max_iter_per_sec"`

	Validated     bool `json:"validated"`
	DurationValid bool `json:"duration_valid"`
}

// New returns an empty report stamped with the host toolchain.
func New(backend string, lanes int, seed uint64, iterationsPerLane int) *Report {
	return &Report{
		Backend:           backend,
		Lanes:             lanes,
		Seed:              seed,
		IterationsPerLane: iterationsPerLane,
		StartedAt:         time.Now().UTC(),
		GoVersion:         runtime.Version(),
		Platform:          runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Add records a run. Both lanes ran iterationsPerLane each.
func (r *Report) Add(ticks uint32, checksums [2]uint32) {
	run := Run{
		Index:      len(r.Runs),
		Ticks:      ticks,
		Iterations: r.IterationsPerLane * r.Lanes,
		Checksums:  checksums,
		Agree:      checksums[0] == checksums[1],
	}
	if secs := platform.Seconds(ticks); secs > 0 {
		run.IterPerSec = float64(run.Iterations) / secs
	}
	r.Runs = append(r.Runs, run)
}

// Summarize fills the aggregate fields. A run shorter than minDuration is
// reported but not marked DurationValid.
func (r *Report) Summarize(minDuration time.Duration) {
	r.TotalTicks = 0
	r.Validated = len(r.Runs) > 0
	rates := make([]float64, 0, len(r.Runs))

	for _, run := range r.Runs {
		r.TotalTicks += run.Ticks
		r.Validated = r.Validated && run.Agree
		rates = append(rates, run.IterPerSec)
	}

	r.MeanIterPerSec, r.StdDevIterPerSec, r.MinIterPerSec, r.MaxIterPerSec = 0, 0, 0, 0
	if len(rates) > 0 {
		r.MinIterPerSec = floats.Min(rates)
		r.MaxIterPerSec = floats.Max(rates)
		if len(rates) > 1 {
			r.MeanIterPerSec, r.StdDevIterPerSec = stat.MeanStdDev(rates, nil)
		} else {
			r.MeanIterPerSec = rates[0]
		}
	}

	r.DurationValid = len(r.Runs) > 0 && platform.Duration(r.TotalTicks) >= minDuration
}
