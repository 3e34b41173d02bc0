package report

import (
	"bufio"
	"fmt"
	"io"

	"dualmark/platform"
)

// Print writes the console listing.
func (r *Report) Print(w io.Writer) error {
	b := bufio.NewWriter(w)

	fmt.Fprintf(b, "dualmark run parameters\n")
	fmt.Fprintf(b, "Backend          : %s\n", r.Backend)
	fmt.Fprintf(b, "Lanes            : %d\n", r.Lanes)
	fmt.Fprintf(b, "Seed             : 0x%x\n", r.Seed)
	fmt.Fprintf(b, "Iterations/lane  : %d\n", r.IterationsPerLane)
	if r.Calibrated {
		fmt.Fprintf(b, "Iterations source: calibrated\n")
	}
	fmt.Fprintf(b, "Runs             : %d\n", len(r.Runs))
	fmt.Fprintf(b, "Total ticks      : %d\n", r.TotalTicks)
	fmt.Fprintf(b, "Total time (secs): %.3f\n", platform.Seconds(r.TotalTicks))
	fmt.Fprintf(b, "Iterations/Sec   : %.2f\n", r.MeanIterPerSec)
	if len(r.Runs) > 1 {
		fmt.Fprintf(b, "Iter/Sec stddev  : %.2f\n", r.StdDevIterPerSec)
		fmt.Fprintf(b, "Iter/Sec min/max : %.2f / %.2f\n", r.MinIterPerSec, r.MaxIterPerSec)
	}
	fmt.Fprintf(b, "Go version       : %s\n", r.GoVersion)
	fmt.Fprintf(b, "Platform         : %s\n", r.Platform)

	if n := len(r.Runs); n > 0 {
		last := r.Runs[n-1]
		for lane, crc := range last.Checksums {
			fmt.Fprintf(b, "[%d]checksum      : 0x%08x\n", lane, crc)
		}
	}

	if r.Validated {
		fmt.Fprintf(b, "Correct operation validated.\n")
	} else {
		fmt.Fprintf(b, "ERROR! Lane checksums differ, results are not valid.\n")
	}
	if !r.DurationValid {
		fmt.Fprintf(b, "ERROR! Must execute for at least the minimum duration for a valid result!\n")
	}
	if r.Validated && r.DurationValid {
		fmt.Fprintf(b, "dualmark 1.0 : %.2f / %s / %s / %d:lanes\n",
			r.MeanIterPerSec, r.GoVersion, r.Backend, r.Lanes)
	}

	return b.Flush()
}
