// setaffinity_linux.go - Linux CPU affinity via sched_setaffinity(2)

//go:build linux && !tinygo

package lane

import "golang.org/x/sys/unix"

// setAffinity pins the calling OS thread to one CPU. Out-of-range cores and
// kernel refusals (cgroup cpusets, single-core hosts) leave the thread
// unpinned; the lane still runs, just without the placement guarantee.
func setAffinity(cpu int) error {
	var set unix.CPUSet
	if cpu < 0 || cpu >= len(set)*64 {
		return nil
	}
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
