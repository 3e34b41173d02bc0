// ════════════════════════════════════════════════════════════════════════════════════════════════
// COOPERATIVE LOOP
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: Bare-Metal Style Secondary Loop
//
// Description:
//   Loop stands in for the platform's second-core loop function: a goroutine locked to an OS
//   thread, pinned to the secondary core, that invokes its hooks forever. The hooks never
//   block or yield; the loop itself decides how hard to spin.
//
// Adaptive Behavior:
//   - Hot: any hook did work within HotWindow, keep probing back to back
//   - Cool: after SpinBudget idle probes issue a CPU relax hint
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package lane

import (
	"runtime"
	"sync/atomic"
	"time"

	"dualmark/constants"
)

// Loop launches the cooperative loop on core. It runs hooks round-robin
// until *stop becomes non-zero, then closes done. A refused affinity request
// leaves the loop unpinned.
func Loop(core int, stop *uint32, done chan<- struct{}, hooks ...Hook) {
	go func() {
		// Never unlocked: the pinned thread exits with the goroutine.
		runtime.LockOSThread()
		_ = setAffinity(core)
		defer close(done)

		var miss int
		lastHit := time.Now()

		for {
			if atomic.LoadUint32(stop) != 0 {
				return
			}

			worked := false
			for _, hook := range hooks {
				if hook() {
					worked = true
				}
			}
			if worked {
				miss = 0
				lastHit = time.Now()
				continue
			}

			if time.Since(lastHit) <= constants.HotWindow {
				continue
			}

			if miss++; miss >= constants.SpinBudget {
				miss = 0
				cpuRelax()
			}
		}
	}()
}
