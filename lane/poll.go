// ════════════════════════════════════════════════════════════════════════════════════════════════
// POLLING TASK
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: Persistent Secondary Task Under A Preemptive Scheduler
//
// Description:
//   PollingTask is the scheduler-hosted twin of Loop. The task is created once, pinned to the
//   secondary core and checks its step every slice, yielding the processor between checks so
//   the scheduler and its liveness monitoring are never starved.
//
// Pacing:
//   - Within HotWindow of the last executed job the task only yields
//   - Past it, a non-zero Interval paces idle checks through a token bucket
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package lane

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"dualmark/constants"

	"golang.org/x/time/rate"
)

// PollOptions tunes a PollingTask.
type PollOptions struct {
	// Yield runs between idle checks. Nil means runtime.Gosched.
	Yield func()
	// Interval paces idle checks once the task has cooled down. Zero
	// disables pacing.
	Interval time.Duration
}

// PollingTask launches the persistent task on core. It calls step every
// slice until *stop becomes non-zero, then closes done.
func PollingTask(core int, stop *uint32, done chan<- struct{}, step Hook, opts PollOptions) {
	yield := opts.Yield
	if yield == nil {
		yield = runtime.Gosched
	}

	var limiter *rate.Limiter
	if opts.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Interval), 1)
	}

	go func() {
		// Never unlocked: the pinned thread exits with the goroutine.
		runtime.LockOSThread()
		_ = setAffinity(core)
		defer close(done)

		lastHit := time.Now()

		for {
			if atomic.LoadUint32(stop) != 0 {
				return
			}

			if step() {
				lastHit = time.Now()
				continue
			}

			yield()

			if limiter != nil && time.Since(lastHit) > constants.HotWindow {
				// Waits at most one Interval; stop is rechecked right after.
				_ = limiter.Wait(context.Background())
			}
		}
	}()
}
