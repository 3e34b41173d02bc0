package lane

import (
	"context"
	"runtime"

	"dualmark/signal"
	"dualmark/slot"
)

// Spawn starts a transient secondary task on core. The task blocks on the
// start gate, runs the slot's pending job once (skipping a nil entry),
// signals done and exits. If ctx ends before the gate opens the task exits
// without touching the slot or the done signal.
func Spawn[T any](ctx context.Context, core int, gate *signal.Gate, s *slot.Slot[T], done signal.Signal) {
	go func() {
		// Exiting while locked retires the thread along with its affinity.
		runtime.LockOSThread()
		_ = setAffinity(core)

		if err := gate.Pass(ctx); err != nil {
			return
		}

		if job, ok := s.Take(); ok {
			if job.Entry != nil {
				job.Entry(job.Arg)
			}
			s.Finish()
		}
		done.Signal()
	}()
}
