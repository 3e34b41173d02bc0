// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ SECONDARY-LANE HANDOFF
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: Go/Done/Job Triple Shared By The Flag Backends
//
// Description:
//   Handoff is the state the busy-wait and polling backends share across lanes: the job slot,
//   the "armed" (go) flag raised by the primary lane and the "done" flag raised by the
//   secondary lane. Step is the single state transition both runners perform; they differ only
//   in what drives Step (an external cooperative loop or a persistent yielding task).
//
// Field ownership:
//   - Primary lane writes: Slot (Submit/Clear), Armed (Signal), Done (Clear/Wait)
//   - Secondary lane writes: Slot (Take/Finish), Armed (Clear), Done (Signal)
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package lane

import (
	"dualmark/signal"
	"dualmark/slot"
)

// Handoff couples a job slot with its go/done flags.
type Handoff[T any] struct {
	Slot  slot.Slot[T]
	Armed signal.Flag
	Done  signal.Flag
}

// Step performs at most one secondary-lane cycle. When the lane is armed and
// the previous completion has been consumed, it takes the pending job, runs
// it (a nil entry is skipped), marks it Done, disarms and raises Done last so
// every write the job made is published with the signal. It reports whether
// a cycle ran.
func (h *Handoff[T]) Step() bool {
	if !h.Armed.TryObserve() || h.Done.TryObserve() {
		return false
	}

	if job, ok := h.Slot.Take(); ok {
		if job.Entry != nil {
			job.Entry(job.Arg)
		}
		h.Slot.Finish()
	}

	h.Armed.Clear()
	h.Done.Signal()
	return true
}

// Hook is a recurring callback driven by a cooperative loop. It reports
// whether it did any work on this tick.
type Hook func() bool
