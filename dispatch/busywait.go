package dispatch

import (
	"dualmark/lane"
)

// BusyWait is the scheduler-less backend. The secondary lane is a hook
// re-invoked by a cooperative loop on the secondary core, and the primary
// lane busy-polls the done flag.
type BusyWait[T any] struct {
	flagCore[T]
}

// NewBusyWait starts a cooperative loop driving the hook, unless
// WithExternalLoop is given.
func NewBusyWait[T any](entry func(T), opts ...Option) *BusyWait[T] {
	o := buildOptions(lane.YieldRelax, opts)

	d := &BusyWait[T]{}
	d.init(BusyWaitBackend, entry, o)

	if o.externalLoop {
		close(d.runnerDone)
		return d
	}

	lane.Loop(o.core, o.stop, d.runnerDone, d.h.Step)
	o.logger.Debug("cooperative loop started", "core", o.core)
	return d
}

// Hook returns the secondary-lane callback for an externally driven loop.
// Each call performs at most one Step and never blocks.
func (d *BusyWait[T]) Hook() lane.Hook {
	return d.h.Step
}
