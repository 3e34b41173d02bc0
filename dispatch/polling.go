package dispatch

import (
	"dualmark/lane"
)

// PollingTask is the preemptive-scheduler backend with a persistent,
// pinned secondary task that yields between checks.
type PollingTask[T any] struct {
	flagCore[T]
}

// NewPollingTask creates the secondary task once; it lives until Close.
func NewPollingTask[T any](entry func(T), opts ...Option) *PollingTask[T] {
	o := buildOptions(lane.YieldGosched, opts)

	d := &PollingTask[T]{}
	d.init(PollingTaskBackend, entry, o)

	lane.PollingTask(o.core, o.stop, d.runnerDone, d.h.Step, lane.PollOptions{
		Interval: o.pollInterval,
	})
	o.logger.Debug("polling task started", "core", o.core, "interval", o.pollInterval)
	return d
}
