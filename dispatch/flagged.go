package dispatch

import (
	"context"
	"sync/atomic"
	"time"

	"dualmark/lane"
	"dualmark/slot"
)

// flagCore is the go/done/job protocol shared by the busy-wait and polling
// backends. Only the secondary runner differs between them.
type flagCore[T any] struct {
	backend    Backend
	entry      func(T)
	h          lane.Handoff[T]
	opts       options
	runnerDone chan struct{}
	closed     uint32
}

func (c *flagCore[T]) init(backend Backend, entry func(T), opts options) {
	c.backend = backend
	c.entry = entry
	c.opts = opts
	c.runnerDone = make(chan struct{})
	c.h.Done.Yield = opts.yield.Func()
}

func (c *flagCore[T]) StartParallel(arg T) error {
	if atomic.LoadUint32(&c.closed) != 0 {
		return ErrClosed
	}
	// Job before go: Submit publishes the job with its Pending store and
	// the runner only looks at the slot after observing Armed.
	if !c.h.Slot.Submit(c.entry, arg) {
		return ErrSlotBusy
	}
	c.h.Done.Clear()
	c.h.Armed.Signal()
	return nil
}

func (c *flagCore[T]) StopParallel(ctx context.Context, arg T) error {
	if atomic.LoadUint32(&c.closed) != 0 {
		return ErrClosed
	}
	if c.h.Slot.State() == slot.Empty {
		return ErrNotStarted
	}

	if c.entry != nil {
		c.entry(arg)
	}

	ctx, cancel := c.opts.bound(ctx)
	defer cancel()
	if err := c.h.Done.Wait(ctx); err != nil {
		c.opts.logger.Warn("secondary lane did not finish",
			"backend", c.backend, "state", c.h.Slot.State(), "err", err)
		return timeoutError(err)
	}

	c.h.Slot.Clear()
	return nil
}

func (c *flagCore[T]) Backend() Backend {
	return c.backend
}

func (c *flagCore[T]) State() slot.State {
	return c.h.Slot.State()
}

func (c *flagCore[T]) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closed, 0, 1) {
		return nil
	}
	atomic.StoreUint32(c.opts.stop, 1)

	select {
	case <-c.runnerDone:
		c.opts.logger.Debug("secondary lane stopped", "backend", c.backend)
		return nil
	case <-time.After(c.opts.closeGrace):
		c.opts.logger.Warn("secondary lane still busy at close", "backend", c.backend)
		return timeoutError(context.DeadlineExceeded)
	}
}
