package dispatch

import (
	"context"
	"sync/atomic"

	"dualmark/constants"
	"dualmark/lane"
	"dualmark/signal"
	"dualmark/slot"
)

// Rendezvous is the counting-semaphore backend. Each run spawns a transient
// secondary task that blocks on a start gate; the gate opens once both
// lanes have registered, so the halves start together. Completion is a
// counting semaphore given by the task.
type Rendezvous[T any] struct {
	entry func(T)
	slot  slot.Slot[T]
	gate  *signal.Gate
	done  *signal.Counter
	opts  options

	// primaryDue is set between StartParallel and the primary lane's
	// registration in StopParallel. Primary-lane only.
	primaryDue bool

	// ctx bounds transient tasks still waiting on the gate; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	closed uint32
}

// NewRendezvous creates the gate and done counter once; tasks are spawned
// per run.
func NewRendezvous[T any](entry func(T), opts ...Option) *Rendezvous[T] {
	o := buildOptions(lane.YieldGosched, opts)
	ctx, cancel := context.WithCancel(context.Background())
	return &Rendezvous[T]{
		entry:  entry,
		gate:   signal.NewGate(constants.Lanes),
		done:   signal.NewCounter(constants.Lanes),
		opts:   o,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (d *Rendezvous[T]) StartParallel(arg T) error {
	if atomic.LoadUint32(&d.closed) != 0 {
		return ErrClosed
	}
	if !d.slot.Submit(d.entry, arg) {
		return ErrSlotBusy
	}
	lane.Spawn(d.ctx, d.opts.core, d.gate, &d.slot, d.done)
	d.gate.Register()
	d.primaryDue = true
	return nil
}

func (d *Rendezvous[T]) StopParallel(ctx context.Context, arg T) error {
	if atomic.LoadUint32(&d.closed) != 0 {
		return ErrClosed
	}
	if d.slot.State() == slot.Empty {
		return ErrNotStarted
	}

	if d.primaryDue {
		d.primaryDue = false
		if d.gate.Register() {
			// This registration opened the gate, so a pass is already
			// available and cannot block.
			_ = d.gate.Pass(context.Background())
		} else {
			d.opts.logger.Warn("start gate not released by primary registration",
				"registered", d.gate.Registered(), "expected", d.gate.Expected())
		}
	}

	if d.entry != nil {
		d.entry(arg)
	}

	ctx, cancel := d.opts.bound(ctx)
	defer cancel()
	if err := d.done.Wait(ctx); err != nil {
		d.opts.logger.Warn("secondary lane did not finish",
			"backend", RendezvousBackend, "state", d.slot.State(), "err", err)
		return timeoutError(err)
	}

	d.slot.Clear()
	return nil
}

func (d *Rendezvous[T]) Backend() Backend {
	return RendezvousBackend
}

func (d *Rendezvous[T]) State() slot.State {
	return d.slot.State()
}

// Close releases transient tasks still parked on the gate. Tasks already
// past the gate run to completion.
func (d *Rendezvous[T]) Close() error {
	if !atomic.CompareAndSwapUint32(&d.closed, 0, 1) {
		return nil
	}
	d.cancel()
	return nil
}
