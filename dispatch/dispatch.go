package dispatch

import (
	"context"
	"fmt"

	"dualmark/slot"
)

// Dispatcher runs one job on the secondary lane while the caller runs the
// same entry point on the primary lane.
type Dispatcher[T any] interface {
	// StartParallel submits (entry, arg) to the secondary lane and arms it.
	// It never blocks and returns ErrSlotBusy if a job is outstanding.
	StartParallel(arg T) error

	// StopParallel runs entry(arg) on the calling goroutine, then blocks
	// until the secondary job completes, and empties the slot. On
	// ErrTimeout the slot stays occupied; calling StopParallel again runs
	// the primary half again and collects a late completion.
	StopParallel(ctx context.Context, arg T) error

	// Backend identifies the implementation.
	Backend() Backend

	// State reports the secondary job's lifecycle position.
	State() slot.State

	// Close stops the secondary runner. It is idempotent.
	Close() error
}

var (
	_ Dispatcher[int] = (*BusyWait[int])(nil)
	_ Dispatcher[int] = (*PollingTask[int])(nil)
	_ Dispatcher[int] = (*Rendezvous[int])(nil)
)

// New builds the dispatcher for backend around entry, the function both
// lanes execute.
func New[T any](backend Backend, entry func(T), opts ...Option) (Dispatcher[T], error) {
	switch backend {
	case BusyWaitBackend:
		return NewBusyWait(entry, opts...), nil
	case PollingTaskBackend:
		return NewPollingTask(entry, opts...), nil
	case RendezvousBackend:
		return NewRendezvous(entry, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// NewDefault builds the dispatcher for the build-time default backend.
func NewDefault[T any](entry func(T), opts ...Option) (Dispatcher[T], error) {
	return New(Default, entry, opts...)
}

func timeoutError(err error) error {
	return fmt.Errorf("%w: %w", ErrTimeout, err)
}
