// Package signal holds the cross-lane synchronization primitives the
// dispatcher backends are built from: a single-writer completion Flag, a
// bounded counting semaphore and the rendezvous start Gate.
package signal

import "context"

// Signal is the completion contract shared by Flag and Counter.
type Signal interface {
	// Signal marks one completion.
	Signal()
	// Wait blocks until a completion is observed and consumes it.
	Wait(ctx context.Context) error
	// TryObserve polls without blocking.
	TryObserve() bool
}

var (
	_ Signal = (*Flag)(nil)
	_ Signal = (*Counter)(nil)
)
