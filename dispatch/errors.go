package dispatch

import "errors"

var (
	// ErrSlotBusy is returned by StartParallel while a previous job has not
	// been consumed by StopParallel. The in-flight job is unchanged.
	ErrSlotBusy = errors.New("dispatch: slot busy")

	// ErrNotStarted is returned by StopParallel when no job was submitted.
	ErrNotStarted = errors.New("dispatch: stop without start")

	// ErrTimeout wraps the context error when the secondary lane did not
	// report completion in time.
	ErrTimeout = errors.New("dispatch: secondary lane timed out")

	// ErrClosed is returned by StartParallel and StopParallel after Close.
	ErrClosed = errors.New("dispatch: dispatcher closed")

	// ErrUnknownBackend is returned by New and ParseBackend.
	ErrUnknownBackend = errors.New("dispatch: unknown backend")
)
