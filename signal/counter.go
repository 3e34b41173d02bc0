package signal

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Counter is a counting semaphore bounded to [0, max] that starts empty,
// the shape of a FreeRTOS counting semaphore created with an initial count
// of zero. Give adds counts, Wait takes one.
type Counter struct {
	max   int64
	avail int64 // counts given and not yet taken
	sem   *semaphore.Weighted
}

// NewCounter returns an empty counter that holds at most max counts.
func NewCounter(max int) *Counter {
	if max <= 0 {
		panic("signal: counter max must be > 0")
	}
	c := &Counter{max: int64(max), sem: semaphore.NewWeighted(int64(max))}
	// Hold every unit so the counter starts at zero.
	if !c.sem.TryAcquire(c.max) {
		panic("signal: fresh semaphore not acquirable")
	}
	return c
}

// Give adds n counts and wakes up to n waiters. It reports false, adding
// nothing, if the result would exceed the counter's capacity.
func (c *Counter) Give(n int) bool {
	if n <= 0 {
		return true
	}
	if atomic.AddInt64(&c.avail, int64(n)) > c.max {
		atomic.AddInt64(&c.avail, -int64(n))
		return false
	}
	c.sem.Release(int64(n))
	return true
}

// Signal gives a single count.
func (c *Counter) Signal() {
	c.Give(1)
}

// Wait takes one count, blocking until one is available or ctx ends.
func (c *Counter) Wait(ctx context.Context) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	atomic.AddInt64(&c.avail, -1)
	return nil
}

// TryObserve takes one count if available. Unlike Flag it consumes.
func (c *Counter) TryObserve() bool {
	if !c.sem.TryAcquire(1) {
		return false
	}
	atomic.AddInt64(&c.avail, -1)
	return true
}

// Count returns the number of counts given and not yet taken.
func (c *Counter) Count() int {
	return int(atomic.LoadInt64(&c.avail))
}
