package signal

import (
	"context"
	"sync/atomic"
)

// Gate is the rendezvous start gate. Lanes Register as they are set up; the
// registration that completes a batch of Expected lanes opens the gate with
// one pass per lane and resets the count, so the gate opens exactly once per
// batch. Registration is expected to be serialized by the caller.
type Gate struct {
	expected   int32
	registered int32
	passes     *Counter
}

// NewGate returns a closed gate for a batch of expected lanes.
func NewGate(expected int) *Gate {
	if expected <= 0 {
		panic("signal: gate needs at least one lane")
	}
	return &Gate{expected: int32(expected), passes: NewCounter(expected)}
}

// Register records one lane. It reports true when this registration
// completed the batch and opened the gate.
func (g *Gate) Register() bool {
	if atomic.AddInt32(&g.registered, 1) < g.expected {
		return false
	}
	atomic.StoreInt32(&g.registered, 0)
	g.passes.Give(int(g.expected))
	return true
}

// Pass blocks until the gate is open for the calling lane.
func (g *Gate) Pass(ctx context.Context) error {
	return g.passes.Wait(ctx)
}

// Registered returns the registrations in the current, unreleased batch.
func (g *Gate) Registered() int {
	return int(atomic.LoadInt32(&g.registered))
}

// Expected returns the batch size.
func (g *Gate) Expected() int {
	return int(g.expected)
}
