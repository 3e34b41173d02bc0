// ============================================================================
// SINGLE-WRITER COMPLETION FLAG
// ============================================================================
//
// Flag is the cross-lane "go"/"done" word used by the busy-wait and polling
// backends. One lane sets it, the other observes and clears it.
//
// Memory model:
//   - Signal is an atomic store; Wait/TryObserve are atomic loads or CAS
//   - sync/atomic operations are sequentially consistent, so every write the
//     signalling lane made before Signal is visible once Wait returns
//   - The word sits on its own cache line so the two lanes do not false-share
//     with neighbouring dispatcher fields
//
// Wait strategy:
//   - Spin on the word, calling Yield after every failed probe
//   - Check the context once per SpinBudget probes so a hung peer surfaces
//     as ctx.Err() instead of an indefinite stall

package signal

import (
	"context"
	"sync/atomic"

	"dualmark/constants"

	"golang.org/x/sys/cpu"
)

// SpinBudget is the number of failed probes between context checks in Wait.
const SpinBudget = constants.SpinBudget

// Flag is a boolean completion signal. The zero value is clear and ready for
// use; a nil Yield spins without hints.
type Flag struct {
	_     cpu.CacheLinePad
	state uint32
	_     cpu.CacheLinePad

	// Yield is called between failed probes while waiting.
	Yield func()
}

// Signal marks the flag as set. Setting an already set flag is a no-op.
func (f *Flag) Signal() {
	atomic.StoreUint32(&f.state, 1)
}

// Clear resets the flag without waiting.
func (f *Flag) Clear() {
	atomic.StoreUint32(&f.state, 0)
}

// TryObserve reports whether the flag is set without consuming it.
func (f *Flag) TryObserve() bool {
	return atomic.LoadUint32(&f.state) == 1
}

// Wait blocks until the flag is set, then clears it. It returns ctx.Err() if
// the context ends first; the flag is left untouched in that case.
func (f *Flag) Wait(ctx context.Context) error {
	miss := 0
	for {
		if atomic.CompareAndSwapUint32(&f.state, 1, 0) {
			return nil
		}
		if miss++; miss >= SpinBudget {
			miss = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if f.Yield != nil {
			f.Yield()
		}
	}
}
