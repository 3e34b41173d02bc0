// control.go: process-wide shutdown request for the benchmark harness
// ============================================================================
// SHUTDOWN COORDINATION
// ============================================================================
//
// The signal handler raises the stop word once; the harness polls it between
// measured runs. A run already in flight is never interrupted: both lanes
// finish it and it is reported, then no further run starts.
//
// Threading model:
//   • Signal handler goroutine calls Shutdown
//   • The harness calls Stopping before each run

package control

import "sync/atomic"

var stop uint32

// Shutdown requests a stop after the current run. Repeated calls are no-ops.
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// Stopping reports whether Shutdown has been called.
func Stopping() bool {
	return atomic.LoadUint32(&stop) == 1
}

// Reset clears a previous shutdown request.
func Reset() {
	atomic.StoreUint32(&stop, 0)
}
