// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Relaxation - AMD64 Architecture
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: x86-64 Spin-Wait Hint
//
// Description:
//   Emits PAUSE from the busy-wait paths (cooperative loop idle ticks, completion spin) so a
//   spinning lane does not starve its SMT sibling or flood the memory pipeline with
//   speculative loads of the flag it is watching.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build amd64 && cgo && !noasm

package lane

/*
static inline void cpu_pause() {
    __asm__ __volatile__("pause" ::: "memory");
}
*/
import "C"

// cpuRelax emits the x86-64 PAUSE instruction.
//
//go:norace
//go:nocheckptr
func cpuRelax() {
	C.cpu_pause()
}
