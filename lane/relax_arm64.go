// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Relaxation - ARM64 Architecture
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: ARM64 Spin-Wait Hint
//
// Description:
//   Emits YIELD from the busy-wait paths so the spinning lane stays polite towards the
//   core running the primary half.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build arm64 && cgo && !noasm

package lane

/*
static inline void cpu_yield() {
    __asm__ __volatile__("yield" ::: "memory");
}
*/
import "C"

// cpuRelax emits the ARM64 YIELD instruction.
//
//go:norace
//go:nocheckptr
func cpuRelax() {
	C.cpu_yield()
}
