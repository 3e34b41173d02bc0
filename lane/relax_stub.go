// relax_stub.go — no-op cpuRelax for targets without a spin hint
//
// Covers RISC-V, WASM, TinyGo, CGO-less builds and the noasm tag. Busy-wait
// loops still work; they just spin without telling the core.
//
//go:build (!amd64 && !arm64) || !cgo || noasm

package lane

//go:nosplit
func cpuRelax() {}
