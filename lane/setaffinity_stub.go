// setaffinity_stub.go - CPU affinity no-op for platforms without
// sched_setaffinity(2): macOS, Windows, BSDs, TinyGo and WASM.

//go:build !linux || tinygo

package lane

func setAffinity(cpu int) error {
	return nil
}
