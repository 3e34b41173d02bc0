// ════════════════════════════════════════════════════════════════════════════════════════════════
// 🧪 SHUTDOWN COORDINATION TESTS
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Lane Benchmark Dispatcher
// Component: Control Test Suite
//
// Covers the stop word under concurrent requests and Reset.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package control

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func fresh(t *testing.T) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)
}

func TestShutdownRaisesStopWord(t *testing.T) {
	fresh(t)
	require.False(t, Stopping())
	Shutdown()
	require.True(t, Stopping())
}

func TestShutdownConcurrent(t *testing.T) {
	fresh(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Shutdown()
		}()
	}
	wg.Wait()
	require.True(t, Stopping())
}

func TestReset(t *testing.T) {
	fresh(t)
	Shutdown()
	Reset()
	require.False(t, Stopping())
}
