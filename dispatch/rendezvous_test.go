package dispatch

import (
	"context"
	"testing"
	"time"

	"dualmark/slot"

	"github.com/stretchr/testify/require"
)

// TestRendezvousHoldsSecondaryUntilPrimaryRegisters checks the start gate:
// the transient task must not run before StopParallel registers the
// primary lane.
func TestRendezvousHoldsSecondaryUntilPrimaryRegisters(t *testing.T) {
	d := NewRendezvous(work)
	defer d.Close()

	secondary := &probe{}
	require.NoError(t, d.StartParallel(secondary))
	require.Equal(t, 1, d.gate.Registered())

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, slot.Pending, d.State(), "secondary started before the gate opened")

	require.NoError(t, d.StopParallel(context.Background(), &probe{}))
	require.Equal(t, 0, d.gate.Registered(), "registry resets after release")
	require.Equal(t, 0, d.done.Count())
	require.Equal(t, 1, secondary.calls)
}

func TestRendezvousCloseReleasesParkedTask(t *testing.T) {
	d := NewRendezvous(work)
	require.NoError(t, d.StartParallel(&probe{}))
	require.NoError(t, d.Close())

	time.Sleep(10 * time.Millisecond)
	require.Equal(t, slot.Pending, d.State(), "a cancelled task never takes the job")
	require.Equal(t, 0, d.done.Count())
}

func TestRendezvousManyBatches(t *testing.T) {
	d := NewRendezvous(work)
	defer d.Close()

	for i := 0; i < 100; i++ {
		require.NoError(t, d.StartParallel(&probe{}))
		require.NoError(t, d.StopParallel(context.Background(), &probe{}))
		require.Equal(t, 0, d.gate.Registered(), "batch %d", i)
	}
}
