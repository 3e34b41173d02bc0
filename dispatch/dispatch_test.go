// ============================================================================
// DISPATCHER CONFORMANCE SUITE
// ============================================================================
//
// Every test in this file runs once per backend. The backends differ only in
// how the secondary lane is hosted and how completion is waited for, so the
// observable start → concurrent execution → both done → return sequence must
// be identical across all three.

package dispatch

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"dualmark/slot"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST UTILITIES AND HELPERS
// ============================================================================

// probe is the accumulator handed to each lane.
type probe struct {
	calls   int
	lane    string
	want    uint64
	payload [16]uint64
	block   chan struct{}
}

// work is the entry point shared by both lanes.
func work(p *probe) {
	if p.block != nil {
		<-p.block
	}
	for i := range p.payload {
		p.payload[i] = p.want
	}
	p.calls++
}

type factory func(entry func(*probe), opts ...Option) Dispatcher[*probe]

func factories() map[Backend]factory {
	return map[Backend]factory{
		BusyWaitBackend: func(entry func(*probe), opts ...Option) Dispatcher[*probe] {
			return NewBusyWait(entry, opts...)
		},
		PollingTaskBackend: func(entry func(*probe), opts ...Option) Dispatcher[*probe] {
			return NewPollingTask(entry, opts...)
		},
		RendezvousBackend: func(entry func(*probe), opts ...Option) Dispatcher[*probe] {
			return NewRendezvous(entry, opts...)
		},
	}
}

// forEachBackend runs fn as a subtest per backend with a fresh dispatcher.
func forEachBackend(t *testing.T, fn func(t *testing.T, d Dispatcher[*probe])) {
	runtime.GOMAXPROCS(max(2, runtime.GOMAXPROCS(0)))
	for _, b := range Backends() {
		newD := factories()[b]
		t.Run(b.String(), func(t *testing.T) {
			d := newD(work, WithWaitTimeout(5*time.Second))
			t.Cleanup(func() { _ = d.Close() })
			require.Equal(t, b, d.Backend())
			fn(t, d)
		})
	}
}

func stopCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ============================================================================
// SCENARIOS
// ============================================================================

func TestIncrementCounterScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		counter, counter2 := &probe{}, &probe{}

		require.NoError(t, d.StartParallel(counter))
		require.NoError(t, d.StopParallel(stopCtx(t), counter2))

		require.Equal(t, 1, counter.calls)
		require.Equal(t, 1, counter2.calls)
		require.Equal(t, slot.Empty, d.State())
	})
}

func TestBusyScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		jobA, jobB, local := &probe{want: 1}, &probe{want: 2}, &probe{}

		require.NoError(t, d.StartParallel(jobA))
		require.ErrorIs(t, d.StartParallel(jobB), ErrSlotBusy)
		require.NoError(t, d.StopParallel(stopCtx(t), local))

		require.Equal(t, 1, jobA.calls, "pending job must remain jobA")
		require.Equal(t, uint64(1), jobA.payload[0])
		require.Zero(t, jobB.calls)
		require.Equal(t, 1, local.calls)
	})
}

// ============================================================================
// PROPERTIES
// ============================================================================

func TestNoLostJob(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		ctx := stopCtx(t)
		for i := 0; i < 200; i++ {
			secondary, primary := &probe{lane: "secondary"}, &probe{lane: "primary"}
			require.NoError(t, d.StartParallel(secondary))
			require.NoError(t, d.StopParallel(ctx, primary))
			require.Equal(t, 1, secondary.calls, "run %d", i)
			require.Equal(t, 1, primary.calls, "run %d", i)
		}
	})
}

func TestBarrierPublishesSecondaryWrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		ctx := stopCtx(t)
		secondary, primary := &probe{}, &probe{}
		for i := uint64(1); i <= 500; i++ {
			secondary.want, primary.want = i, i
			require.NoError(t, d.StartParallel(secondary))
			require.NoError(t, d.StopParallel(ctx, primary))
			for j, v := range secondary.payload {
				if v != i {
					t.Fatalf("run %d: payload[%d] = %d, stale write", i, j, v)
				}
			}
		}
		require.Equal(t, 500, secondary.calls)
	})
}

func TestEqualSplitNoLeakage(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		ctx := stopCtx(t)
		const runs = 50
		var totals [2]int
		for i := 0; i < runs; i++ {
			lanes := [2]*probe{{}, {}}
			require.NoError(t, d.StartParallel(lanes[1]))
			require.NoError(t, d.StopParallel(ctx, lanes[0]))
			require.Equal(t, slot.Empty, d.State(), "run %d left the slot occupied", i)
			totals[0] += lanes[0].calls
			totals[1] += lanes[1].calls
		}
		require.Equal(t, [2]int{runs, runs}, totals)
	})
}

// ============================================================================
// ERROR PATHS
// ============================================================================

func TestStopWithoutStart(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		local := &probe{}
		require.ErrorIs(t, d.StopParallel(stopCtx(t), local), ErrNotStarted)
		require.Zero(t, local.calls, "primary half must not run without a submitted job")
	})
}

func TestHangBecomesTimeout(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		stuck := &probe{block: make(chan struct{})}
		local := &probe{}

		require.NoError(t, d.StartParallel(stuck))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		err := d.StopParallel(ctx, local)
		require.ErrorIs(t, err, ErrTimeout)
		require.True(t, errors.Is(err, context.DeadlineExceeded))
		require.NotEqual(t, slot.Empty, d.State())
		require.ErrorIs(t, d.StartParallel(&probe{}), ErrSlotBusy, "a timed-out job must not be replaced")

		close(stuck.block)
		require.NoError(t, d.StopParallel(stopCtx(t), local), "late completion is collected")
		require.Equal(t, 1, stuck.calls)
		require.Equal(t, slot.Empty, d.State())
	})
}

func TestClose(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		require.NoError(t, d.Close())
		require.NoError(t, d.Close())
		require.ErrorIs(t, d.StartParallel(&probe{}), ErrClosed)
		require.ErrorIs(t, d.StopParallel(stopCtx(t), &probe{}), ErrClosed)
	})
}

func TestStopAfterCloseDoesNotWait(t *testing.T) {
	forEachBackend(t, func(t *testing.T, d Dispatcher[*probe]) {
		require.NoError(t, d.StartParallel(&probe{}))
		require.NoError(t, d.Close())

		start := time.Now()
		local := &probe{}
		require.ErrorIs(t, d.StopParallel(context.Background(), local), ErrClosed)
		require.Less(t, time.Since(start), time.Second)
		require.Zero(t, local.calls, "primary half must not run after Close")
	})
}

func TestNilEntry(t *testing.T) {
	runtime.GOMAXPROCS(max(2, runtime.GOMAXPROCS(0)))
	for _, b := range Backends() {
		newD := factories()[b]
		t.Run(b.String(), func(t *testing.T) {
			d := newD(nil, WithWaitTimeout(5*time.Second))
			t.Cleanup(func() { _ = d.Close() })

			for i := 0; i < 3; i++ {
				secondary, primary := &probe{}, &probe{}
				require.NoError(t, d.StartParallel(secondary))
				require.NotPanics(t, func() {
					require.NoError(t, d.StopParallel(stopCtx(t), primary))
				})
				require.Zero(t, secondary.calls)
				require.Zero(t, primary.calls)
				require.Equal(t, slot.Empty, d.State(), "run %d", i)
			}
		})
	}
}

// ============================================================================
// SELECTION
// ============================================================================

func TestNewSelectsBackend(t *testing.T) {
	for _, b := range Backends() {
		d, err := New(b, work)
		require.NoError(t, err)
		require.Equal(t, b, d.Backend())
		require.NoError(t, d.Close())
	}

	_, err := New(Backend(0), work)
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewDefault(t *testing.T) {
	d, err := NewDefault(work)
	require.NoError(t, err)
	defer d.Close()
	require.Equal(t, Default, d.Backend())
}

func TestParseBackend(t *testing.T) {
	for _, b := range Backends() {
		got, err := ParseBackend(b.String())
		require.NoError(t, err)
		require.Equal(t, b, got)
	}

	got, err := ParseBackend("")
	require.NoError(t, err)
	require.Equal(t, Default, got)

	got, err = ParseBackend(" Rendezvous ")
	require.NoError(t, err)
	require.Equal(t, RendezvousBackend, got)

	_, err = ParseBackend("threadpool")
	require.ErrorIs(t, err, ErrUnknownBackend)
	require.Equal(t, "backend(9)", Backend(9).String())
}
