package platform

import (
	"strconv"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now uint32 }

func (c *fakeClock) Millis() uint32 { return c.now }

func hostPointerBits() int { return int(unsafe.Sizeof(uintptr(0))) * 8 }

func TestCheckHost(t *testing.T) {
	require.NoError(t, Check(Target{}))
	require.NoError(t, Check(Target{PointerBits: hostPointerBits(), IntBits: strconv.IntSize}))
}

func TestCheckMismatch(t *testing.T) {
	err := Check(Target{PointerBits: 16, IntBits: 8})
	require.ErrorIs(t, err, ErrConfiguration)
	require.Contains(t, err.Error(), "pointer width 16")
	require.Contains(t, err.Error(), "int width 8")
}

func TestInitLenientAndStrict(t *testing.T) {
	var p Portable
	require.NoError(t, Init(&p, Target{PointerBits: 16}, false))
	require.Equal(t, uint8(1), p.ID)
	Fini(&p)
	require.Zero(t, p.ID)

	err := Init(&p, Target{PointerBits: 16}, true)
	require.ErrorIs(t, err, ErrConfiguration)
	require.Zero(t, p.ID)
}

func TestTimerWraps(t *testing.T) {
	c := &fakeClock{now: ^uint32(0) - 4}
	tm := NewTimer(c)
	tm.Start()
	c.now += 1505
	tm.Stop()

	require.Equal(t, uint32(1505), tm.Ticks())
	require.InDelta(t, 1.505, Seconds(tm.Ticks()), 1e-9)
	require.Equal(t, 1505*time.Millisecond, Duration(tm.Ticks()))
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Millis()
	time.Sleep(5 * time.Millisecond)
	require.GreaterOrEqual(t, c.Millis()-a, uint32(4))
}
