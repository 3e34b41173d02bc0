package platform

import "time"

// TicksPerSec is the resolution of Clock ticks.
const TicksPerSec = 1000

// Clock is a monotonic millisecond source. Values wrap like a 32-bit
// hardware counter; differences stay correct across one wrap.
type Clock interface {
	Millis() uint32
}

// SystemClock counts milliseconds since it was created.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

func (c *SystemClock) Millis() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

// Timer brackets the measured portion of a run.
type Timer struct {
	clock       Clock
	start, stop uint32
}

// NewTimer returns a timer reading clock.
func NewTimer(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// Start captures the start tick.
func (t *Timer) Start() { t.start = t.clock.Millis() }

// Stop captures the stop tick.
func (t *Timer) Stop() { t.stop = t.clock.Millis() }

// Ticks returns the elapsed ticks between Start and Stop.
func (t *Timer) Ticks() uint32 { return t.stop - t.start }

// Seconds converts ticks to seconds.
func Seconds(ticks uint32) float64 {
	return float64(ticks) / TicksPerSec
}

// Duration converts ticks to a time.Duration.
func Duration(ticks uint32) time.Duration {
	return time.Duration(ticks) * time.Second / TicksPerSec
}
