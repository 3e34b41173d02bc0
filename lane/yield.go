package lane

import (
	"fmt"
	"runtime"
)

// Yield selects what a waiting lane does between failed probes.
type Yield string

const (
	// YieldSpin probes back to back.
	YieldSpin Yield = "spin"
	// YieldRelax issues a CPU spin-wait hint between probes.
	YieldRelax Yield = "relax"
	// YieldGosched hands the processor back to the scheduler.
	YieldGosched Yield = "gosched"
)

// ParseYield maps a config string onto a Yield mode.
func ParseYield(s string) (Yield, error) {
	switch y := Yield(s); y {
	case YieldSpin, YieldRelax, YieldGosched:
		return y, nil
	case "":
		return YieldRelax, nil
	default:
		return "", fmt.Errorf("lane: unknown yield mode %q", s)
	}
}

// Func returns the callback for the mode; YieldSpin returns nil.
func (y Yield) Func() func() {
	switch y {
	case YieldRelax:
		return Relax
	case YieldGosched:
		return runtime.Gosched
	default:
		return nil
	}
}

// Relax issues the platform's spin-wait hint, or nothing where none exists.
func Relax() {
	cpuRelax()
}
