// Package platform holds the target-specific hooks the harness is ported
// through: start-up checks, a millisecond clock and the run timer.
package platform

import (
	"errors"
	"fmt"
	"strconv"
	"unsafe"

	"dualmark/debug"
)

// ErrConfiguration reports a violated platform size assumption.
var ErrConfiguration = errors.New("platform: configuration error")

// Portable is the per-run platform state.
type Portable struct {
	ID uint8
}

// Target describes the integer widths a results archive was produced for.
// Zero fields take the host's widths.
type Target struct {
	PointerBits int
	IntBits     int
}

// Check verifies the width assumptions the accumulators rely on: a
// pointer-sized integer must hold a pointer, the 32-bit checksum type must
// be 4 bytes, and the host must match any declared target widths.
func Check(target Target) error {
	var errs []error

	if unsafe.Sizeof(uintptr(0)) != unsafe.Sizeof(unsafe.Pointer(nil)) {
		errs = append(errs, fmt.Errorf("%w: uintptr cannot hold a pointer", ErrConfiguration))
	}
	if unsafe.Sizeof(uint32(0)) != 4 {
		errs = append(errs, fmt.Errorf("%w: uint32 is not 32 bits", ErrConfiguration))
	}

	hostPtr := int(unsafe.Sizeof(uintptr(0))) * 8
	if target.PointerBits != 0 && target.PointerBits != hostPtr {
		errs = append(errs, fmt.Errorf("%w: target pointer width %d, host %d",
			ErrConfiguration, target.PointerBits, hostPtr))
	}
	if target.IntBits != 0 && target.IntBits != strconv.IntSize {
		errs = append(errs, fmt.Errorf("%w: target int width %d, host %d",
			ErrConfiguration, target.IntBits, strconv.IntSize))
	}

	return errors.Join(errs...)
}

// Init runs the start-up checks and marks p initialised. Width mismatches
// are logged and, unless strict, the run proceeds: the benchmark still
// measures the host, only cross-target comparisons become meaningless.
func Init(p *Portable, target Target, strict bool) error {
	if err := Check(target); err != nil {
		debug.DropError("PLATFORM", err)
		if strict {
			return err
		}
	}
	p.ID = 1
	return nil
}

// Fini marks p finished.
func Fini(p *Portable) {
	p.ID = 0
}
