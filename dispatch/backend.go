package dispatch

import (
	"fmt"
	"strings"
)

// Backend identifies a Dispatcher implementation.
type Backend uint8

const (
	BusyWaitBackend Backend = iota + 1
	PollingTaskBackend
	RendezvousBackend
)

func (b Backend) String() string {
	switch b {
	case BusyWaitBackend:
		return "busywait"
	case PollingTaskBackend:
		return "polling"
	case RendezvousBackend:
		return "rendezvous"
	default:
		return fmt.Sprintf("backend(%d)", uint8(b))
	}
}

// Backends lists every implementation, in declaration order.
func Backends() []Backend {
	return []Backend{BusyWaitBackend, PollingTaskBackend, RendezvousBackend}
}

// ParseBackend accepts the String form of a backend. An empty string
// selects the build-time default.
func ParseBackend(s string) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "default" {
		return Default, nil
	}
	for _, b := range Backends() {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}
