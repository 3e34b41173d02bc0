//go:build dualmark_busywait && !dualmark_rendezvous

package dispatch

// Default is the backend compiled in for targets without a scheduler, where
// the platform's second-core loop drives the secondary lane.
const Default = BusyWaitBackend
