//go:build dualmark_rendezvous

package dispatch

// Default is the backend compiled in for schedulers with counting
// semaphores and per-run task creation.
const Default = RendezvousBackend
