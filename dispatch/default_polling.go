//go:build !dualmark_busywait && !dualmark_rendezvous

package dispatch

// Default is the backend compiled in for schedulers that can host a
// persistent secondary task.
const Default = PollingTaskBackend
