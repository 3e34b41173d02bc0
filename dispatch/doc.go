// Package dispatch splits one benchmark run across two lanes.
//
// A Dispatcher hands a job (the shared entry point plus the secondary
// lane's accumulator) to a secondary execution context in StartParallel,
// runs the primary half itself in StopParallel and returns once both halves
// have completed:
//
//	d, _ := dispatch.NewDefault(workload.Iterate)
//	defer d.Close()
//
//	d.StartParallel(&results[1])                 // never blocks
//	err := d.StopParallel(ctx, &results[0])      // primary half + rendezvous
//
// Three backends implement the same contract:
//
//   - BusyWaitBackend: the secondary lane is a hook invoked by a cooperative
//     loop; completion is a busy-polled flag.
//   - PollingTaskBackend: a persistent task pinned to the secondary core
//     polls the same flags and yields between checks.
//   - RendezvousBackend: a transient task per run waits on a start gate
//     released once both lanes have registered; completion is a counting
//     semaphore.
//
// The default backend is chosen at build time: the dualmark_busywait or
// dualmark_rendezvous build tag selects those backends, no tag selects the
// polling task.
//
// At most one job may be outstanding. A second StartParallel before the
// matching StopParallel returns ErrSlotBusy and leaves the in-flight job
// untouched. StopParallel waits no longer than its context (or the
// configured wait timeout) and reports ErrTimeout instead of hanging. A
// panic in the secondary entry point is not recovered.
package dispatch
