// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: slot.go — single-entry job slot for the secondary lane
//
// Purpose:
//   - Holds at most one (entry, arg) pair destined for the secondary lane
//   - Drives the job through Empty → Pending → Running → Done → Empty
//
// Notes:
//   - Primary lane owns Submit/Clear, secondary lane owns Take/Finish
//   - The job body is written before the Pending store and read only after
//     the Pending → Running CAS, so the state word is the publication point
//   - A second Submit while a job is outstanding is declined, never merged
//
// ⚠️ Submit and Clear must only be called from the primary lane.
// ─────────────────────────────────────────────────────────────────────────────

package slot

import "sync/atomic"

// State is the lifecycle position of the job held in a Slot.
type State uint32

const (
	Empty State = iota
	Pending
	Running
	Done
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return "invalid"
	}
}

// Job is one unit of secondary-lane work. A nil Entry is legal and means
// "nothing to do this cycle".
type Job[T any] struct {
	Entry func(T)
	Arg   T
}

// Slot holds at most one Job. The zero value is an empty slot.
type Slot[T any] struct {
	state uint32
	job   Job[T]
}

// Submit stores the job and marks it Pending. It reports false, leaving the
// slot untouched, if a job is already Pending, Running or Done-unconsumed.
func (s *Slot[T]) Submit(entry func(T), arg T) bool {
	if State(atomic.LoadUint32(&s.state)) != Empty {
		return false
	}
	s.job = Job[T]{Entry: entry, Arg: arg}
	atomic.StoreUint32(&s.state, uint32(Pending))
	return true
}

// Take claims the pending job for execution. It reports false if no job is
// pending.
func (s *Slot[T]) Take() (Job[T], bool) {
	if !atomic.CompareAndSwapUint32(&s.state, uint32(Pending), uint32(Running)) {
		return Job[T]{}, false
	}
	return s.job, true
}

// Finish marks a running job as Done. It reports false if no job was
// running.
func (s *Slot[T]) Finish() bool {
	return atomic.CompareAndSwapUint32(&s.state, uint32(Running), uint32(Done))
}

// Clear releases a Done job so the slot can be reused. It reports false if
// the job has not finished.
func (s *Slot[T]) Clear() bool {
	if State(atomic.LoadUint32(&s.state)) != Done {
		return false
	}
	s.job = Job[T]{}
	atomic.StoreUint32(&s.state, uint32(Empty))
	return true
}

// State returns the current lifecycle position.
func (s *Slot[T]) State() State {
	return State(atomic.LoadUint32(&s.state))
}
