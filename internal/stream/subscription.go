package stream

import "sync/atomic"

// State represents the state of a subscription.
type State int32

const (
	// StateActive means the subscription is receiving values.
	StateActive State = iota

	// StatePaused means delivery is temporarily suspended.
	StatePaused

	// StateCancelled means the subscription is permanently over.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is a handle to an active stream subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// State returns the current subscription state.
	State() State

	// IsActive returns true if the subscription can receive values.
	IsActive() bool

	// Pause temporarily stops delivery to this subscription.
	Pause()

	// Resume restarts delivery after a pause.
	Resume()

	// Cancel permanently ends the subscription. A cancelled
	// subscription cannot be resumed.
	Cancel()
}

// subscription is the concrete Subscription used by Stream.
type subscription[T any] struct {
	id     string
	fn     func(T)
	filter func(T) bool
	once   bool
	state  atomic.Int32
}

func (s *subscription[T]) ID() string { return s.id }

func (s *subscription[T]) State() State {
	return State(s.state.Load())
}

func (s *subscription[T]) IsActive() bool {
	return s.State() == StateActive
}

func (s *subscription[T]) Pause() {
	s.state.CompareAndSwap(int32(StateActive), int32(StatePaused))
}

func (s *subscription[T]) Resume() {
	s.state.CompareAndSwap(int32(StatePaused), int32(StateActive))
}

func (s *subscription[T]) Cancel() {
	s.state.Store(int32(StateCancelled))
}

// shouldDeliver reports whether the value passes the subscription's state
// and filter checks.
func (s *subscription[T]) shouldDeliver(v T) bool {
	if !s.IsActive() {
		return false
	}
	if s.filter != nil && !s.filter(v) {
		return false
	}
	return true
}
