package stream

import (
	"sync"

	"github.com/google/uuid"
)

// Option configures a subscription.
type Option[T any] func(*subscription[T])

// WithFilter delivers only values for which the predicate returns true.
func WithFilter[T any](fn func(T) bool) Option[T] {
	return func(s *subscription[T]) {
		s.filter = fn
	}
}

// Once cancels the subscription after its first delivery.
func Once[T any]() Option[T] {
	return func(s *subscription[T]) {
		s.once = true
	}
}

// Stream delivers published values to subscribers in subscription order.
type Stream[T any] struct {
	mu     sync.RWMutex
	subs   []*subscription[T]
	closed bool

	published uint64
	delivered uint64
}

// New creates an empty stream.
func New[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Subscribe registers a handler for every published value.
func (s *Stream[T]) Subscribe(fn func(T), opts ...Option[T]) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	sub := &subscription[T]{id: uuid.NewString(), fn: fn}
	for _, opt := range opts {
		opt(sub)
	}
	s.subs = append(s.subs, sub)
	return sub, nil
}

// Unsubscribe removes a subscription from the stream.
func (s *Stream[T]) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, have := range s.subs {
		if have.id == sub.ID() {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers a value synchronously to every active subscriber.
// Publishing to a closed stream is a no-op.
func (s *Stream[T]) Publish(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.published++
	// Snapshot so handlers may subscribe/unsubscribe reentrantly.
	subs := make([]*subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		if !sub.shouldDeliver(v) {
			continue
		}
		sub.fn(v)

		s.mu.Lock()
		s.delivered++
		s.mu.Unlock()

		if sub.once {
			s.Unsubscribe(sub) //nolint:errcheck // already removed is fine
		}
	}
}

// Close cancels every subscription and rejects new ones.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

// Count returns the number of registered subscriptions.
func (s *Stream[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Stats reports published and delivered value counts.
func (s *Stream[T]) Stats() (published, delivered uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published, s.delivered
}
