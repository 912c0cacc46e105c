package stream

import "errors"

var (
	// ErrNilHandler is returned when subscribing with a nil handler.
	ErrNilHandler = errors.New("stream: nil handler")

	// ErrClosed is returned when subscribing to a closed stream.
	ErrClosed = errors.New("stream: closed")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown
	// or already-removed subscription.
	ErrSubscriptionNotFound = errors.New("stream: subscription not found")
)
