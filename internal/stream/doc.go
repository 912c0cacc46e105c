// Package stream provides a typed, subscribable event stream.
//
// A Stream[T] delivers published values synchronously, in subscription
// order, to every active subscriber. Subscriptions can be paused, resumed,
// cancelled, filtered, and marked one-shot:
//
//	s := stream.New[drag.Payload]()
//	sub, err := s.Subscribe(func(p drag.Payload) { ... },
//	    stream.WithFilter[drag.Payload](func(p drag.Payload) bool {
//	        return p.Phase == drag.PhaseDragOver
//	    }))
//	defer s.Unsubscribe(sub)
//
// Delivery happens in the publisher's goroutine; there is no buffering and
// no background work. This matches the single-threaded, run-to-completion
// event model of the engine that publishes into it.
package stream
