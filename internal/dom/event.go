package dom

import "time"

// EventType identifies a native event kind.
type EventType uint8

const (
	// EventPointerDown is a pointer press on an element.
	EventPointerDown EventType = iota
	// EventPointerUp is a pointer release outside a drag sequence.
	EventPointerUp
	// EventDragStart is the platform confirming a drag gesture.
	EventDragStart
	// EventDragOver is pointer movement during a drag.
	EventDragOver
	// EventDragEnd terminates a drag sequence.
	EventDragEnd
)

// String returns a human-readable event type name.
func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventDragStart:
		return "dragstart"
	case EventDragOver:
		return "dragover"
	case EventDragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// Event is a native input event delivered to listeners.
type Event struct {
	// Type is the event kind.
	Type EventType

	// Target is the element the event originated at.
	Target *Node

	// X, Y are the pointer's viewport coordinates.
	X float64
	Y float64

	// Time is when the event occurred. Filtering that compares event
	// spacing uses this, not the wall clock at processing time.
	Time time.Time

	// Transfer carries drag data-transfer fields. Nil for pointer events.
	Transfer *DataTransfer

	defaultPrevented bool
}

// PreventDefault marks the platform default action as suppressed.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles a dispatched event.
type Listener func(*Event)

type listener struct {
	fn      Listener
	once    bool
	removed bool
}

// On registers a listener for the given event type. The returned function
// removes it.
func (n *Node) On(t EventType, fn Listener) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[t] = append(n.listeners[t], l)
	return func() { l.removed = true }
}

// Once registers a listener removed after its first delivery.
func (n *Node) Once(t EventType, fn Listener) {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]*listener)
	}
	n.listeners[t] = append(n.listeners[t], &listener{fn: fn, once: true})
}

// deliver runs the node's listeners for the event, dropping one-shot and
// removed entries.
func (n *Node) deliver(ev *Event) {
	ls := n.listeners[ev.Type]
	if len(ls) == 0 {
		return
	}
	kept := ls[:0]
	for _, l := range ls {
		if l.removed {
			continue
		}
		l.fn(ev)
		if !l.once {
			kept = append(kept, l)
		}
	}
	n.listeners[ev.Type] = kept
}
