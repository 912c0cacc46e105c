package drag

import "github.com/dshills/dragstream/internal/dom"

// Phase tags a lifecycle event. Per drag attempt that survives filtering
// there is exactly one PhaseBeforeDragStart and one PhaseDragStart, zero
// or more PhaseDragOver, and exactly one terminal PhaseDragEnd once a
// start occurred.
type Phase uint8

const (
	// PhaseBeforeDragStart is emitted on a valid pointer press, before
	// the platform confirms a drag.
	PhaseBeforeDragStart Phase = iota
	// PhaseDragStart is emitted when the platform confirms the drag.
	PhaseDragStart
	// PhaseDragOver is emitted per processed drag-over with a target
	// and position.
	PhaseDragOver
	// PhaseDragEnd terminates the drag.
	PhaseDragEnd
)

// String returns the phase's wire name.
func (p Phase) String() string {
	switch p {
	case PhaseBeforeDragStart:
		return "beforeDragStart"
	case PhaseDragStart:
		return "dragStart"
	case PhaseDragOver:
		return "dragOver"
	case PhaseDragEnd:
		return "dragEnd"
	default:
		return "unknown"
	}
}

// Payload is one emitted lifecycle event. Consumers read it; they must not
// mutate the referenced nodes through it.
type Payload struct {
	// Phase is the lifecycle phase tag.
	Phase Phase

	// Event is the originating native event.
	Event *dom.Event

	// DragElements is the ordered, non-empty set of elements being
	// dragged. It is captured at drag start and fixed for the drag.
	DragElements []*dom.Node

	// DropElement is the current drop target. Nil until an over-event
	// establishes one.
	DropElement *dom.Node

	// Position is the computed drop position. PositionNone until an
	// over-event establishes one.
	Position Position

	// ScrollContainer is the resolved scroll container of the currently
	// relevant element: the drag element at start, the drop element
	// during over.
	ScrollContainer *dom.Node

	// Options is the effective configuration.
	Options Options

	// Container is the root container element.
	Container *dom.Node
}

// newPayload builds an immutable payload. It copies the drag element slice
// so later payloads cannot alias earlier ones.
func newPayload(phase Phase, ev *dom.Event, dragEls []*dom.Node, scroll *dom.Node, drop *dom.Node, pos Position, opts resolved) Payload {
	els := make([]*dom.Node, len(dragEls))
	copy(els, dragEls)
	return Payload{
		Phase:           phase,
		Event:           ev,
		DragElements:    els,
		DropElement:     drop,
		Position:        pos,
		ScrollContainer: scroll,
		Options:         opts.Options,
		Container:       opts.Container,
	}
}
