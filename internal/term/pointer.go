package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dragstream/internal/dom"
)

// Synthesizer turns terminal mouse events into dom pointer/drag events.
// The terminal reports press, motion, and release; the drag engine
// consumes the richer pointer/drag vocabulary, so the synthesizer keeps
// the small amount of state needed to bridge them: whether the left
// button is held, and whether a drag sequence has been confirmed.
type Synthesizer struct {
	doc *dom.Document

	pressed     bool
	dragging    bool
	pressTarget *dom.Node
	transfer    *dom.DataTransfer
}

// NewSynthesizer creates a synthesizer dispatching into the document.
func NewSynthesizer(doc *dom.Document) *Synthesizer {
	return &Synthesizer{doc: doc}
}

// Dragging reports whether a synthesized drag sequence is open.
func (s *Synthesizer) Dragging() bool {
	return s.dragging
}

// Translate dispatches the dom events implied by one mouse event.
func (s *Synthesizer) Translate(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := float64(cx), float64(cy)
	target := s.doc.ElementAt(x, y)
	if target == nil {
		target = s.doc.Body()
	}
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !s.pressed:
		s.pressed = true
		s.pressTarget = target
		s.doc.Dispatch(&dom.Event{
			Type: dom.EventPointerDown, Target: target, X: x, Y: y, Time: ev.When(),
		})

	case held && s.pressed:
		if !s.dragging {
			// The engine marks the drag element draggable when it
			// arms; the first motion over an armed press confirms
			// the gesture, like the platform's native drag start.
			src := draggableAncestor(s.pressTarget)
			if src == nil {
				return
			}
			s.dragging = true
			s.transfer = dom.NewDataTransfer()
			s.doc.Dispatch(&dom.Event{
				Type: dom.EventDragStart, Target: src, X: x, Y: y,
				Time: ev.When(), Transfer: s.transfer,
			})
		}
		s.doc.Dispatch(&dom.Event{
			Type: dom.EventDragOver, Target: target, X: x, Y: y,
			Time: ev.When(), Transfer: s.transfer,
		})

	case !held && s.pressed:
		if s.dragging {
			s.doc.Dispatch(&dom.Event{
				Type: dom.EventDragEnd, Target: target, X: x, Y: y,
				Time: ev.When(), Transfer: s.transfer,
			})
		} else {
			s.doc.Dispatch(&dom.Event{
				Type: dom.EventPointerUp, Target: target, X: x, Y: y, Time: ev.When(),
			})
		}
		s.pressed = false
		s.dragging = false
		s.pressTarget = nil
		s.transfer = nil
	}
}

// draggableAncestor returns the nearest ancestor-or-self with the
// platform draggable flag set.
func draggableAncestor(n *dom.Node) *dom.Node {
	for c := n; c != nil; c = c.Parent() {
		if c.Draggable() {
			return c
		}
	}
	return nil
}
