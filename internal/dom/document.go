package dom

// Document owns an element tree and dispatches events through it.
type Document struct {
	body      *Node
	selection Selection
}

// NewDocument creates a document with an empty body element.
func NewDocument() *Document {
	return &Document{body: NewNode("body")}
}

// Body returns the document's root element.
func (d *Document) Body() *Node {
	return d.body
}

// Selection returns the document's selection model.
func (d *Document) Selection() *Selection {
	return &d.selection
}

// Dispatch delivers the event to its target's listeners, then bubbles it
// through each ancestor up to the body. An event without a target is
// delivered to the body only.
func (d *Document) Dispatch(ev *Event) {
	if ev.Target == nil {
		d.body.deliver(ev)
		return
	}
	for n := ev.Target; n != nil; n = n.parent {
		n.deliver(ev)
	}
}

// ElementAt returns the deepest element whose rectangle contains the
// point, preferring later siblings (paint order). Returns nil when the
// point is outside every element, including the body.
func (d *Document) ElementAt(x, y float64) *Node {
	return hitTest(d.body, x, y)
}

func hitTest(n *Node, x, y float64) *Node {
	if !n.rect.Contains(x, y) {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTest(n.children[i], x, y); hit != nil {
			return hit
		}
	}
	return n
}

// SelectionKind classifies the current selection.
type SelectionKind uint8

const (
	// SelectionNone means nothing is selected.
	SelectionNone SelectionKind = iota
	// SelectionCaret is a collapsed insertion point.
	SelectionCaret
	// SelectionRange is a non-empty text/range selection. The engine
	// clears this at drag start so text drags are not misread as
	// element drags.
	SelectionRange
)

// String returns a human-readable selection kind.
func (k SelectionKind) String() string {
	switch k {
	case SelectionCaret:
		return "caret"
	case SelectionRange:
		return "range"
	default:
		return "none"
	}
}

// Selection models the platform's active text selection.
type Selection struct {
	kind SelectionKind
}

// Kind returns the current selection kind.
func (s *Selection) Kind() SelectionKind {
	return s.kind
}

// Set replaces the selection kind.
func (s *Selection) Set(k SelectionKind) {
	s.kind = k
}

// Clear removes any selection.
func (s *Selection) Clear() {
	s.kind = SelectionNone
}
