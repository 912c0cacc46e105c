package app

import (
	"strings"
	"sync"

	"github.com/dshills/dragstream/internal/dom"
	"github.com/dshills/dragstream/internal/drag"
)

// indicator tracks the most recent drop target so the renderer can draw
// an insertion marker. It is a plain stream consumer and never touches
// the tree.
type indicator struct {
	mu       sync.Mutex
	target   *dom.Node
	position drag.Position
}

func newIndicator(ctrl *drag.Controller) (*indicator, error) {
	ind := &indicator{}
	_, err := ctrl.Subscribe(ind.onPayload)
	if err != nil {
		return nil, err
	}
	return ind, nil
}

func (ind *indicator) onPayload(p drag.Payload) {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	switch p.Phase {
	case drag.PhaseDragOver:
		ind.target = p.DropElement
		ind.position = p.Position
	case drag.PhaseDragEnd:
		ind.target = nil
		ind.position = drag.PositionNone
	}
}

// Current returns the active drop target and position, or nil when no
// drag is in flight.
func (ind *indicator) Current() (*dom.Node, drag.Position) {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.target, ind.position
}

// highlight toggles a "dragging" class on the dragged elements for the
// duration of the drag, the same way a web consumer would style the
// ghost.
type highlight struct {
	mu     sync.Mutex
	marked []*dom.Node
}

func newHighlight(ctrl *drag.Controller) (*highlight, error) {
	h := &highlight{}
	_, err := ctrl.Subscribe(h.onPayload)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (h *highlight) onPayload(p drag.Payload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch p.Phase {
	case drag.PhaseDragStart:
		h.marked = append(h.marked[:0], p.DragElements...)
		for _, el := range h.marked {
			addClass(el, "dragging")
		}
	case drag.PhaseDragEnd:
		for _, el := range h.marked {
			removeClass(el, "dragging")
		}
		h.marked = h.marked[:0]
	}
}

// Marked reports whether the node currently carries the drag highlight.
func (h *highlight) Marked(n *dom.Node) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, el := range h.marked {
		if el == n {
			return true
		}
	}
	return false
}

func addClass(n *dom.Node, class string) {
	fields := strings.Fields(n.Attr("class"))
	for _, c := range fields {
		if c == class {
			return
		}
	}
	n.SetAttr("class", strings.Join(append(fields, class), " "))
}

func removeClass(n *dom.Node, class string) {
	fields := strings.Fields(n.Attr("class"))
	kept := fields[:0]
	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(kept, " "))
}
