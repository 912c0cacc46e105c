package drag

import (
	"sync"

	"github.com/dshills/dragstream/internal/dom"
	"github.com/dshills/dragstream/internal/stream"
)

// state is the controller's lifecycle state.
type state uint8

const (
	// stateIdle means no drag attempt is underway.
	stateIdle state = iota
	// stateArmed means a pointer press on a valid handle was seen but
	// the platform has not confirmed a drag.
	stateArmed
	// stateDragging means the platform confirmed the drag.
	stateDragging
)

// String returns a human-readable state name.
func (s state) String() string {
	switch s {
	case stateArmed:
		return "armed"
	case stateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Controller is the drag lifecycle state machine. It listens to native
// pointer/drag events on the configured container, applies the filtering
// and sequencing rules of the lifecycle, and emits one ordered Payload
// stream per interaction.
type Controller struct {
	mu sync.Mutex

	doc  *dom.Document
	opts resolved

	out   *stream.Stream[Payload]
	cache *RectCache
	gate  throttle

	state   state
	primary *dom.Node // drag element resolved at arming

	// current is the single mutable payload slot: every emitted payload
	// is written here immediately after emission, and later phases read
	// data established by earlier ones from it.
	current *Payload

	lastOffset    float64
	hasLastOffset bool
	lastDrop      *dom.Node
	lastPosition  Position

	removeListeners []func()
}

// New creates a controller, resolves the options over their defaults, and
// installs the native listeners on the container. Listener installation
// happens once, for the lifetime of the controller.
func New(doc *dom.Document, opts Options) (*Controller, error) {
	r, err := resolveOptions(doc, opts)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		doc:   doc,
		opts:  r,
		out:   stream.New[Payload](),
		cache: NewRectCache(),
		gate:  throttle{interval: r.ThrottleInterval},
	}

	container := r.Container
	c.removeListeners = []func(){
		container.On(dom.EventPointerDown, c.handlePointerDown),
		container.On(dom.EventDragStart, c.handleDragStart),
		container.On(dom.EventDragOver, c.handleDragOver),
		container.On(dom.EventDragEnd, c.handleDragEnd),
	}
	return c, nil
}

// Stream returns the payload stream consumers subscribe to. The delivery
// constraints documented on Subscribe apply to subscriptions made through
// it as well.
func (c *Controller) Stream() *stream.Stream[Payload] {
	return c.out
}

// Subscribe registers a payload handler on the output stream.
//
// Handlers run synchronously while the controller is processing the
// native event that produced the payload, with its internal lock held.
// A handler must not call back into the controller (IsDragging, Close)
// or dispatch dom events; doing so deadlocks. Reading the payload and
// mutating unrelated state, as the demo middleware does, is fine.
func (c *Controller) Subscribe(fn func(Payload), opts ...stream.Option[Payload]) (stream.Subscription, error) {
	return c.out.Subscribe(fn, opts...)
}

// Close removes the native listeners and closes the stream. Draggable
// attributes already applied to in-progress elements are not reset; that
// is the consumer's responsibility.
func (c *Controller) Close() {
	c.mu.Lock()
	for _, remove := range c.removeListeners {
		remove()
	}
	c.removeListeners = nil
	c.mu.Unlock()
	c.out.Close()
}

// IsDragging reports whether a confirmed drag is in progress.
func (c *Controller) IsDragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateDragging
}

// emit publishes a payload and writes it to the current-payload slot
// before the next native event is processed.
func (c *Controller) emit(p Payload) {
	c.out.Publish(p)
	c.current = &p
}

// handlePointerDown implements the Idle -> Armed transition. The press
// must pass the start veto and carry both a handle ancestor and a drag
// element ancestor; anything else is discarded.
func (c *Controller) handlePointerDown(ev *dom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateDragging {
		return
	}
	if ev.Target == nil {
		return
	}
	if !c.opts.CanStart(ev) {
		c.opts.Logger.Debug("drag start vetoed", "target", ev.Target.Tag())
		return
	}
	if ev.Target.Closest(c.opts.handle) == nil {
		c.opts.Logger.Debug("press outside handle", "target", ev.Target.Tag())
		return
	}
	dragEl := ev.Target.Closest(c.opts.drag)
	if dragEl == nil {
		c.opts.Logger.Debug("press outside drag element", "target", ev.Target.Tag())
		return
	}

	// Re-arming replaces the primary; demote the previous one so an
	// eventual abort leaves no element draggable.
	if c.primary != nil && c.primary != dragEl {
		c.primary.SetDraggable(false)
	}

	c.state = stateArmed
	c.primary = dragEl
	dragEl.SetDraggable(true)

	// One-shot fallback: if the platform never fires a drag sequence
	// (released without moving), disarm and demote the element.
	c.doc.Body().Once(dom.EventPointerUp, func(*dom.Event) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == stateArmed && c.primary == dragEl {
			dragEl.SetDraggable(false)
			c.state = stateIdle
			c.primary = nil
			c.opts.Logger.Debug("drag attempt cancelled before start")
		}
	})

	c.emit(newPayload(PhaseBeforeDragStart, ev, []*dom.Node{dragEl},
		ScrollContainer(dragEl, c.opts.Axis), nil, PositionNone, c.opts))
}

// handleDragStart implements the Armed -> Dragging transition.
func (c *Controller) handleDragStart(ev *dom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateArmed {
		return
	}
	if ev.Target == nil || ev.Target.Closest(c.opts.drag) == nil {
		c.opts.Logger.Debug("drag start outside drag element")
		return
	}

	// An active text selection must not be misread as an element drag.
	if sel := c.doc.Selection(); sel.Kind() == dom.SelectionRange {
		ev.PreventDefault()
		sel.Clear()
	}
	if ev.Transfer != nil {
		ev.Transfer.DropEffect = "move"
		ev.Transfer.EffectAllowed = "move"
	}

	c.cache.Flush()
	c.gate.reset()
	c.hasLastOffset = false
	c.lastDrop = nil
	c.lastPosition = PositionNone

	// The dragged set is fixed here for the whole drag: the full
	// multi-selection when the primary element is part of it, otherwise
	// the singleton primary.
	dragEls := []*dom.Node{c.primary}
	if c.opts.Selection != nil {
		if sel := c.opts.Selection(); containsNode(sel, c.primary) {
			dragEls = sel
		}
	}

	c.state = stateDragging
	c.emit(newPayload(PhaseDragStart, ev, dragEls,
		ScrollContainer(c.primary, c.opts.Axis), nil, PositionNone, c.opts))
}

// handleDragOver processes repeated drag-over events: default, throttle,
// reduce, deduplicate, resolve, emit.
func (c *Controller) handleDragOver(ev *dom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateDragging || ev.Target == nil {
		return
	}

	// Suppress the platform's own cancel/return animation.
	ev.PreventDefault()

	if !c.gate.allow(ev.Time) {
		return
	}

	dropEl := ev.Target.Closest(c.opts.drop)
	if dropEl == nil {
		c.opts.Logger.Debug("no drop element under pointer")
		return
	}

	offset := c.opts.Axis.Offset(ev.X, ev.Y, c.cache.Get(dropEl, c.opts.Identity))
	if c.hasLastOffset && offset == c.lastOffset {
		return
	}
	c.lastOffset = offset
	c.hasLastOffset = true

	pos := c.resolvePosition(dropEl, offset)
	if dropEl == c.lastDrop && pos == c.lastPosition {
		return
	}
	c.lastDrop = dropEl
	c.lastPosition = pos

	if pos == PositionNone {
		c.opts.Logger.Debug("position resolved to none", "drop", c.opts.Identity(dropEl))
		return
	}
	if !c.opts.Container.Contains(dropEl) {
		c.opts.Logger.Debug("drop element outside container", "drop", c.opts.Identity(dropEl))
		return
	}

	c.emit(newPayload(PhaseDragOver, ev, c.current.DragElements,
		ScrollContainer(dropEl, c.opts.Axis), dropEl, pos, c.opts))
}

// resolvePosition applies the configured rule for the pair. Dragging an
// element over itself always resolves to none, regardless of rule.
func (c *Controller) resolvePosition(dropEl *dom.Node, offset float64) Position {
	if dropEl == c.primary {
		return PositionNone
	}
	rule := c.opts.Rule(dropEl, c.primary)
	size := c.opts.Axis.Size(c.cache.Get(dropEl, c.opts.Identity))
	return rule.Position(offset, size, c.opts.Threshold)
}

// handleDragEnd implements the Dragging -> Idle transition. The terminal
// payload reuses the last-known data from the current-payload slot; a drag
// with no over-events ends with an absent drop element and position.
func (c *Controller) handleDragEnd(ev *dom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateDragging {
		return
	}

	ev.PreventDefault()

	// Blanket demotion: the platform may have altered draggable state
	// on descendants, so reset everything matching the drag selector.
	for _, n := range c.opts.Container.FindAll(c.opts.drag) {
		n.SetDraggable(false)
	}

	last := c.current
	c.emit(newPayload(PhaseDragEnd, ev, last.DragElements,
		last.ScrollContainer, last.DropElement, last.Position, c.opts))

	c.state = stateIdle
	c.primary = nil
	c.hasLastOffset = false
	c.lastDrop = nil
	c.lastPosition = PositionNone
	c.gate.reset()
}

// containsNode reports whether the slice holds the node.
func containsNode(nodes []*dom.Node, n *dom.Node) bool {
	for _, have := range nodes {
		if have == n {
			return true
		}
	}
	return false
}
