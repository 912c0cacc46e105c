package drag

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/dragstream/internal/dom"
)

// RuleFunc selects the positioning rule for a (drop element, drag element)
// pair.
type RuleFunc func(drop, drag *dom.Node) Rule

// IdentityFunc extracts a stable identity string for an element, used to
// key the rect cache.
type IdentityFunc func(*dom.Node) string

// SelectionFunc returns the current multi-selection, in order.
type SelectionFunc func() []*dom.Node

// StartFunc vetoes a drag start for a pointer-down event. Returning false
// discards the event.
type StartFunc func(*dom.Event) bool

// DefaultSelector marks draggable, droppable, and handle elements when no
// selector is configured.
const DefaultSelector = "[data-id]"

// DefaultThrottleInterval is the minimum spacing between processed
// over-events.
const DefaultThrottleInterval = 20 * time.Millisecond

// DefaultThreshold is the edge band fraction used by threshold rules.
const DefaultThreshold = 0.3

// Options configures a Controller. All fields are optional; zero values
// take the documented defaults. Options are immutable for the lifetime of
// one controller instance.
type Options struct {
	// Container is the root element listeners attach to and drop targets
	// must live under. Defaults to the document body.
	Container *dom.Node

	// DragSelector matches draggable elements. Defaults to
	// DefaultSelector.
	DragSelector string

	// DropSelector matches droppable elements. Defaults to
	// DefaultSelector.
	DropSelector string

	// HandleSelector matches the sub-element that must be pressed to
	// start a drag. Defaults to DragSelector, making the whole
	// draggable element its own handle.
	HandleSelector string

	// Identity extracts an element's stable identity. Defaults to
	// reading the data-id attribute.
	Identity IdentityFunc

	// Rule selects the positioning rule per element pair. Defaults to a
	// constant RuleAround.
	Rule RuleFunc

	// Axis is the movement axis. Defaults to AxisVertical.
	Axis Axis

	// ThrottleInterval is the over-event throttle window. Defaults to
	// DefaultThrottleInterval.
	ThrottleInterval time.Duration

	// Threshold is the edge band fraction in [0, 1] for threshold
	// rules. Defaults to DefaultThreshold.
	Threshold float64

	// CanStart vetoes drag starts. Defaults to rejecting presses inside
	// buttons, links, inputs, and textareas lacking their own data-id.
	CanStart StartFunc

	// Selection provides the current multi-selection. When the primary
	// dragged element is part of it, the whole selection is dragged.
	// Defaults to nil: singleton drags only.
	Selection SelectionFunc

	// Logger receives debug-level filtering decisions. Defaults to a
	// discarding logger.
	Logger *log.Logger
}

// resolved is a fully-populated configuration with parsed selectors.
// Merging happens exactly once, in New.
type resolved struct {
	Options
	drag   dom.Selector
	drop   dom.Selector
	handle dom.Selector
}

// interactiveSelector matches elements whose presses default CanStart
// rejects unless they carry their own data-id.
var interactiveSelector = dom.MustSelector("button, a, input, textarea")

// defaultCanStart rejects presses originating inside interactive elements
// that lack their own data-id.
func defaultCanStart(ev *dom.Event) bool {
	c := ev.Target.Closest(interactiveSelector)
	return c == nil || c.Attr("data-id") != ""
}

// defaultIdentity reads the data-id attribute.
func defaultIdentity(n *dom.Node) string {
	return n.Attr("data-id")
}

// resolveOptions merges opts over the defaults and parses selectors.
func resolveOptions(doc *dom.Document, opts Options) (resolved, error) {
	r := resolved{Options: opts}

	if r.Container == nil {
		r.Container = doc.Body()
	}
	if r.DragSelector == "" {
		r.DragSelector = DefaultSelector
	}
	if r.DropSelector == "" {
		r.DropSelector = DefaultSelector
	}
	if r.HandleSelector == "" {
		r.HandleSelector = r.DragSelector
	}
	if r.Identity == nil {
		r.Identity = defaultIdentity
	}
	if r.Rule == nil {
		r.Rule = func(drop, drag *dom.Node) Rule { return RuleAround }
	}
	if r.ThrottleInterval == 0 {
		r.ThrottleInterval = DefaultThrottleInterval
	}
	if r.Threshold == 0 {
		r.Threshold = DefaultThreshold
	}
	if r.Threshold < 0 || r.Threshold > 1 {
		return resolved{}, fmt.Errorf("drag: threshold %v outside [0, 1]", r.Threshold)
	}
	if r.CanStart == nil {
		r.CanStart = defaultCanStart
	}
	if r.Logger == nil {
		r.Logger = log.New(io.Discard)
	}

	var err error
	if r.drag, err = dom.ParseSelector(r.DragSelector); err != nil {
		return resolved{}, fmt.Errorf("drag: drag selector: %w", err)
	}
	if r.drop, err = dom.ParseSelector(r.DropSelector); err != nil {
		return resolved{}, fmt.Errorf("drag: drop selector: %w", err)
	}
	if r.handle, err = dom.ParseSelector(r.HandleSelector); err != nil {
		return resolved{}, fmt.Errorf("drag: handle selector: %w", err)
	}
	return r, nil
}
