package drag

import "github.com/dshills/dragstream/internal/dom"

// overflow values that permit scrolling.
func scrollableOverflow(v string) bool {
	return v == "auto" || v == "scroll"
}

// scrollableAlong reports whether the node's computed overflow permits
// scrolling along the axis. The axis-specific property wins over the
// shorthand.
func scrollableAlong(n *dom.Node, axis Axis) bool {
	prop := "overflow-y"
	if axis == AxisHorizontal {
		prop = "overflow-x"
	}
	if v := n.Style(prop); v != "" {
		return scrollableOverflow(v)
	}
	return scrollableOverflow(n.Style("overflow"))
}

// ScrollContainer walks the ancestor chain and returns the nearest
// ancestor whose computed overflow permits scrolling along the axis, or
// the document root when none does (the viewport stand-in). It is a pure
// function of current layout and deliberately uncached: scroll-ability can
// differ between elements within one drag, and each lifecycle event
// queries it at most once.
func ScrollContainer(n *dom.Node, axis Axis) *dom.Node {
	if n == nil {
		return nil
	}
	last := n
	for p := n.Parent(); p != nil; p = p.Parent() {
		if scrollableAlong(p, axis) {
			return p
		}
		last = p
	}
	return last
}
