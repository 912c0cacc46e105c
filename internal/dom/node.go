package dom

// Node is a single element in the tree.
type Node struct {
	tag       string
	attrs     map[string]string
	style     map[string]string
	parent    *Node
	children  []*Node
	draggable bool
	rect      Rect

	listeners map[EventType][]*listener
}

// NewNode creates a detached node with the given tag.
func NewNode(tag string) *Node {
	return &Node{
		tag:   tag,
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

// Tag returns the node's tag name.
func (n *Node) Tag() string {
	return n.tag
}

// Attr returns the value of an attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	return n.attrs[name]
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// SetAttr sets an attribute value.
func (n *Node) SetAttr(name, value string) {
	n.attrs[name] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// Style returns a computed style property, or "" if unset.
func (n *Node) Style(prop string) string {
	return n.style[prop]
}

// SetStyle sets a computed style property.
func (n *Node) SetStyle(prop, value string) {
	n.style[prop] = value
}

// Draggable reports the platform draggable flag.
func (n *Node) Draggable() bool {
	return n.draggable
}

// SetDraggable sets the platform draggable flag.
func (n *Node) SetDraggable(v bool) {
	n.draggable = v
}

// Rect returns the node's current bounding rectangle. This is the live
// geometry query; callers wanting per-drag stability go through the
// engine's rect cache instead.
func (n *Node) Rect() Rect {
	return n.rect
}

// SetRect updates the node's bounding rectangle.
func (n *Node) SetRect(r Rect) {
	n.rect = r
}

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	return n.children
}

// Append adds a child to the end of the node's children, detaching it
// from any previous parent.
func (n *Node) Append(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore inserts child before ref among n's children, detaching it
// from any previous parent. A nil or foreign ref appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	for i, c := range n.children {
		if c == ref {
			n.children = append(n.children[:i], append([]*Node{child}, n.children[i:]...)...)
			return
		}
	}
	n.children = append(n.children, child)
}

// NextSibling returns the node following n among its parent's children,
// or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n && i+1 < len(n.parent.children) {
			return n.parent.children[i+1]
		}
	}
	return nil
}

// Remove detaches a direct child. It is a no-op if child is not one.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Root returns the topmost ancestor, or the node itself if detached.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Matches reports whether the node matches the selector.
func (n *Node) Matches(sel Selector) bool {
	return sel.Match(n)
}

// Closest returns the nearest ancestor-or-self matching the selector,
// or nil if none does.
func (n *Node) Closest(sel Selector) *Node {
	for c := n; c != nil; c = c.parent {
		if sel.Match(c) {
			return c
		}
	}
	return nil
}

// FindAll returns all descendants-or-self matching the selector, in
// document order.
func (n *Node) FindAll(sel Selector) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if sel.Match(c) {
			out = append(out, c)
		}
	})
	return out
}

// walk visits n and every descendant in document order.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
