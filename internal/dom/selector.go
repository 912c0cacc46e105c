package dom

import (
	"fmt"
	"strings"
)

// Selector is a parsed element matcher. It supports the subset of CSS
// selector syntax the engine configures against: a tag name, #id, .class,
// [attr] and [attr=value] compounds, and comma-separated alternatives.
// Combinators (descendant, child) are not supported; the engine only ever
// matches single elements.
type Selector struct {
	alts []compound
}

// compound is one comma-separated alternative.
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

// attrMatch matches [name] (any value) or [name=value].
type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// ParseSelector parses a selector string. An empty or malformed selector
// is a configuration error the caller must fix.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Selector{}, fmt.Errorf("selector %q: empty alternative", s)
		}
		c, err := parseCompound(part)
		if err != nil {
			return Selector{}, fmt.Errorf("selector %q: %w", s, err)
		}
		sel.alts = append(sel.alts, c)
	}
	if len(sel.alts) == 0 {
		return Selector{}, fmt.Errorf("selector %q: empty", s)
	}
	return sel, nil
}

// MustSelector parses a selector and panics on error. For statically
// known selectors only.
func MustSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// parseCompound parses one alternative like "li.item#x[data-id=3]".
func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	// Leading tag name.
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	c.tag = s[:i]
	for i < len(s) {
		switch s[i] {
		case '#':
			name, next, err := readName(s, i+1)
			if err != nil {
				return compound{}, err
			}
			c.id = name
			i = next
		case '.':
			name, next, err := readName(s, i+1)
			if err != nil {
				return compound{}, err
			}
			c.classes = append(c.classes, name)
			i = next
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return compound{}, fmt.Errorf("unterminated attribute at %q", s[i:])
			}
			body := s[i+1 : i+end]
			if body == "" {
				return compound{}, fmt.Errorf("empty attribute selector")
			}
			var m attrMatch
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				m.name = body[:eq]
				m.value = strings.Trim(body[eq+1:], `"'`)
				m.hasValue = true
			} else {
				m.name = body
			}
			if m.name == "" {
				return compound{}, fmt.Errorf("attribute selector %q: missing name", body)
			}
			c.attrs = append(c.attrs, m)
			i += end + 1
		default:
			return compound{}, fmt.Errorf("unexpected %q at offset %d", s[i], i)
		}
	}
	if c.tag == "" && c.id == "" && len(c.classes) == 0 && len(c.attrs) == 0 {
		return compound{}, fmt.Errorf("empty compound")
	}
	return c, nil
}

// readName reads an identifier starting at i, returning the name and the
// index past it.
func readName(s string, i int) (string, int, error) {
	start := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i == start {
		return "", 0, fmt.Errorf("expected identifier at offset %d in %q", start, s)
	}
	return s[start:i], i, nil
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '-' || b == '_'
}

// Match reports whether the node matches any alternative.
func (s Selector) Match(n *Node) bool {
	if n == nil {
		return false
	}
	for _, c := range s.alts {
		if c.match(n) {
			return true
		}
	}
	return false
}

func (c compound) match(n *Node) bool {
	if c.tag != "" && n.tag != c.tag {
		return false
	}
	if c.id != "" && n.Attr("id") != c.id {
		return false
	}
	for _, class := range c.classes {
		if !hasClass(n, class) {
			return false
		}
	}
	for _, a := range c.attrs {
		if !n.HasAttr(a.name) {
			return false
		}
		if a.hasValue && n.Attr(a.name) != a.value {
			return false
		}
	}
	return true
}

func hasClass(n *Node, class string) bool {
	for _, c := range strings.Fields(n.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}
