// Package dom provides the element-tree surface the drag engine consumes.
//
// The engine is specified against a DOM-like platform: elements with
// attributes, a draggable flag, computed style, bounding rectangles,
// selector matching, and bubbling event dispatch. This package supplies an
// in-memory implementation of exactly that surface, so the engine, its
// tests, and the terminal demo all drive the same contract.
//
// # Core Types
//
// Node is a single element. Nodes form a tree rooted in a Document:
//
//	doc := dom.NewDocument()
//	item := dom.NewNode("div")
//	item.SetAttr("data-id", "item-1")
//	doc.Body().Append(item)
//
// # Selectors
//
// Selector is a parsed, reusable matcher supporting tag, #id, .class,
// [attr] and [attr=value] compounds, and comma-separated lists:
//
//	sel, err := dom.ParseSelector("li.item[data-id], div[data-id]")
//	item.Matches(sel)
//	item.Closest(sel)
//
// # Events
//
// Events are dispatched at a target and bubble to the document root.
// Listeners may be one-shot. PreventDefault records intent for the
// platform adapter; the dom itself takes no default action.
//
// # Thread Safety
//
// A Document and its nodes are not safe for concurrent mutation. The drag
// engine processes events on a single goroutine, matching the platform
// model it is built for.
package dom
