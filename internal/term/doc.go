// Package term is the terminal platform adapter for the demo.
//
// It wraps a tcell screen for rendering and translates terminal mouse
// input into the dom pointer/drag events the engine consumes: a left
// press becomes pointerdown, motion with the button held over an armed
// element synthesizes dragstart then dragover, and release becomes
// dragend (or a plain pointerup when no drag began). The engine never
// sees tcell types; the translation keeps the platform boundary at the
// dom event surface.
package term
