// Package app wires the demo application: a draggable terminal list
// driven by the drag engine.
//
// The app owns the document tree, the lifecycle controller, and the
// render loop. Everything visual rides the payload stream as ordinary
// consumers: the drop indicator and the drag highlight are middleware
// subscribers reading the same payloads any embedding application would,
// and the reorder applied on drop is the app acting on the terminal
// DragEnd payload. The engine itself stays unaware of all of it.
package app
