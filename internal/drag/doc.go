// Package drag implements the drag-and-drop lifecycle engine.
//
// The engine turns raw pointer/drag events against a dom tree into a
// single ordered stream of Payload values describing one interaction:
// which elements are being dragged, which element is the current drop
// target, and where relative to that target (before, after, in) the drop
// would land.
//
// # Lifecycle
//
// A drag moves through four phases. A pointer press on a valid handle arms
// the controller and emits PhaseBeforeDragStart; the platform's drag-start
// confirms the gesture and emits PhaseDragStart; throttled, deduplicated
// drag-over events emit PhaseDragOver with a drop target and position; the
// terminal drag-end emits PhaseDragEnd. A press that never becomes a drag
// is silently disarmed and emits nothing further.
//
// # Usage
//
//	ctrl, err := drag.New(doc, drag.Options{
//	    DragSelector: "[data-id]",
//	})
//	if err != nil { ... }
//	defer ctrl.Close()
//
//	ctrl.Subscribe(func(p drag.Payload) {
//	    switch p.Phase {
//	    case drag.PhaseDragOver:
//	        // p.DropElement, p.Position
//	    }
//	})
//
// # Positions
//
// Each drop target resolves a continuous pointer offset into a discrete
// Position through a Rule chosen per (drop element, drag element) pair, so
// one engine instance can mix list-style reordering (RuleAround) with
// container targets (RuleIn) in a single interaction.
//
// # Filtering
//
// The engine has no recoverable errors at runtime; invalid events are
// filtering decisions that silently drop the event. Malformed
// configuration fails fast in New before any listener is installed.
package drag
