package drag

import (
	"testing"
	"time"

	"github.com/dshills/dragstream/internal/dom"
	"github.com/dshills/dragstream/internal/stream"
)

// fixture drives a controller over a synthetic list:
//
//	body > ul > li[data-id=a|b|c], stacked vertically, 40px tall.
type fixture struct {
	t     *testing.T
	doc   *dom.Document
	list  *dom.Node
	items map[string]*dom.Node
	ctrl  *Controller
	got   []Payload
	now   time.Time
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	doc := dom.NewDocument()
	doc.Body().SetRect(dom.Rect{Width: 200, Height: 400})

	list := dom.NewNode("ul")
	list.SetRect(dom.Rect{Width: 200, Height: 120})
	doc.Body().Append(list)

	items := make(map[string]*dom.Node)
	for i, id := range []string{"a", "b", "c"} {
		li := dom.NewNode("li")
		li.SetAttr("data-id", id)
		li.SetRect(dom.Rect{Y: float64(i * 40), Width: 200, Height: 40})
		list.Append(li)
		items[id] = li
	}

	ctrl, err := New(doc, opts)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(ctrl.Close)

	f := &fixture{t: t, doc: doc, list: list, items: items, ctrl: ctrl, now: time.Unix(0, 0)}
	if _, err := ctrl.Subscribe(func(p Payload) { f.got = append(f.got, p) }); err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	return f
}

// step advances event time past the default throttle window.
func (f *fixture) step() time.Time {
	f.now = f.now.Add(25 * time.Millisecond)
	return f.now
}

func (f *fixture) pointerDown(target *dom.Node) {
	f.doc.Dispatch(&dom.Event{Type: dom.EventPointerDown, Target: target, Time: f.step()})
}

func (f *fixture) pointerUp() {
	f.doc.Dispatch(&dom.Event{Type: dom.EventPointerUp, Target: f.doc.Body(), Time: f.step()})
}

func (f *fixture) dragStart(target *dom.Node) *dom.Event {
	ev := &dom.Event{
		Type:     dom.EventDragStart,
		Target:   target,
		Time:     f.step(),
		Transfer: dom.NewDataTransfer(),
	}
	f.doc.Dispatch(ev)
	return ev
}

func (f *fixture) dragOver(target *dom.Node, x, y float64) *dom.Event {
	ev := &dom.Event{Type: dom.EventDragOver, Target: target, X: x, Y: y, Time: f.step()}
	f.doc.Dispatch(ev)
	return ev
}

func (f *fixture) dragEnd() {
	f.doc.Dispatch(&dom.Event{Type: dom.EventDragEnd, Target: f.doc.Body(), Time: f.step()})
}

func (f *fixture) phases() []Phase {
	out := make([]Phase, len(f.got))
	for i, p := range f.got {
		out[i] = p.Phase
	}
	return out
}

func (f *fixture) wantPhases(want ...Phase) {
	f.t.Helper()
	got := f.phases()
	if len(got) != len(want) {
		f.t.Fatalf("emitted phases %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			f.t.Fatalf("emitted phases %v, want %v", got, want)
		}
	}
}

func TestControllerFullLifecycle(t *testing.T) {
	f := newFixture(t, Options{})
	b := f.items["b"]

	f.pointerDown(b)
	if !b.Draggable() {
		t.Error("arming should mark the drag element draggable")
	}

	ev := f.dragStart(b)
	if ev.Transfer.DropEffect != "move" || ev.Transfer.EffectAllowed != "move" {
		t.Errorf("transfer effects = %q/%q, want move/move", ev.Transfer.DropEffect, ev.Transfer.EffectAllowed)
	}
	if !f.ctrl.IsDragging() {
		t.Error("controller should be dragging after drag start")
	}

	// Pointer in the upper half of item a resolves before under the
	// default around rule.
	f.dragOver(f.items["a"], 10, 10)
	f.dragEnd()

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragOver, PhaseDragEnd)

	pre := f.got[0]
	if len(pre.DragElements) != 1 || pre.DragElements[0] != b {
		t.Error("pre-start payload should carry the primary element")
	}
	if pre.DropElement != nil || pre.Position != PositionNone {
		t.Error("pre-start payload should have no drop target")
	}
	if pre.ScrollContainer != f.doc.Body() {
		t.Error("pre-start scroll container should fall back to the root")
	}
	if pre.Container != f.doc.Body() {
		t.Error("payload container should be the configured container")
	}

	over := f.got[2]
	if over.DropElement != f.items["a"] {
		t.Errorf("over drop element = %v, want item a", over.DropElement)
	}
	if over.Position != PositionBefore {
		t.Errorf("over position = %v, want before", over.Position)
	}
	if len(over.DragElements) != 1 || over.DragElements[0] != b {
		t.Error("over payload should reuse the dragged set from start")
	}

	end := f.got[3]
	if end.DropElement != f.items["a"] || end.Position != PositionBefore {
		t.Error("end payload should reuse the last over target and position")
	}
	if b.Draggable() {
		t.Error("drag end should demote drag elements")
	}
	if f.ctrl.IsDragging() {
		t.Error("controller should be idle after drag end")
	}
}

func TestControllerNonHandlePressIgnored(t *testing.T) {
	f := newFixture(t, Options{})

	f.pointerDown(f.list)
	f.pointerDown(f.doc.Body())

	if len(f.got) != 0 {
		t.Errorf("emitted %d payloads for invalid presses, want 0", len(f.got))
	}
}

func TestControllerStartVeto(t *testing.T) {
	f := newFixture(t, Options{})
	button := dom.NewNode("button")
	f.items["a"].Append(button)

	f.pointerDown(button)

	if len(f.got) != 0 {
		t.Error("press inside a plain button should be vetoed")
	}
}

func TestControllerPointerUpBeforeDragStart(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.items["a"]

	f.pointerDown(a)
	f.pointerUp()

	f.wantPhases(PhaseBeforeDragStart)
	if a.Draggable() {
		t.Error("pointer-up fallback should demote the drag element")
	}

	// The aborted attempt must not leak a DragEnd.
	f.dragEnd()
	f.wantPhases(PhaseBeforeDragStart)
}

func TestControllerDragStartOutsideDragElementStaysArmed(t *testing.T) {
	f := newFixture(t, Options{})
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(f.list)
	f.wantPhases(PhaseBeforeDragStart)

	// A following valid drag start still confirms the drag.
	f.dragStart(b)
	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart)
}

func TestControllerSelfDropNeverEmits(t *testing.T) {
	f := newFixture(t, Options{})
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(b)
	f.dragOver(b, 10, 45)
	f.dragOver(b, 10, 75)

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart)
}

func TestControllerDeduplication(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.items["a"]

	f.pointerDown(f.items["b"])
	f.dragStart(f.items["b"])

	// Same offset twice: second is dropped before any computation.
	f.dragOver(a, 10, 10)
	f.dragOver(a, 10, 10)
	// New offset, same (position, target) pair: dropped after computation.
	f.dragOver(a, 10, 12)

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragOver)

	// Crossing the midpoint changes the position and emits again.
	f.dragOver(a, 10, 30)
	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragOver, PhaseDragOver)
	if f.got[3].Position != PositionAfter {
		t.Errorf("position = %v, want after", f.got[3].Position)
	}
}

func TestControllerThrottleDropsEventsInsideWindow(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.items["a"]

	f.pointerDown(f.items["b"])
	f.dragStart(f.items["b"])
	f.dragOver(a, 10, 10)

	// Within the 20ms window; would otherwise emit after.
	ev := &dom.Event{Type: dom.EventDragOver, Target: a, X: 10, Y: 30, Time: f.now.Add(5 * time.Millisecond)}
	f.doc.Dispatch(ev)

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragOver)
	if !ev.DefaultPrevented() {
		t.Error("throttled over-event should still be default-prevented")
	}
}

func TestControllerDragEndWithoutOver(t *testing.T) {
	f := newFixture(t, Options{})
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(b)
	f.dragEnd()

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragEnd)
	end := f.got[2]
	if end.DropElement != nil {
		t.Error("end without over should have no drop element")
	}
	if end.Position != PositionNone {
		t.Errorf("end position = %v, want none", end.Position)
	}
	if len(end.DragElements) != 1 || end.DragElements[0] != b {
		t.Error("end payload should reuse the dragged set")
	}
}

func TestControllerMultiSelection(t *testing.T) {
	var f *fixture
	f = newFixture(t, Options{
		Selection: func() []*dom.Node {
			return []*dom.Node{f.items["a"], f.items["b"], f.items["c"]}
		},
	})
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(b)
	f.dragOver(f.items["a"], 10, 10)
	f.dragEnd()

	for _, p := range f.got[1:] {
		if len(p.DragElements) != 3 {
			t.Fatalf("%v DragElements = %d nodes, want 3", p.Phase, len(p.DragElements))
		}
		for i, id := range []string{"a", "b", "c"} {
			if p.DragElements[i] != f.items[id] {
				t.Errorf("%v DragElements[%d] out of selection order", p.Phase, i)
			}
		}
	}
}

func TestControllerSelectionNotContainingPrimary(t *testing.T) {
	var f *fixture
	f = newFixture(t, Options{
		Selection: func() []*dom.Node {
			return []*dom.Node{f.items["a"], f.items["c"]}
		},
	})
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(b)

	start := f.got[1]
	if len(start.DragElements) != 1 || start.DragElements[0] != b {
		t.Error("selection without the primary should drag the singleton primary")
	}
}

func TestControllerClearsRangeSelectionAtStart(t *testing.T) {
	f := newFixture(t, Options{})
	b := f.items["b"]

	f.pointerDown(b)
	f.doc.Selection().Set(dom.SelectionRange)
	ev := f.dragStart(b)

	if !ev.DefaultPrevented() {
		t.Error("drag start with a range selection should be default-prevented")
	}
	if f.doc.Selection().Kind() != dom.SelectionNone {
		t.Error("range selection should be cleared at drag start")
	}
	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart)
}

func TestControllerDropOutsideContainer(t *testing.T) {
	// The drop selector resolves to an ancestor that lies outside the
	// configured container: body > section.zone > ul(container) > li.
	doc := dom.NewDocument()
	doc.Body().SetRect(dom.Rect{Width: 200, Height: 400})
	zone := dom.NewNode("section")
	zone.SetAttr("class", "zone")
	zone.SetRect(dom.Rect{Width: 200, Height: 200})
	doc.Body().Append(zone)
	list := dom.NewNode("ul")
	list.SetRect(dom.Rect{Width: 200, Height: 120})
	zone.Append(list)
	a := dom.NewNode("li")
	a.SetAttr("data-id", "a")
	a.SetRect(dom.Rect{Width: 200, Height: 40})
	list.Append(a)
	b := dom.NewNode("li")
	b.SetAttr("data-id", "b")
	b.SetRect(dom.Rect{Y: 40, Width: 200, Height: 40})
	list.Append(b)

	ctrl, err := New(doc, Options{Container: list, DropSelector: ".zone"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer ctrl.Close()
	var got []Payload
	if _, err := ctrl.Subscribe(func(p Payload) { got = append(got, p) }); err != nil {
		t.Fatal(err)
	}

	now := time.Unix(0, 0)
	step := func() time.Time {
		now = now.Add(25 * time.Millisecond)
		return now
	}
	doc.Dispatch(&dom.Event{Type: dom.EventPointerDown, Target: b, Time: step()})
	doc.Dispatch(&dom.Event{Type: dom.EventDragStart, Target: b, Time: step()})
	doc.Dispatch(&dom.Event{Type: dom.EventDragOver, Target: a, X: 10, Y: 10, Time: step()})

	for _, p := range got {
		if p.Phase == PhaseDragOver {
			t.Error("drop target outside the container must not emit")
		}
	}
}

func TestControllerRulePerPair(t *testing.T) {
	f := newFixture(t, Options{
		Rule: func(drop, drag *dom.Node) Rule {
			if drop.Attr("data-id") == "c" {
				return RuleIn
			}
			return RuleAround
		},
	})
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(b)
	f.dragOver(f.items["a"], 10, 10)
	f.dragOver(f.items["c"], 10, 85)

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragOver, PhaseDragOver)
	if f.got[2].Position != PositionBefore {
		t.Errorf("list item position = %v, want before", f.got[2].Position)
	}
	if f.got[3].Position != PositionIn {
		t.Errorf("folder position = %v, want in", f.got[3].Position)
	}
}

func TestControllerOverBeforeStartIgnored(t *testing.T) {
	f := newFixture(t, Options{})

	f.dragOver(f.items["a"], 10, 10)
	f.dragEnd()

	if len(f.got) != 0 {
		t.Errorf("emitted %d payloads with no armed drag, want 0", len(f.got))
	}
}

func TestControllerRearm(t *testing.T) {
	f := newFixture(t, Options{})

	f.pointerDown(f.items["a"])
	f.pointerDown(f.items["b"])
	f.dragStart(f.items["b"])

	f.wantPhases(PhaseBeforeDragStart, PhaseBeforeDragStart, PhaseDragStart)
	start := f.got[2]
	if start.DragElements[0] != f.items["b"] {
		t.Error("re-arming should switch the primary drag element")
	}
	if f.items["a"].Draggable() {
		t.Error("re-arming should demote the previous primary")
	}
}

func TestControllerStreamFilteredSubscription(t *testing.T) {
	f := newFixture(t, Options{})

	var overs []Payload
	_, err := f.ctrl.Stream().Subscribe(
		func(p Payload) { overs = append(overs, p) },
		stream.WithFilter[Payload](func(p Payload) bool {
			return p.Phase == PhaseDragOver
		}))
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	f.pointerDown(f.items["a"])
	f.dragStart(f.items["a"])
	f.dragOver(f.items["b"], 0, 45)
	f.dragEnd()

	if len(overs) != 1 || overs[0].Phase != PhaseDragOver {
		t.Fatalf("filtered subscription got %d payloads, want 1 drag-over", len(overs))
	}
	if overs[0].DropElement != f.items["b"] {
		t.Error("filtered payload carries the wrong drop element")
	}
}

func TestControllerRearmThenAbortResetsDraggable(t *testing.T) {
	f := newFixture(t, Options{})

	f.pointerDown(f.items["a"])
	f.pointerDown(f.items["b"])
	f.pointerUp()

	for id, li := range f.items {
		if li.Draggable() {
			t.Errorf("item %q left draggable after aborted attempt", id)
		}
	}
	f.wantPhases(PhaseBeforeDragStart, PhaseBeforeDragStart)
}

func TestControllerUsesCachedGeometryDuringDrag(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.items["a"]
	b := f.items["b"]

	f.pointerDown(b)
	f.dragStart(b)
	f.dragOver(a, 10, 10)

	// Live geometry moves mid-drag; position math must keep using the
	// rect captured at first query.
	a.SetRect(dom.Rect{Y: 200, Width: 200, Height: 40})
	f.dragOver(a, 10, 35)

	f.wantPhases(PhaseBeforeDragStart, PhaseDragStart, PhaseDragOver, PhaseDragOver)
	if f.got[3].Position != PositionAfter {
		t.Errorf("position = %v, want after (offset 35 of cached 40)", f.got[3].Position)
	}
}

func TestControllerInvalidOptions(t *testing.T) {
	doc := dom.NewDocument()
	if _, err := New(doc, Options{DragSelector: "[broken"}); err == nil {
		t.Error("New accepted a malformed selector")
	}
	if _, err := New(doc, Options{Threshold: 2}); err == nil {
		t.Error("New accepted an out-of-range threshold")
	}
}
