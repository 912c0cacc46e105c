package app

import (
	"testing"
	"time"

	"github.com/dshills/dragstream/internal/dom"
	"github.com/dshills/dragstream/internal/drag"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func (a *App) item(t *testing.T, id string) *dom.Node {
	t.Helper()
	for _, li := range a.list.Children() {
		if li.Attr("data-id") == id {
			return li
		}
	}
	t.Fatalf("no item %q", id)
	return nil
}

func (a *App) order() []string {
	out := make([]string, 0, len(a.list.Children()))
	for _, li := range a.list.Children() {
		out = append(out, li.Attr("data-id"))
	}
	return out
}

// drive runs a full synthetic drag of src onto dst at the given offset
// within dst, spacing events past the throttle window.
func (a *App) drive(t *testing.T, src, dst *dom.Node, y float64) {
	t.Helper()
	now := time.Unix(0, 0)
	step := func() time.Time {
		now = now.Add(25 * time.Millisecond)
		return now
	}

	a.doc.Dispatch(&dom.Event{Type: dom.EventPointerDown, Target: src, Time: step()})
	a.doc.Dispatch(&dom.Event{
		Type: dom.EventDragStart, Target: src, Time: step(),
		Transfer: dom.NewDataTransfer(),
	})
	a.doc.Dispatch(&dom.Event{Type: dom.EventDragOver, Target: dst, Y: y, Time: step()})
	a.doc.Dispatch(&dom.Event{Type: dom.EventDragEnd, Target: dst, Time: step()})
}

func TestAppBuildsList(t *testing.T) {
	a := newTestApp(t, Config{Items: 4})

	want := []string{"item-1", "item-2", "item-3", "item-4"}
	got := a.order()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for _, id := range want {
		if _, ok := a.colors[id]; !ok {
			t.Errorf("no color for %q", id)
		}
	}
}

func TestApplyDropReorders(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
		position drag.Position
		want     []string
	}{
		{"after", "item-1", "item-3", drag.PositionAfter, []string{"item-2", "item-3", "item-1"}},
		{"before", "item-3", "item-1", drag.PositionBefore, []string{"item-3", "item-1", "item-2"}},
		{"before middle", "item-1", "item-3", drag.PositionBefore, []string{"item-2", "item-1", "item-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, Config{Items: 3})
			applyDrop(drag.Payload{
				Phase:        drag.PhaseDragEnd,
				DragElements: []*dom.Node{a.item(t, tt.src)},
				DropElement:  a.item(t, tt.dst),
				Position:     tt.position,
			})
			got := a.order()
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApplyDropMultiKeepsSelectionOrder(t *testing.T) {
	a := newTestApp(t, Config{Items: 4})
	applyDrop(drag.Payload{
		Phase:        drag.PhaseDragEnd,
		DragElements: []*dom.Node{a.item(t, "item-1"), a.item(t, "item-2")},
		DropElement:  a.item(t, "item-4"),
		Position:     drag.PositionAfter,
	})
	want := []string{"item-3", "item-4", "item-1", "item-2"}
	got := a.order()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDropReordersViaStream(t *testing.T) {
	// A full synthetic drag: item-1 dropped past the lower threshold of
	// item-3 lands after it.
	a := newTestApp(t, Config{Items: 3})
	a.relayoutFixed()

	src := a.item(t, "item-1")
	dst := a.item(t, "item-3")
	a.drive(t, src, dst, dst.Rect().Bottom()-0.2)

	want := []string{"item-2", "item-3", "item-1"}
	got := a.order()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

// relayoutFixed assigns test geometry without a terminal attached.
func (a *App) relayoutFixed() {
	a.doc.Body().SetRect(dom.Rect{Width: 80, Height: 24})
	items := a.list.Children()
	a.list.SetRect(dom.Rect{X: margin, Y: 1, Width: 40, Height: float64(len(items) * itemHeight)})
	for i, li := range items {
		li.SetRect(dom.Rect{
			X: margin, Y: float64(1 + i*itemHeight),
			Width: 40, Height: itemHeight,
		})
	}
}

func TestIndicatorTracksOverAndClearsOnEnd(t *testing.T) {
	a := newTestApp(t, Config{Items: 3})
	a.relayoutFixed()

	src := a.item(t, "item-1")
	dst := a.item(t, "item-2")

	now := time.Unix(0, 0)
	step := func() time.Time {
		now = now.Add(25 * time.Millisecond)
		return now
	}
	a.doc.Dispatch(&dom.Event{Type: dom.EventPointerDown, Target: src, Time: step()})
	a.doc.Dispatch(&dom.Event{
		Type: dom.EventDragStart, Target: src, Time: step(),
		Transfer: dom.NewDataTransfer(),
	})
	a.doc.Dispatch(&dom.Event{
		Type: dom.EventDragOver, Target: dst,
		Y: dst.Rect().Top() + 0.1, Time: step(),
	})

	target, pos := a.indicator.Current()
	if target != dst {
		t.Fatalf("indicator target = %v, want item-2", target)
	}
	if pos != drag.PositionBefore {
		t.Fatalf("indicator position = %v, want before", pos)
	}
	if !a.highlight.Marked(src) {
		t.Fatal("source not highlighted during drag")
	}

	a.doc.Dispatch(&dom.Event{Type: dom.EventDragEnd, Target: dst, Time: step()})

	if target, _ := a.indicator.Current(); target != nil {
		t.Fatal("indicator not cleared after drag end")
	}
	if a.highlight.Marked(src) {
		t.Fatal("highlight not cleared after drag end")
	}
	if src.HasAttr("class") {
		t.Fatalf("class attribute left behind: %q", src.Attr("class"))
	}
}

func TestClassHelpers(t *testing.T) {
	n := dom.NewNode("li")
	n.SetAttr("class", "item")

	addClass(n, "dragging")
	if got := n.Attr("class"); got != "item dragging" {
		t.Fatalf("class = %q, want %q", got, "item dragging")
	}
	addClass(n, "dragging")
	if got := n.Attr("class"); got != "item dragging" {
		t.Fatalf("addClass not idempotent: %q", got)
	}

	removeClass(n, "dragging")
	if got := n.Attr("class"); got != "item" {
		t.Fatalf("class = %q, want %q", got, "item")
	}
	removeClass(n, "item")
	if n.HasAttr("class") {
		t.Fatal("empty class attribute should be removed")
	}
}
