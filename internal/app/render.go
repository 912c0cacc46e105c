package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dragstream/internal/dom"
	"github.com/dshills/dragstream/internal/drag"
)

const (
	itemHeight = 3
	itemWidth  = 16
	margin     = 2
)

// relayout recomputes the geometry of every node from the current screen
// size. Geometry lives on the tree, so the engine and the renderer read
// the same rectangles.
func (a *App) relayout() {
	if a.terminal == nil {
		return
	}
	w, h := a.terminal.Size()
	a.doc.Body().SetRect(dom.Rect{X: 0, Y: 0, Width: float64(w), Height: float64(h)})

	items := a.list.Children()
	if a.cfg.Horizontal {
		a.list.SetRect(dom.Rect{
			X: margin, Y: 1,
			Width:  float64(len(items) * itemWidth),
			Height: itemHeight,
		})
		for i, li := range items {
			li.SetRect(dom.Rect{
				X: float64(margin + i*itemWidth), Y: 1,
				Width: itemWidth, Height: itemHeight,
			})
		}
		return
	}

	width := float64(w - 2*margin)
	if width < itemWidth {
		width = itemWidth
	}
	a.list.SetRect(dom.Rect{
		X: margin, Y: 1,
		Width:  width,
		Height: float64(len(items) * itemHeight),
	})
	for i, li := range items {
		li.SetRect(dom.Rect{
			X: margin, Y: float64(1 + i*itemHeight),
			Width: width, Height: itemHeight,
		})
	}
}

// render redraws the whole list plus the drop indicator.
func (a *App) render() {
	a.terminal.Clear()

	for _, li := range a.list.Children() {
		a.renderItem(li)
	}
	a.renderIndicator()

	_, h := a.terminal.Size()
	a.terminal.DrawText(0, h-1, " drag with the mouse, q to quit ",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	a.terminal.Show()
}

func (a *App) renderItem(li *dom.Node) {
	r := li.Rect()
	if r.Empty() {
		return
	}
	x, y := int(r.X), int(r.Y)
	w, h := int(r.Width), int(r.Height)

	style := tcell.StyleDefault.Background(a.colors[li.Attr("data-id")]).
		Foreground(tcell.ColorBlack)
	if a.highlight.Marked(li) {
		style = style.Dim(true).Italic(true)
	}

	a.terminal.Fill(x, y, w, h, ' ', style)
	a.terminal.DrawText(x+1, y+h/2, li.Attr("label"), style)
}

// renderIndicator draws an insertion line along the edge of the current
// drop target, on the side the computed position names.
func (a *App) renderIndicator() {
	target, pos := a.indicator.Current()
	if target == nil || pos == drag.PositionNone {
		return
	}

	r := target.Rect()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

	if pos == drag.PositionIn {
		a.terminal.DrawText(int(r.X)+int(r.Width)-2, int(r.Y), "+", style)
		return
	}

	if a.cfg.Horizontal {
		x := int(r.Left())
		if pos == drag.PositionAfter {
			x = int(r.Right()) - 1
		}
		for y := int(r.Top()); y < int(r.Bottom()); y++ {
			a.terminal.SetCell(x, y, '┃', style)
		}
		return
	}

	y := int(r.Top())
	if pos == drag.PositionAfter {
		y = int(r.Bottom()) - 1
	}
	for x := int(r.Left()); x < int(r.Right()); x++ {
		a.terminal.SetCell(x, y, '━', style)
	}
}
