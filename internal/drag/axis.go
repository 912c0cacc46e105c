package drag

import "github.com/dshills/dragstream/internal/dom"

// Axis is the movement axis position math works along.
type Axis uint8

const (
	// AxisVertical measures offsets from the target's top edge.
	AxisVertical Axis = iota
	// AxisHorizontal measures offsets from the target's left edge.
	AxisHorizontal
)

// String returns a human-readable axis name.
func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Offset returns the pointer's position along the axis relative to the
// rectangle's origin.
func (a Axis) Offset(x, y float64, r dom.Rect) float64 {
	if a == AxisHorizontal {
		return x - r.Left()
	}
	return y - r.Top()
}

// Size returns the rectangle's extent along the axis.
func (a Axis) Size(r dom.Rect) float64 {
	if a == AxisHorizontal {
		return r.Right() - r.Left()
	}
	return r.Bottom() - r.Top()
}
