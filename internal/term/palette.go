package term

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct colors, hue-spaced around the
// wheel at fixed saturation and value.
func Palette(n int) []tcell.Color {
	if n <= 0 {
		return nil
	}
	out := make([]tcell.Color, n)
	for i := range out {
		h := float64(i) * 360.0 / float64(n)
		r, g, b := colorful.Hsv(h, 0.55, 0.75).RGB255()
		out[i] = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return out
}
