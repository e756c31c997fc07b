package paint

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/typeface"
)

// Shadow is drawn under subsequent fills and strokes until cleared.
type Shadow struct {
	Color  color.Color
	Offset geom.Size
	Blur   float64
}

// Canvas is a drawing surface. Coordinates are in layout units with
// the origin at the top left.
type Canvas interface {
	// Save pushes the graphics state (the shadow); Restore pops it.
	Save()
	Restore()
	// SetShadow sets the shadow; nil clears it.
	SetShadow(s *Shadow)

	Fill(p *Path, c color.Color)
	Stroke(p *Path, c color.Color, width float64)

	// DrawImage draws img scaled into r.
	DrawImage(img image.Image, r geom.Rect)
	// DrawText draws s with its baseline starting at at.
	DrawText(s string, face typeface.Face, c color.Color, at geom.Point)
}

// Hex formats c as #rrggbbaa, unpremultiplied.
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
