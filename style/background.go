package style

import (
	"image/color"

	"github.com/rjkroege/proton/geom"
)

// HeightMode selects how tall a background rectangle is on each line.
type HeightMode int

const (
	// MatchLine uses the whole line fragment.
	MatchLine HeightMode = iota
	// MatchText uses the measured glyph box, less line spacing and
	// line-height padding.
	MatchText
	// MatchTextExact derives the box from the font's ascender, cap height
	// and descender. Rectangles drawn this way never join.
	MatchTextExact
)

func (m HeightMode) String() string {
	switch m {
	case MatchLine:
		return "matchLine"
	case MatchText:
		return "matchText"
	case MatchTextExact:
		return "matchTextExact"
	}
	return "unknown"
}

// WidthMode selects how wide a background rectangle is on each line.
type WidthMode int

const (
	WidthMatchText WidthMode = iota
	WidthMatchContainer
)

func (m WidthMode) String() string {
	if m == WidthMatchContainer {
		return "matchContainer"
	}
	return "matchText"
}

// CornerStyle is a corner radius, either in absolute units or as a
// percentage of the rectangle's height.
type CornerStyle struct {
	Radius   float64
	Relative bool
}

// Absolute returns a fixed radius.
func Absolute(r float64) CornerStyle { return CornerStyle{Radius: r} }

// Relative returns a radius of pct percent of the rectangle height.
func Relative(pct float64) CornerStyle { return CornerStyle{Radius: pct, Relative: true} }

// RadiusFor resolves the radius for a rectangle.
func (c CornerStyle) RadiusFor(r geom.Rect) float64 {
	if c.Relative {
		return r.H * c.Radius / 100
	}
	return c.Radius
}

// Border outlines a background.
type Border struct {
	Color color.Color
	Width float64
}

// Shadow sits behind a background.
type Shadow struct {
	Color  color.Color
	Offset geom.Size
	Blur   float64
}

// Background is a highlight drawn behind text.
type Background struct {
	Color           color.Color
	HeightMode      HeightMode
	WidthMode       WidthMode
	Corner          CornerStyle
	Border          *Border
	Shadow          *Shadow
	Insets          geom.Insets
	SquaredOffJoins bool
}

// IsClear reports whether the background draws nothing. Pure black is
// treated as clear, as is a fully transparent colour.
func (b Background) IsClear() bool {
	return IsClearColor(b.Color)
}

// IsClearColor reports whether c is nil, fully transparent or black.
func IsClearColor(c color.Color) bool {
	if c == nil {
		return true
	}
	r, g, bl, a := c.RGBA()
	return a == 0 || (r == 0 && g == 0 && bl == 0)
}

// Equal compares backgrounds by value, following the border and shadow
// pointers.
func (b Background) Equal(v any) bool {
	o, ok := v.(Background)
	if !ok {
		return false
	}
	if !colorsEqual(b.Color, o.Color) ||
		b.HeightMode != o.HeightMode ||
		b.WidthMode != o.WidthMode ||
		b.Corner != o.Corner ||
		b.Insets != o.Insets ||
		b.SquaredOffJoins != o.SquaredOffJoins {
		return false
	}
	switch {
	case b.Border == nil || o.Border == nil:
		if b.Border != o.Border {
			return false
		}
	case !colorsEqual(b.Border.Color, o.Border.Color) || b.Border.Width != o.Border.Width:
		return false
	}
	switch {
	case b.Shadow == nil || o.Shadow == nil:
		return b.Shadow == o.Shadow
	default:
		return colorsEqual(b.Shadow.Color, o.Shadow.Color) &&
			b.Shadow.Offset == o.Shadow.Offset &&
			b.Shadow.Blur == o.Shadow.Blur
	}
}

func colorsEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// ColorsEqual compares colours by their premultiplied RGBA values.
func ColorsEqual(a, b color.Color) bool { return colorsEqual(a, b) }
