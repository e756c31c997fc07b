// Package marker resolves list markers: the glyph or bitmap drawn in
// front of a list item.
package marker

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// ChecklistWidth is the width that identifies an image marker as a
// checklist box. Such images are drawn at their own size; any other
// image is scaled to the line's font.
const ChecklistWidth = 16

// Marker is either text or an image.
type Marker struct {
	Text string
	// Font and Color are optional; the layout engine substitutes the
	// line's font and the editor's text colour.
	Font  typeface.Face
	Color color.Color

	Image image.Image
	Size  geom.Size
}

// Text returns a text marker.
func Text(s string) Marker {
	return Marker{Text: s}
}

// Image returns an image marker with a natural size.
func Image(img image.Image, size geom.Size) Marker {
	return Marker{Image: img, Size: size}
}

// IsImage reports whether m is an image marker.
func (m Marker) IsImage() bool { return m.Image != nil }

// IsEmpty reports whether m draws nothing.
func (m Marker) IsEmpty() bool { return m.Image == nil && m.Text == "" }

// IsChecklist reports whether m is a checklist box.
func (m Marker) IsChecklist() bool {
	return m.IsImage() && m.Size.W == ChecklistWidth
}

// DisplaySize returns the size an image marker is drawn at on a line
// whose font is pt points.
func (m Marker) DisplaySize(pt float64) geom.Size {
	if m.IsChecklist() {
		return m.Size
	}
	w := math.Max(3, math.Min(10, pt/3))
	return geom.Size{W: w, H: w}
}

// Resolver maps a list position to a marker. index counts items within
// a numbering group from 0. Levels start at 1; level 0 is body text.
type Resolver interface {
	Resolve(index, level, previousLevel int, tag style.ListTag) Marker
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(index, level, previousLevel int, tag style.ListTag) Marker

func (f ResolverFunc) Resolve(index, level, previousLevel int, tag style.ListTag) Marker {
	return f(index, level, previousLevel, tag)
}

// DefaultGlyph is drawn when no resolver is registered.
const DefaultGlyph = "*"

// Default returns the resolver used when the editor registers none.
func Default() Resolver {
	return ResolverFunc(func(index, level, previousLevel int, tag style.ListTag) Marker {
		if level <= 0 {
			return Marker{}
		}
		return Text(DefaultGlyph)
	})
}

// Resize scales img to size with bilinear interpolation.
func Resize(img image.Image, size geom.Size) image.Image {
	w, h := int(math.Ceil(size.W)), int(math.Ceil(size.H))
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
