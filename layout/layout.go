// Package layout breaks attributed text into line fragments and answers
// the geometry queries the list and background engines make.
package layout

import (
	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Fragment is one visual line.
type Fragment struct {
	// Rect spans the container width and includes paragraph spacing
	// after the last line of a paragraph.
	Rect geom.Rect
	// UsedRect covers the indent-relative area holding glyphs. Its
	// height is the line height plus line spacing.
	UsedRect geom.Rect
	// Range holds the characters on the line, including a terminating
	// newline.
	Range     attributed.Range
	Paragraph style.Paragraph
	Font      typeface.Face
}

// Enumerator is the line-fragment service the engines draw against.
type Enumerator interface {
	// EnumerateLineFragments calls fn for each line intersecting r in
	// document order until fn returns false.
	EnumerateLineFragments(r attributed.Range, fn func(f Fragment) bool)

	// BoundingRect returns the union of the glyph boxes of r. Boxes are
	// as tall as the used rect of their line.
	BoundingRect(r attributed.Range) geom.Rect

	// ContentWidth returns the advance width of r, ignoring newlines.
	ContentWidth(r attributed.Range) float64

	// TextHeight returns the height r would occupy laid out on a single
	// line: the tallest font's line height scaled by the line-height
	// multiple.
	TextHeight(r attributed.Range) float64
}
