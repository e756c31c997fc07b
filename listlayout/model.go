package listlayout

import (
	"fmt"
	"image/color"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/marker"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Model is one marker produced by a draw pass.
type Model struct {
	// Key is the character offset the marker annotates: the start of
	// the item's paragraph, or the end of the list run for the marker
	// drawn below the last item. Models are reconciled by Key.
	Key int

	// Rect is the marker area: the first line indent wide and as tall
	// as the line, in view coordinates.
	Rect geom.Rect

	Tag   style.ListTag
	Level int
	Index int

	// Marker is resolved for drawing. Text markers carry the font and
	// colour to draw with; image markers are scaled to Marker.Size.
	Marker  marker.Marker
	Checked bool
}

// String describes m in one line.
func (m Model) String() string {
	what := fmt.Sprintf("text %q", m.Marker.Text)
	if m.Marker.IsImage() {
		what = fmt.Sprintf("image %gx%g", m.Marker.Size.W, m.Marker.Size.H)
		if m.Checked {
			what += " checked"
		}
	}
	return fmt.Sprintf("@%d L%d #%d %s %s %v", m.Key, m.Level, m.Index, m.Tag, what, m.Rect)
}

// MarkerHost owns the visuals of markers. The engine adds markers that
// are new to a pass, updates markers whose key survived, and removes
// the rest.
type MarkerHost interface {
	AddMarker(m Model)
	UpdateMarker(m Model)
	RemoveMarker(m Model)
	RemoveAllMarkers()
}

// Delegate supplies the editor settings a draw pass reads.
type Delegate interface {
	// ListIndentation is the indent of one nesting level.
	ListIndentation() float64
	DefaultFont() typeface.Face
	DefaultParagraph() style.Paragraph
	TextColor() color.Color
	TextContainerInset() geom.Insets
	ListMarker(index, level, previousLevel int, tag style.ListTag) marker.Marker
}

// HorizontalLineDrawer draws rules at the start of every pass, before
// any marker.
type HorizontalLineDrawer interface {
	DrawHorizontalLines()
}

// DefaultIndentation is the width of a nesting level when no delegate
// is set or it reports zero.
const DefaultIndentation = 25.0

// DefaultColor draws text markers when no delegate is set or it reports
// no text colour.
var DefaultColor color.Color = color.Black

// Settings is a Delegate holding fixed values. Zero fields fall back to
// the package defaults.
type Settings struct {
	Indentation float64
	Font        typeface.Face
	Paragraph   style.Paragraph
	Color       color.Color
	Inset       geom.Insets
	Resolver    marker.Resolver
}

var _ Delegate = (*Settings)(nil)

func (s *Settings) ListIndentation() float64          { return s.Indentation }
func (s *Settings) DefaultFont() typeface.Face        { return s.Font }
func (s *Settings) DefaultParagraph() style.Paragraph { return s.Paragraph }
func (s *Settings) TextColor() color.Color            { return s.Color }
func (s *Settings) TextContainerInset() geom.Insets   { return s.Inset }

func (s *Settings) ListMarker(index, level, previousLevel int, tag style.ListTag) marker.Marker {
	r := s.Resolver
	if r == nil {
		r = marker.Default()
	}
	return r.Resolve(index, level, previousLevel, tag)
}
