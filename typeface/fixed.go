package typeface

import (
	"github.com/mattn/go-runewidth"

	"github.com/rjkroege/proton/geom"
)

// Fixed is a cell font. A narrow character advances half the point size,
// a wide one (CJK, emoji) the full point size.
type Fixed struct {
	name  string
	size  float64
	emoji bool
}

var _ Face = Fixed{}

// NewFixed returns a cell font called name at size points.
func NewFixed(name string, size float64) Fixed {
	return Fixed{name: name, size: size, emoji: IsEmojiName(name)}
}

// Emoji returns a cell font standing in for the toolkit emoji face.
func Emoji(size float64) Fixed {
	return NewFixed(EmojiFaceName, size)
}

func (f Fixed) Name() string       { return f.name }
func (f Fixed) PointSize() float64 { return f.size }
func (f Fixed) IsEmoji() bool      { return f.emoji }

func (f Fixed) Ascender() float64  { return f.size * 9 / 10 }
func (f Fixed) Descender() float64 { return -f.size * 3 / 10 }
func (f Fixed) CapHeight() float64 { return f.size * 7 / 10 }

// LineHeight is ascender plus descent; cell fonts carry no leading.
func (f Fixed) LineHeight() float64 { return f.size * 12 / 10 }

func (f Fixed) cell() float64 { return f.size / 2 }

// Advance returns the number of terminal cells in s times the cell width.
func (f Fixed) Advance(s string) float64 {
	return float64(runewidth.StringWidth(s)) * f.cell()
}

func (f Fixed) Bounds(s string) geom.Rect {
	w := f.Advance(s)
	if w == 0 {
		return geom.Rect{}
	}
	return geom.Rect{X: 0, Y: -f.Ascender(), W: w, H: f.Ascender() - f.Descender()}
}

func (f Fixed) WithSize(pt float64) Face {
	f.size = pt
	return f
}
