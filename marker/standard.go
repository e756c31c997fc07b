package marker

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"golang.org/x/image/vector"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/style"
)

// Numbering is a counter style for numbered items.
type Numbering int

const (
	Decimal Numbering = iota
	LowerAlpha
	LowerRoman
	UpperAlpha
	UpperRoman
)

var numberingNames = map[string]Numbering{
	"decimal":    Decimal,
	"lowerAlpha": LowerAlpha,
	"lowerRoman": LowerRoman,
	"upperAlpha": UpperAlpha,
	"upperRoman": UpperRoman,
}

// ParseNumbering converts a configuration name such as "lowerRoman".
func ParseNumbering(s string) (Numbering, error) {
	n, ok := numberingNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown numbering %q", s)
	}
	return n, nil
}

// Format renders the 1-based number n.
func (k Numbering) Format(n int) string {
	switch k {
	case LowerAlpha:
		return alpha(n)
	case UpperAlpha:
		return strings.ToUpper(alpha(n))
	case LowerRoman:
		return strings.ToLower(roman(n))
	case UpperRoman:
		return roman(n)
	}
	return strconv.Itoa(n)
}

func alpha(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

var romans = []struct {
	v int
	s string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romans {
		for n >= r.v {
			sb.WriteString(r.s)
			n -= r.v
		}
	}
	return sb.String()
}

// Standard is a configurable resolver. Bullets and Numbering are
// indexed by level-1 and cycle when a list nests deeper than they
// reach.
type Standard struct {
	Bullets   []string
	Numbering []Numbering
	// Suffix follows the number of a numbered item.
	Suffix string
	// ImageBullets draws bullets as filled discs instead of glyphs.
	ImageBullets bool
	Color        color.Color

	checked, unchecked image.Image
}

// NewStandard returns a resolver with the conventional cycles:
// 1. a. i. for numbers and • ◦ ▪ for bullets.
func NewStandard() *Standard {
	return &Standard{
		Bullets:   []string{"•", "◦", "▪"},
		Numbering: []Numbering{Decimal, LowerAlpha, LowerRoman},
		Suffix:    ".",
		Color:     color.Black,
	}
}

func (s *Standard) Resolve(index, level, previousLevel int, tag style.ListTag) Marker {
	if level <= 0 {
		return Marker{}
	}
	switch tag {
	case style.ListNumbered:
		k := Decimal
		if len(s.Numbering) > 0 {
			k = s.Numbering[(level-1)%len(s.Numbering)]
		}
		return Text(k.Format(index+1) + s.Suffix)
	case style.ListChecklist, style.ListChecklistChecked:
		return Image(s.checkbox(tag == style.ListChecklistChecked), geom.Size{W: ChecklistWidth, H: ChecklistWidth})
	}
	if s.ImageBullets {
		return Image(Disc(24, s.color(), level%2 == 0), geom.Size{W: 24, H: 24})
	}
	if len(s.Bullets) == 0 {
		return Text(DefaultGlyph)
	}
	return Text(s.Bullets[(level-1)%len(s.Bullets)])
}

func (s *Standard) color() color.Color {
	if s.Color == nil {
		return color.Black
	}
	return s.Color
}

func (s *Standard) checkbox(checked bool) image.Image {
	if checked {
		if s.checked == nil {
			s.checked = Checkbox(ChecklistWidth, s.color(), true)
		}
		return s.checked
	}
	if s.unchecked == nil {
		s.unchecked = Checkbox(ChecklistWidth, s.color(), false)
	}
	return s.unchecked
}

// Checkbox rasterizes a square checklist box of side n, ticked when
// checked.
func Checkbox(n int, c color.Color, checked bool) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, n, n))
	z := vector.NewRasterizer(n, n)
	f := float32(n)
	line := f / 10
	if line < 1 {
		line = 1
	}

	// Outline: outer square clockwise, inner counter-clockwise.
	z.MoveTo(0, 0)
	z.LineTo(f, 0)
	z.LineTo(f, f)
	z.LineTo(0, f)
	z.ClosePath()
	z.MoveTo(line, line)
	z.LineTo(line, f-line)
	z.LineTo(f-line, f-line)
	z.LineTo(f-line, line)
	z.ClosePath()

	if checked {
		// A tick as a thick polyline.
		z.MoveTo(f*0.20, f*0.50)
		z.LineTo(f*0.42, f*0.72)
		z.LineTo(f*0.80, f*0.26)
		z.LineTo(f*0.80+line, f*0.26+line)
		z.LineTo(f*0.42, f*0.72+2*line)
		z.LineTo(f*0.20-line, f*0.50+line)
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}

// Disc rasterizes a circle of diameter n, hollow when outline is set.
func Disc(n int, c color.Color, outline bool) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, n, n))
	z := vector.NewRasterizer(n, n)
	r := float32(n) / 2
	circle(z, r, r, r, false)
	if outline {
		circle(z, r, r, r*0.6, true)
	}
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

func circle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	k := r * kappa
	if !reverse {
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	z.ClosePath()
}
