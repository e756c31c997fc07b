package typeface

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rjkroege/proton/geom"
)

// DPI at which point sizes map one-to-one onto layout units.
const DPI = 72

// Family is a parsed font from which faces of any size are made. Faces
// are cached so that equal sizes yield the identical Face; attribute runs
// compare fonts by identity.
type Family struct {
	name  string
	font  *opentype.Font
	faces map[float64]*OpenType
}

// ParseFamily parses TrueType or OpenType data.
func ParseFamily(name string, data []byte) (*Family, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", name, err)
	}
	return &Family{name: name, font: f, faces: make(map[float64]*OpenType)}, nil
}

// GoRegular returns the Go proportional font family.
func GoRegular() *Family {
	f, err := ParseFamily("Go-Regular", goregular.TTF)
	if err != nil {
		// The embedded font is known good.
		panic(err)
	}
	return f
}

// GoMono returns the Go monospaced font family.
func GoMono() *Family {
	f, err := ParseFamily("Go-Mono", gomono.TTF)
	if err != nil {
		panic(err)
	}
	return f
}

// Face returns the family at size points.
func (fam *Family) Face(size float64) (*OpenType, error) {
	if f, ok := fam.faces[size]; ok {
		return f, nil
	}
	face, err := opentype.NewFace(fam.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("face %s@%g: %w", fam.name, size, err)
	}
	f := &OpenType{family: fam, size: size, face: face, metrics: face.Metrics()}
	fam.faces[size] = f
	return f, nil
}

// OpenType is a Face backed by golang.org/x/image/font.
type OpenType struct {
	family  *Family
	size    float64
	face    font.Face
	metrics font.Metrics
}

var _ Face = (*OpenType)(nil)

func fx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func (f *OpenType) Name() string       { return f.family.name }
func (f *OpenType) PointSize() float64 { return f.size }
func (f *OpenType) IsEmoji() bool      { return IsEmojiName(f.family.name) }
func (f *OpenType) Ascender() float64  { return fx(f.metrics.Ascent) }
func (f *OpenType) Descender() float64 { return -fx(f.metrics.Descent) }

// CapHeight falls back to the ascender for fonts without an OS/2 cap
// height.
func (f *OpenType) CapHeight() float64 {
	if f.metrics.CapHeight <= 0 {
		return f.Ascender()
	}
	return fx(f.metrics.CapHeight)
}

func (f *OpenType) LineHeight() float64 { return fx(f.metrics.Height) }

func (f *OpenType) Advance(s string) float64 {
	return fx(font.MeasureString(f.face, s))
}

func (f *OpenType) Bounds(s string) geom.Rect {
	b, _ := font.BoundString(f.face, s)
	return geom.Rect{
		X: fx(b.Min.X),
		Y: fx(b.Min.Y),
		W: fx(b.Max.X - b.Min.X),
		H: fx(b.Max.Y - b.Min.Y),
	}
}

// WithSize returns f's family at pt, or f itself if the face cannot be
// built.
func (f *OpenType) WithSize(pt float64) Face {
	g, err := f.family.Face(pt)
	if err != nil {
		return f
	}
	return g
}

// Font returns the underlying x/image face for rasterizing glyphs.
func (f *OpenType) Font() font.Face {
	return f.face
}
