package protontest

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/typeface"
)

// Recorder is a paint.Canvas that records every call as a readable op
// and keeps enough of each to render an SVG picture of the result.
type Recorder struct {
	size   geom.Size
	ops    []string
	shapes []shape
	shadow *paint.Shadow
	stack  []*paint.Shadow
}

var _ paint.Canvas = (*Recorder)(nil)

// shape is one SVG element.
type shape struct {
	Kind   string
	Path   string
	Fill   string
	Stroke string
	Width  float64
	Rect   geom.Rect
	Text   string
	Size   float64
}

// NewRecorder returns a recorder for a w by h picture.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{size: geom.Size{W: w, H: h}}
}

// Ops returns the recorded ops.
func (r *Recorder) Ops() []string { return r.ops }

// Clear forgets everything recorded.
func (r *Recorder) Clear() {
	r.ops = nil
	r.shapes = nil
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.shadow)
	r.ops = append(r.ops, "save")
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.shadow = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.ops = append(r.ops, "restore")
}

func (r *Recorder) SetShadow(s *paint.Shadow) {
	r.shadow = s
	if s == nil {
		r.ops = append(r.ops, "shadow none")
		return
	}
	r.ops = append(r.ops, fmt.Sprintf("shadow %s offset (%g,%g) blur %g", paint.Hex(s.Color), s.Offset.W, s.Offset.H, s.Blur))
}

func (r *Recorder) Fill(p *paint.Path, c color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("fill %s %s", paint.Hex(c), p))
	if s := r.shadow; s != nil {
		r.shapes = append(r.shapes, shape{Kind: "path", Path: p.Translate(s.Offset).String(), Fill: svgColor(s.Color), Stroke: "none"})
	}
	r.shapes = append(r.shapes, shape{Kind: "path", Path: p.String(), Fill: svgColor(c), Stroke: "none"})
}

func (r *Recorder) Stroke(p *paint.Path, c color.Color, width float64) {
	r.ops = append(r.ops, fmt.Sprintf("stroke %s w%g %s", paint.Hex(c), width, p))
	r.shapes = append(r.shapes, shape{Kind: "path", Path: p.String(), Fill: "none", Stroke: svgColor(c), Width: width})
}

func (r *Recorder) DrawImage(img image.Image, rect geom.Rect) {
	b := img.Bounds()
	r.ops = append(r.ops, fmt.Sprintf("image %dx%d in %v", b.Dx(), b.Dy(), rect))
	r.shapes = append(r.shapes, shape{Kind: "image", Rect: rect, Stroke: "#808080"})
}

func (r *Recorder) DrawText(s string, face typeface.Face, c color.Color, at geom.Point) {
	r.ops = append(r.ops, fmt.Sprintf("text %q %s@%g %s at (%g,%g)", s, face.Name(), face.PointSize(), paint.Hex(c), at.X, at.Y))
	r.shapes = append(r.shapes, shape{Kind: "text", Rect: geom.Rect{X: at.X, Y: at.Y}, Text: s, Fill: svgColor(c), Size: face.PointSize()})
}

// SVG writes the recorded shapes as an SVG document.
func (r *Recorder) SVG(w io.Writer) error {
	return writeSVG(w, r.size, r.shapes)
}

func svgColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, float64(n.A)/255)
}
