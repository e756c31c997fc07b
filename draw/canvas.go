package draw

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype/raster"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/typeface"
)

// Canvas implements paint.Canvas on a devdraw image. devdraw has no
// path primitives, so paths are scan converted without anti-aliasing
// and drawn as rectangle fills. Shadows are drawn unblurred.
type Canvas struct {
	dst    Image
	origin image.Point
	font   Font

	colors map[Color]Image
	shadow *paint.Shadow
	stack  []*paint.Shadow
}

var _ paint.Canvas = (*Canvas)(nil)

// NewCanvas draws on dst with layout coordinates offset by origin. f is
// used for marker text and may be nil.
func NewCanvas(dst Image, origin image.Point, f Font) *Canvas {
	return &Canvas{
		dst:    dst,
		origin: origin,
		font:   f,
		colors: make(map[Color]Image),
	}
}

// Free releases the colour images the canvas allocated.
func (c *Canvas) Free() {
	for k, img := range c.colors {
		img.Free()
		delete(c.colors, k)
	}
}

func (c *Canvas) Save() { c.stack = append(c.stack, c.shadow) }

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.shadow = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) SetShadow(s *paint.Shadow) { c.shadow = s }

func (c *Canvas) Fill(p *paint.Path, col color.Color) {
	if p.IsEmpty() || col == nil {
		return
	}
	c.draw(p, col, func(z *raster.Rasterizer, p *paint.Path) { paint.AddFill(z, p, 1) })
}

func (c *Canvas) Stroke(p *paint.Path, col color.Color, width float64) {
	if p.IsEmpty() || col == nil || width <= 0 {
		return
	}
	c.draw(p, col, func(z *raster.Rasterizer, p *paint.Path) { paint.AddStroke(z, p, width, 1) })
}

// draw fills the shape add makes of p, under its shadow if one is set.
func (c *Canvas) draw(p *paint.Path, col color.Color, add func(*raster.Rasterizer, *paint.Path)) {
	size := c.dst.R().Max.Sub(c.origin)
	if s := c.shadow; s != nil && s.Color != nil {
		q := p.Translate(s.Offset)
		c.fillSpans(paint.Spans(size.X, size.Y, func(z *raster.Rasterizer) { add(z, q) }), s.Color)
	}
	c.fillSpans(paint.Spans(size.X, size.Y, func(z *raster.Rasterizer) { add(z, p) }), col)
}

func (c *Canvas) DrawImage(img image.Image, r geom.Rect) {
	if img == nil || r.IsEmpty() {
		return
	}
	dr := r.Image().Add(c.origin)
	b := img.Bounds()
	src, err := c.dst.Display().AllocImage(image.Rect(0, 0, b.Dx(), b.Dy()), RGBA32, false, Transparent)
	if err != nil {
		return
	}
	defer src.Free()
	if _, err := src.Load(src.R(), RGBA32Bytes(img)); err != nil {
		return
	}
	c.dst.Draw(dr, src, nil, image.Point{})
}

func (c *Canvas) DrawText(s string, face typeface.Face, col color.Color, at geom.Point) {
	if c.font == nil || s == "" {
		return
	}
	ink := c.allocColorImage(col)
	if ink == nil {
		return
	}
	// devdraw positions strings by their top left corner.
	top := image.Pt(int(math.Round(at.X)), int(math.Round(at.Y-face.Ascender())))
	c.dst.Bytes(top.Add(c.origin), ink, image.Point{}, c.font, []byte(s))
}

// fillSpans merges spans of equal extent on consecutive rows and fills
// the resulting rectangles.
func (c *Canvas) fillSpans(spans []raster.Span, col color.Color) {
	ink := c.allocColorImage(col)
	if ink == nil || len(spans) == 0 {
		return
	}
	for _, r := range Coalesce(spans) {
		c.dst.Draw(r.Add(c.origin), ink, nil, image.Point{})
	}
}

// Coalesce merges vertically adjacent spans with the same horizontal
// extent into rectangles.
func Coalesce(spans []raster.Span) []image.Rectangle {
	var out []image.Rectangle
	open := map[[2]int]int{}
	for _, s := range spans {
		key := [2]int{s.X0, s.X1}
		if i, ok := open[key]; ok && out[i].Max.Y == s.Y {
			out[i].Max.Y++
			continue
		}
		open[key] = len(out)
		out = append(out, image.Rect(s.X0, s.Y, s.X1, s.Y+1))
	}
	return out
}

// allocColorImage returns a replicated 1x1 image of col, cached per
// colour.
func (c *Canvas) allocColorImage(col color.Color) Image {
	dc := ColorOf(col)
	if img, ok := c.colors[dc]; ok {
		return img
	}
	img, err := c.dst.Display().AllocImage(image.Rect(0, 0, 1, 1), c.dst.Display().ScreenImage().Pix(), true, dc)
	if err != nil {
		return nil
	}
	c.colors[dc] = img
	return img
}
