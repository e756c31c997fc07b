// Package raster implements paint.Canvas on an in-memory RGBA image.
package raster

import (
	"image"
	"image/color"
	"math"

	ftraster "github.com/golang/freetype/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/typeface"
)

// Canvas draws anti-aliased paths with the freetype rasterizer.
type Canvas struct {
	dst    *image.RGBA
	scale  float64
	shadow *paint.Shadow
	stack  []*paint.Shadow
}

var _ paint.Canvas = (*Canvas)(nil)

// New returns a canvas of w by h layout units rendered at scale pixels
// per unit, cleared to bg.
func New(w, h, scale float64, bg color.Color) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	r := image.Rect(0, 0, int(math.Ceil(w*scale)), int(math.Ceil(h*scale)))
	dst := image.NewRGBA(r)
	if bg != nil {
		xdraw.Draw(dst, r, image.NewUniform(bg), image.Point{}, xdraw.Src)
	}
	return &Canvas{dst: dst, scale: scale}
}

// Image returns the rendered pixels.
func (c *Canvas) Image() *image.RGBA { return c.dst }

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.shadow)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.shadow = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) SetShadow(s *paint.Shadow) {
	c.shadow = s
}

func (c *Canvas) Fill(p *paint.Path, col color.Color) {
	if p.IsEmpty() || col == nil {
		return
	}
	c.draw(p, col, func(z *ftraster.Rasterizer, p *paint.Path) { paint.AddFill(z, p, c.scale) })
}

func (c *Canvas) Stroke(p *paint.Path, col color.Color, width float64) {
	if p.IsEmpty() || col == nil || width <= 0 {
		return
	}
	c.draw(p, col, func(z *ftraster.Rasterizer, p *paint.Path) { paint.AddStroke(z, p, width, c.scale) })
}

type adder func(z *ftraster.Rasterizer, p *paint.Path)

func (c *Canvas) draw(p *paint.Path, col color.Color, add adder) {
	if s := c.shadow; s != nil && s.Color != nil {
		c.drawShadow(p.Translate(s.Offset), s, add)
	}
	c.rasterize(c.dst, p, col, add)
}

func (c *Canvas) DrawImage(img image.Image, r geom.Rect) {
	if img == nil || r.IsEmpty() {
		return
	}
	dr := c.pixels(r)
	xdraw.BiLinear.Scale(c.dst, dr, img, img.Bounds(), xdraw.Over, nil)
}

// DrawText uses the face's own glyphs when it is an OpenType face and a
// fixed bitmap font otherwise.
func (c *Canvas) DrawText(s string, face typeface.Face, col color.Color, at geom.Point) {
	var ff font.Face = basicfont.Face7x13
	if ot, ok := face.(*typeface.OpenType); ok && c.scale == 1 {
		ff = ot.Font()
	}
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: ff,
		Dot:  fixed.P(int(math.Round(at.X*c.scale)), int(math.Round(at.Y*c.scale))),
	}
	d.DrawString(s)
}

func (c *Canvas) pixels(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.MinX()*c.scale)), int(math.Floor(r.MinY()*c.scale)),
		int(math.Ceil(r.MaxX()*c.scale)), int(math.Ceil(r.MaxY()*c.scale)),
	)
}

func (c *Canvas) rasterize(dst *image.RGBA, p *paint.Path, col color.Color, add adder) {
	b := dst.Bounds()
	z := ftraster.NewRasterizer(b.Dx(), b.Dy())
	z.UseNonZeroWinding = true
	add(z, p)
	painter := ftraster.NewRGBAPainter(dst)
	painter.SetColor(col)
	z.Rasterize(painter)
}

// drawShadow renders the shadow shape, softened by shrinking and
// re-enlarging it when it has a blur radius.
func (c *Canvas) drawShadow(p *paint.Path, s *paint.Shadow, add adder) {
	k := int(s.Blur * c.scale / 2)
	if k < 2 {
		c.rasterize(c.dst, p, s.Color, add)
		return
	}
	b := c.dst.Bounds()
	layer := image.NewRGBA(b)
	c.rasterize(layer, p, s.Color, add)
	small := image.NewRGBA(image.Rect(0, 0, max(1, b.Dx()/k), max(1, b.Dy()/k)))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), layer, b, xdraw.Src, nil)
	xdraw.BiLinear.Scale(c.dst, b, small, small.Bounds(), xdraw.Over, nil)
}
