package paint

import (
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/rjkroege/proton/geom"
)

// devicePath is one subpath of a Path in 26.6 pixel coordinates.
type devicePath struct {
	raster.Path
	closed     bool
	degenerate bool
}

func fix(v, scale float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * scale * 64))
}

func fixPt(p geom.Point, scale float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fix(p.X, scale), Y: fix(p.Y, scale)}
}

// device converts p to pixel space at scale. For a stroke, cubics are
// replaced by quadratics, which is all the freetype stroker takes; for
// a fill, every subpath is closed.
func (p *Path) device(scale float64, stroke bool) []devicePath {
	var out []devicePath
	var cur *devicePath
	var start, pen geom.Point
	begin := func() {
		out = append(out, devicePath{degenerate: true})
		cur = &out[len(out)-1]
		cur.Start(fixPt(pen, scale))
	}
	end := func() {
		if cur != nil && !stroke && pen != start {
			cur.Add1(fixPt(start, scale))
		}
		cur = nil
	}
	for _, s := range p.Segments() {
		switch s.Op {
		case OpMove:
			end()
			start, pen = s.P[0], s.P[0]
			begin()
		case OpLine:
			if cur == nil {
				begin()
			}
			if s.P[0] != pen {
				cur.degenerate = false
			}
			cur.Add1(fixPt(s.P[0], scale))
			pen = s.P[0]
		case OpCube:
			if cur == nil {
				begin()
			}
			if s.P[0] != pen || s.P[1] != pen || s.P[2] != pen {
				cur.degenerate = false
			}
			if stroke {
				for _, q := range quadratics(pen, s.P[0], s.P[1], s.P[2]) {
					cur.Add2(fixPt(q[0], scale), fixPt(q[1], scale))
				}
			} else {
				cur.Add3(fixPt(s.P[0], scale), fixPt(s.P[1], scale), fixPt(s.P[2], scale))
			}
			pen = s.P[2]
		case OpClose:
			if cur != nil {
				if pen != start {
					cur.Add1(fixPt(start, scale))
				}
				cur.closed = true
			}
			cur = nil
			pen = start
		}
	}
	end()
	return out
}

// quadratics splits a cubic in half and approximates each half with one
// quadratic curve, returning control and end points.
func quadratics(p0, p1, p2, p3 geom.Point) [2][2]geom.Point {
	mid := func(a, b geom.Point) geom.Point { return geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2) }
	ctl := func(a, b, c, d geom.Point) geom.Point {
		return geom.Pt((3*(b.X+c.X)-a.X-d.X)/4, (3*(b.Y+c.Y)-a.Y-d.Y)/4)
	}
	p01, p12, p23 := mid(p0, p1), mid(p1, p2), mid(p2, p3)
	p012, p123 := mid(p01, p12), mid(p12, p23)
	m := mid(p012, p123)
	return [2][2]geom.Point{{ctl(p0, p01, p012, m), m}, {ctl(m, p123, p23, p3), p3}}
}

// AddFill adds the area p encloses, at scale pixels per unit, to z.
// Open subpaths are closed with a straight edge.
func AddFill(z *raster.Rasterizer, p *Path, scale float64) {
	for _, d := range p.device(scale, false) {
		if !d.degenerate {
			z.AddPath(d.Path)
		}
	}
}

// AddStroke adds the outline of a stroke of p with width units to z.
// Closed subpaths get square caps so that their ends meet without a
// notch; open ones end flat. Use non-zero winding to fill the result.
func AddStroke(z *raster.Rasterizer, p *Path, width, scale float64) {
	w := fix(width, scale)
	if w <= 0 {
		return
	}
	for _, d := range p.device(scale, true) {
		if d.degenerate {
			continue
		}
		cr := raster.ButtCapper
		if d.closed {
			cr = raster.SquareCapper
		}
		raster.Stroke(z, d.Path, w, cr, raster.RoundJoiner)
	}
}

// Spans scan converts what add puts in a w by h pixel grid into whole
// pixel spans in row order, for backends that can only fill rectangles.
// A pixel is in when at least half of it is covered.
func Spans(w, h int, add func(z *raster.Rasterizer)) []raster.Span {
	if w <= 0 || h <= 0 {
		return nil
	}
	z := raster.NewRasterizer(w, h)
	z.UseNonZeroWinding = true
	add(z)
	var out []raster.Span
	z.Rasterize(raster.NewMonochromePainter(raster.PainterFunc(func(ss []raster.Span, done bool) {
		for _, s := range ss {
			if s.X1 > s.X0 {
				out = append(out, s)
			}
		}
	})))
	return out
}
