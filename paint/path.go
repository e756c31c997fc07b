// Package paint defines the drawing surface the background compositor
// and marker views render through, and the path geometry they build.
package paint

import (
	"fmt"
	"math"
	"strings"

	"github.com/rjkroege/proton/geom"
)

// Op is a path construction verb.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpCube
	OpClose
)

// Segment is one path verb. Lines use P[0]; cubics use P[0] and P[1] as
// control points and P[2] as the end point.
type Segment struct {
	Op Op
	P  [3]geom.Point
}

// Path is a sequence of subpaths.
type Path struct {
	segs []Segment
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt geom.Point) {
	p.segs = append(p.segs, Segment{Op: OpMove, P: [3]geom.Point{pt}})
}

// LineTo adds a straight edge to pt.
func (p *Path) LineTo(pt geom.Point) {
	p.segs = append(p.segs, Segment{Op: OpLine, P: [3]geom.Point{pt}})
}

// CubeTo adds a cubic Bézier curve.
func (p *Path) CubeTo(c1, c2, pt geom.Point) {
	p.segs = append(p.segs, Segment{Op: OpCube, P: [3]geom.Point{c1, c2, pt}})
}

// Close returns to the start of the current subpath.
func (p *Path) Close() {
	p.segs = append(p.segs, Segment{Op: OpClose})
}

// Append adds the subpaths of q.
func (p *Path) Append(q *Path) {
	if q != nil {
		p.segs = append(p.segs, q.segs...)
	}
}

// Segments returns the verbs of p.
func (p *Path) Segments() []Segment {
	if p == nil {
		return nil
	}
	return p.segs
}

// IsEmpty reports whether p draws nothing.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.segs) == 0
}

// Translate returns a copy of p moved by d.
func (p *Path) Translate(d geom.Size) *Path {
	q := &Path{segs: make([]Segment, len(p.Segments()))}
	for i, s := range p.Segments() {
		for j := range s.P {
			s.P[j] = s.P[j].Add(geom.Point{X: d.W, Y: d.H})
		}
		q.segs[i] = s
	}
	return q
}

// String renders p as SVG path data.
func (p *Path) String() string {
	var sb strings.Builder
	for i, s := range p.Segments() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch s.Op {
		case OpMove:
			fmt.Fprintf(&sb, "M%g %g", s.P[0].X, s.P[0].Y)
		case OpLine:
			fmt.Fprintf(&sb, "L%g %g", s.P[0].X, s.P[0].Y)
		case OpCube:
			fmt.Fprintf(&sb, "C%g %g %g %g %g %g", s.P[0].X, s.P[0].Y, s.P[1].X, s.P[1].Y, s.P[2].X, s.P[2].Y)
		case OpClose:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

// Line returns a path from a to b.
func Line(a, b geom.Point) *Path {
	p := new(Path)
	p.MoveTo(a)
	p.LineTo(b)
	return p
}

// Rect returns a closed rectangle.
func Rect(r geom.Rect) *Path {
	return RoundedRect(r, 0, 0)
}

// Corner is a set of rectangle corners.
type Corner uint8

const (
	TopLeft Corner = 1 << iota
	TopRight
	BottomLeft
	BottomRight

	AllCorners = TopLeft | TopRight | BottomLeft | BottomRight
)

func (c Corner) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, n := range []struct {
		c Corner
		s string
	}{{TopLeft, "tl"}, {TopRight, "tr"}, {BottomLeft, "bl"}, {BottomRight, "br"}} {
		if c&n.c != 0 {
			parts = append(parts, n.s)
		}
	}
	return strings.Join(parts, "|")
}

// kappa places cubic control points that approximate a quarter circle.
const kappa = 0.5522847498

// RoundedRect returns a closed rectangle whose corners in mask are
// rounded with radius, clamped to half the shorter side. The outline
// runs clockwise from the top left.
func RoundedRect(r geom.Rect, mask Corner, radius float64) *Path {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	rad := func(c Corner) float64 {
		if mask&c != 0 {
			return radius
		}
		return 0
	}
	tl, tr, bl, br := rad(TopLeft), rad(TopRight), rad(BottomLeft), rad(BottomRight)
	x0, y0, x1, y1 := r.MinX(), r.MinY(), r.MaxX(), r.MaxY()

	p := new(Path)
	p.MoveTo(geom.Pt(x0+tl, y0))
	p.LineTo(geom.Pt(x1-tr, y0))
	if tr > 0 {
		k := tr * kappa
		p.CubeTo(geom.Pt(x1-tr+k, y0), geom.Pt(x1, y0+tr-k), geom.Pt(x1, y0+tr))
	}
	p.LineTo(geom.Pt(x1, y1-br))
	if br > 0 {
		k := br * kappa
		p.CubeTo(geom.Pt(x1, y1-br+k), geom.Pt(x1-br+k, y1), geom.Pt(x1-br, y1))
	}
	p.LineTo(geom.Pt(x0+bl, y1))
	if bl > 0 {
		k := bl * kappa
		p.CubeTo(geom.Pt(x0+bl-k, y1), geom.Pt(x0, y1-bl+k), geom.Pt(x0, y1-bl))
	}
	p.LineTo(geom.Pt(x0, y0+tl))
	if tl > 0 {
		k := tl * kappa
		p.CubeTo(geom.Pt(x0, y0+tl-k), geom.Pt(x0+tl-k, y0), geom.Pt(x0+tl, y0))
	}
	p.Close()
	return p
}
