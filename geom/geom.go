// Package geom holds the floating point geometry shared by the layout,
// list and background engines.
//
// Rectangles are origin+size, the way the host text system reports line
// fragments, rather than min/max like image.Rectangle. A rectangle with
// a zero or negative width or height is empty.
package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a location in view coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width and height.
type Size struct {
	W, H float64
}

// Insets are edge distances applied to a rectangle.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Rect is an axis aligned rectangle given by origin and size.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }
func (r Rect) MidX() float64 { return r.X + r.W/2 }
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the size of r.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns r translated by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset returns r shrunk by in. Negative insets grow the rectangle.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: r.W - in.Left - in.Right,
		H: r.H - in.Top - in.Bottom,
	}
}

// InsetIfNotEmpty insets r unless it is empty, in which case it is
// returned unchanged so that emptiness is preserved for adjacency tests.
func (r Rect) InsetIfNotEmpty(in Insets) Rect {
	if r.IsEmpty() {
		return r
	}
	return r.Inset(in)
}

// Integral returns the smallest rectangle with integer coordinates that
// contains r.
func (r Rect) Integral() Rect {
	if r.IsEmpty() {
		return r
	}
	x0 := math.Floor(r.MinX())
	y0 := math.Floor(r.MinY())
	x1 := math.Ceil(r.MaxX())
	y1 := math.Ceil(r.MaxY())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing r and s. Empty
// rectangles are ignored.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	x0 := math.Min(r.MinX(), s.MinX())
	y0 := math.Min(r.MinY(), s.MinY())
	x1 := math.Max(r.MaxX(), s.MaxX())
	y1 := math.Max(r.MaxY(), s.MaxY())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Image converts r to an integer image.Rectangle, rounding outwards.
func (r Rect) Image() image.Rectangle {
	i := r.Integral()
	return image.Rect(int(i.MinX()), int(i.MinY()), int(i.MaxX()), int(i.MaxY()))
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}
