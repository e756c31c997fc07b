package background

import (
	"math"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/style"
)

// DrawRects draws the rectangles of one run as a single shape: each is
// filled with rounded corners, and the joints between consecutive
// rectangles are bridged with joining lines and a seam stroke in the
// fill colour. Empty rectangles are skipped but still break the shape.
// Rectangles of a MatchTextExact style stand alone.
func DrawRects(cv paint.Canvas, bg style.Background, rects []geom.Rect) {
	exact := bg.HeightMode == style.MatchTextExact
	cv.Save()
	defer cv.Restore()

	for i, r := range rects {
		cur := r.InsetIfNotEmpty(bg.Insets)
		if cur.IsEmpty() {
			continue
		}
		radius := bg.Corner.RadiusFor(cur)

		var prev, next geom.Rect
		if i > 0 && !exact {
			prev = rects[i-1].InsetIfNotEmpty(bg.Insets)
		}
		if i < len(rects)-1 && !exact {
			next = rects[i+1].InsetIfNotEmpty(bg.Insets)
		}
		var corners paint.Corner
		if bg.SquaredOffJoins {
			corners = SquaredOffCorners(prev, cur, next)
		} else {
			corners = Corners(prev, cur, next, radius)
		}
		outline := paint.RoundedRect(cur, corners, radius)

		if s := bg.Shadow; s != nil {
			cv.SetShadow(&paint.Shadow{Color: s.Color, Offset: s.Offset, Blur: s.Blur})
		}
		cv.Fill(outline, bg.Color)

		lw := 0.0
		if bg.Border != nil {
			lw = bg.Border.Width
		}
		j := joinLines(prev, cur, radius, lw, bg.Corner.Relative)

		if bg.Border != nil && !j.shadows.IsEmpty() {
			cv.Stroke(j.shadows, bg.Border.Color, lw*2)
		}
		if bg.Shadow != nil {
			cv.SetShadow(nil)
		}
		if bg.Border != nil {
			p := new(paint.Path)
			p.Append(outline)
			p.Append(j.joins)
			cv.Stroke(p, bg.Border.Color, lw)
		}

		// Paint over the seam so the border and shadow of the line above
		// do not show through the joint. A border of another colour stays
		// visible across a wide overlap.
		showBorder := bg.Border != nil && j.length > radius*2 && !style.ColorsEqual(bg.Color, bg.Border.Color)
		if !j.overlap.IsEmpty() && !showBorder {
			blur, offset := 1.0, 1.0
			if s := bg.Shadow; s != nil {
				blur, offset = s.Blur, s.Offset.H
			}
			w := lw + (cur.MinY() - prev.MaxY()) + blur*2 + math.Abs(offset) + 1
			cv.Stroke(j.overlap, bg.Color, w)
		}
	}
}

// joins are the lines bridging a rectangle to the one above it.
type joins struct {
	overlap *paint.Path
	joins   *paint.Path
	shadows *paint.Path
	length  float64
}

func joinLines(prev, cur geom.Rect, radius, lw float64, relative bool) joins {
	j := joins{overlap: new(paint.Path), joins: new(paint.Path), shadows: new(paint.Path)}
	if prev.IsEmpty() || cur.MaxX()-prev.MinX() <= radius {
		return j
	}
	yDiff := cur.MinY() - prev.MaxY()
	minX := math.Max(prev.MinX(), cur.MinX()) + lw/2
	maxX := math.Min(prev.MaxX(), cur.MaxX()) - lw/2
	j.length = maxX - minX

	// Relative rounding rounds both ends of an overlap, so pull the seam
	// in from the curves.
	if relative && prev.MinX()-cur.MaxX() <= radius {
		minX += radius
		maxX -= radius
	}
	y := prev.MaxY() + yDiff/2
	j.overlap = paint.Line(geom.Pt(minX, y), geom.Pt(maxX, y))

	leftX := math.Max(prev.MinX(), cur.MinX())
	rightX := math.Min(prev.MaxX(), cur.MaxX())
	j.joins.Append(paint.Line(geom.Pt(leftX, prev.MaxY()), geom.Pt(leftX, cur.MinY())))
	j.joins.Append(paint.Line(geom.Pt(rightX, prev.MaxY()), geom.Pt(rightX, cur.MinY())))
	j.shadows.Append(paint.Line(geom.Pt(leftX+lw, prev.MaxY()), geom.Pt(leftX+lw, cur.MinY())))
	j.shadows.Append(paint.Line(geom.Pt(rightX-lw, prev.MaxY()), geom.Pt(rightX-lw, cur.MinY())))
	return j
}

// Corners returns the corners of cur to round given its neighbours in
// the same run. Empty neighbours mean cur starts or ends the shape.
// A corner stays square where the neighbour continues flush past it.
func Corners(prev, cur, next geom.Rect, radius float64) paint.Corner {
	var c paint.Corner
	if prev.MinX() > cur.MinX() {
		c |= paint.TopLeft
	}
	if prev.MaxX() < cur.MaxX() {
		c |= paint.TopRight
	}
	if cur.MaxX() > next.MaxX() {
		c |= paint.BottomRight
	}
	if cur.MinX() < next.MinX() {
		c |= paint.BottomLeft
	}
	if next.IsEmpty() || next.MaxX() <= cur.MinX()+radius {
		c |= paint.BottomLeft | paint.BottomRight
	}
	if prev.IsEmpty() || cur.MaxX() <= prev.MinX()+radius {
		c |= paint.TopLeft | paint.TopRight
	}
	return c
}

// SquaredOffCorners rounds only the outer ends of a shape: the left
// corners of its first rectangle and the right corners of its last.
func SquaredOffCorners(prev, cur, next geom.Rect) paint.Corner {
	var c paint.Corner
	if cur.IsEmpty() {
		return c
	}
	if prev.IsEmpty() {
		c |= paint.TopLeft | paint.BottomLeft
	}
	if next.IsEmpty() {
		c |= paint.TopRight | paint.BottomRight
	}
	return c
}
