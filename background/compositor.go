// Package background draws the highlight rectangles behind text carrying
// a background style.
//
// A styled run produces one rectangle per line it covers. Rectangles of
// different runs on the same line are merged to a common height, and the
// rectangles of one run are drawn as a single shape: corners facing a
// flush neighbour stay square and the seams between lines are bridged.
package background

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/layout"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// MinTextX is the smallest x origin of a text matched rectangle.
const MinTextX = 5

// Delegate supplies editor settings. All methods may return zero values.
type Delegate interface {
	DefaultFont() typeface.Face
	DefaultParagraph() style.Paragraph
	TextContainerInset() geom.Insets
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithDelegate sets where the compositor reads editor settings from.
func WithDelegate(d Delegate) Option {
	return func(c *Compositor) { c.delegate = d }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compositor) { c.logger = l }
}

// Compositor lays out and draws background styles.
type Compositor struct {
	delegate Delegate
	logger   *slog.Logger
}

// New returns a compositor.
func New(opts ...Option) *Compositor {
	c := &Compositor{}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Run is one styled range and its rectangles, one per line, in
// document order.
type Run struct {
	Range attributed.Range
	Style style.Background
	Rects []geom.Rect
}

// item is the rectangle of a run on one line.
type item struct {
	line attributed.Range
	r    attributed.Range
	bg   style.Background
	rect geom.Rect
	run  int
}

// Layout computes the background rectangles for the styled runs of s
// that intersect r.
func (c *Compositor) Layout(s *attributed.String, lines layout.Enumerator, r attributed.Range) []Run {
	if s == nil || lines == nil {
		return nil
	}
	var runs []Run
	var items []item
	byLine := make(map[attributed.Range][]int)

	s.EnumerateAttribute(style.KeyBackgroundStyle, r, false, func(v any, rr attributed.Range) bool {
		bg, ok := v.(style.Background)
		if !ok {
			return true
		}
		if isBlack(bg.Color) {
			bg = style.Background{Color: color.Transparent, HeightMode: style.MatchText, WidthMode: style.WidthMatchText}
		}
		run := len(runs)
		runs = append(runs, Run{Range: rr, Style: bg})

		lines.EnumerateLineFragments(rr, func(f layout.Fragment) bool {
			in := rr.Intersect(f.Range)
			if in.Len > 0 {
				if ch, _ := s.RuneAt(in.End() - 1); ch == '\n' {
					in.Len--
				}
			}
			it := item{line: f.Range, r: in, bg: bg, rect: c.lineRect(s, lines, f, in, bg), run: run}
			idx := byLine[f.Range]
			if len(idx) > 0 {
				it.rect = merge(items, idx, it)
			}
			items = append(items, it)
			byLine[f.Range] = append(idx, len(items)-1)
			return true
		})
		return true
	})

	for _, it := range items {
		runs[it.run].Rects = append(runs[it.run].Rects, it.rect)
	}
	return runs
}

// lineRect is the rectangle of the part in of a run on line f.
func (c *Compositor) lineRect(s *attributed.String, lines layout.Enumerator, f layout.Fragment, in attributed.Range, bg style.Background) geom.Rect {
	used := f.UsedRect.Integral()
	para := style.ParagraphOr(s, in.Loc, c.defaultParagraph())
	font := style.FontOr(s, in.Loc, c.defaultFont(f))
	lhm := math.Max(para.LineHeightMultiple, 1)

	rect := lines.BoundingRect(in).Integral()
	lhmOffset := rect.H - rect.H/lhm
	if bg.WidthMode == style.WidthMatchText {
		rect.W = lines.ContentWidth(in)
	} else {
		rect.W = f.Rect.MaxX() - rect.X
	}

	switch bg.HeightMode {
	case style.MatchTextExact:
		rect.Y = used.Y - (font.PointSize() - font.Ascender()) + (font.Ascender() - font.CapHeight())
		rect.H = font.CapHeight() + math.Abs(font.Descender())
		rect.W = lines.ContentWidth(in)
		rect.X = math.Max(MinTextX, rect.X)
	case style.MatchText:
		textH := lines.TextHeight(in)
		end := f.Range.End()
		if ch, _ := s.RuneAt(end - 1); end == s.Len() && ch != '\n' {
			rect.Y = used.Y + (rect.H - textH)
		} else {
			rect.Y = used.Y + (rect.H - textH) + lhmOffset - para.LineSpacing
		}
		rect.H = textH - lhmOffset
		rect.X = math.Max(MinTextX, rect.X)
	default:
		rect.Y = used.Y
		rect.H = used.H
	}
	return rect.Offset(1, c.inset().Top)
}

// merge aligns the rectangles already on a line with it and returns the
// rectangle for it. All share the smallest y and largest height; when it
// starts where the last run on the line ended and both are coloured,
// the earlier rectangles stretch to meet it.
func merge(items []item, idx []int, it item) geom.Rect {
	last := items[idx[len(idx)-1]]
	r := it.rect
	y, height, tr := r.Y, r.H, r
	for _, j := range idx {
		lr := items[j].rect
		y = math.Min(y, lr.MinY())
		height = math.Max(height, lr.H)
		tr = geom.Rect{X: r.X, Y: y, W: r.W, H: math.Max(r.H, lr.H)}
		w := lr.W
		if last.r.End() == it.r.Loc && !last.bg.IsClear() && !it.bg.IsClear() {
			w = math.Max(r.MinX()-lr.MinX(), w)
		}
		items[j].rect = geom.Rect{X: lr.X, Y: y, W: w, H: height}
	}
	return tr
}

// Draw lays out the backgrounds of r and draws them on cv.
func (c *Compositor) Draw(cv paint.Canvas, s *attributed.String, lines layout.Enumerator, r attributed.Range) {
	runs := c.Layout(s, lines, r)
	drawn := 0
	for _, run := range runs {
		if run.Style.IsClear() && run.Style.Border == nil && run.Style.Shadow == nil {
			continue
		}
		DrawRects(cv, run.Style, run.Rects)
		drawn++
	}
	if len(runs) > 0 {
		c.logger.Debug("backgrounds drawn", "runs", len(runs), "drawn", drawn)
	}
}

func (c *Compositor) defaultFont(f layout.Fragment) typeface.Face {
	if c.delegate != nil {
		if d := c.delegate.DefaultFont(); d != nil {
			return d
		}
	}
	if f.Font != nil {
		return f.Font
	}
	return typeface.NewFixed("Body", 16)
}

func (c *Compositor) defaultParagraph() style.Paragraph {
	if c.delegate != nil {
		return c.delegate.DefaultParagraph()
	}
	return style.Paragraph{}
}

func (c *Compositor) inset() geom.Insets {
	if c.delegate != nil {
		return c.delegate.TextContainerInset()
	}
	return geom.Insets{}
}

// isBlack reports whether c is black at any opacity. Such a highlight
// is treated as no highlight.
func isBlack(c color.Color) bool {
	if c == nil {
		return false
	}
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}
