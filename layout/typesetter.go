package layout

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Option configures a Typesetter.
type Option func(*Typesetter)

// WithWidth sets the container width.
func WithWidth(w float64) Option {
	return func(t *Typesetter) { t.width = w }
}

// WithDefaultFont sets the font used for characters without one.
func WithDefaultFont(f typeface.Face) Option {
	return func(t *Typesetter) { t.font = f }
}

// WithDefaultParagraph sets the paragraph style used for paragraphs
// without one.
func WithDefaultParagraph(p style.Paragraph) Option {
	return func(t *Typesetter) { t.para = p }
}

// Typesetter lays out an attributed string in a container of fixed
// width. Lines break greedily at Unicode line-break opportunities; a
// word wider than the container is broken between characters. Layout
// is cached until the string's generation changes.
type Typesetter struct {
	text  *attributed.String
	width float64
	font  typeface.Face
	para  style.Paragraph

	laid  bool
	gen   uint64
	runes []rune
	adv   []float64
	lines []Fragment
}

var _ Enumerator = (*Typesetter)(nil)

// NewTypesetter returns a Typesetter for s.
func NewTypesetter(s *attributed.String, opts ...Option) *Typesetter {
	t := &Typesetter{
		text:  s,
		width: 320,
		font:  typeface.NewFixed("Body", 16),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// SetText replaces the laid out string.
func (t *Typesetter) SetText(s *attributed.String) {
	t.text = s
	t.laid = false
}

// SetWidth changes the container width.
func (t *Typesetter) SetWidth(w float64) {
	t.width = w
	t.laid = false
}

// Width returns the container width.
func (t *Typesetter) Width() float64 { return t.width }

// DefaultFont returns the font used for characters without one.
func (t *Typesetter) DefaultFont() typeface.Face { return t.font }

// DefaultParagraph returns the paragraph style used for paragraphs
// without one.
func (t *Typesetter) DefaultParagraph() style.Paragraph { return t.para }

// Invalidate forces the next query to lay out again.
func (t *Typesetter) Invalidate() { t.laid = false }

// Lines returns every line fragment.
func (t *Typesetter) Lines() []Fragment {
	t.ensure()
	return t.lines
}

// Size returns the container width and the height of the laid out text.
func (t *Typesetter) Size() geom.Size {
	t.ensure()
	h := 0.0
	if n := len(t.lines); n > 0 {
		h = t.lines[n-1].Rect.MaxY()
	}
	return geom.Size{W: t.width, H: h}
}

// FragmentAt returns the line holding character i. The end of the text
// maps to the last line.
func (t *Typesetter) FragmentAt(i int) (Fragment, bool) {
	t.ensure()
	for _, f := range t.lines {
		if f.Range.Contains(i) {
			return f, true
		}
	}
	if n := len(t.lines); n > 0 && i == t.lines[n-1].Range.End() {
		return t.lines[n-1], true
	}
	return Fragment{}, false
}

func (t *Typesetter) EnumerateLineFragments(r attributed.Range, fn func(f Fragment) bool) {
	t.ensure()
	for _, f := range t.lines {
		if !touches(f.Range, r) {
			continue
		}
		if !fn(f) {
			return
		}
	}
}

func (t *Typesetter) BoundingRect(r attributed.Range) geom.Rect {
	t.ensure()
	r = r.Clamp(len(t.runes))
	var out geom.Rect
	found := false
	for _, f := range t.lines {
		if !touches(f.Range, r) {
			continue
		}
		in := f.Range.Intersect(r)
		box := geom.Rect{
			X: f.UsedRect.X + t.advance(f.Range.Loc, in.Loc),
			Y: f.Rect.Y,
			W: t.advance(in.Loc, in.End()),
			H: f.UsedRect.H,
		}
		if !found {
			out, found = box, true
			continue
		}
		out = cover(out, box)
	}
	return out
}

func (t *Typesetter) ContentWidth(r attributed.Range) float64 {
	t.ensure()
	r = r.Clamp(len(t.runes))
	return t.advance(r.Loc, r.End())
}

func (t *Typesetter) TextHeight(r attributed.Range) float64 {
	t.ensure()
	r = r.Clamp(len(t.runes))
	h := t.fontAt(r.Loc).LineHeight()
	for i := r.Loc; i < r.End(); i++ {
		h = max(h, t.fontAt(i).LineHeight())
	}
	p := style.ParagraphOr(t.text, r.Loc, t.para)
	return h * max(p.LineHeightMultiple, 1)
}

// touches reports whether line holds part of r, or the position of an
// empty r.
func touches(line, r attributed.Range) bool {
	if r.IsEmpty() {
		return line.Contains(r.Loc)
	}
	return !line.Intersect(r).IsEmpty()
}

func cover(a, b geom.Rect) geom.Rect {
	x0, y0 := min(a.MinX(), b.MinX()), min(a.MinY(), b.MinY())
	x1, y1 := max(a.MaxX(), b.MaxX()), max(a.MaxY(), b.MaxY())
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (t *Typesetter) advance(lo, hi int) float64 {
	w := 0.0
	for i := max(lo, 0); i < hi && i < len(t.adv); i++ {
		w += t.adv[i]
	}
	return w
}

func (t *Typesetter) fontAt(i int) typeface.Face {
	return style.FontOr(t.text, i, t.font)
}

func (t *Typesetter) ensure() {
	if t.laid && t.gen == t.text.Generation() {
		return
	}
	t.layout()
}

func (t *Typesetter) layout() {
	t.runes = []rune(t.text.String())
	t.adv = make([]float64, len(t.runes))
	for i, r := range t.runes {
		if r != '\n' {
			t.adv[i] = t.fontAt(i).Advance(string(r))
		}
	}
	t.lines = t.lines[:0]
	y := 0.0
	for start := 0; start < len(t.runes); {
		pr := t.text.ParagraphRange(start)
		y = t.layoutParagraph(pr, y)
		start = pr.End()
	}
	t.gen = t.text.Generation()
	t.laid = true
}

// breaks returns the offsets in [lo, hi) after which a line may end.
func (t *Typesetter) breaks(lo, hi int) []int {
	var out []int
	str := string(t.runes[lo:hi])
	state := -1
	off := lo
	for len(str) > 0 {
		var seg string
		seg, str, _, state = uniseg.FirstLineSegmentInString(str, state)
		off += utf8.RuneCountInString(seg)
		out = append(out, off)
	}
	return out
}

// fitWidth is the advance of [lo, hi) without trailing white space,
// which may hang past the container edge.
func (t *Typesetter) fitWidth(lo, hi int) float64 {
	for hi > lo && unicode.IsSpace(t.runes[hi-1]) {
		hi--
	}
	return t.advance(lo, hi)
}

func (t *Typesetter) layoutParagraph(pr attributed.Range, y float64) float64 {
	para := style.ParagraphOr(t.text, pr.Loc, t.para)
	end := pr.End()
	content := end
	if content > pr.Loc && t.runes[content-1] == '\n' {
		content--
	}

	lineStart := pr.Loc
	indent := para.FirstLineHeadIndent
	emit := func(hi int) {
		y = t.appendLine(pr, para, lineStart, hi, indent, y)
		lineStart = hi
		indent = para.HeadIndent
	}

	cur := lineStart
	for _, b := range t.breaks(pr.Loc, content) {
		if cur > lineStart && indent+t.fitWidth(lineStart, b) > t.width {
			emit(cur)
		}
		// A single segment wider than the line is split by character.
		for indent+t.fitWidth(lineStart, b) > t.width && b-lineStart > 1 {
			k := lineStart + 1
			for k < b && indent+t.advance(lineStart, k+1) <= t.width {
				k++
			}
			emit(k)
		}
		cur = b
	}
	emit(end)
	return y
}

func (t *Typesetter) appendLine(pr attributed.Range, para style.Paragraph, lo, hi int, indent, y float64) float64 {
	h := t.fontAt(lo).LineHeight()
	for i := lo; i < hi; i++ {
		h = max(h, t.fontAt(i).LineHeight())
	}
	h *= max(para.LineHeightMultiple, 1)

	spacing := para.LineSpacing
	n := len(t.runes)
	if hi == n && t.runes[n-1] != '\n' {
		spacing = 0
	}
	used := geom.Rect{X: indent, Y: y, W: t.advance(lo, hi), H: h + spacing}
	rh := used.H
	if hi == pr.End() {
		rh += para.ParagraphSpacing
	}
	t.lines = append(t.lines, Fragment{
		Rect:      geom.Rect{X: 0, Y: y, W: t.width, H: rh},
		UsedRect:  used,
		Range:     attributed.Range{Loc: lo, Len: hi - lo},
		Paragraph: para,
		Font:      t.fontAt(lo),
	})
	return y + rh
}
