package background

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/layout"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/protontest"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

// Cell font of size 10: narrow characters advance 5, lines are 12 tall,
// ascender 9, cap height 7, descender -3.
var body = typeface.NewFixed("Body", 10)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

func styled(text string, bg style.Background, para style.Paragraph) *attributed.String {
	return attributed.New(text, attributed.Attributes{
		style.KeyFont:            body,
		style.KeyBackgroundStyle: bg,
		style.KeyParagraphStyle:  para,
	})
}

func typeset(s *attributed.String, width float64) *layout.Typesetter {
	return layout.NewTypesetter(s, layout.WithWidth(width), layout.WithDefaultFont(body))
}

type settings struct {
	inset geom.Insets
}

func (d settings) DefaultFont() typeface.Face        { return body }
func (d settings) DefaultParagraph() style.Paragraph { return style.Paragraph{} }
func (d settings) TextContainerInset() geom.Insets   { return d.inset }

func TestLayout(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		bg    style.Background
		para  style.Paragraph
		width float64
		inset geom.Insets
		want  []geom.Rect
	}{
		{
			name: "match line",
			text: "hello",
			bg:   style.Background{Color: red},
			want: []geom.Rect{{X: 1, Y: 0, W: 25, H: 12}},
		},
		{
			name: "match container",
			text: "hello",
			bg:   style.Background{Color: red, WidthMode: style.WidthMatchContainer},
			want: []geom.Rect{{X: 1, Y: 0, W: 320, H: 12}},
		},
		{
			name:  "container inset",
			text:  "hello",
			bg:    style.Background{Color: red},
			inset: geom.Insets{Top: 8},
			want:  []geom.Rect{{X: 1, Y: 8, W: 25, H: 12}},
		},
		{
			name:  "wrapped",
			text:  "aaaa bbbb",
			bg:    style.Background{Color: red},
			width: 30,
			want:  []geom.Rect{{X: 1, Y: 0, W: 25, H: 12}, {X: 1, Y: 12, W: 20, H: 12}},
		},
		{
			name: "match text drops line spacing",
			text: "ab\ncd",
			bg:   style.Background{Color: red, HeightMode: style.MatchText},
			para: style.Paragraph{LineSpacing: 4},
			want: []geom.Rect{{X: 6, Y: 0, W: 10, H: 12}, {X: 6, Y: 16, W: 10, H: 12}},
		},
		{
			name:  "match text exact",
			text:  "aaaa bbbb",
			bg:    style.Background{Color: red, HeightMode: style.MatchTextExact},
			width: 30,
			want:  []geom.Rect{{X: 6, Y: 1, W: 25, H: 10}, {X: 6, Y: 13, W: 20, H: 10}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			width := tc.width
			if width == 0 {
				width = 320
			}
			s := styled(tc.text, tc.bg, tc.para)
			c := New(WithDelegate(settings{inset: tc.inset}))
			runs := c.Layout(s, typeset(s, width), s.FullRange())
			if len(runs) != 1 {
				t.Fatalf("got %d runs, want 1", len(runs))
			}
			if diff := cmp.Diff(tc.want, runs[0].Rects); diff != "" {
				t.Errorf("rects mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutMergesLine(t *testing.T) {
	big := typeface.NewFixed("Body", 20)
	s := attributed.New("a", attributed.Attributes{
		style.KeyFont:            body,
		style.KeyBackgroundStyle: style.Background{Color: red, HeightMode: style.MatchText},
	})
	s.Append("b", attributed.Attributes{
		style.KeyFont:            big,
		style.KeyBackgroundStyle: style.Background{Color: green},
	})
	runs := New().Layout(s, typeset(s, 320), s.FullRange())

	var got [][]geom.Rect
	for _, r := range runs {
		got = append(got, r.Rects)
	}
	want := [][]geom.Rect{
		{{X: 6, Y: 0, W: 5, H: 24}},
		{{X: 6, Y: 0, W: 10, H: 24}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged rects mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeBridgesGap(t *testing.T) {
	tests := []struct {
		name string
		next style.Background
		want geom.Rect
	}{
		{"coloured", style.Background{Color: green}, geom.R(1, 0, 9, 12)},
		{"clear", style.Background{Color: color.Transparent}, geom.R(1, 0, 5, 12)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := []item{{r: attributed.Rg(0, 1), bg: style.Background{Color: red}, rect: geom.R(1, 0, 5, 12)}}
			it := item{r: attributed.Rg(1, 1), bg: tc.next, rect: geom.R(10, 2, 5, 10)}
			got := merge(items, []int{0}, it)
			if want := geom.R(10, 0, 5, 12); got != want {
				t.Errorf("new rect = %v, want %v", got, want)
			}
			if items[0].rect != tc.want {
				t.Errorf("earlier rect = %v, want %v", items[0].rect, tc.want)
			}
		})
	}
}

func TestBlackIsClear(t *testing.T) {
	s := styled("hello", style.Background{Color: color.Black, Border: &style.Border{Color: blue, Width: 1}}, style.Paragraph{})
	c := New()
	runs := c.Layout(s, typeset(s, 320), s.FullRange())
	if len(runs) != 1 || !runs[0].Style.IsClear() || runs[0].Style.Border != nil || runs[0].Style.HeightMode != style.MatchText {
		t.Fatalf("black style laid out as %+v", runs)
	}
	rec := protontest.NewRecorder(320, 100)
	c.Draw(rec, s, typeset(s, 320), s.FullRange())
	if len(rec.Ops()) != 0 {
		t.Errorf("black highlight drew %q", rec.Ops())
	}
}

func TestDraw(t *testing.T) {
	border := &style.Border{Color: blue, Width: 2}
	tests := []struct {
		name  string
		text  string
		bg    style.Background
		width float64
		want  []string
	}{
		{
			name:  "joined lines",
			text:  "aaaa bbbb",
			bg:    style.Background{Color: red, Border: border},
			width: 30,
			want: []string{
				"save",
				"fill #ff0000ff M1 0 L26 0 L26 12 L1 12 L1 0 Z",
				"stroke #0000ffff w2 M1 0 L26 0 L26 12 L1 12 L1 0 Z",
				"fill #ff0000ff M1 12 L21 12 L21 24 L1 24 L1 12 Z",
				"stroke #0000ffff w4 M3 12 L3 12 M19 12 L19 12",
				"stroke #0000ffff w2 M1 12 L21 12 L21 24 L1 24 L1 12 Z M1 12 L1 12 M21 12 L21 12",
				"restore",
			},
		},
		{
			name:  "exact rectangles stand alone",
			text:  "aaaa bbbb",
			bg:    style.Background{Color: red, HeightMode: style.MatchTextExact, Border: border},
			width: 30,
			want: []string{
				"save",
				"fill #ff0000ff M6 1 L31 1 L31 11 L6 11 L6 1 Z",
				"stroke #0000ffff w2 M6 1 L31 1 L31 11 L6 11 L6 1 Z",
				"fill #ff0000ff M6 13 L26 13 L26 23 L6 23 L6 13 Z",
				"stroke #0000ffff w2 M6 13 L26 13 L26 23 L6 23 L6 13 Z",
				"restore",
			},
		},
		{
			name: "shadow",
			text: "hello",
			bg:   style.Background{Color: red, Shadow: &style.Shadow{Color: gray, Offset: geom.Size{H: 2}, Blur: 3}},
			want: []string{
				"save",
				"shadow #808080ff offset (0,2) blur 3",
				"fill #ff0000ff M1 0 L26 0 L26 12 L1 12 L1 0 Z",
				"shadow none",
				"restore",
			},
		},
		{
			name: "insets",
			text: "hello",
			bg:   style.Background{Color: red, Insets: geom.Insets{Top: 1, Left: 1, Bottom: 1, Right: 1}},
			want: []string{
				"save",
				"fill #ff0000ff M2 1 L25 1 L25 11 L2 11 L2 1 Z",
				"restore",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			width := tc.width
			if width == 0 {
				width = 320
			}
			s := styled(tc.text, tc.bg, style.Paragraph{})
			rec := protontest.NewRecorder(width, 100)
			New().Draw(rec, s, typeset(s, width), s.FullRange())
			protontest.CheckOps(t, tc.want, rec.Ops())
		})
	}
}

func TestDrawRectsSkipsEmpty(t *testing.T) {
	rec := protontest.NewRecorder(100, 100)
	DrawRects(rec, style.Background{Color: red, Border: &style.Border{Color: blue}}, []geom.Rect{
		geom.R(0, 0, 0, 12),
		geom.R(0, 12, 10, 12),
	})
	protontest.CheckOps(t, []string{
		"save",
		"fill #ff0000ff M0 12 L10 12 L10 24 L0 24 L0 12 Z",
		"stroke #0000ffff w0 M0 12 L10 12 L10 24 L0 24 L0 12 Z",
		"restore",
	}, rec.Ops())
}

func TestDrawRectsSeam(t *testing.T) {
	// Two wrapped lines of text with 4 of line spacing between them.
	rects := []geom.Rect{geom.R(6, 0, 25, 12), geom.R(6, 16, 20, 12)}
	tests := []struct {
		name string
		bg   style.Background
		want []string
	}{
		{
			name: "no border",
			bg:   style.Background{Color: red, HeightMode: style.MatchText},
			want: []string{
				"save",
				"fill #ff0000ff M6 0 L31 0 L31 12 L6 12 L6 0 Z",
				"fill #ff0000ff M6 16 L26 16 L26 28 L6 28 L6 16 Z",
				"stroke #ff0000ff w8 M6 14 L26 14",
				"restore",
			},
		},
		{
			name: "border in the fill colour",
			bg:   style.Background{Color: red, HeightMode: style.MatchText, Border: &style.Border{Color: red, Width: 2}},
			want: []string{
				"save",
				"fill #ff0000ff M6 0 L31 0 L31 12 L6 12 L6 0 Z",
				"stroke #ff0000ff w2 M6 0 L31 0 L31 12 L6 12 L6 0 Z",
				"fill #ff0000ff M6 16 L26 16 L26 28 L6 28 L6 16 Z",
				"stroke #ff0000ff w4 M8 12 L8 16 M24 12 L24 16",
				"stroke #ff0000ff w2 M6 16 L26 16 L26 28 L6 28 L6 16 Z M6 12 L6 16 M26 12 L26 16",
				"stroke #ff0000ff w10 M7 14 L25 14",
				"restore",
			},
		},
		{
			name: "distinct border shows",
			bg:   style.Background{Color: red, HeightMode: style.MatchText, Border: &style.Border{Color: blue, Width: 2}},
			want: []string{
				"save",
				"fill #ff0000ff M6 0 L31 0 L31 12 L6 12 L6 0 Z",
				"stroke #0000ffff w2 M6 0 L31 0 L31 12 L6 12 L6 0 Z",
				"fill #ff0000ff M6 16 L26 16 L26 28 L6 28 L6 16 Z",
				"stroke #0000ffff w4 M8 12 L8 16 M24 12 L24 16",
				"stroke #0000ffff w2 M6 16 L26 16 L26 28 L6 28 L6 16 Z M6 12 L6 16 M26 12 L26 16",
				"restore",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := protontest.NewRecorder(100, 100)
			DrawRects(rec, tc.bg, rects)
			protontest.CheckOps(t, tc.want, rec.Ops())
		})
	}
}

func TestCorners(t *testing.T) {
	var none geom.Rect
	wide := geom.R(1, 0, 25, 12)
	narrow := geom.R(1, 12, 20, 12)
	shifted := geom.R(10, 24, 30, 12)

	tests := []struct {
		name             string
		prev, cur, next  geom.Rect
		radius           float64
		corners, squared paint.Corner
	}{
		{"alone", none, wide, none, 4, paint.AllCorners, paint.AllCorners},
		{"first over narrower", none, wide, narrow, 4, paint.TopLeft | paint.TopRight | paint.BottomRight, paint.TopLeft | paint.BottomLeft},
		{"last under wider", wide, narrow, none, 4, paint.BottomLeft | paint.BottomRight, paint.TopRight | paint.BottomRight},
		{"middle", wide, narrow, shifted, 4, paint.BottomLeft, 0},
		{"last shifted right", narrow, shifted, none, 4, paint.TopRight | paint.BottomLeft | paint.BottomRight, paint.TopRight | paint.BottomRight},
		{"no overlap with previous", geom.R(50, 0, 10, 12), geom.R(0, 12, 20, 12), none, 4, paint.AllCorners, paint.TopRight | paint.BottomRight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Corners(tc.prev, tc.cur, tc.next, tc.radius); got != tc.corners {
				t.Errorf("Corners = %v, want %v", got, tc.corners)
			}
			if got := SquaredOffCorners(tc.prev, tc.cur, tc.next); got != tc.squared {
				t.Errorf("SquaredOffCorners = %v, want %v", got, tc.squared)
			}
		})
	}
}
