package listlayout

import (
	"fmt"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/layout"
	"github.com/rjkroege/proton/marker"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

const unit = 25.0

// Cell font of size 10: narrow characters advance 5, lines are 12 tall.
var body = typeface.NewFixed("Body", 10)

type para struct {
	text  string
	tag   style.ListTag
	group string
	level int
}

func doc(ps ...para) *attributed.String {
	s := attributed.New("", nil)
	for _, p := range ps {
		a := attributed.Attributes{
			style.KeyFont:           body,
			style.KeyParagraphStyle: style.Paragraph{}.Indented(p.level, unit),
		}
		if p.tag != "" {
			a[style.KeyListItem] = p.tag
		}
		if p.group != "" {
			a[style.KeyListItemValue] = p.group
		}
		s.Append(p.text, a)
	}
	return s
}

// recorder is a MarkerHost that logs what it is asked to do.
type recorder struct {
	ops []string
}

func (r *recorder) AddMarker(m Model)    { r.ops = append(r.ops, fmt.Sprintf("add @%d", m.Key)) }
func (r *recorder) UpdateMarker(m Model) { r.ops = append(r.ops, fmt.Sprintf("update @%d", m.Key)) }
func (r *recorder) RemoveMarker(m Model) { r.ops = append(r.ops, fmt.Sprintf("remove @%d", m.Key)) }
func (r *recorder) RemoveAllMarkers()    { r.ops = append(r.ops, "clear") }

func (r *recorder) take() []string {
	ops := r.ops
	r.ops = nil
	return ops
}

// numbers is a resolver that logs index/level/previousLevel of each
// call and draws "n.".
type numbers struct {
	calls []string
}

func (n *numbers) Resolve(index, level, previousLevel int, tag style.ListTag) marker.Marker {
	n.calls = append(n.calls, fmt.Sprintf("%d/%d/%d", index, level, previousLevel))
	return marker.Text(fmt.Sprintf("%d.", index+1))
}

func newEngine(h MarkerHost, r marker.Resolver, opts ...Option) *Engine {
	d := &Settings{Indentation: unit, Font: body, Resolver: r}
	return New(h, append([]Option{WithDelegate(d)}, opts...)...)
}

func draw(e *Engine, s *attributed.String, width float64) []string {
	e.Draw(s, layout.NewTypesetter(s, layout.WithWidth(width), layout.WithDefaultFont(body)))
	var out []string
	for _, m := range e.Models() {
		out = append(out, m.String())
	}
	return out
}

func TestDrawNumbering(t *testing.T) {
	tests := []struct {
		name   string
		doc    *attributed.String
		width  float64
		calls  []string
		models []string
	}{
		{
			name: "two items",
			doc: doc(
				para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "b\n", tag: style.ListNumbered, group: "g1", level: 1},
			),
			calls: []string{"0/1/0", "1/1/1", "2/1/1"},
			models: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@2 L1 #1 listItemNumber text "2." (0,12 25x12)`,
				`@4 L1 #2 listItemNumber text "3." (0,24 25x12)`,
			},
		},
		{
			name: "group continues past plain text",
			doc: doc(
				para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "b\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "plain\n"},
				para{text: "c\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "d", tag: style.ListNumbered, group: "g1", level: 1},
			),
			calls: []string{"0/1/0", "1/1/1", "2/1/0", "3/1/1"},
			models: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@2 L1 #1 listItemNumber text "2." (0,12 25x12)`,
				`@10 L1 #2 listItemNumber text "3." (0,36 25x12)`,
				`@12 L1 #3 listItemNumber text "4." (0,48 25x12)`,
			},
		},
		{
			name: "ungrouped restarts after plain text",
			doc: doc(
				para{text: "a\n", tag: style.ListNumbered, level: 1},
				para{text: "b\n", tag: style.ListNumbered, level: 1},
				para{text: "plain\n"},
				para{text: "c\n", tag: style.ListNumbered, level: 1},
				para{text: "d", tag: style.ListNumbered, level: 1},
			),
			calls: []string{"0/1/0", "1/1/1", "0/1/0", "1/1/1"},
			models: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@2 L1 #1 listItemNumber text "2." (0,12 25x12)`,
				`@10 L1 #0 listItemNumber text "1." (0,36 25x12)`,
				`@12 L1 #1 listItemNumber text "2." (0,48 25x12)`,
			},
		},
		{
			name: "nesting restarts",
			doc: doc(
				para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "b\n", tag: style.ListNumbered, group: "g1", level: 2},
				para{text: "c\n", tag: style.ListNumbered, group: "g1", level: 2},
				para{text: "d\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "e", tag: style.ListNumbered, group: "g1", level: 2},
			),
			calls: []string{"0/1/0", "0/2/1", "1/2/2", "1/1/2", "0/2/1"},
			models: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@2 L2 #0 listItemNumber text "1." (0,12 50x12)`,
				`@4 L2 #1 listItemNumber text "2." (0,24 50x12)`,
				`@6 L1 #1 listItemNumber text "2." (0,36 25x12)`,
				`@8 L2 #0 listItemNumber text "1." (0,48 50x12)`,
			},
		},
		{
			name: "wrapped line has no marker",
			doc: doc(
				para{text: "aaaa bbbb\n", tag: style.ListNumbered, level: 1},
			),
			width: 55,
			calls: []string{"0/1/0", "1/1/1"},
			models: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@10 L1 #1 listItemNumber text "2." (0,24 25x12)`,
			},
		},
		{
			name: "level zero draws nothing",
			doc: doc(
				para{text: "a\n", tag: style.ListBulleted},
				para{text: "b", tag: style.ListBulleted},
			),
		},
		{
			name: "bullets are not counted",
			doc: doc(
				para{text: "a\n", tag: style.ListBulleted, level: 1},
				para{text: "b", tag: style.ListBulleted, level: 1},
			),
			calls: []string{"0/1/0", "0/1/1"},
			models: []string{
				`@0 L1 #0 listItemBullet text "1." (0,0 25x12)`,
				`@2 L1 #0 listItemBullet text "1." (0,12 25x12)`,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			width := tc.width
			if width == 0 {
				width = 320
			}
			n := &numbers{}
			e := newEngine(nil, n)
			got := draw(e, tc.doc, width)
			if diff := cmp.Diff(tc.calls, n.calls); diff != "" {
				t.Errorf("resolver calls mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.models, got); diff != "" {
				t.Errorf("models mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDrawClampsLevelJump(t *testing.T) {
	s := doc(
		para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
		para{text: "b\n", tag: style.ListNumbered, group: "g1", level: 3},
	)
	n := &numbers{}
	got := draw(newEngine(nil, n), s, 320)

	want := []string{
		`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
		`@2 L2 #0 listItemNumber text "1." (0,12 50x12)`,
		`@4 L2 #1 listItemNumber text "2." (0,24 50x12)`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
	p, ok := style.ParagraphStyle(s, 2)
	if !ok || p.FirstLineHeadIndent != 50 || p.HeadIndent != 50 {
		t.Errorf("paragraph at 2 = %+v, want indents of 50", p)
	}
}

func TestDrawSkipNextListMarker(t *testing.T) {
	tests := []struct {
		name string
		skip int
		want []string
	}{
		{
			name: "inner newline",
			skip: 1,
			want: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@4 L1 #1 listItemNumber text "2." (0,24 25x12)`,
			},
		},
		{
			name: "final newline",
			skip: 3,
			want: []string{
				`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
				`@2 L1 #1 listItemNumber text "2." (0,12 25x12)`,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := doc(
				para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
				para{text: "b\n", tag: style.ListNumbered, group: "g1", level: 1},
			)
			s.AddAttribute(style.KeySkipNextListMarker, true, attributed.Rg(tc.skip, 1))
			got := draw(newEngine(nil, &numbers{}), s, 320)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("models mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDrawTrailingMarkerNeedsSameLevel(t *testing.T) {
	s := doc(
		para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
		para{text: "indented\n", level: 2},
	)
	got := draw(newEngine(nil, &numbers{}), s, 320)
	want := []string{`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawAdjacentListKinds(t *testing.T) {
	s := doc(
		para{text: "a\n", tag: style.ListNumbered, group: "g1", level: 1},
		para{text: "b", tag: style.ListChecklist, level: 1},
	)
	got := draw(newEngine(nil, &numbers{}), s, 320)
	want := []string{
		`@0 L1 #0 listItemNumber text "1." (0,0 25x12)`,
		`@2 L1 #0 listItemChecklist text "1." (0,12 25x12)`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile(t *testing.T) {
	h := &recorder{}
	e := newEngine(h, marker.NewStandard())
	s := doc(
		para{text: "a\n", tag: style.ListChecklist, level: 1},
		para{text: "b\n", tag: style.ListChecklist, level: 1},
	)

	first := draw(e, s, 320)
	if diff := cmp.Diff([]string{"add @0", "add @2", "add @4"}, h.take()); diff != "" {
		t.Errorf("first pass ops (-want +got):\n%s", diff)
	}

	again := draw(e, s, 320)
	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"update @0", "update @2", "update @4"}, h.take()); diff != "" {
		t.Errorf("second pass ops (-want +got):\n%s", diff)
	}

	s.AddAttribute(style.KeyListItem, style.ListChecklistChecked, attributed.Rg(2, 2))
	toggled := draw(e, s, 320)
	want := []string{
		`@0 L1 #0 listItemChecklist image 16x16 (0,0 25x12)`,
		`@2 L1 #0 listItemSelectedChecklist image 16x16 checked (0,12 25x12)`,
		`@4 L1 #0 listItemSelectedChecklist image 16x16 checked (0,24 25x12)`,
	}
	if diff := cmp.Diff(want, toggled); diff != "" {
		t.Errorf("toggled models (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"update @0", "update @2", "update @4"}, h.take()); diff != "" {
		t.Errorf("toggle ops (-want +got):\n%s", diff)
	}

	s.Replace(attributed.Rg(2, 2), "", nil)
	draw(e, s, 320)
	if diff := cmp.Diff([]string{"remove @4", "update @0", "update @2"}, h.take()); diff != "" {
		t.Errorf("delete ops (-want +got):\n%s", diff)
	}

	s.Replace(s.FullRange(), "plain", attributed.Attributes{style.KeyFont: body})
	if got := draw(e, s, 320); len(got) != 0 {
		t.Errorf("models after clear = %v", got)
	}
	if diff := cmp.Diff([]string{"clear"}, h.take()); diff != "" {
		t.Errorf("clear ops (-want +got):\n%s", diff)
	}
}

func TestClearForgetsModels(t *testing.T) {
	h := &recorder{}
	e := newEngine(h, nil)
	s := doc(para{text: "a", tag: style.ListBulleted, level: 1})
	draw(e, s, 320)
	e.Clear()
	if len(e.Models()) != 0 {
		t.Fatal("Clear kept models")
	}
	h.take()
	draw(e, s, 320)
	if diff := cmp.Diff([]string{"add @0"}, h.take()); diff != "" {
		t.Errorf("ops after Clear (-want +got):\n%s", diff)
	}
}

func TestMarkerPlacement(t *testing.T) {
	big := typeface.NewFixed("Body", 20)

	t.Run("filler takes the next font", func(t *testing.T) {
		s := attributed.New("", nil)
		a := attributed.Attributes{
			style.KeyFont:           body,
			style.KeyListItem:       style.ListBulleted,
			style.KeyParagraphStyle: style.Paragraph{}.Indented(1, unit),
		}
		s.Append(string(style.BlankLineFiller), a)
		b := a.Copy()
		b[style.KeyFont] = big
		s.Append("x\n", b)

		e := newEngine(nil, nil)
		draw(e, s, 320)
		m := e.Models()[0]
		if m.Marker.Text != marker.DefaultGlyph || m.Marker.Font.PointSize() != 20 {
			t.Errorf("marker = %q at %v pt, want %q at 20", m.Marker.Text, m.Marker.Font.PointSize(), marker.DefaultGlyph)
		}
		if m.Marker.Color != DefaultColor {
			t.Errorf("marker colour = %v, want default", m.Marker.Color)
		}
	})

	t.Run("line spacing and inset", func(t *testing.T) {
		s := attributed.New("a\n", attributed.Attributes{
			style.KeyFont:           body,
			style.KeyListItem:       style.ListBulleted,
			style.KeyParagraphStyle: style.Paragraph{LineSpacing: 4}.Indented(1, unit),
		})
		d := &Settings{Indentation: unit, Font: body, Inset: geom.Insets{Top: 8}}
		e := New(nil, WithDelegate(d))
		draw(e, s, 320)
		if got, want := e.Models()[0].Rect, geom.R(0, 8, 25, 12); got != want {
			t.Errorf("marker rect = %v, want %v", got, want)
		}
	})

	t.Run("image scaled to font", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 32, 32))
		r := marker.ResolverFunc(func(index, level, previousLevel int, tag style.ListTag) marker.Marker {
			return marker.Image(img, geom.Size{W: 32, H: 32})
		})
		e := newEngine(nil, r)
		draw(e, doc(para{text: "a", tag: style.ListBulleted, level: 1}), 320)
		m := e.Models()[0].Marker
		if m.Size.W != 10.0/3 || m.Image.Bounds().Dx() != 4 {
			t.Errorf("image marker size %v with %v pixels", m.Size, m.Image.Bounds())
		}
	})
}

type rules struct{ n int }

func (r *rules) DrawHorizontalLines() { r.n++ }

func TestHorizontalLinesHook(t *testing.T) {
	r := &rules{}
	e := newEngine(nil, nil, WithHorizontalLines(r))
	s := doc(para{text: "plain"})
	draw(e, s, 320)
	draw(e, s, 320)
	if r.n != 2 {
		t.Errorf("hook ran %d times, want 2", r.n)
	}
}
