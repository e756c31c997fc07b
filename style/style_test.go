package style

import (
	"image/color"
	"testing"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/typeface"
)

func TestParagraphLevel(t *testing.T) {
	tests := []struct {
		indent, unit float64
		want         int
	}{
		{0, 25, 0},
		{25, 25, 1},
		{50, 25, 2},
		{60, 25, 2},
		{50, 0, 0},
		{50, -1, 0},
	}
	for _, tc := range tests {
		p := Paragraph{FirstLineHeadIndent: tc.indent}
		if got := p.Level(tc.unit); got != tc.want {
			t.Errorf("Level(%v) with indent %v = %d, want %d", tc.unit, tc.indent, got, tc.want)
		}
	}
	p := Paragraph{LineSpacing: 4}.Indented(3, 20)
	if p.FirstLineHeadIndent != 60 || p.HeadIndent != 60 || p.LineSpacing != 4 {
		t.Errorf("Indented(3, 20) = %+v", p)
	}
}

func TestListTag(t *testing.T) {
	if !ListNumbered.IsNumbered() || ListBulleted.IsNumbered() {
		t.Error("IsNumbered wrong")
	}
	if !ListChecklist.IsChecklist() || !ListChecklistChecked.IsChecklist() || ListNumbered.IsChecklist() {
		t.Error("IsChecklist wrong")
	}
	if ListChecklist.Toggled() != ListChecklistChecked || ListChecklistChecked.Toggled() != ListChecklist {
		t.Error("checklist toggle wrong")
	}
	if ListBulleted.Toggled() != ListBulleted {
		t.Error("bullet toggled")
	}
}

func TestBackgroundEqual(t *testing.T) {
	a := Background{
		Color:  color.RGBA{R: 255, A: 255},
		Corner: Absolute(4),
		Border: &Border{Color: color.Black, Width: 1},
	}
	b := a
	b.Border = &Border{Color: color.RGBA{A: 255}, Width: 1}
	if !a.Equal(b) {
		t.Error("backgrounds with equal border values compare unequal")
	}
	b.Border.Width = 2
	if a.Equal(b) {
		t.Error("different border widths compare equal")
	}
	c := a
	c.Shadow = &Shadow{Color: color.Black, Blur: 2}
	if a.Equal(c) {
		t.Error("shadow presence ignored")
	}
	if a.Equal("not a background") {
		t.Error("foreign type compared equal")
	}

	// Equal backgrounds in separate allocations must still merge runs.
	s := attributed.New("abcd", nil)
	s.AddAttribute(KeyBackgroundStyle, a, attributed.Rg(0, 2))
	border := *a.Border
	d := a
	d.Border = &border
	s.AddAttribute(KeyBackgroundStyle, d, attributed.Rg(2, 2))
	_, r, ok := s.AttributeRange(KeyBackgroundStyle, 0)
	if !ok || r != attributed.Rg(0, 4) {
		t.Errorf("background range = %v, want {0, 4}", r)
	}
}

func TestIsClearColor(t *testing.T) {
	tests := []struct {
		c    color.Color
		want bool
	}{
		{nil, true},
		{color.Black, true},
		{color.Transparent, true},
		{color.RGBA{R: 1, A: 255}, false},
		{color.White, false},
	}
	for _, tc := range tests {
		if got := IsClearColor(tc.c); got != tc.want {
			t.Errorf("IsClearColor(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestCornerRadius(t *testing.T) {
	r := geom.R(0, 0, 100, 20)
	if got := Absolute(5).RadiusFor(r); got != 5 {
		t.Errorf("absolute radius = %v", got)
	}
	if got := Relative(25).RadiusFor(r); got != 5 {
		t.Errorf("relative radius = %v", got)
	}
}

func TestAccessors(t *testing.T) {
	body := typeface.NewFixed("Body", 10)
	s := attributed.New("a\nb", attributed.Attributes{
		KeyFont:           body,
		KeyListItem:       ListNumbered,
		KeyListItemValue:  "g1",
		KeyParagraphStyle: Paragraph{FirstLineHeadIndent: 25},
	})
	s.AddAttribute(KeySkipNextListMarker, true, attributed.Rg(1, 1))

	if tag, ok := ListItem(s, 0); !ok || tag != ListNumbered {
		t.Errorf("ListItem = %v, %v", tag, ok)
	}
	if g, ok := ListItemValue(s, 2); !ok || g != "g1" {
		t.Errorf("ListItemValue = %v, %v", g, ok)
	}
	if p := ParagraphOr(s, 5, Paragraph{HeadIndent: 7}); p.HeadIndent != 7 {
		t.Errorf("ParagraphOr out of range = %+v", p)
	}
	if f := FontOr(s, 0, nil); f != typeface.Face(body) {
		t.Errorf("FontOr = %v", f)
	}
	if !SkipsNextListMarker(s, 1) || SkipsNextListMarker(s, 0) {
		t.Error("SkipsNextListMarker wrong")
	}
	if _, ok := ForegroundColor(s, 0); ok {
		t.Error("unexpected foreground colour")
	}
	locked := LockedAttributes(attributed.Attributes{KeyLockedAttributes: []attributed.Key{KeyBackgroundStyle}})
	if len(locked) != 1 || locked[0] != KeyBackgroundStyle {
		t.Errorf("LockedAttributes = %v", locked)
	}
}
