package protontest

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/golang/freetype/raster"

	"github.com/rjkroege/proton/draw"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/paint"
	"github.com/rjkroege/proton/typeface"
)

var red = color.RGBA{R: 255, A: 255}

func TestRecorderOps(t *testing.T) {
	r := NewRecorder(100, 50)
	r.Save()
	r.SetShadow(&paint.Shadow{Color: color.Black, Offset: geom.Size{W: 1, H: 2}, Blur: 3})
	r.Fill(paint.Rect(geom.R(0, 0, 4, 2)), red)
	r.SetShadow(nil)
	r.Stroke(paint.Line(geom.Pt(0, 0), geom.Pt(4, 0)), color.Black, 1)
	r.Restore()
	r.DrawText("1.", typeface.NewFixed("Body", 10), color.Black, geom.Pt(3, 9))
	r.DrawImage(image.NewRGBA(image.Rect(0, 0, 16, 16)), geom.R(0, 12, 16, 16))

	CheckOps(t, []string{
		"save",
		"shadow #000000ff offset (1,2) blur 3",
		"fill #ff0000ff M0 0 L4 0 L4 2 L0 2 L0 0 Z",
		"shadow none",
		"stroke #000000ff w1 M0 0 L4 0",
		"restore",
		`text "1." Body@10 #000000ff at (3,9)`,
		"image 16x16 in (0,12 16x16)",
	}, r.Ops())

	var sb strings.Builder
	if err := r.SVG(&sb); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	svg := sb.String()
	for _, want := range []string{
		`<path d="M0 0 L4 0 L4 2 L0 2 L0 0 Z" fill="rgba(255,0,0,1)"`,
		`<path d="M1 2 L5 2 L5 4 L1 4 L1 2 Z" fill="rgba(0,0,0,1)"`,
		`>1.</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q:\n%s", want, svg)
		}
	}

	r.Clear()
	if len(r.Ops()) != 0 {
		t.Error("Clear left ops")
	}
}

func TestDiffOps(t *testing.T) {
	if d := DiffOps([]string{"a", "b"}, []string{"a", "b"}); d != "" {
		t.Errorf("equal listings diff = %q", d)
	}
	d := DiffOps([]string{"a", "b", "c"}, []string{"a", "x", "c"})
	for _, want := range []string{"  a\n", "- b\n", "+ x\n", "  c\n"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}
}

func TestDrawCanvasOnMockDisplay(t *testing.T) {
	d := NewDisplay(image.Rect(0, 0, 200, 100))
	font, err := d.OpenFont("mock")
	if err != nil {
		t.Fatal(err)
	}
	c := draw.NewCanvas(d.ScreenImage(), image.Pt(10, 10), font)
	c.Fill(paint.Rect(geom.R(0, 0, 4, 2)), red)
	c.DrawText("1.", typeface.NewFixed("Body", 10), color.Black, geom.Pt(0, 9))
	c.DrawImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), geom.R(0, 20, 2, 2))

	CheckOps(t, []string{
		"screen <- fill (10,10)-(14,12) #ff0000ff",
		`screen <- string "1." atpoint: (10,10) fill: Black`,
		"Transparent-(0,0)-(2,2) <- load (0,0)-(2,2) 16 bytes",
		"screen <- draw (10,30)-(12,32) src: Transparent-(0,0)-(2,2) p1: (0,0)",
	}, d.(GettableDrawOps).DrawOps())
}

func TestCoalesce(t *testing.T) {
	got := draw.Coalesce([]raster.Span{{Y: 0, X0: 0, X1: 4}, {Y: 1, X0: 0, X1: 4}, {Y: 2, X0: 1, X1: 3}})
	want := []image.Rectangle{image.Rect(0, 0, 4, 2), image.Rect(1, 2, 3, 3)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Coalesce = %v, want %v", got, want)
	}
}
