// Package protontest contains utilities for testing drawing code: a
// mock devdraw display and a recording paint.Canvas, both of which
// capture what was drawn as readable op strings.
package protontest

import (
	"fmt"
	"image"
	"sync"
	"unicode/utf8"

	"github.com/rjkroege/proton/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

const (
	fwidth  = 7
	fheight = 13
)

// GettableDrawOps display implementations can provide a list of the
// executed draw ops.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	mu          sync.Mutex
	drawops     []string
	screenimage draw.Image
}

// NewDisplay returns a mock draw.Display whose screen image covers r.
func NewDisplay(r image.Rectangle) draw.Display {
	md := &mockDisplay{}
	md.screenimage = &mockImage{d: md, n: "screen", c: draw.Notacolor, r: r}
	return md
}

func (d *mockDisplay) ScreenImage() draw.Image { return d.screenimage }

func (d *mockDisplay) White() draw.Image {
	return &mockImage{d: d, n: "white", c: draw.White}
}
func (d *mockDisplay) Black() draw.Image {
	return &mockImage{d: d, n: "black", c: draw.Black}
}
func (d *mockDisplay) Opaque() draw.Image {
	return &mockImage{d: d, n: "opaque", c: draw.Opaque}
}
func (d *mockDisplay) Transparent() draw.Image {
	return &mockImage{d: d, n: "transparent", c: draw.Transparent}
}
func (d *mockDisplay) InitKeyboard() *draw.Keyboardctl { return &draw.Keyboardctl{} }
func (d *mockDisplay) InitMouse() *draw.Mousectl       { return &draw.Mousectl{} }

func (d *mockDisplay) OpenFont(name string) (draw.Font, error) {
	return NewFont(fwidth, fheight), nil
}

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	return &mockImage{d: d, r: r, c: val, repl: repl}, nil
}

func (d *mockDisplay) Attach(ref int) error { return nil }
func (d *mockDisplay) Flush() error         { return nil }

func (d *mockDisplay) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.drawops...)
}

func (d *mockDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = nil
}

func (d *mockDisplay) record(op string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = append(d.drawops, op)
}

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r    image.Rectangle
	d    *mockDisplay
	n    string
	c    draw.Color
	repl bool
	load int
}

// NewImage returns a mock draw.Image with the given bounds.
func NewImage(display draw.Display, name string, r image.Rectangle) draw.Image {
	return &mockImage{d: display.(*mockDisplay), n: name, c: draw.Notacolor, r: r}
}

func (i *mockImage) Display() draw.Display { return i.d }
func (i *mockImage) Pix() draw.Pix         { return 0 }
func (i *mockImage) R() image.Rectangle    { return i.r }

func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	srcname := "nil"
	if msrc, ok := src.(*mockImage); ok {
		srcname = msrc.N()
	}
	if msrc, ok := src.(*mockImage); ok && msrc.repl {
		i.d.record(fmt.Sprintf("%s <- fill %v %s", i.n, r, srcname))
		return
	}
	i.d.record(fmt.Sprintf("%s <- draw %v src: %s p1: %v", i.n, r, srcname, p1))
}

func (i *mockImage) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	srcname := "nil"
	if msrc, ok := src.(*mockImage); ok {
		srcname = msrc.N()
	}
	i.d.record(fmt.Sprintf("%s <- string %q atpoint: %v fill: %s", i.n, string(b), pt, srcname))
	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *mockImage) Free() error { return nil }

func (i *mockImage) Load(r image.Rectangle, data []byte) (int, error) {
	i.load += len(data)
	i.d.record(fmt.Sprintf("%s <- load %v %d bytes", i.N(), r, len(data)))
	return len(data), nil
}

// N returns a nicename for the image colour.
func (i *mockImage) N() string {
	name := i.n
	if i.c != draw.Notacolor && name == "" {
		name = NiceColourName(i.c)
		if !i.repl {
			name = fmt.Sprintf("%s-%v", name, i.r)
		}
	}
	return name
}

var _ = draw.Font((*mockFont)(nil))

// mockFont implements draw.Font as a fixed width font.
type mockFont struct {
	width, height int
}

// NewFont returns a draw.Font that mocks a fixed-width font.
func NewFont(width, height int) draw.Font {
	return &mockFont{width: width, height: height}
}

func (f *mockFont) Name() string             { return "mock" }
func (f *mockFont) Height() int              { return f.height }
func (f *mockFont) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *mockFont) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }

// NiceColourName names the devdraw palette colours and prints the rest
// in hex.
func NiceColourName(num draw.Color) string {
	switch num {
	case draw.Black:
		return "Black"
	case draw.White:
		return "White"
	case draw.Transparent:
		return "Transparent"
	case draw.Paleyellow:
		return "Paleyellow"
	case draw.Notacolor:
		return "Notacolor"
	}
	return fmt.Sprintf("#%08x", uint32(num))
}
