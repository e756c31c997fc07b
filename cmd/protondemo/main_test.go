package main

import (
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rjkroege/proton/config"
)

func TestRender(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Font = "fixed"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	v, err := build(cfg, sample, logger)
	if err != nil {
		t.Fatal(err)
	}
	// One marker per list paragraph.
	if got, want := len(v.Markers()), 6; got != want {
		t.Errorf("got %d markers, want %d", got, want)
	}

	dir := t.TempDir()
	svg := filepath.Join(dir, "out.svg")
	if err := render(v, cfg, svg, 1); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Errorf("no svg element in %q", b)
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := render(v, cfg, pngPath, 2); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	size := v.Size()
	if got, want := img.Bounds().Dx(), int(math.Ceil(size.W * 2)); got != want {
		t.Errorf("png width = %d, want %d", got, want)
	}

	if err := render(v, cfg, filepath.Join(dir, "out.gif"), 1); err == nil {
		t.Error("gif output accepted")
	}
}
