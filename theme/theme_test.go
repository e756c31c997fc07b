package theme

import (
	"image/color"
	"testing"
)

func TestSetDarkMode(t *testing.T) {
	defer SetDarkMode(false)

	SetDarkMode(true)
	if !IsDarkMode() || Current() != darkPalette {
		t.Errorf("dark mode not selected")
	}
	SetDarkMode(false)
	if IsDarkMode() || Current() != lightPalette {
		t.Errorf("light mode not selected")
	}
}

func TestNamed(t *testing.T) {
	for _, name := range []string{"", "light", "dark"} {
		if _, ok := Named(name); !ok {
			t.Errorf("Named(%q) not found", name)
		}
	}
	if _, ok := Named("sepia"); ok {
		t.Errorf("Named(sepia) found")
	}
}

func TestRGBA(t *testing.T) {
	if got, want := RGBA(0x11223380), (color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}); got != want {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
}
