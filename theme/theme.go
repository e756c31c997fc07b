package theme

import (
	"image/color"

	"github.com/rjkroege/proton/draw"
)

type Palette struct {
	Text        draw.Color
	Background  draw.Color
	Marker      draw.Color
	Checkbox    draw.Color
	Highlight   draw.Color
	HighlightBd draw.Color
	Shadow      draw.Color
}

var (
	darkMode bool
	current  = lightPalette
)

var lightPalette = Palette{
	Text:        draw.Black,
	Background:  draw.White,
	Marker:      0x444444FF,
	Checkbox:    0x2266AAFF,
	Highlight:   draw.Paleyellow,
	HighlightBd: 0x99994CFF,
	Shadow:      0x00000040,
}

var darkPalette = Palette{
	Text:        0xEEEEEEFF,
	Background:  0x222222FF,
	Marker:      0xAAAAAAFF,
	Checkbox:    0x6699CCFF,
	Highlight:   0x444400FF,
	HighlightBd: 0x888844FF,
	Shadow:      0xFFFFFF30,
}

// SetDarkMode selects between the light and dark palettes.
func SetDarkMode(enabled bool) {
	darkMode = enabled
	if enabled {
		current = darkPalette
	} else {
		current = lightPalette
	}
}

// IsDarkMode reports the current mode.
func IsDarkMode() bool { return darkMode }

// Current returns the active colour palette.
func Current() Palette { return current }

// Named returns the palette called name, "light" or "dark".
func Named(name string) (Palette, bool) {
	switch name {
	case "", "light":
		return lightPalette, true
	case "dark":
		return darkPalette, true
	}
	return Palette{}, false
}

// RGBA converts a devdraw colour (0xRRGGBBAA, not premultiplied) to a Go
// colour.
func RGBA(c draw.Color) color.Color {
	return color.NRGBA{R: uint8(c >> 24), G: uint8(c >> 16), B: uint8(c >> 8), A: uint8(c)}
}
