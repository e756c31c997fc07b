// Package typeface supplies the font metrics the layout, list and
// background engines consume.
//
// Two implementations are provided. Fixed is a cell font whose metrics
// are simple multiples of the point size; tests use it because every
// measurement is predictable. OpenType wraps a parsed TrueType/OpenType
// font through golang.org/x/image/font.
package typeface

import (
	"strings"

	"github.com/rjkroege/proton/geom"
)

// Face is a font at a specific point size.
type Face interface {
	Name() string
	PointSize() float64

	// Vertical metrics, relative to the baseline. Descender is negative.
	Ascender() float64
	Descender() float64
	CapHeight() float64
	LineHeight() float64

	// Advance returns the advance width of s.
	Advance(s string) float64

	// Bounds returns the ink bounds of s with the origin on the baseline
	// at the pen start. Y grows downwards.
	Bounds(s string) geom.Rect

	// IsEmoji reports whether this face is the platform emoji face.
	IsEmoji() bool

	// WithSize returns the same face at a different point size.
	WithSize(pt float64) Face
}

// EmojiFaceName is the name the host toolkit gives its emoji face.
const EmojiFaceName = "AppleColorEmoji"

// IsEmojiName reports whether a face name denotes an emoji face.
func IsEmojiName(name string) bool {
	return strings.Contains(strings.ToLower(name), "emoji")
}

// ContainsEmoji reports whether s holds a character from one of the
// emoji blocks.
func ContainsEmoji(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x1F600 && r <= 0x1F64F, // emoticons
			r >= 0x1F300 && r <= 0x1F5FF, // misc symbols and pictographs
			r >= 0x1F680 && r <= 0x1F6FF, // transport and map
			r >= 0x2600 && r <= 0x26FF, // misc symbols
			r >= 0x2700 && r <= 0x27BF, // dingbats
			r >= 0xFE00 && r <= 0xFE0F, // variation selectors
			r >= 0x1F900 && r <= 0x1F9FF, // supplemental symbols and pictographs
			r >= 0x1F1E6 && r <= 0x1F1FF: // flags
			return true
		}
	}
	return false
}
