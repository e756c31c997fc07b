// Package docfile implements encoding and decoding of proton document
// files.
//
// A document file describes rich text paragraph by paragraph: its list
// membership, nesting level and highlights. It is the fixture format of
// the demo and of end-to-end tests, and is read from JSON or YAML.
package docfile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/typeface"
)

const version = 1

// ErrVersion is returned for files written in another format version.
var ErrVersion = errors.New("unsupported document format")

// Document stores a rich text document.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
}

// Paragraph is one line-break terminated run of text.
type Paragraph struct {
	Text string `json:"text" yaml:"text"`

	// List is "bullet", "number", "checklist" or "checked". Empty for
	// plain text.
	List string `json:"list,omitempty" yaml:"list,omitempty"`
	// Level is the nesting level of a list item. Zero means 1.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`
	// Group names the list a numbered item counts in.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
	// SkipMarker suppresses the marker of the item that follows.
	SkipMarker bool `json:"skipMarker,omitempty" yaml:"skipMarker,omitempty"`

	// Background highlights the whole paragraph.
	Background *Background `json:"background,omitempty" yaml:"background,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// Highlight applies a background to the runes [Start, End) of a
// paragraph.
type Highlight struct {
	Start      int        `json:"start" yaml:"start"`
	End        int        `json:"end" yaml:"end"`
	Background Background `json:"background" yaml:"background"`
}

// Background is the file form of style.Background. Colours are written
// as #rrggbb or #rrggbbaa.
type Background struct {
	Color string `json:"color" yaml:"color"`
	// Height is "line", "text" or "exact". Width is "text" or
	// "container".
	Height string `json:"height,omitempty" yaml:"height,omitempty"`
	Width  string `json:"width,omitempty" yaml:"width,omitempty"`

	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	// RelativeRadius makes Radius a percentage of the line height.
	RelativeRadius  bool    `json:"relativeRadius,omitempty" yaml:"relativeRadius,omitempty"`
	SquaredOffJoins bool    `json:"squaredOffJoins,omitempty" yaml:"squaredOffJoins,omitempty"`
	Inset           float64 `json:"inset,omitempty" yaml:"inset,omitempty"`

	BorderColor string  `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	BorderWidth float64 `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty"`

	ShadowColor string  `json:"shadowColor,omitempty" yaml:"shadowColor,omitempty"`
	ShadowX     float64 `json:"shadowX,omitempty" yaml:"shadowX,omitempty"`
	ShadowY     float64 `json:"shadowY,omitempty" yaml:"shadowY,omitempty"`
	ShadowBlur  float64 `json:"shadowBlur,omitempty" yaml:"shadowBlur,omitempty"`
}

type versionedDocument struct {
	Version    int         `json:"version" yaml:"version"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
}

var listTags = map[string]style.ListTag{
	"bullet":    style.ListBulleted,
	"number":    style.ListNumbered,
	"checklist": style.ListChecklist,
	"checked":   style.ListChecklistChecked,
}

// Load parses the document file. Files ending in .yaml or .yml are read
// as YAML, anything else as JSON.
func Load(file string) (*Document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(bufio.NewReader(f), isYAML(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return d, nil
}

func isYAML(file string) bool {
	ext := filepath.Ext(file)
	return ext == ".yaml" || ext == ".yml"
}

// Decode reads a document from r.
func Decode(r io.Reader, asYAML bool) (*Document, error) {
	var vc versionedDocument
	if asYAML {
		if err := yaml.NewDecoder(r).Decode(&vc); err != nil {
			return nil, err
		}
	} else {
		if err := json.NewDecoder(r).Decode(&vc); err != nil {
			return nil, err
		}
	}
	if vc.Version != version {
		return nil, fmt.Errorf("%w: version %v; expected %v", ErrVersion, vc.Version, version)
	}
	d := &Document{Paragraphs: vc.Paragraphs}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Save encodes the document and writes it to file, in YAML when the name
// says so.
func (d *Document) Save(file string) error {
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Encode(f, isYAML(file))
}

// Encode writes the document to w.
func (d *Document) Encode(w io.Writer, asYAML bool) error {
	vc := versionedDocument{Version: version, Paragraphs: d.Paragraphs}
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&vc); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(&vc)
}

func (d *Document) validate() error {
	for i, p := range d.Paragraphs {
		if strings.ContainsRune(p.Text, '\n') {
			return fmt.Errorf("paragraph %d: text contains a line break", i)
		}
		if _, ok := listTags[p.List]; p.List != "" && !ok {
			return fmt.Errorf("paragraph %d: unknown list %q", i, p.List)
		}
		if p.Level < 0 {
			return fmt.Errorf("paragraph %d: negative level %d", i, p.Level)
		}
		n := utf8.RuneCountInString(p.Text)
		for _, h := range p.Highlights {
			if h.Start < 0 || h.End > n || h.Start > h.End {
				return fmt.Errorf("paragraph %d: highlight [%d, %d) outside text of %d runes", i, h.Start, h.End, n)
			}
		}
		if p.Background != nil {
			if _, err := p.Background.Style(); err != nil {
				return fmt.Errorf("paragraph %d: %w", i, err)
			}
		}
		for _, h := range p.Highlights {
			if _, err := h.Background.Style(); err != nil {
				return fmt.Errorf("paragraph %d: %w", i, err)
			}
		}
	}
	return nil
}

// Build lays the document out as attributed text in face. unit is the
// list indentation per level. An empty list paragraph is given a blank
// line filler so that it can carry its attributes.
func (d *Document) Build(face typeface.Face, unit float64) *attributed.String {
	s := attributed.New("", nil)
	for i, p := range d.Paragraphs {
		start := s.Len()
		attrs := attributed.Attributes{style.KeyFont: face}
		text := p.Text
		if tag, ok := listTags[p.List]; ok {
			level := p.Level
			if level == 0 {
				level = 1
			}
			attrs[style.KeyListItem] = tag
			attrs[style.KeyParagraphStyle] = style.Paragraph{}.Indented(level, unit)
			if p.Group != "" {
				attrs[style.KeyListItemValue] = p.Group
			}
			if text == "" {
				text = string(style.BlankLineFiller)
			}
		}
		if p.SkipMarker {
			attrs[style.KeySkipNextListMarker] = true
		}
		if i < len(d.Paragraphs)-1 {
			text += "\n"
		}
		s.Append(text, attrs)

		if p.Background != nil {
			bg, _ := p.Background.Style()
			n := utf8.RuneCountInString(p.Text)
			if n > 0 {
				s.AddAttribute(style.KeyBackgroundStyle, bg, attributed.Rg(start, n))
			}
		}
		for _, h := range p.Highlights {
			bg, _ := h.Background.Style()
			if h.End > h.Start {
				s.AddAttribute(style.KeyBackgroundStyle, bg, attributed.Rg(start+h.Start, h.End-h.Start))
			}
		}
	}
	return s
}

// Style converts b to the value stored under the background attribute.
func (b Background) Style() (style.Background, error) {
	var bg style.Background
	c, err := ParseColor(b.Color)
	if err != nil {
		return bg, err
	}
	bg.Color = c

	switch b.Height {
	case "", "line":
		bg.HeightMode = style.MatchLine
	case "text":
		bg.HeightMode = style.MatchText
	case "exact":
		bg.HeightMode = style.MatchTextExact
	default:
		return bg, fmt.Errorf("unknown height mode %q", b.Height)
	}
	switch b.Width {
	case "", "text":
		bg.WidthMode = style.WidthMatchText
	case "container":
		bg.WidthMode = style.WidthMatchContainer
	default:
		return bg, fmt.Errorf("unknown width mode %q", b.Width)
	}

	if b.RelativeRadius {
		bg.Corner = style.Relative(b.Radius)
	} else {
		bg.Corner = style.Absolute(b.Radius)
	}
	bg.SquaredOffJoins = b.SquaredOffJoins
	if b.Inset != 0 {
		bg.Insets = geom.Insets{Top: b.Inset, Left: b.Inset, Bottom: b.Inset, Right: b.Inset}
	}
	if b.BorderColor != "" {
		c, err := ParseColor(b.BorderColor)
		if err != nil {
			return bg, fmt.Errorf("border: %w", err)
		}
		bg.Border = &style.Border{Color: c, Width: b.BorderWidth}
	}
	if b.ShadowColor != "" {
		c, err := ParseColor(b.ShadowColor)
		if err != nil {
			return bg, fmt.Errorf("shadow: %w", err)
		}
		bg.Shadow = &style.Shadow{Color: c, Offset: geom.Size{W: b.ShadowX, H: b.ShadowY}, Blur: b.ShadowBlur}
	}
	return bg, nil
}

// ParseColor parses #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return nil, fmt.Errorf("bad colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
