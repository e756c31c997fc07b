// Package config loads the settings of a proton editor view from TOML,
// YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rjkroege/proton/geom"
	"github.com/rjkroege/proton/internal/logging"
	"github.com/rjkroege/proton/listlayout"
	"github.com/rjkroege/proton/marker"
	"github.com/rjkroege/proton/style"
	"github.com/rjkroege/proton/theme"
	"github.com/rjkroege/proton/typeface"
	"github.com/rjkroege/proton/view"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the whole configuration file.
type Config struct {
	Editor  EditorConfig  `toml:"editor" json:"editor" yaml:"editor"`
	Markers MarkerConfig  `toml:"markers" json:"markers" yaml:"markers"`
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// EditorConfig sets up the text and layout of an editor view.
type EditorConfig struct {
	// Indentation is the width of one list nesting level.
	Indentation float64 `toml:"indentation" json:"indentation" yaml:"indentation"`
	// Font is "regular", "mono" or "fixed". The fixed font is a synthetic
	// cell font with exact metrics.
	Font               string      `toml:"font" json:"font" yaml:"font"`
	FontSize           float64     `toml:"font_size" json:"font_size" yaml:"font_size"`
	LineSpacing        float64     `toml:"line_spacing" json:"line_spacing" yaml:"line_spacing"`
	LineHeightMultiple float64     `toml:"line_height_multiple" json:"line_height_multiple" yaml:"line_height_multiple"`
	Width              float64     `toml:"width" json:"width" yaml:"width"`
	Inset              InsetConfig `toml:"inset" json:"inset" yaml:"inset"`
	Theme              string      `toml:"theme" json:"theme" yaml:"theme"`
}

// InsetConfig is the text container inset in layout units.
type InsetConfig struct {
	Top    float64 `toml:"top" json:"top" yaml:"top"`
	Left   float64 `toml:"left" json:"left" yaml:"left"`
	Bottom float64 `toml:"bottom" json:"bottom" yaml:"bottom"`
	Right  float64 `toml:"right" json:"right" yaml:"right"`
}

// MarkerConfig configures the standard marker resolver. Bullets and
// Numbering are indexed by nesting level and cycle.
type MarkerConfig struct {
	Bullets      []string `toml:"bullets" json:"bullets" yaml:"bullets"`
	Numbering    []string `toml:"numbering" json:"numbering" yaml:"numbering"`
	Suffix       string   `toml:"suffix" json:"suffix" yaml:"suffix"`
	ImageBullets bool     `toml:"image_bullets" json:"image_bullets" yaml:"image_bullets"`
}

// LoggingConfig names a level and a format as internal/logging parses them.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level" yaml:"level"`
	Format string `toml:"format" json:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Indentation:        listlayout.DefaultIndentation,
			Font:               "regular",
			FontSize:           16,
			LineHeightMultiple: 1,
			Width:              480,
			Inset:              InsetConfig{Top: 8, Left: 8, Bottom: 8, Right: 8},
			Theme:              "light",
		},
		Markers: MarkerConfig{
			Bullets:   []string{"•", "◦", "▪"},
			Numbering: []string{"decimal", "lowerAlpha", "lowerRoman"},
			Suffix:    ".",
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the file at path. The decoder is chosen by extension and
// detected from the content otherwise. Keys missing from the file keep
// their default values. A missing file yields Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".json",
// ".yaml" or ".yml") over Default and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if err := autoDetect(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func autoDetect(data []byte, cfg *Config) error {
	if _, err := toml.Decode(string(data), cfg); err == nil {
		return nil
	}
	*cfg = *Default()
	if err := json.Unmarshal(data, cfg); err == nil {
		return nil
	}
	*cfg = *Default()
	if err := yaml.Unmarshal(data, cfg); err == nil {
		return nil
	}
	return errors.New("unable to parse config (tried TOML, JSON, YAML)")
}

// Validate checks c against the configuration schema and then checks the
// names the schema cannot know about.
func (c *Config) Validate() error {
	if err := validateSchema(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, ok := theme.Named(c.Editor.Theme); !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, c.Editor.Theme)
	}
	for _, n := range c.Markers.Numbering {
		if _, err := marker.ParseNumbering(n); err != nil {
			return fmt.Errorf("%w: markers: %v", ErrInvalid, err)
		}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("%w: logging: %v", ErrInvalid, err)
	}
	return nil
}

// Face opens the configured font.
func (c *Config) Face() (typeface.Face, error) {
	size := c.Editor.FontSize
	switch c.Editor.Font {
	case "fixed":
		return typeface.NewFixed("Body", size), nil
	case "mono":
		return typeface.GoMono().Face(size)
	case "", "regular":
		return typeface.GoRegular().Face(size)
	}
	return nil, fmt.Errorf("%w: unknown font %q", ErrInvalid, c.Editor.Font)
}

// Resolver builds the marker resolver, drawing in the theme's marker
// colour.
func (c *Config) Resolver() *marker.Standard {
	r := marker.NewStandard()
	if len(c.Markers.Bullets) > 0 {
		r.Bullets = c.Markers.Bullets
	}
	if len(c.Markers.Numbering) > 0 {
		r.Numbering = r.Numbering[:0]
		for _, n := range c.Markers.Numbering {
			k, err := marker.ParseNumbering(n)
			if err != nil {
				continue
			}
			r.Numbering = append(r.Numbering, k)
		}
	}
	r.Suffix = c.Markers.Suffix
	r.ImageBullets = c.Markers.ImageBullets
	r.Color = theme.RGBA(c.Palette().Marker)
	return r
}

// Palette returns the named theme, falling back to light.
func (c *Config) Palette() theme.Palette {
	p, ok := theme.Named(c.Editor.Theme)
	if !ok {
		p, _ = theme.Named("light")
	}
	return p
}

// Paragraph returns the default paragraph style.
func (c *Config) Paragraph() style.Paragraph {
	return style.Paragraph{
		LineSpacing:        c.Editor.LineSpacing,
		LineHeightMultiple: c.Editor.LineHeightMultiple,
	}
}

// ViewOptions converts c into options for view.New.
func (c *Config) ViewOptions() ([]view.Option, error) {
	face, err := c.Face()
	if err != nil {
		return nil, err
	}
	in := c.Editor.Inset
	return []view.Option{
		view.WithFont(face),
		view.WithWidth(c.Editor.Width),
		view.WithIndentation(c.Editor.Indentation),
		view.WithParagraph(c.Paragraph()),
		view.WithInset(geom.Insets{Top: in.Top, Left: in.Left, Bottom: in.Bottom, Right: in.Right}),
		view.WithTextColor(theme.RGBA(c.Palette().Text)),
		view.WithResolver(c.Resolver()),
	}, nil
}

// Logger builds a logger writing to stderr.
func (c *Config) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(&logging.Config{Level: level, Format: format, Output: "stderr", Component: "proton"})
}
