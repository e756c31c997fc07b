// Command protondemo lays out a document file and renders it, list
// markers and highlights included, to PNG or SVG, or into a devdraw
// window where it can be edited.
package main

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rjkroege/proton/config"
	"github.com/rjkroege/proton/docfile"
	"github.com/rjkroege/proton/paint/raster"
	"github.com/rjkroege/proton/protontest"
	"github.com/rjkroege/proton/theme"
	"github.com/rjkroege/proton/view"
)

var sample = &docfile.Document{
	Paragraphs: []docfile.Paragraph{
		{Text: "Things to do", Background: &docfile.Background{Color: "#ffee88", Radius: 30, RelativeRadius: true}},
		{Text: "buy milk", List: "number", Group: "todo"},
		{Text: "skimmed", List: "bullet", Level: 2},
		{Text: "semi-skimmed", List: "bullet", Level: 2},
		{Text: "call the bank", List: "number", Group: "todo"},
		{Text: "water the plants", List: "checklist"},
		{Text: "renew passport", List: "checked"},
	},
}

func main() {
	var (
		configPath string
		output     string
		scale      float64
		dump       bool
		window     bool
		winsize    string
		watch      bool
		dark       bool
	)
	flags := pflag.NewFlagSet("protondemo", pflag.ExitOnError)
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file (TOML, YAML or JSON)")
	flags.StringVarP(&output, "output", "o", "", "Write a .png or .svg rendering to this file")
	flags.Float64Var(&scale, "scale", 2, "Pixels per layout unit in PNG output")
	flags.BoolVarP(&dump, "dump", "d", false, "Print the list marker view-models")
	flags.BoolVarP(&window, "window", "w", false, "Open an editable devdraw window")
	flags.StringVarP(&winsize, "winsize", "W", "640x480", "Window size (WidthxHeight)")
	flags.BoolVar(&watch, "watch", false, "Re-render whenever the configuration file changes")
	flags.BoolVar(&dark, "dark", false, "Use the dark theme")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: protondemo [flags] [document.json|document.yaml]\n\nFlags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	// A missing file, the empty name included, yields the defaults.
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("can't load configuration: %v", err)
	}
	if dark {
		cfg.Editor.Theme = "dark"
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("can't set up logging: %v", err)
	}
	slog.SetDefault(logger)

	doc := sample
	if flags.NArg() > 0 {
		doc, err = docfile.Load(flags.Arg(0))
		if err != nil {
			log.Fatalf("can't load document: %v", err)
		}
	}

	v, err := build(cfg, doc, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if dump {
		for _, m := range v.Markers() {
			fmt.Println(m)
		}
	}
	if output != "" {
		if err := render(v, cfg, output, scale); err != nil {
			log.Fatalf("can't render: %v", err)
		}
		logger.Info("rendered", "output", output, "markers", len(v.Markers()))
	}

	if watch {
		if configPath == "" {
			log.Fatalf("--watch needs --config")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := config.Watch(ctx, configPath, func(c *config.Config, err error) {
			if err != nil {
				logger.Warn("reload failed", "err", err)
				return
			}
			if dark {
				c.Editor.Theme = "dark"
			}
			nv, err := build(c, doc, logger)
			if err != nil {
				logger.Warn("rebuild failed", "err", err)
				return
			}
			if output != "" {
				if err := render(nv, c, output, scale); err != nil {
					logger.Warn("render failed", "err", err)
					return
				}
			}
			logger.Info("reloaded", "config", configPath, "markers", len(nv.Markers()))
		})
		if err != nil {
			log.Fatalf("can't watch %s: %v", configPath, err)
		}
		<-ctx.Done()
		return
	}

	if window {
		if err := runWindow(v, cfg, winsize, logger); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// build lays doc out in a view configured by cfg.
func build(cfg *config.Config, doc *docfile.Document, logger *slog.Logger) (*view.EditorView, error) {
	opts, err := cfg.ViewOptions()
	if err != nil {
		return nil, err
	}
	face, err := cfg.Face()
	if err != nil {
		return nil, err
	}
	// The text and the view share one face so that typed text joins the
	// runs it is typed into.
	text := doc.Build(face, cfg.Editor.Indentation)
	v := view.New(text, append(opts, view.WithFont(face), view.WithLogger(logger))...)
	v.Layout()
	return v, nil
}

func render(v *view.EditorView, cfg *config.Config, output string, scale float64) error {
	size := v.Size()
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg":
		rec := protontest.NewRecorder(size.W, size.H)
		v.Draw(rec)
		return rec.SVG(f)
	case ".png":
		c := raster.New(size.W, size.H, scale, theme.RGBA(cfg.Palette().Background))
		v.Draw(c)
		return png.Encode(f, c.Image())
	}
	return fmt.Errorf("unknown output format %q", filepath.Ext(output))
}
