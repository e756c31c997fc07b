package main

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/rjkroege/proton/attributed"
	"github.com/rjkroege/proton/config"
	"github.com/rjkroege/proton/draw"
	"github.com/rjkroege/proton/view"
)

const (
	kbdBackspace = 0x08
	kbdEscape    = 0x1b
	kbdDelete    = 0x7f
)

// runWindow shows v in a devdraw window and feeds it keystrokes until
// escape or delete is typed.
func runWindow(v *view.EditorView, cfg *config.Config, winsize string, logger *slog.Logger) error {
	errch := make(chan error, 1)
	display, err := draw.NewDisplay(errch, "", "protondemo", winsize)
	if err != nil {
		return fmt.Errorf("can't open display: %w", err)
	}
	if err := display.Attach(draw.Refnone); err != nil {
		return fmt.Errorf("can't attach to window: %w", err)
	}
	keyboardctl := display.InitKeyboard()
	mousectl := display.InitMouse()

	screen := display.ScreenImage()
	bg, err := display.AllocImage(image.Rect(0, 0, 1, 1), screen.Pix(), true, cfg.Palette().Background)
	if err != nil {
		return fmt.Errorf("can't allocate background: %w", err)
	}
	defer bg.Free()

	redraw := func() {
		screen := display.ScreenImage()
		screen.Draw(screen.R(), bg, nil, image.Point{})
		cv := draw.NewCanvas(screen, screen.R().Min, nil)
		v.Draw(cv)
		cv.Free()
		if err := display.Flush(); err != nil {
			logger.Warn("flush failed", "err", err)
		}
	}

	v.Focus()
	defer v.Blur()
	v.Select(attributed.Rg(v.Text().Len(), 0))
	redraw()

	for {
		select {
		case <-mousectl.Resize:
			if err := display.Attach(draw.Refnone); err != nil {
				return fmt.Errorf("can't reattach to window: %w", err)
			}
			redraw()
		case <-mousectl.C:
		case r := <-keyboardctl.C:
			switch r {
			case kbdEscape, kbdDelete:
				return nil
			case kbdBackspace:
				v.Backspace()
			case '\r':
				v.Type("\n")
			default:
				v.Type(string(r))
			}
			v.Layout()
			logger.Debug("typed", "rune", r, "selection", v.SelectedRange())
			redraw()
		case err := <-errch:
			return err
		}
	}
}
