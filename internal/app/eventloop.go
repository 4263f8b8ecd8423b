package app

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/dshills/vixel/internal/canvas"
	"github.com/dshills/vixel/internal/command"
	"github.com/dshills/vixel/internal/input/key"
	"github.com/dshills/vixel/internal/input/mode"
	"github.com/dshills/vixel/internal/renderer/backend"
	"github.com/dshills/vixel/internal/renderer/core"
	"github.com/dshills/vixel/internal/renderer/statusline"
	"github.com/dshills/vixel/internal/renderer/view"
)

// interruptKey always quits, whatever the configured quit key.
var interruptKey = key.MustParse("<C-c>")

// pumpEvents forwards backend events to the frame loop until shutdown.
// PollEvent blocks, so it runs on its own goroutine.
func (app *Application) pumpEvents(b backend.Backend) {
	for {
		ev := b.PollEvent()

		select {
		case <-app.done:
			return
		default:
		}
		if ev.Type == backend.EventNone {
			continue
		}

		select {
		case app.events <- ev:
		case <-app.done:
			return
		}
	}
}

// eventLoop runs one frame per tick: queued input is applied in delivery
// order, then the canvas is materialized and drawn. A write made while
// handling input is therefore visible in the same frame.
func (app *Application) eventLoop(b backend.Backend) error {
	fps := app.config.Display.FPS
	if fps < 1 {
		fps = 60
	}
	frameTicker := time.NewTicker(time.Second / time.Duration(fps))
	defer frameTicker.Stop()

	app.layout(b.Size())
	app.drawFrame(b)

	for {
		select {
		case <-app.done:
			return nil

		case <-frameTicker.C:
			if err := app.update(); err != nil {
				return err
			}
			app.drawFrame(b)
		}
	}
}

// update drains the events queued since the last frame.
func (app *Application) update() error {
	for {
		select {
		case ev := <-app.events:
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.layout(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev.Key)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventFocus:
		return app.handleFocusEvent(ev)
	default:
		return nil
	}
}

// handleKeyEvent routes a key press to the controller. Enter submits and
// Escape abandons a command. Printable keys the controller does not
// consume are forwarded as text, which only the command field accepts.
func (app *Application) handleKeyEvent(ev key.Event) error {
	ctrl := app.controller

	// A plain quit key is ordinary text while composing a command.
	quit := ev.Matches(app.quitKey) && (ctrl.Mode() != mode.Command || ev.IsModified())
	if quit || ev.Matches(interruptKey) {
		return ErrQuit
	}

	if ctrl.Mode() == mode.Command && !ev.IsModified() {
		switch ev.Key {
		case key.KeyEnter:
			return app.submitCommand()
		case key.KeyEscape:
			ctrl.Cancel()
			return nil
		}
	}

	res := ctrl.HandleKey(ev)
	if res.Err != nil {
		app.report(NewOperationError(res.Action.String(), pointString(ctrl.Cursor()), res.Err))
	} else if res.Action != mode.ActionNone {
		app.status.ClearMessage()
	}

	if !res.Consumed && ev.IsChar() {
		ctrl.HandleText(ev.Rune)
	}
	return nil
}

// handleMouseEvent paints (or selects) the pixel under a left press or
// drag inside the canvas area.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	if ev.MouseButton != backend.MouseLeft {
		return nil
	}
	if !app.canvasArea.Contains(core.ScreenPos{Row: ev.MouseY, Col: ev.MouseX}) {
		return nil
	}

	x, y := app.view.ScreenToCanvas(ev.MouseX, ev.MouseY)
	if err := app.controller.PaintAt(x, y); err != nil {
		app.report(NewOperationError("paint", pointString(mode.Point{X: x, Y: y}), err))
	}
	return nil
}

// handleFocusEvent submits a pending command when the terminal loses
// focus, the same way the command field would.
func (app *Application) handleFocusEvent(ev backend.Event) error {
	if ev.Focused {
		return nil
	}
	return app.submitCommand()
}

// submitCommand hands the command buffer to the registry via the
// controller. Quit requests propagate; other failures are reported.
func (app *Application) submitCommand() error {
	if app.controller.Mode() != mode.Command {
		return nil
	}

	line := app.controller.Buffer()
	err := app.controller.FocusLost()
	switch {
	case err == nil:
		app.logger.Debug("command %q", line)
		app.status.ClearMessage()
		return nil
	case errors.Is(err, ErrQuit):
		return ErrQuit
	case errors.Is(err, command.ErrUnknownCommand):
		app.report(err)
		return nil
	default:
		app.report(NewOperationError("command", line, err))
		return nil
	}
}

// report logs a recoverable failure and shows it on the status line.
func (app *Application) report(err error) {
	app.logger.WithComponent("editor").Warn("%v", err)

	msgType := statusline.MessageError
	if errors.Is(err, canvas.ErrOutOfBounds) {
		msgType = statusline.MessageWarning
	}
	app.status.SetMessage(err.Error(), msgType)
}

// layout splits the screen into the canvas area and the status line.
func (app *Application) layout(width, height int) {
	statusHeight := app.status.Height()
	app.canvasArea = core.RectFromSize(0, 0, max(height-statusHeight, 0), width)
	app.statusRow = max(height-statusHeight, 0)
	app.status.Resize(width)
	app.view.Layout(app.canvasArea, app.canvas.Size())
}

// drawFrame materializes the canvas and presents it with the status line.
func (app *Application) drawFrame(b backend.Backend) {
	ctrl := app.controller

	ov := view.Overlay{
		Cursor:     toImagePoint(ctrl.Cursor()),
		ShowCursor: ctrl.Mode() != mode.Command,
	}
	if sel, ok := ctrl.Selection(); ok {
		r := sel.Bounds()
		ov.Selection = image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Max.Y+1)
	}

	app.view.Draw(b, app.canvas.Materialize(), ov)

	app.status.SetMode(ctrl.Label())
	app.status.SetCommand(ctrl.Mode() == mode.Command, ctrl.Buffer())
	app.status.Render(b, app.statusRow)

	b.Show()
}

func toImagePoint(p mode.Point) image.Point {
	return image.Pt(p.X, p.Y)
}

func pointString(p mode.Point) string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
