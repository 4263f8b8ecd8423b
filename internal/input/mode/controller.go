package mode

import (
	"errors"

	"github.com/dshills/vixel/internal/canvas"
	"github.com/dshills/vixel/internal/input/key"
)

// PixelTarget is the canvas as seen by the controller.
type PixelTarget interface {
	SetPixel(x, y int, c canvas.Color) error
	Pixel(x, y int) (canvas.Color, error)
	Size() canvas.Size
	Background() canvas.Color
}

// CommandSink receives submitted command text.
type CommandSink interface {
	Submit(line string) error
}

// CommandSinkFunc adapts a function to CommandSink.
type CommandSinkFunc func(line string) error

// Submit calls f(line).
func (f CommandSinkFunc) Submit(line string) error {
	return f(line)
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Result describes how a key event was handled.
type Result struct {
	// Action is the bound action that ran, if any.
	Action Action

	// Consumed is false when the key has no meaning in the current mode.
	// Hosts forward unconsumed printable keys as text input.
	Consumed bool

	// Err holds canvas failures from edit actions. The mode state is
	// valid regardless.
	Err error
}

// Controller is the editor mode state machine.
// It is not safe for concurrent use.
type Controller struct {
	target PixelTarget
	keymap Keymap

	mode   Mode
	buffer []rune

	cursor    Point
	selection Selection
	color     canvas.Color

	sink      CommandSink
	callbacks []ChangeCallback
}

// NewController creates a controller in Edit mode with the cursor at the
// origin and White as the active color.
func NewController(target PixelTarget, keymap Keymap) *Controller {
	return &Controller{
		target: target,
		keymap: keymap,
		mode:   Edit,
		buffer: make([]rune, 0, 64),
		color:  canvas.White,
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Label returns the status label of the active mode.
func (c *Controller) Label() string {
	return c.mode.Label()
}

// Buffer returns the command text being composed.
func (c *Controller) Buffer() string {
	return string(c.buffer)
}

// Cursor returns the canvas cursor.
func (c *Controller) Cursor() Point {
	return c.cursor
}

// Selection returns the Visual-mode selection.
// ok is false outside Visual mode.
func (c *Controller) Selection() (sel Selection, ok bool) {
	return c.selection, c.mode == Visual
}

// Color returns the active paint color.
func (c *Controller) Color() canvas.Color {
	return c.color
}

// SetColor sets the active paint color.
func (c *Controller) SetColor(col canvas.Color) {
	c.color = col
}

// Keymap returns the key bindings.
func (c *Controller) Keymap() Keymap {
	return c.keymap
}

// SetTarget switches the controller to another canvas. The cursor is
// clamped to the new size; in Visual mode the selection restarts at it.
func (c *Controller) SetTarget(target PixelTarget) {
	c.target = target

	size := target.Size()
	c.cursor.X = clamp(c.cursor.X, 0, size.Width-1)
	c.cursor.Y = clamp(c.cursor.Y, 0, size.Height-1)
	if c.mode == Visual {
		c.selection = Selection{Anchor: c.cursor, Head: c.cursor}
	}
}

// SetCommandSink sets where submitted commands go. nil discards them.
func (c *Controller) SetCommandSink(sink CommandSink) {
	c.sink = sink
}

// OnChange registers a mode change callback.
// Returns a function to unregister it.
func (c *Controller) OnChange(cb ChangeCallback) func() {
	c.callbacks = append(c.callbacks, cb)
	index := len(c.callbacks) - 1
	return func() {
		// nil keeps the other indices valid
		if index < len(c.callbacks) {
			c.callbacks[index] = nil
		}
	}
}

// HandleKey processes a key press.
func (c *Controller) HandleKey(ev key.Event) Result {
	if c.mode == Command {
		return c.handleCommandKey(ev)
	}

	action := c.keymap.Lookup(ev)
	res := Result{Action: action, Consumed: true}

	switch action {
	case ActionEnterCommand:
		c.switchTo(Command)
	case ActionToggleVisual:
		if c.mode == Edit {
			c.switchTo(Visual)
		} else {
			c.switchTo(Edit)
		}
	case ActionMoveLeft:
		c.move(-1, 0)
	case ActionMoveRight:
		c.move(1, 0)
	case ActionMoveUp:
		c.move(0, -1)
	case ActionMoveDown:
		c.move(0, 1)
	case ActionPaint:
		res.Err = c.fill(c.color)
	case ActionErase:
		res.Err = c.fill(c.target.Background())
	default:
		return Result{}
	}
	return res
}

// handleCommandKey handles keys while composing a command. Bindings are
// not interpreted so keys like ':' reach the buffer as text.
func (c *Controller) handleCommandKey(ev key.Event) Result {
	if ev.Key == key.KeyBackspace && !ev.IsModified() {
		if n := len(c.buffer); n > 0 {
			c.buffer = c.buffer[:n-1]
		}
		return Result{Consumed: true}
	}
	return Result{}
}

// HandleText appends r to the command buffer while in Command mode.
// Returns false if the character was not taken.
func (c *Controller) HandleText(r rune) bool {
	if c.mode != Command {
		return false
	}
	c.buffer = append(c.buffer, r)
	return true
}

// FocusLost submits the command: the buffer goes to the command sink, is
// cleared, and the mode returns to Edit. It does nothing outside Command
// mode. The returned error comes from the sink; the transition always
// happens.
func (c *Controller) FocusLost() error {
	if c.mode != Command {
		return nil
	}
	line := string(c.buffer)
	c.switchTo(Edit)

	if c.sink == nil {
		return nil
	}
	return c.sink.Submit(line)
}

// Cancel leaves Command mode like FocusLost without submitting.
func (c *Controller) Cancel() {
	if c.mode == Command {
		c.switchTo(Edit)
	}
}

// PaintAt handles a pointer press at a canvas coordinate. In Edit mode
// it paints the pixel and moves the cursor there; in Visual mode it moves
// the selection head. Out-of-range coordinates leave all state unchanged
// and return an error matching canvas.ErrOutOfBounds.
func (c *Controller) PaintAt(x, y int) error {
	switch c.mode {
	case Edit:
		if err := c.target.SetPixel(x, y, c.color); err != nil {
			return err
		}
		c.cursor = Point{X: x, Y: y}
	case Visual:
		size := c.target.Size()
		if !size.Contains(x, y) {
			return &canvas.BoundsError{Op: "select", X: x, Y: y, Size: size}
		}
		c.cursor = Point{X: x, Y: y}
		c.selection.Head = c.cursor
	}
	return nil
}

// move shifts the cursor, clamped to the canvas. In Visual mode the
// selection head follows.
func (c *Controller) move(dx, dy int) {
	size := c.target.Size()
	c.cursor.X = clamp(c.cursor.X+dx, 0, size.Width-1)
	c.cursor.Y = clamp(c.cursor.Y+dy, 0, size.Height-1)
	if c.mode == Visual {
		c.selection.Head = c.cursor
	}
}

// fill writes col under the cursor, or over the whole selection in Visual
// mode.
func (c *Controller) fill(col canvas.Color) error {
	if c.mode != Visual {
		return c.target.SetPixel(c.cursor.X, c.cursor.Y, col)
	}

	var errs []error
	r := c.selection.Bounds()
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			if err := c.target.SetPixel(x, y, col); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// switchTo changes mode and notifies callbacks.
func (c *Controller) switchTo(to Mode) {
	from := c.mode
	if from == to {
		return
	}

	if from == Command {
		c.buffer = c.buffer[:0]
	}
	if to == Visual {
		c.selection = Selection{Anchor: c.cursor, Head: c.cursor}
	}
	c.mode = to

	for _, cb := range c.callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
