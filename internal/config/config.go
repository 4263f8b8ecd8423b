package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/vixel/internal/canvas"
	"github.com/dshills/vixel/internal/config/loader"
	"github.com/dshills/vixel/internal/input/key"
	"github.com/dshills/vixel/internal/input/mode"
)

// Config is the resolved Vixel configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Editor  EditorConfig  `toml:"editor"`
	Keys    KeysConfig    `toml:"keys"`
	Logging LoggingConfig `toml:"logging"`
	Display DisplayConfig `toml:"display"`
}

// CanvasConfig sizes the pixel canvas.
type CanvasConfig struct {
	// Width is the canvas width in pixels.
	Width int `toml:"width"`

	// Height is the canvas height in pixels.
	Height int `toml:"height"`

	// Background is the hex color of unpainted and erased pixels.
	Background string `toml:"background"`
}

// EditorConfig holds editing and presentation settings.
type EditorConfig struct {
	// Color is the hex color painted by the paint key and the mouse.
	Color string `toml:"color"`

	// Scale is the number of screen pixels per canvas pixel.
	Scale int `toml:"scale"`

	// Title is shown in the status line.
	Title string `toml:"title"`
}

// KeysConfig binds the mode and tool keys. Values are key specs
// such as ":", "v", "Space" or "<C-q>".
type KeysConfig struct {
	Command string `toml:"command"`
	Visual  string `toml:"visual"`
	Paint   string `toml:"paint"`
	Erase   string `toml:"erase"`
	Quit    string `toml:"quit"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log file path. Empty disables logging.
	File string `toml:"file"`
}

// DisplayConfig controls the frame loop.
type DisplayConfig struct {
	// FPS is the number of frames drawn per second.
	FPS int `toml:"fps"`
}

// Limits for numeric settings.
const (
	MaxCanvasDimension = 4096
	MaxScale           = 16
	MaxFPS             = 240
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:      16,
			Height:     16,
			Background: "#000000",
		},
		Editor: EditorConfig{
			Color: "#00ff00",
			Scale: 2,
			Title: "untitled",
		},
		Keys: KeysConfig{
			Command: ":",
			Visual:  "v",
			Paint:   "Space",
			Erase:   "x",
			Quit:    "<C-q>",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			FPS: 60,
		},
	}
}

// DefaultPath returns the user configuration file path,
// or an empty string when no user config directory exists.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vixel", "config.toml")
}

// LoadFile decodes the TOML file at path over the defaults.
// A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	return LoadFileFS(loader.DefaultFS(), path)
}

// LoadFileFS is LoadFile reading through fsys.
func LoadFileFS(fsys loader.FileSystem, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := loader.NewTOMLLoaderWithFS(fsys, path).Decode(&cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadReader decodes TOML from r over the defaults.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := loader.NewTOMLLoader("").DecodeReader(r, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks every setting and reports all failures at once.
// The returned error is a *ValidationError matching ErrValidationFailed.
func (c Config) Validate() error {
	verr := &ValidationError{}

	if c.Canvas.Width < 1 || c.Canvas.Width > MaxCanvasDimension {
		verr.add("canvas.width", c.Canvas.Width, "must be between 1 and %d", MaxCanvasDimension)
	}
	if c.Canvas.Height < 1 || c.Canvas.Height > MaxCanvasDimension {
		verr.add("canvas.height", c.Canvas.Height, "must be between 1 and %d", MaxCanvasDimension)
	}
	if _, err := canvas.ParseColor(c.Canvas.Background); err != nil {
		verr.add("canvas.background", c.Canvas.Background, "%v", err)
	}
	if _, err := canvas.ParseColor(c.Editor.Color); err != nil {
		verr.add("editor.color", c.Editor.Color, "%v", err)
	}
	if c.Editor.Scale < 1 || c.Editor.Scale > MaxScale {
		verr.add("editor.scale", c.Editor.Scale, "must be between 1 and %d", MaxScale)
	}

	c.validateKeys(verr)

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		verr.add("logging.level", c.Logging.Level, "must be one of debug, info, warn, error")
	}

	if c.Display.FPS < 1 || c.Display.FPS > MaxFPS {
		verr.add("display.fps", c.Display.FPS, "must be between 1 and %d", MaxFPS)
	}

	return verr.errOrNil()
}

// keySetting is a parsed keys.* entry.
type keySetting struct {
	path  string
	spec  string
	event key.Event
}

// movementActions keep their stock bindings in every keymap.
var movementActions = []mode.Action{
	mode.ActionMoveLeft,
	mode.ActionMoveRight,
	mode.ActionMoveUp,
	mode.ActionMoveDown,
}

// validateKeys checks that every key spec parses and that no two settings,
// and no setting and a cursor key, share a key press.
func (c Config) validateKeys(verr *ValidationError) {
	var parsed []keySetting
	for _, k := range []struct {
		path, spec string
	}{
		{"keys.command", c.Keys.Command},
		{"keys.visual", c.Keys.Visual},
		{"keys.paint", c.Keys.Paint},
		{"keys.erase", c.Keys.Erase},
		{"keys.quit", c.Keys.Quit},
	} {
		ev, err := key.Parse(k.spec)
		if err != nil {
			verr.add(k.path, k.spec, "%v", err)
			continue
		}
		parsed = append(parsed, keySetting{path: k.path, spec: k.spec, event: ev})
	}

	stock := mode.DefaultKeymap()
	for i, k := range parsed {
		for _, prev := range parsed[:i] {
			if k.event.Matches(prev.event) {
				verr.add(k.path, k.spec, "same key as %s", prev.path)
			}
		}
		for _, action := range movementActions {
			for _, ev := range stock.Keys(action) {
				if k.event.Matches(ev) {
					verr.add(k.path, k.spec, "same key as %s", action)
				}
			}
		}
	}
}

// Keymap returns the default keymap with the configured mode and tool keys.
// Cursor movement keeps its stock bindings.
func (c Config) Keymap() (mode.Keymap, error) {
	km := mode.DefaultKeymap()
	for _, b := range []struct {
		action mode.Action
		spec   string
	}{
		{mode.ActionEnterCommand, c.Keys.Command},
		{mode.ActionToggleVisual, c.Keys.Visual},
		{mode.ActionPaint, c.Keys.Paint},
		{mode.ActionErase, c.Keys.Erase},
	} {
		ev, err := key.Parse(b.spec)
		if err != nil {
			return mode.Keymap{}, fmt.Errorf("binding %s: %w", b.action, err)
		}
		km.Bind(b.action, ev)
	}
	return km, nil
}

// QuitKey returns the parsed quit key.
func (c Config) QuitKey() (key.Event, error) {
	return key.Parse(c.Keys.Quit)
}

// Colors returns the parsed background and draw colors.
func (c Config) Colors() (background, draw canvas.Color, err error) {
	background, err = canvas.ParseColor(c.Canvas.Background)
	if err != nil {
		return canvas.Color{}, canvas.Color{}, fmt.Errorf("canvas.background: %w", err)
	}
	draw, err = canvas.ParseColor(c.Editor.Color)
	if err != nil {
		return canvas.Color{}, canvas.Color{}, fmt.Errorf("editor.color: %w", err)
	}
	return background, draw, nil
}
