// Package app provides the main application structure and coordination
// for the Vixel editor. It wires the canvas, the mode controller, the
// command registry and the terminal renderer together and runs the
// frame loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/vixel/internal/canvas"
	"github.com/dshills/vixel/internal/command"
	"github.com/dshills/vixel/internal/config"
	"github.com/dshills/vixel/internal/input/key"
	"github.com/dshills/vixel/internal/input/mode"
	"github.com/dshills/vixel/internal/renderer/backend"
	"github.com/dshills/vixel/internal/renderer/core"
	"github.com/dshills/vixel/internal/renderer/statusline"
	"github.com/dshills/vixel/internal/renderer/view"
)

// Application is the central coordinator for all Vixel components.
// Canvas and controller state is only touched by the goroutine running
// the frame loop.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	config    config.Config
	logger    *Logger
	logCloser io.Closer
	session   string

	// Editor components
	canvas     *canvas.Canvas
	controller *mode.Controller
	commands   *command.Registry
	quitKey    key.Event

	// Presentation
	backend backend.Backend
	view    *view.CanvasView
	status  *statusline.StatusLine

	// Layout, owned by the frame loop
	canvasArea core.ScreenRect
	statusRow  int

	// State
	ctx      context.Context
	cancel   context.CancelFunc
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	events   chan backend.Event

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	// Empty uses the user config file if one exists.
	ConfigPath string

	// LogLevel overrides the configured logging level.
	LogLevel string

	// LogFile overrides the configured log file.
	LogFile string

	// Debug enables debug logging.
	Debug bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		opts:    opts,
		logger:  NullLogger,
		session: uuid.NewString(),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		events:  make(chan backend.Event, 256),
	}

	if err := app.bootstrap(); err != nil {
		cancel()
		app.closeLog()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config: defaults, file, environment, flags
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.applyOptions(&cfg)
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logging
	if cfg.Logging.File != "" {
		logger, closer, err := OpenLogFile(cfg.Logging.File, ParseLogLevel(cfg.Logging.Level))
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		app.logger = logger.WithField("session", app.session)
		app.logCloser = closer
	}
	app.logger.Info("starting with config %q", path)

	// 3. Canvas
	bg, draw, err := cfg.Colors()
	if err != nil {
		return &InitError{Component: "canvas", Err: err}
	}
	app.canvas, err = canvas.NewFilled(cfg.Canvas.Width, cfg.Canvas.Height, bg)
	if err != nil {
		return &InitError{Component: "canvas", Err: err}
	}

	// 4. Mode controller
	keymap, err := cfg.Keymap()
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	app.quitKey, err = cfg.QuitKey()
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	app.controller = mode.NewController(app.canvas, keymap)
	app.controller.SetColor(draw)

	modeLog := app.logger.WithComponent("mode")
	app.controller.OnChange(func(from, to mode.Mode) {
		modeLog.Debug("%s -> %s", from, to)
	})

	// 5. Commands
	app.commands = command.NewRegistry()
	app.registerCommands()
	app.controller.SetCommandSink(mode.CommandSinkFunc(app.commands.Sink(app.ctx)))

	// 6. Presentation
	app.view = view.New(cfg.Editor.Scale)
	app.status = statusline.New(cfg.Editor.Title)

	return nil
}

// applyOptions layers command line options over the configuration.
func (app *Application) applyOptions(cfg *config.Config) {
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.Logging.File = app.opts.LogFile
	}
	if app.opts.Debug {
		cfg.Logging.Level = "debug"
	}
}

// registerCommands registers the verbs the terminal host understands.
func (app *Application) registerCommands() {
	app.commands.Register(command.NewHandlerFunc("quit", func(context.Context, []string) error {
		return ErrQuit
	}), "q")
	app.commands.Register(command.NewHandlerFunc("resize", app.resizeCanvas))
}

// resizeCanvas handles ":resize WIDTH HEIGHT". The overlapping pixels are
// kept and new area takes the background color.
func (app *Application) resizeCanvas(_ context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: resize WIDTH HEIGHT", command.ErrUsage)
	}
	width, werr := strconv.Atoi(args[0])
	height, herr := strconv.Atoi(args[1])
	if werr != nil || herr != nil {
		return fmt.Errorf("%w: resize WIDTH HEIGHT", command.ErrUsage)
	}
	if width > config.MaxCanvasDimension || height > config.MaxCanvasDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", canvas.ErrInvalidDimensions, width, height, config.MaxCanvasDimension)
	}

	resized, err := app.canvas.Resized(width, height)
	if err != nil {
		return err
	}
	from := app.canvas.Size()
	app.canvas = resized
	app.controller.SetTarget(resized)
	app.view.Layout(app.canvasArea, resized.Size())

	app.logger.Info("canvas resized from %s to %s", from, resized.Size())
	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until a quit request or Shutdown; a quit request returns nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	b.EnableMouse()

	app.logger.Info("running %s canvas, truecolor=%t", app.canvas.Size(), b.HasTrueColor())

	go app.pumpEvents(b)

	err := app.eventLoop(b)
	switch {
	case errors.Is(err, ErrQuit):
		app.logger.Info("quit requested")
		err = nil
	case err != nil:
		app.logger.Error("event loop: %v", err)
	}

	app.signalDone()
	app.closeLog()
	return err
}

// Shutdown stops the frame loop. It is safe to call more than once and
// from any goroutine. Run returns once the current frame completes.
func (app *Application) Shutdown() {
	app.signalDone()
	if !app.running.Load() {
		app.closeLog()
	}
}

func (app *Application) signalDone() {
	app.doneOnce.Do(func() {
		app.logger.Info("shutdown")
		close(app.done)
		app.cancel()
	})
}

func (app *Application) closeLog() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.logCloser != nil {
		_ = app.logCloser.Close() // nowhere left to report this
		app.logCloser = nil
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.config
}

// Session returns the unique id of this run, used to correlate log lines.
func (app *Application) Session() string {
	return app.session
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Canvas returns the pixel canvas.
func (app *Application) Canvas() *canvas.Canvas {
	return app.canvas
}

// Controller returns the mode controller.
func (app *Application) Controller() *mode.Controller {
	return app.controller
}

// Commands returns the command registry.
func (app *Application) Commands() *command.Registry {
	return app.commands
}
