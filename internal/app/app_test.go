package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/vixel/internal/canvas"
	"github.com/dshills/vixel/internal/config"
	"github.com/dshills/vixel/internal/input/key"
	"github.com/dshills/vixel/internal/input/mode"
	"github.com/dshills/vixel/internal/renderer/backend"
	"github.com/dshills/vixel/internal/renderer/core"
	"github.com/dshills/vixel/internal/renderer/statusline"
	"github.com/dshills/vixel/internal/renderer/view"
)

// newTestApp creates an application from a config file holding cfgText.
func newTestApp(t *testing.T, cfgText string, opts Options) *Application {
	t.Helper()
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(cfgText), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	opts.ConfigPath = path

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// clearEnv hides VIXEL_ variables from the test, restoring them after.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range config.EnvNames() {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func keys(b *backend.NullBackend, specs ...string) {
	for _, s := range specs {
		b.PostEvent(backend.KeyEvent(key.MustParse(s)))
	}
}

// typeCommand types ":" line Enter.
func typeCommand(b *backend.NullBackend, line string) {
	keys(b, ":")
	for _, r := range line {
		b.PostEvent(backend.KeyEvent(key.NewRuneEvent(r, key.ModNone)))
	}
	keys(b, "Enter")
}

// run runs app until it exits or the test times out.
func run(t *testing.T, app *Application, b *backend.NullBackend) error {
	t.Helper()
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- app.Run() }()

	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		app.Shutdown()
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestNewApplication(t *testing.T) {
	app := newTestApp(t, "", Options{})
	defer app.Shutdown()

	if got := app.Canvas().Size(); got != (canvas.Size{Width: 16, Height: 16}) {
		t.Errorf("canvas size = %v, want 16x16", got)
	}
	if got := app.Controller().Mode(); got != mode.Edit {
		t.Errorf("initial mode = %v, want Edit", got)
	}
	if got := app.Controller().Color(); got != canvas.Green {
		t.Errorf("draw color = %v, want %v", got, canvas.Green)
	}
	if app.Commands().Lookup("q") == nil || app.Commands().Lookup("quit") == nil {
		t.Error("quit command not registered")
	}
	if app.Session() == "" {
		t.Error("Session() is empty")
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[canvas]\nwidth = 0\n"), 0o644)

	_, err := New(Options{ConfigPath: path})

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("New() error = %v, want *InitError", err)
	}
	if initErr.Component != "config" {
		t.Errorf("InitError.Component = %q, want config", initErr.Component)
	}
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("New() error = %v, want ErrValidationFailed", err)
	}
}

func TestOptionsOverrideConfig(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "vixel.log")
	app := newTestApp(t, "[logging]\nlevel = \"error\"\n", Options{Debug: true, LogFile: logPath})
	defer app.Shutdown()

	cfg := app.Config()
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.File != logPath {
		t.Errorf("Logging.File = %q, want %q", cfg.Logging.File, logPath)
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app := newTestApp(t, "", Options{})
	defer app.Shutdown()

	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, want ErrNoBackend", err)
	}
}

func TestSetBackendWhileRunning(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)
	app.SetBackend(b)

	errc := make(chan error, 1)
	go func() { errc <- app.Run() }()

	deadline := time.Now().Add(5 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := app.SetBackend(b); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend() while running = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()
	app.Shutdown()
	if err := <-errc; err != nil {
		t.Errorf("Run() after Shutdown = %v, want nil", err)
	}
}

func TestRunPaintAndQuit(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, "Space", "l", "j", "x", "k", "l", "Space", "<C-q>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	tests := []struct {
		x, y int
		want canvas.Color
	}{
		{0, 0, canvas.Green},
		{1, 1, canvas.Black},
		{2, 0, canvas.Green},
		{1, 0, canvas.Black},
	}
	for _, tt := range tests {
		got, err := app.Canvas().Pixel(tt.x, tt.y)
		if err != nil {
			t.Fatalf("Pixel(%d, %d) error = %v", tt.x, tt.y, err)
		}
		if got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if b.ShowCount() == 0 {
		t.Error("no frame was shown")
	}
}

func TestRunQuitCommand(t *testing.T) {
	for _, verb := range []string{"q", "quit"} {
		t.Run(verb, func(t *testing.T) {
			app := newTestApp(t, "", Options{})
			b := backend.NewNullBackend(40, 20)

			keys(b, ":")
			for _, r := range verb {
				keys(b, string(r))
			}
			keys(b, "Enter")

			if err := run(t, app, b); err != nil {
				t.Fatalf("Run() = %v, want nil", err)
			}
			if app.Controller().Mode() != mode.Edit {
				t.Errorf("mode after submit = %v, want Edit", app.Controller().Mode())
			}
		})
	}
}

func TestCommandTextOrdering(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, ":", "a", "b", "<C-c>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	ctrl := app.Controller()
	if ctrl.Mode() != mode.Command {
		t.Errorf("mode = %v, want Command", ctrl.Mode())
	}
	if ctrl.Buffer() != "ab" {
		t.Errorf("Buffer() = %q, want %q", ctrl.Buffer(), "ab")
	}
}

func TestCommandFieldTakesBoundKeys(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, ":", "v", "x", ":", "Space", "BS", "<C-c>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if got := app.Controller().Buffer(); got != "vx:" {
		t.Errorf("Buffer() = %q, want %q", got, "vx:")
	}
	if got, _ := app.Canvas().Pixel(0, 0); got != canvas.Black {
		t.Errorf("Pixel(0, 0) = %v, want untouched", got)
	}
}

func TestFocusLostSubmits(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, ":", "z", "z")
	b.PostEvent(backend.FocusEvent(false))
	keys(b, "<C-c>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	ctrl := app.Controller()
	if ctrl.Mode() != mode.Edit || ctrl.Buffer() != "" {
		t.Errorf("after focus loss mode = %v buffer = %q, want Edit and empty", ctrl.Mode(), ctrl.Buffer())
	}
	msg, typ := app.status.Message()
	if !strings.Contains(msg, "unknown command") || typ != statusline.MessageError {
		t.Errorf("status message = (%q, %v), want unknown command error", msg, typ)
	}
}

func TestFocusLostQuits(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, ":", "q")
	b.PostEvent(backend.FocusEvent(false))
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
}

func TestEscapeCancels(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, ":", "q", "Esc", "<C-c>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	ctrl := app.Controller()
	if ctrl.Mode() != mode.Edit || ctrl.Buffer() != "" {
		t.Errorf("after Esc mode = %v buffer = %q, want Edit and empty", ctrl.Mode(), ctrl.Buffer())
	}
}

func TestVisualFill(t *testing.T) {
	app := newTestApp(t, "", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, "v", "l", "j", "Space", "v", "<C-q>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := canvas.Black
			if x <= 1 && y <= 1 {
				want = canvas.Green
			}
			if got, _ := app.Canvas().Pixel(x, y); got != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if app.Controller().Mode() != mode.Edit {
		t.Errorf("mode = %v, want Edit", app.Controller().Mode())
	}
}

const mouseConfig = `
[canvas]
width = 4
height = 4

[editor]
scale = 2
`

// screenCell returns where the app's view shows canvas pixel (x, y) on a
// 40x20 screen.
func screenCell(t *testing.T, x, y int) (col, row int) {
	t.Helper()
	v := view.New(2)
	v.Layout(core.RectFromSize(0, 0, 18, 40), canvas.Size{Width: 4, Height: 4})
	return v.CanvasToScreen(x, y)
}

func TestMousePaint(t *testing.T) {
	app := newTestApp(t, mouseConfig, Options{})
	b := backend.NewNullBackend(40, 20)

	col, row := screenCell(t, 2, 3)
	b.PostEvent(backend.MouseEvent(col, row, backend.MouseLeft))
	b.PostEvent(backend.MouseEvent(col+2, row, backend.MouseNone))
	keys(b, "<C-q>")

	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if got, _ := app.Canvas().Pixel(2, 3); got != canvas.Green {
		t.Errorf("Pixel(2, 3) = %v, want %v", got, canvas.Green)
	}
	if got, _ := app.Canvas().Pixel(3, 3); got != canvas.Black {
		t.Errorf("Pixel(3, 3) = %v, want untouched on release", got)
	}
	if got := app.Controller().Cursor(); got != (mode.Point{X: 2, Y: 3}) {
		t.Errorf("Cursor() = %v, want (2, 3)", got)
	}
	if !b.MouseEnabled() {
		t.Error("mouse reporting not enabled")
	}
}

func TestMouseOutOfBounds(t *testing.T) {
	app := newTestApp(t, mouseConfig, Options{})
	b := backend.NewNullBackend(40, 20)

	b.PostEvent(backend.MouseEvent(0, 0, backend.MouseLeft))
	b.PostEvent(backend.MouseEvent(0, 19, backend.MouseLeft)) // status line, ignored
	keys(b, "<C-q>")

	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	msg, typ := app.status.Message()
	if !strings.Contains(msg, "out of bounds") || typ != statusline.MessageWarning {
		t.Errorf("status message = (%q, %v), want out of bounds warning", msg, typ)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got, _ := app.Canvas().Pixel(x, y); got != canvas.Black {
				t.Errorf("Pixel(%d, %d) = %v, want black", x, y, got)
			}
		}
	}
}

func TestDrawStatusLine(t *testing.T) {
	app := newTestApp(t, "[editor]\ntitle = \"sprite\"\n", Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, "<C-q>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	row := b.Row(18)
	if !strings.HasPrefix(row, " EDIT ") || !strings.Contains(row, "sprite") {
		t.Errorf("status row = %q, want EDIT label and title", row)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("terminal cursor visible outside Command mode")
	}
}

func TestResizeRelayout(t *testing.T) {
	app := newTestApp(t, mouseConfig, Options{})
	b := backend.NewNullBackend(40, 20)

	b.Resize(60, 30)
	keys(b, "<C-q>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if app.statusRow != 28 {
		t.Errorf("statusRow = %d, want 28", app.statusRow)
	}
	if got := app.canvasArea; got.Width() != 60 || got.Height() != 28 {
		t.Errorf("canvasArea = %+v, want 60x28", got)
	}
}

func TestLogFileCarriesSession(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "vixel.log")
	app := newTestApp(t, "", Options{LogFile: logPath, Debug: true})
	b := backend.NewNullBackend(40, 20)

	keys(b, "<C-q>")
	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, "session="+app.Session()) {
		t.Errorf("log does not carry session id:\n%s", log)
	}
	if !strings.Contains(log, "quit requested") {
		t.Errorf("log missing quit line:\n%s", log)
	}
}

func TestResizeCommand(t *testing.T) {
	app := newTestApp(t, mouseConfig, Options{})
	b := backend.NewNullBackend(40, 20)

	keys(b, "Space", "l", "l", "l", "j", "j", "j")
	typeCommand(b, "resize 2 3")
	keys(b, "Space", "<C-q>")

	if err := run(t, app, b); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	cv := app.Canvas()
	if got := cv.Size(); got != (canvas.Size{Width: 2, Height: 3}) {
		t.Fatalf("canvas size = %v, want 2x3", got)
	}
	if got := app.Controller().Cursor(); got != (mode.Point{X: 1, Y: 2}) {
		t.Errorf("Cursor() = %v, want (1, 2)", got)
	}

	tests := []struct {
		x, y int
		want canvas.Color
	}{
		{0, 0, canvas.Green},
		{1, 0, canvas.Black},
		{1, 2, canvas.Green},
	}
	for _, tt := range tests {
		if got, _ := cv.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if msg, _ := app.status.Message(); msg != "" {
		t.Errorf("status message = %q, want none", msg)
	}
}

func TestResizeCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"resize", "usage"},
		{"resize 4 x", "usage"},
		{"resize 0 4", "invalid canvas dimensions"},
		{"resize 4 5000", "invalid canvas dimensions"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			app := newTestApp(t, mouseConfig, Options{})
			b := backend.NewNullBackend(40, 20)

			typeCommand(b, tt.line)
			keys(b, "<C-q>")
			if err := run(t, app, b); err != nil {
				t.Fatalf("Run() = %v, want nil", err)
			}

			if got := app.Canvas().Size(); got != (canvas.Size{Width: 4, Height: 4}) {
				t.Errorf("canvas size = %v, want unchanged 4x4", got)
			}
			msg, typ := app.status.Message()
			if !strings.Contains(msg, tt.want) || typ != statusline.MessageError {
				t.Errorf("status message = (%q, %v), want %q error", msg, typ, tt.want)
			}
		})
	}
}
