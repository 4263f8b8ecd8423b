package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/vixel/internal/renderer/backend"
	"github.com/dshills/vixel/internal/renderer/core"
)

func render(t *testing.T, s *StatusLine, width int) *backend.NullBackend {
	t.Helper()
	b := backend.NewNullBackend(width, 2)
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.Resize(width)
	s.Render(b, 0)
	return b
}

func TestRenderStatusBar(t *testing.T) {
	s := New("untitled")
	b := render(t, s, 30)

	want := " EDIT  │ untitled"
	if got := strings.TrimRight(b.Row(0), " "); got != want {
		t.Errorf("Row(0) = %q, want %q", got, want)
	}
	if got := b.GetCell(1, 0).Style; got != s.modeStyles["EDIT"] {
		t.Errorf("label style = %+v, want EDIT style", got)
	}
	if got := strings.TrimSpace(b.Row(1)); got != "" {
		t.Errorf("Row(1) = %q, want blank command field", got)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor visible with inactive command field")
	}
}

func TestRenderModes(t *testing.T) {
	tests := []string{"EDIT", "VIS", "CMD"}

	for _, label := range tests {
		s := New("t")
		s.SetMode(label)
		b := render(t, s, 20)

		if got := b.Row(0); !strings.HasPrefix(got, " "+label+" ") {
			t.Errorf("Row(0) = %q, want %q label", got, label)
		}
		if s.Mode() != label {
			t.Errorf("Mode() = %q, want %q", s.Mode(), label)
		}
	}
}

func TestRenderMessage(t *testing.T) {
	s := New("art")
	s.SetMessage("paint (9, 9): out of bounds", MessageError)
	b := render(t, s, 60)

	if got := b.Row(0); !strings.Contains(got, "│ art │ paint (9, 9): out of bounds") {
		t.Errorf("Row(0) = %q, want title and message", got)
	}

	col := strings.Index(b.Row(0), "paint")
	// Row() is rune based and every rune here is one cell wide.
	col = len([]rune(b.Row(0)[:col]))
	if got := b.GetCell(col, 0).Style.Foreground; got != colorRed {
		t.Errorf("error message fg = %v, want %v", got, colorRed)
	}

	s.ClearMessage()
	if msg, typ := s.Message(); msg != "" || typ != MessageNone {
		t.Errorf("Message() = (%q, %v), want cleared", msg, typ)
	}
}

func TestRenderCommandField(t *testing.T) {
	s := New("t")
	s.SetMode("CMD")
	s.SetCommand(true, "quit")
	b := render(t, s, 20)

	if got := strings.TrimRight(b.Row(1), " "); got != ":quit" {
		t.Errorf("Row(1) = %q, want %q", got, ":quit")
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 5 || y != 1 {
		t.Errorf("cursor = (%d, %d, %v), want (5, 1, true)", x, y, visible)
	}

	s.SetCommand(false, "ignored")
	b = render(t, s, 20)
	if got := strings.TrimSpace(b.Row(1)); got != "" {
		t.Errorf("Row(1) = %q, want blank after deactivation", got)
	}
}

func TestRenderTruncates(t *testing.T) {
	s := New("a-very-long-title")
	b := render(t, s, 12)

	if got := b.Row(0); len([]rune(got)) != 12 {
		t.Errorf("Row(0) = %q, want 12 cells", got)
	}

	s.SetMode("CMD")
	s.SetCommand(true, "abcdefghijklmnop")
	b = render(t, s, 12)
	x, _, _ := b.CursorPosition()
	if x != 11 {
		t.Errorf("cursor x = %d, want 11", x)
	}
}

func TestPutStringWide(t *testing.T) {
	s := New("")
	b := backend.NewNullBackend(10, 1)
	b.Init()
	s.Resize(10)

	end := s.putString(b, 0, 0, "世界!", core.DefaultStyle())
	if end != 5 {
		t.Errorf("putString() = %d, want 5", end)
	}
	if got := b.GetCell(2, 0).Rune; got != '界' {
		t.Errorf("cell 2 = %q, want '界'", got)
	}
	if got := b.GetCell(4, 0).Rune; got != '!' {
		t.Errorf("cell 4 = %q, want '!'", got)
	}

	// A wide cluster that does not fit is dropped whole.
	if end := s.putString(b, 9, 0, "世", core.DefaultStyle()); end != 9 {
		t.Errorf("putString() at edge = %d, want 9", end)
	}
}
