package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vixel/internal/input/key"
	"github.com/dshills/vixel/internal/renderer/core"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want key.Event
	}{
		{"rune", tcell.KeyRune, 'v', tcell.ModNone, key.MustParse("v")},
		{"colon", tcell.KeyRune, ':', tcell.ModNone, key.MustParse(":")},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, key.MustParse("Space")},
		{"ctrl q", tcell.KeyCtrlQ, 0, tcell.ModCtrl, key.MustParse("<C-q>")},
		{"ctrl c", tcell.KeyCtrlC, 0, tcell.ModCtrl, key.MustParse("<C-c>")},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, key.MustParse("Enter")},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, key.MustParse("Esc")},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, key.MustParse("BS")},
		{"ctrl h backspace", tcell.KeyBackspace, 0, tcell.ModCtrl, key.MustParse("BS")},
		{"arrow", tcell.KeyLeft, 0, tcell.ModNone, key.MustParse("Left")},
		{"shift arrow", tcell.KeyUp, 0, tcell.ModShift, key.MustParse("<S-Up>")},
		{"unknown", tcell.KeyF5, 0, tcell.ModNone, key.Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertKey(tt.key, tt.r, tt.mod)
			if !got.Matches(tt.want) || got.Key != tt.want.Key {
				t.Errorf("convertKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertToTcellKeyRoundTrip(t *testing.T) {
	for _, spec := range []string{"v", "<C-q>", "Enter", "Esc", "BS", "Left", "<S-Down>"} {
		ev := key.MustParse(spec)
		k, r, mod := convertToTcellKey(ev)
		if got := convertKey(k, r, mod); !got.Matches(ev) {
			t.Errorf("round trip %q = %v, want %v", spec, got, ev)
		}
	}
}

func TestConvertEvent(t *testing.T) {
	tests := []struct {
		name string
		in   tcell.Event
		want Event
	}{
		{"mouse", tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone), MouseEvent(3, 4, MouseLeft)},
		{"mouse release", tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone), MouseEvent(3, 4, MouseNone)},
		{"resize", tcell.NewEventResize(120, 40), ResizeEvent(120, 40)},
		{"focus lost", tcell.NewEventFocus(false), FocusEvent(false)},
		{"nil", nil, Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertEvent(tt.in); got != tt.want {
				t.Errorf("convertEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConvertStyleRoundTrip(t *testing.T) {
	tests := []core.Style{
		core.DefaultStyle(),
		core.NewStyle(core.ColorFromRGB(255, 0, 0), core.ColorFromRGB(0, 0, 255)),
		core.NewStyle(core.ColorWhite, core.ColorDefault).Bold().Reverse(),
	}

	for _, want := range tests {
		if got := convertTcellStyle(convertStyle(want)); got != want {
			t.Errorf("style round trip = %+v, want %+v", got, want)
		}
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(20, 5)

	if w, h := term.Size(); w != 20 || h != 5 {
		t.Errorf("Size() = (%d, %d), want (20, 5)", w, h)
	}

	style := core.NewStyle(core.ColorFromRGB(10, 20, 30), core.ColorBlack)
	cell := core.NewStyledCell('▀', style)
	term.SetCell(2, 1, cell)

	if got := term.GetCell(2, 1); got != cell {
		t.Errorf("GetCell() = %+v, want %+v", got, cell)
	}

	term.Fill(core.RectFromSize(3, 18, 5, 5), core.NewStyledCell('#', style))
	if got := term.GetCell(19, 4); got.Rune != '#' {
		t.Errorf("GetCell(19, 4).Rune = %q, want '#'", got.Rune)
	}
	if got := term.GetCell(17, 4); got.Rune == '#' {
		t.Error("Fill() wrote outside its rect")
	}
}
