package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{":", NewRuneEvent(':', ModNone)},
		{"v", NewRuneEvent('v', ModNone)},
		{"V", NewRuneEvent('V', ModShift)},
		{"Shift+v", NewRuneEvent('V', ModShift)},
		{"<S-a>", NewRuneEvent('A', ModShift)},
		{"Shift+:", NewRuneEvent(':', ModShift)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"<Space>", NewRuneEvent(' ', ModNone)},
		{"colon", NewRuneEvent(':', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<C-q>", NewRuneEvent('q', ModCtrl)},
		{"<C-Q>", NewRuneEvent('q', ModCtrl)},
		{"Ctrl+Q", NewRuneEvent('q', ModCtrl)},
		{"Alt+Shift+Left", NewSpecialEvent(KeyLeft, ModAlt|ModShift)},
		{"<S-Up>", NewSpecialEvent(KeyUp, ModShift)},
		{"+", NewRuneEvent('+', ModNone)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"<", NewRuneEvent('<', ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("   "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Parse(blank) error = %v, want ErrEmptySpec", err)
	}

	for _, spec := range []string{"<X-a>", "Hyper+a", "abc", "<C->", "Ctrl+"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestEventStringRoundTrip(t *testing.T) {
	for _, spec := range []string{":", "v", "<Space>", "<C-q>", "<Enter>", "<A-S-Left>", "<lt>", "X"} {
		ev := MustParse(spec)
		back, err := Parse(ev.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", ev.String(), err)
		}
		if !back.Matches(ev) {
			t.Errorf("round trip %q -> %q -> %+v, want %+v", spec, ev.String(), back, ev)
		}
	}
}

func TestMatches(t *testing.T) {
	colon := MustParse(":")

	// Terminals often report ':' with Shift held.
	if !NewRuneEvent(':', ModShift).Matches(colon) {
		t.Error("shifted ':' should match ':' binding")
	}
	if NewRuneEvent(':', ModCtrl).Matches(colon) {
		t.Error("Ctrl+: should not match ':' binding")
	}
	if NewRuneEvent('V', ModShift).Matches(MustParse("v")) {
		t.Error("'V' should not match 'v' binding")
	}
	shiftV := MustParse("Shift+v")
	if NewRuneEvent('v', ModNone).Matches(shiftV) {
		t.Error("plain 'v' should not match Shift+v binding")
	}
	if !NewRuneEvent('V', ModShift).Matches(shiftV) {
		t.Error("terminal Shift+v should match Shift+v binding")
	}
	if NewSpecialEvent(KeyUp, ModShift).Matches(MustParse("Up")) {
		t.Error("Shift+Up should not match Up binding")
	}
}

func TestEventPredicates(t *testing.T) {
	tests := []struct {
		name     string
		ev       Event
		isChar   bool
		modified bool
	}{
		{"letter", NewRuneEvent('a', ModNone), true, false},
		{"shifted letter", NewRuneEvent('A', ModShift), true, false},
		{"ctrl letter", NewRuneEvent('a', ModCtrl), false, true},
		{"control rune", NewRuneEvent('\x01', ModNone), false, false},
		{"enter", NewSpecialEvent(KeyEnter, ModNone), false, false},
		{"shift enter", NewSpecialEvent(KeyEnter, ModShift), false, true},
	}

	for _, tt := range tests {
		if got := tt.ev.IsChar(); got != tt.isChar {
			t.Errorf("%s: IsChar() = %v, want %v", tt.name, got, tt.isChar)
		}
		if got := tt.ev.IsModified(); got != tt.modified {
			t.Errorf("%s: IsModified() = %v, want %v", tt.name, got, tt.modified)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	if KeyFromName("ESC") != KeyEscape {
		t.Error("KeyFromName(ESC) should be KeyEscape")
	}
	if KeyFromName("bogus") != KeyNone {
		t.Error("KeyFromName(bogus) should be KeyNone")
	}
	if KeyLeft.String() != "Left" || !KeyLeft.IsArrow() || !KeyLeft.IsSpecial() {
		t.Error("KeyLeft predicates wrong")
	}
}
