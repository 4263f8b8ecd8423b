package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification into an Event.
//
// Supported formats:
//   - Single character: "v", ":", "X"
//   - Names: "Space", "Enter", "Esc", "Up", "colon"
//   - Modifier style: "Ctrl+Q", "Alt+Shift+Left"
//   - Vim style: "<C-q>", "<Space>", "<CR>", "<S-Up>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(spec, strings.Split(spec[1:len(spec)-1], "-"))
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(spec, strings.Split(spec, "+"))
	}
	return parseKey(spec, ModNone)
}

// MustParse is Parse for known-valid specs; it panics on error.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// parseParts handles modifier lists where the last part is the key.
func parseParts(spec string, parts []string) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

// parseKey parses a key name or single character.
func parseKey(part string, mods Modifier) (Event, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	lower := strings.ToLower(part)
	if k, ok := keyNameMap[lower]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeNameMap[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}

	runes := []rune(part)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, part)
	}

	r := runes[0]
	switch {
	case mods.Has(ModCtrl):
		// Terminals report Ctrl+letter without case.
		r = unicode.ToLower(r)
	case mods.Has(ModShift) && unicode.IsLetter(r):
		// Terminals report Shift+letter as the upper-case rune.
		r = unicode.ToUpper(r)
	case unicode.IsUpper(r):
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}
