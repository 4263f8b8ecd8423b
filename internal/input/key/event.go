package key

import (
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a character key event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a special key event.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true for character key events.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true for printable, unmodified characters: the events a
// text field would accept as typed input.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified reports whether Ctrl, Alt or Meta is held.
// Shift alone does not count for runes because it is part of the character.
func (e Event) IsModified() bool {
	mods := e.Modifiers
	if e.IsRune() {
		mods = mods.Without(ModShift)
	}
	return mods != ModNone
}

// Matches reports whether e is the same key press as binding.
// For runes, Shift is ignored since it is already reflected in the rune.
func (e Event) Matches(binding Event) bool {
	if e.Key != binding.Key {
		return false
	}
	if e.Key == KeyRune {
		return e.Rune == binding.Rune &&
			e.Modifiers.Without(ModShift) == binding.Modifiers.Without(ModShift)
	}
	return e.Modifiers == binding.Modifiers
}

// String returns the vim-style spec for e, e.g. "v", "<C-q>", "<Space>".
// The result parses back to an equivalent event.
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune && e.Rune == '<':
		name = "lt"
	case e.Key == KeyRune:
		if !e.IsModified() {
			return string(e.Rune)
		}
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune {
		mods = mods.Without(ModShift)
	}
	return "<" + mods.String() + name + ">"
}
