// Package key defines host-independent keyboard events for vixel.
//
// The terminal backend converts its native events into Event values, and
// configuration describes bindings as key specs that Parse turns into
// events:
//
//	ev, err := key.Parse("<C-q>")   // Ctrl+Q
//	ev, err := key.Parse(":")       // colon
//	ev, err := key.Parse("Space")   // space bar
//
// Bindings are compared with Event.Matches, which ignores timestamps and
// the implicit Shift carried by uppercase runes.
package key
