package mode

import "github.com/dshills/vixel/internal/input/key"

// Action is what a bound key asks the controller to do.
type Action uint8

const (
	ActionNone Action = iota
	ActionEnterCommand
	ActionToggleVisual
	ActionPaint
	ActionErase
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
)

// String returns the action name used in configuration and logs.
func (a Action) String() string {
	switch a {
	case ActionEnterCommand:
		return "enter-command"
	case ActionToggleVisual:
		return "toggle-visual"
	case ActionPaint:
		return "paint"
	case ActionErase:
		return "erase"
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionMoveUp:
		return "move-up"
	case ActionMoveDown:
		return "move-down"
	default:
		return "none"
	}
}

type binding struct {
	action Action
	event  key.Event
}

// Keymap maps key presses to actions.
// The zero value has no bindings.
type Keymap struct {
	bindings []binding
}

// DefaultKeymap returns the stock bindings: ':' enters Command mode, 'v'
// toggles Visual mode, Space paints, 'x' erases, and hjkl or the arrow keys
// move the cursor.
func DefaultKeymap() Keymap {
	var km Keymap
	km.Bind(ActionEnterCommand, key.MustParse(":"))
	km.Bind(ActionToggleVisual, key.MustParse("v"))
	km.Bind(ActionPaint, key.MustParse("Space"))
	km.Bind(ActionErase, key.MustParse("x"))
	km.Bind(ActionMoveLeft, key.MustParse("h"), key.MustParse("Left"))
	km.Bind(ActionMoveRight, key.MustParse("l"), key.MustParse("Right"))
	km.Bind(ActionMoveUp, key.MustParse("k"), key.MustParse("Up"))
	km.Bind(ActionMoveDown, key.MustParse("j"), key.MustParse("Down"))
	return km
}

// Bind replaces the bindings of action with events.
func (k *Keymap) Bind(action Action, events ...key.Event) {
	kept := k.bindings[:0:0]
	for _, b := range k.bindings {
		if b.action != action {
			kept = append(kept, b)
		}
	}
	for _, ev := range events {
		kept = append(kept, binding{action: action, event: ev})
	}
	k.bindings = kept
}

// Lookup returns the action bound to ev, or ActionNone.
// When several actions share a key, the one bound first wins.
func (k Keymap) Lookup(ev key.Event) Action {
	for _, b := range k.bindings {
		if ev.Matches(b.event) {
			return b.action
		}
	}
	return ActionNone
}

// Keys returns the events bound to action.
func (k Keymap) Keys(action Action) []key.Event {
	var out []key.Event
	for _, b := range k.bindings {
		if b.action == action {
			out = append(out, b.event)
		}
	}
	return out
}
