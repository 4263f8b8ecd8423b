package mode

// Mode is an editor interaction mode.
type Mode uint8

const (
	// Edit is the initial mode.
	Edit Mode = iota
	// Visual is rectangular selection.
	Visual
	// Command collects command text.
	Command
)

// String returns the mode identifier.
func (m Mode) String() string {
	switch m {
	case Edit:
		return "edit"
	case Visual:
		return "visual"
	case Command:
		return "command"
	default:
		return "unknown"
	}
}

// Label returns the short status-line label.
func (m Mode) Label() string {
	switch m {
	case Edit:
		return "EDIT"
	case Visual:
		return "VIS"
	case Command:
		return "CMD"
	default:
		return "?"
	}
}
