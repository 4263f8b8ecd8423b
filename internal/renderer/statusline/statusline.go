// Package statusline provides the status bar and command field.
package statusline

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/vixel/internal/renderer/backend"
	"github.com/dshills/vixel/internal/renderer/core"
)

// Separator divides the status bar fields.
const Separator = '│'

// StatusLine renders the bottom two rows: a status bar showing the mode
// label, the title and the latest message, and below it the command field.
type StatusLine struct {
	// Display state
	label string // Mode label (e.g., "EDIT", "VIS", "CMD")
	title string

	// Command field state
	commandActive bool
	commandPrompt rune
	commandBuffer string

	// Message display
	message     string
	messageType MessageType

	// Style configuration
	modeStyles map[string]core.Style

	width int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

var (
	colorGreen   = core.ColorFromRGB(0x5f, 0xd7, 0x5f)
	colorMagenta = core.ColorFromRGB(0xd7, 0x5f, 0xd7)
	colorYellow  = core.ColorFromRGB(0xff, 0xd7, 0x00)
	colorRed     = core.ColorFromRGB(0xff, 0x5f, 0x5f)
	colorBar     = core.ColorFromRGB(0x30, 0x30, 0x30)
)

// New creates a status line showing title.
func New(title string) *StatusLine {
	return &StatusLine{
		label:         "EDIT",
		title:         title,
		commandPrompt: ':',
		modeStyles:    defaultModeStyles(),
	}
}

// defaultModeStyles returns default styles for each mode label.
func defaultModeStyles() map[string]core.Style {
	return map[string]core.Style{
		"EDIT": core.NewStyle(core.ColorBlack, colorGreen).Bold(),
		"VIS":  core.NewStyle(core.ColorBlack, colorMagenta).Bold(),
		"CMD":  core.NewStyle(core.ColorBlack, colorYellow).Bold(),
	}
}

// SetMode updates the displayed mode label.
func (s *StatusLine) SetMode(label string) {
	s.label = label
}

// Mode returns the displayed mode label.
func (s *StatusLine) Mode() string {
	return s.label
}

// SetTitle updates the displayed title.
func (s *StatusLine) SetTitle(title string) {
	s.title = title
}

// SetCommand updates the command field. An inactive field is blank.
func (s *StatusLine) SetCommand(active bool, buffer string) {
	s.commandActive = active
	s.commandBuffer = buffer
	if !active {
		s.commandBuffer = ""
	}
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int {
	return 2
}

// Render draws the status bar at row and the command field below it.
func (s *StatusLine) Render(b backend.Backend, row int) {
	s.renderStatusBar(b, row)
	s.renderCommandLine(b, row+1)
}

// renderStatusBar renders " LABEL │ title │ message".
func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	barStyle := core.NewStyle(core.ColorWhite, colorBar)
	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', barStyle))

	modeStyle, ok := s.modeStyles[s.label]
	if !ok {
		modeStyle = barStyle.Bold()
	}

	col := s.putString(b, 0, row, " "+s.label+" ", modeStyle)
	col = s.putString(b, col, row, " "+string(Separator)+" ", barStyle)
	col = s.putString(b, col, row, s.title, barStyle)

	if s.message == "" {
		return
	}
	col = s.putString(b, col, row, " "+string(Separator)+" ", barStyle)

	msgStyle := barStyle
	switch s.messageType {
	case MessageError:
		msgStyle = msgStyle.WithForeground(colorRed).Bold()
	case MessageWarning:
		msgStyle = msgStyle.WithForeground(colorYellow)
	}
	s.putString(b, col, row, s.message, msgStyle)
}

// renderCommandLine renders the command field and places the cursor.
func (s *StatusLine) renderCommandLine(b backend.Backend, row int) {
	cmdStyle := core.DefaultStyle()
	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', cmdStyle))

	if !s.commandActive {
		b.HideCursor()
		return
	}

	col := s.putString(b, 0, row, string(s.commandPrompt), cmdStyle)
	col = s.putString(b, col, row, s.commandBuffer, cmdStyle)
	b.ShowCursor(min(col, s.width-1), row)
}

// putString draws str from col by grapheme cluster, truncating at the
// status line width. It returns the column after the last cluster drawn.
func (s *StatusLine) putString(b backend.Backend, col, row int, str string, style core.Style) int {
	state := -1
	for str != "" {
		var cluster string
		var width int
		cluster, str, width, state = uniseg.FirstGraphemeClusterInString(str, state)
		if width == 0 {
			continue
		}
		if col+width > s.width {
			break
		}
		// Wide clusters cover the next cell; tcell draws them itself.
		b.SetCell(col, row, core.Cell{Rune: []rune(cluster)[0], Width: width, Style: style})
		col += width
	}
	return col
}
