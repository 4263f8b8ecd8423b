// Package mode provides the modal input state machine for vixel.
//
// The editor has three mutually exclusive modes:
//   - Edit: the initial mode; edit-tool keys move the cursor and paint
//   - Visual: edit-tool keys extend a rectangular selection
//   - Command: character input is collected into a command buffer
//
// # Transitions
//
//	         toggle                enter-command
//	  Edit ◀────────▶ Visual ──────────────────┐
//	   │ ▲                                      ▼
//	   │ └──────────── focus lost ─────────── Command
//	   └──────────── enter-command ────────────▲
//
// The toggle key does nothing in Command mode, and the enter-command key
// does nothing once Command mode is active. Leaving Command mode always
// clears the buffer, so the buffer is non-empty only while composing a
// command. No transition can fail; keys without a meaning in the current
// mode are ignored.
//
// The Controller is the only component that writes to the canvas. It sees
// the canvas through the narrow PixelTarget interface and knows nothing
// about widgets or terminals: the host converts its own input into
// key.Event values, characters and focus-lost notifications.
package mode
