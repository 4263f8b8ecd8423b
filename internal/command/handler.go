package command

import "context"

// Handler executes one command verb.
type Handler interface {
	// Name returns the canonical verb.
	Name() string

	// Execute runs the command with the words that followed the verb.
	Execute(ctx context.Context, args []string) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc struct {
	name string
	fn   func(ctx context.Context, args []string) error
}

// NewHandlerFunc creates a named handler from fn.
func NewHandlerFunc(name string, fn func(ctx context.Context, args []string) error) *HandlerFunc {
	return &HandlerFunc{name: name, fn: fn}
}

// Name implements Handler.
func (h *HandlerFunc) Name() string {
	return h.name
}

// Execute implements Handler.
func (h *HandlerFunc) Execute(ctx context.Context, args []string) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, args)
}
