package command

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
)

// Dispatch errors.
var (
	// ErrUnknownCommand indicates no handler is registered for the verb.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage indicates a handler was given the wrong arguments.
	ErrUsage = errors.New("usage")

	// ErrHandlerPanic indicates a handler panicked.
	ErrHandlerPanic = errors.New("command handler panic")
)

// Registry routes verbs to handlers.
// It is not safe for concurrent use; the frame loop owns it.
type Registry struct {
	handlers map[string]Handler
	aliases  map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		aliases:  make(map[string]string),
	}
}

// Register adds h under its name and the given aliases.
// A later registration of the same name or alias replaces the earlier one.
func (r *Registry) Register(h Handler, aliases ...string) {
	name := h.Name()
	delete(r.aliases, name)
	r.handlers[name] = h
	for _, a := range aliases {
		r.aliases[a] = name
	}
}

// Unregister removes a handler and its aliases.
func (r *Registry) Unregister(name string) {
	delete(r.handlers, name)
	for a, target := range r.aliases {
		if target == name {
			delete(r.aliases, a)
		}
	}
}

// Lookup returns the handler for a verb or alias, or nil.
func (r *Registry) Lookup(verb string) Handler {
	if h, ok := r.handlers[verb]; ok {
		return h
	}
	if name, ok := r.aliases[verb]; ok {
		return r.handlers[name]
	}
	return nil
}

// Verbs returns the registered canonical names in sorted order.
func (r *Registry) Verbs() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch parses line and executes the matching handler.
// A blank line does nothing.
func (r *Registry) Dispatch(ctx context.Context, line string) error {
	verb, args := Parse(line)
	if verb == "" {
		return nil
	}

	h := r.Lookup(verb)
	if h == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
	}
	return executeWithRecovery(ctx, h, args)
}

// Sink returns a function suitable as the mode controller's command sink.
func (r *Registry) Sink(ctx context.Context) func(line string) error {
	return func(line string) error {
		return r.Dispatch(ctx, line)
	}
}

// executeWithRecovery runs h, converting a panic into ErrHandlerPanic.
func executeWithRecovery(ctx context.Context, h Handler, args []string) (err error) {
	defer func() {
		if v := recover(); v != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("%w: %s: %v\n%s", ErrHandlerPanic, h.Name(), v, stack[:n])
		}
	}()
	return h.Execute(ctx, args)
}
