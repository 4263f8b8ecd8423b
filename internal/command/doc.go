// Package command provides pluggable command dispatch for vixel's
// command line.
//
// Command mode only collects text. What a submitted line means is decided
// here: the line is split into a verb and arguments and routed to the
// Handler registered for that verb. The editor core registers no verbs;
// hosts add the ones they support:
//
//	reg := command.NewRegistry()
//	reg.Register(command.NewHandlerFunc("quit", quitFn), "q")
//	err := reg.Dispatch(ctx, "q")
package command
