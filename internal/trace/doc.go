// Package trace records what the brace pipeline is doing.
//
// Enable it from the command line:
//
//	brace check --trace=- --trace-level=phase script.brc
//
// A stream tracer writes events as they happen, as text or NDJSON. A ring
// tracer keeps the last events in memory and is dumped when a command
// fails, so --trace-mode=ring costs nothing on success.
//
// Events carry a Scope (driver, pass, file, command). The Level decides
// which scopes are emitted: phase shows driver and pass boundaries, detail
// adds per-file events, debug adds every evaluated command.
//
// The tracer and the current span travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "run")
//	defer span.End("ok")
//	trace.Mark(ctx, trace.ScopeCommand, "echo", "")
package trace
