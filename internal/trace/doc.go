// Package trace records what prettyasm does while it formats files.
//
// Tracing is off unless enabled from the command line:
//
//	prettyasm fmt --trace=- --trace-level=debug prog.asm
//	prettyasm fmt -v prog.asm
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// A level decides which scopes are emitted:
//
//   - LevelOff: nothing
//   - LevelError: nothing (reserved for failures)
//   - LevelPhase: driver operations and formatting passes
//   - LevelDetail: plus one span per file
//   - LevelDebug: plus one event per source line
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, path, 0)
//	defer span.End("")
package trace
