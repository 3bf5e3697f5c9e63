// Package trace is ember's event log.
//
// The front end has no general logger. Instead, the driver opens spans for
// each unit and pass, and the parser emits point events when it recovers
// from an error. Events go to a stream (stderr or a file, text or NDJSON),
// to an in-memory ring for post-mortem dumps, or both.
//
// Verbosity:
//
//   - off: nothing
//   - error: crash dumps only
//   - phase: driver, unit and pass spans
//   - detail: plus parser recovery (skip_until, cut_off)
//   - debug: plus scope pops
//
// A tracer travels through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace
