// Package diag defines the diagnostic model and the engine that routes
// diagnostics from the lexer, parser and semantic layer to consumers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - ID – key into the diagnostic table (ids.go) giving the format string,
//     the default Level and whether the diagnostic may be delayed.
//   - Loc – primary source.Loc.
//   - Args – positional arguments substituted into %0, %1, ... (see
//     FormatMessage for the directive set).
//   - FixIts – suggested edits; internal/fix applies them.
//   - Ranges – extra highlighted ranges.
//
// Notes are separate diagnostics at LevelNote. They follow the diagnostic they
// annotate and share its fate: a note of a suppressed diagnostic is
// suppressed, a note of a delayed diagnostic is delayed.
//
// # Emitting diagnostics
//
// Engine.Diagnose starts a diagnostic and returns its Builder. Only one
// diagnostic can be in flight per engine; starting a second one before the
// first is emitted panics. Builders chain:
//
//	eng.Diagnose(diag.SynExpected, tok.Loc).Tok(token.RParen).Emit()
//	eng.Diagnose(diag.SynNoteMatching, open).Tok(token.LParen).Emit()
//
// Builder.Move transfers the right to emit to a new handle so a diagnostic can
// be passed around without being emitted twice.
//
// # Suppression
//
// Options controls warnings (ignore or promote to errors), the error limit
// (one fatal "too many errors" is reported, then everything is dropped) and
// blanket suppression. After any fatal diagnostic only notes of already
// emitted diagnostics get through.
//
// # Delayed diagnostics
//
// While a declaration is parsed the semantic layer installs a DelayedPool
// with Engine.SetDelayedPool. Delayable IDs go to the pool instead of the
// consumers; the pool is later replayed with Engine.EmitDelayed or dropped.
//
// # Consumers
//
//   - Bag keeps diagnostics for rendering by internal/diagfmt.
//   - Dedup drops repeated diagnostics before forwarding.
//   - CountingConsumer is the embeddable tally of warnings and errors.
//
// An Engine belongs to exactly one compilation unit. The driver creates one
// per file when it parses in parallel.
package diag
