// Package parser is a recursive-descent parser for ember source.
//
// The parser pulls tokens from a TokenStream, builds nodes in an ast.Builder
// and reports to a diag.Engine. Semantic checks, scope bookkeeping and
// code completion are delegated to an Actions implementation (sema.Sema in
// production).
//
// Error recovery never loops: every production either consumes a token,
// hits end of file, or returns to a caller that owns the next delimiter.
// Nesting deeper than Options.BracketDepth stops the parse with a fatal
// diagnostic instead of growing the Go stack without bound.
package parser
