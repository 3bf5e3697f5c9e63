// Package token defines lexical token kinds for the ember front end.
// Invariants:
//   - Token.Text is the exact source spelling of the token.
//   - Token.Loc is the location of the first byte; Token.Len its length.
//   - Built-in type names (int, uint, float, ...) are keywords, not identifiers.
//   - The lexer never produces Invalid for well-formed input; CodeCompletion
//     appears at most once per stream.
package token
