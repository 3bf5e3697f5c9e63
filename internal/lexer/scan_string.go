package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// scanString scans "..." with backslash escapes. A newline or EOF before the
// closing quote is reported.
func (lx *Lexer) scanString() token.Token {
	return lx.scanQuoted('"', token.StringLit, 0)
}

// scanChar scans '...'; an empty literal is reported.
func (lx *Lexer) scanChar() token.Token {
	return lx.scanQuoted('\'', token.CharLit, 1)
}

func (lx *Lexer) scanQuoted(quote byte, kind token.Kind, selectIdx int64) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	n := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			tok := lx.make(kind, start)
			if n == 0 && kind == token.CharLit {
				lx.diag(diag.LexEmptyChar, start).Emit()
			}
			return tok
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				continue
			}
			lx.bumpRune()
		case '\n':
			tok := lx.make(token.Invalid, start)
			lx.diag(diag.LexUnterminatedString, start).Int(selectIdx).Emit()
			return tok
		default:
			lx.bumpRune()
		}
		n++
	}
	tok := lx.make(token.Invalid, start)
	lx.diag(diag.LexUnterminatedString, start).Int(selectIdx).Emit()
	return tok
}
