package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies keywords.
// An identifier stops early at the completion point.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if r >= utf8RuneSelf && !isIdentStartRune(r) {
		lx.bumpRune()
		tok := lx.make(token.Invalid, start)
		lx.diag(diag.LexUnknownChar, start).Str(tok.Text).Emit()
		return tok
	}
	lx.bumpRune()
	for !lx.cursor.EOF() && !lx.atCompletionPoint() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.make(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		return tok
	}
	if lx.opts.Idents != nil {
		tok.Ident = lx.opts.Idents.Intern(tok.Text)
	}
	return tok
}
