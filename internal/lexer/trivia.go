package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии перед
// значимым токеном и запоминает, что они были, во флагах токена.
//   - '\n' sets StartOfLine
//   - spaces, tabs and comments set LeadingSpace
//   - /* ... */ nests; an unterminated one is reported and runs to EOF
//   - NUL bytes are reported and skipped
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		if lx.atCompletionPoint() {
			return
		}
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\r', '\f', '\v':
			lx.cursor.Bump()
			lx.flags |= token.LeadingSpace
		case '\n':
			lx.cursor.Bump()
			lx.flags |= token.StartOfLine
			lx.flags &^= token.LeadingSpace
		case 0:
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.diag(diag.LexNullCharacter, start).Emit()
			lx.flags |= token.LeadingSpace
		case '/':
			if !lx.skipComment() {
				return
			}
			lx.flags |= token.LeadingSpace
		default:
			return
		}
	}
}

// skipComment consumes // or /* */ and reports whether it did.
func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if c0, c1, ok := lx.cursor.Peek2(); ok {
				if c0 == '/' && c1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if c0 == '*' && c1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		if depth > 0 {
			lx.diag(diag.LexUnterminatedComment, start).Emit()
		}
		return true
	}
	return false
}
