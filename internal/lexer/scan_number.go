package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// scanNumber handles 0, 123, 0b1010, 0o17, 0x1F, 1.5, .5, 1e-3 with '_'
// separators. A malformed literal is reported and returned as Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	digits := func(ok func(byte) bool) int {
		n := 0
		for ok(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
			n++
		}
		return n
	}

	if lx.cursor.Peek() == '0' {
		var class func(byte) bool
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'b', 'B':
				class = func(b byte) bool { return b == '0' || b == '1' }
			case 'o', 'O':
				class = func(b byte) bool { return b >= '0' && b <= '7' }
			case 'x', 'X':
				class = isHex
			}
		}
		if class != nil {
			lx.cursor.Off += 2
			if digits(class) == 0 || isIdentContinueByte(lx.cursor.Peek()) {
				return lx.badNumber(start)
			}
			return lx.make(kind, start)
		}
	}

	digits(isDec)
	if lx.cursor.Peek() == '.' {
		if _, b1, ok := lx.cursor.Peek2(); !ok || b1 != '.' {
			lx.cursor.Bump()
			kind = token.FloatLit
			digits(isDec)
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start)
		}
		digits(isDec)
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start)
	}
	return lx.make(kind, start)
}

// badNumber swallows the rest of the literal and reports it.
func (lx *Lexer) badNumber(start Mark) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
	}
	tok := lx.make(token.Invalid, start)
	lx.diag(diag.LexBadNumber, start).Str(tok.Text).Emit()
	return tok
}
