package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '.'):
		return lx.make(token.Ellipsis, start)
	case lx.try3('<', '<', '='):
		return lx.make(token.ShlAssign, start)
	case lx.try3('>', '>', '='):
		return lx.make(token.ShrAssign, start)
	case lx.try2(':', ':'):
		return lx.make(token.ColonColon, start)
	case lx.try2('-', '>'):
		return lx.make(token.Arrow, start)
	case lx.try2('&', '&'):
		return lx.make(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.make(token.OrOr, start)
	case lx.try2('+', '+'):
		return lx.make(token.PlusPlus, start)
	case lx.try2('-', '-'):
		return lx.make(token.MinusMinus, start)
	case lx.try2('=', '='):
		return lx.make(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.make(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.make(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.make(token.GtEq, start)
	case lx.try2('<', '<'):
		return lx.make(token.Shl, start)
	case lx.try2('>', '>'):
		return lx.make(token.Shr, start)
	case lx.try2('+', '='):
		return lx.make(token.PlusAssign, start)
	case lx.try2('-', '='):
		return lx.make(token.MinusAssign, start)
	case lx.try2('*', '='):
		return lx.make(token.StarAssign, start)
	case lx.try2('/', '='):
		return lx.make(token.SlashAssign, start)
	case lx.try2('%', '='):
		return lx.make(token.PercentAssign, start)
	case lx.try2('&', '='):
		return lx.make(token.AmpAssign, start)
	case lx.try2('|', '='):
		return lx.make(token.PipeAssign, start)
	case lx.try2('^', '='):
		return lx.make(token.CaretAssign, start)
	}

	if k, ok := singleByte[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.make(k, start)
	}

	// неизвестный символ
	lx.bumpRune()
	tok := lx.make(token.Invalid, start)
	lx.diag(diag.LexUnknownChar, start).Str(tok.Text).Emit()
	return tok
}

var singleByte = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}
