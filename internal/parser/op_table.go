package parser

import "ember/internal/token"

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= *= /= %= &= |= ^= <<= >>=
	precConditional    = 2  // ?:
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precBitwiseOr      = 5  // |
	precBitwiseXor     = 6  // ^
	precBitwiseAnd     = 7  // &
	precEquality       = 8  // == !=
	precRelational     = 9  // < <= > >=
	precShift          = 10 // << >>
	precAdditive       = 11 // + -
	precMultiplicative = 12 // * / %
)

// binaryPrec возвращает приоритет и ассоциативность оператора.
// Пока '>' не оператор (внутри списка generic-аргументов), '>' и '>>'
// бинарными не считаются.
func (p *Parser) binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	// Присваивание и ?: (правоассоциативны)
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign, token.ShlAssign:
		return precAssignment, true
	case token.ShrAssign:
		if !p.greaterThanIsOperator {
			return -1, false
		}
		return precAssignment, true
	case token.Question:
		return precConditional, true

	// Логические
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false

	// Битовые
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false

	// Сравнения
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq:
		return precRelational, false
	case token.Gt, token.GtEq:
		if !p.greaterThanIsOperator {
			return -1, false
		}
		return precRelational, false

	// Сдвиги
	case token.Shl:
		return precShift, false
	case token.Shr:
		if !p.greaterThanIsOperator {
			return -1, false
		}
		return precShift, false

	// Арифметика
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	}
	return -1, false // не бинарный оператор
}

// isUnaryOp reports whether kind can start a prefix expression.
func isUnaryOp(kind token.Kind) bool {
	switch kind {
	case token.Plus, token.Minus, token.Bang, token.Tilde, token.Star, token.Amp,
		token.PlusPlus, token.MinusMinus:
		return true
	}
	return false
}
