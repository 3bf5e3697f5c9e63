package parser

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
)

// at — текущий токен имеет вид k.
func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// atOr — текущий токен совпадает с одним из kinds.
func (p *Parser) atOr(kinds ...token.Kind) bool { return p.tok.IsOneOf(kinds...) }

// isSpecial reports whether k must go through one of the dedicated Consume*
// methods so that the nesting counters stay balanced.
func isSpecial(tok token.Token) bool {
	switch tok.Kind {
	case token.LParen, token.RParen, token.LBracket, token.RBracket, token.LBrace, token.RBrace,
		token.StringLit, token.CharLit, token.CodeCompletion:
		return true
	}
	return tok.IsAnnotation()
}

// advance moves to the next token and returns the location of the one left
// behind. A synthetic EOF (after CutOffParsing) is never advanced past.
func (p *Parser) advance() source.Loc {
	loc := p.tok.Loc
	if p.tok.Kind == token.EOF {
		return loc
	}
	p.prevTokLoc = loc
	p.prevTokEnd = p.tok.EndLoc()
	p.consumed++
	p.tok = p.lx.Lex()
	return loc
}

// ConsumeToken consumes an ordinary token. Delimiters, string literals,
// annotations and the completion token panic: they have their own methods.
func (p *Parser) ConsumeToken() source.Loc {
	if isSpecial(p.tok) {
		panic(fmt.Sprintf("parser: ConsumeToken on %s; use the matching Consume method", p.tok.Kind))
	}
	return p.advance()
}

// TryConsumeToken consumes the current token if it is k.
func (p *Parser) TryConsumeToken(k token.Kind) (source.Loc, bool) {
	if !p.at(k) {
		return source.NoLoc, false
	}
	return p.ConsumeAnyToken(false), true
}

// ConsumeAnyToken consumes whatever comes next, dispatching to the method
// that keeps the counters right. With consumeCodeCompletion unset a
// completion token is handed to HandleUnexpectedCodeCompletionToken.
func (p *Parser) ConsumeAnyToken(consumeCodeCompletion bool) source.Loc {
	switch {
	case p.tok.IsParen():
		return p.ConsumeParen()
	case p.tok.IsBracket():
		return p.ConsumeBracket()
	case p.tok.IsBrace():
		return p.ConsumeBrace()
	case p.tok.IsStringLiteral():
		return p.ConsumeStringToken()
	case p.tok.IsCodeCompletion():
		if consumeCodeCompletion {
			return p.ConsumeCodeCompletionToken()
		}
		return p.HandleUnexpectedCodeCompletionToken()
	case p.tok.IsAnnotation():
		return p.ConsumeAnnotationToken()
	}
	return p.ConsumeToken()
}

// ConsumeParen consumes '(' or ')'.
func (p *Parser) ConsumeParen() source.Loc {
	if !p.tok.IsParen() {
		panic(fmt.Sprintf("parser: ConsumeParen on %s", p.tok.Kind))
	}
	if p.at(token.LParen) {
		p.parenCount = inc(p.parenCount)
	} else {
		p.angles.Clear(p)
		p.parenCount = dec(p.parenCount)
	}
	return p.advance()
}

// ConsumeBracket consumes '[' or ']'.
func (p *Parser) ConsumeBracket() source.Loc {
	if !p.tok.IsBracket() {
		panic(fmt.Sprintf("parser: ConsumeBracket on %s", p.tok.Kind))
	}
	if p.at(token.LBracket) {
		p.bracketCount = inc(p.bracketCount)
	} else {
		p.angles.Clear(p)
		p.bracketCount = dec(p.bracketCount)
	}
	return p.advance()
}

// ConsumeBrace consumes '{' or '}'.
func (p *Parser) ConsumeBrace() source.Loc {
	if !p.tok.IsBrace() {
		panic(fmt.Sprintf("parser: ConsumeBrace on %s", p.tok.Kind))
	}
	if p.at(token.LBrace) {
		p.braceCount = inc(p.braceCount)
	} else {
		p.angles.Clear(p)
		p.braceCount = dec(p.braceCount)
	}
	return p.advance()
}

func inc(n uint16) uint16 {
	if n == ^uint16(0) {
		return n
	}
	return n + 1
}

// dec не уходит ниже нуля: лишняя закрывающая скобка счётчик не ломает.
func dec(n uint16) uint16 {
	if n == 0 {
		return 0
	}
	return n - 1
}

// ConsumeStringToken consumes a string or character literal.
func (p *Parser) ConsumeStringToken() source.Loc {
	if !p.tok.IsStringLiteral() {
		panic(fmt.Sprintf("parser: ConsumeStringToken on %s", p.tok.Kind))
	}
	return p.advance()
}

// ConsumeAnnotationToken consumes a token the parser entered itself.
func (p *Parser) ConsumeAnnotationToken() source.Loc {
	if !p.tok.IsAnnotation() {
		panic(fmt.Sprintf("parser: ConsumeAnnotationToken on %s", p.tok.Kind))
	}
	return p.advance()
}

// ConsumeCodeCompletionToken consumes the completion token after the caller
// has already reported completion results.
func (p *Parser) ConsumeCodeCompletionToken() source.Loc {
	if !p.tok.IsCodeCompletion() {
		panic(fmt.Sprintf("parser: ConsumeCodeCompletionToken on %s", p.tok.Kind))
	}
	return p.advance()
}

// HandleUnexpectedCodeCompletionToken reports completions for the innermost
// context that can take them and stops parsing.
func (p *Parser) HandleUnexpectedCodeCompletionToken() source.Loc {
	loc := p.prevTokLoc
	ctx := sema.CompleteTopLevel
	for s := p.CurScope(); s != nil; s = s.Parent() {
		if s.Is(sema.FnScope) {
			ctx = sema.CompleteStatement
			break
		}
		if s.Is(sema.ClassScope) {
			ctx = sema.CompleteClass
			break
		}
	}
	p.actions.CodeCompleteOrdinaryName(p.tok.Loc, p.CurScope(), ctx)
	p.CutOffParsing()
	return loc
}

// UnconsumeToken makes consumed current again; the present token goes back
// to the stream.
func (p *Parser) UnconsumeToken(consumed token.Token) {
	p.lx.EnterToken(p.tok, true)
	p.tok = consumed
}

// PeekNextToken returns the token after the current one.
func (p *Parser) PeekNextToken() token.Token { return p.lx.LookAhead(0) }

// LookAhead(0) is the current token, LookAhead(1) the next, and so on.
func (p *Parser) LookAhead(n int) token.Token {
	if n == 0 {
		return p.tok
	}
	return p.lx.LookAhead(n - 1)
}

// isCommonTypo: ':' or ',' written where ';' belongs.
func isCommonTypo(expected token.Kind, tok token.Token) bool {
	return expected == token.Semicolon && tok.IsOneOf(token.Colon, token.Comma)
}

// ExpectAndConsume consumes expected or reports id. It returns true when
// parsing may go on as if the token were there: either it was, or it was a
// common typo that got a replacement fix-it and was consumed instead.
// SynExpected takes the token; SynExpectedAfter takes the token and msg; any
// other id takes msg when it is not empty. Nothing is reported once parsing
// was cut off.
func (p *Parser) ExpectAndConsume(expected token.Kind, id diag.ID, msg string) bool {
	if p.at(expected) {
		p.ConsumeAnyToken(false)
		return true
	}
	if p.cutOff {
		return false
	}

	spelling := expected.Spelling()
	if isCommonTypo(expected, p.tok) {
		found := p.tok
		if id == diag.SynExpectedAfter {
			id = diag.SynExpectedAfterReplaced
		}
		b := p.DiagTok(id).ReplacementFixIt(source.TokenRange(found.Loc, found.Loc), spelling)
		withExpectArgs(b, id, expected, msg)
		if id == diag.SynExpectedAfterReplaced {
			b.Tok(found.Kind)
		}
		b.Emit()
		p.ConsumeAnyToken(false)
		return true
	}

	var b *diag.Builder
	if p.prevTokEnd.IsValid() && spelling != "" {
		b = p.Diag(id, p.prevTokEnd).InsertionFixIt(p.prevTokEnd, spelling)
	} else {
		b = p.DiagTok(id)
	}
	withExpectArgs(b, id, expected, msg)
	b.Emit()
	return false
}

func withExpectArgs(b *diag.Builder, id diag.ID, expected token.Kind, msg string) {
	switch id {
	case diag.SynExpected:
		b.Tok(expected)
	case diag.SynExpectedAfter, diag.SynExpectedAfterReplaced:
		b.Tok(expected).Str(msg)
	default:
		if msg != "" {
			b.Str(msg)
		}
	}
}

// ExpectAndConsumeSemi expects the ';' that ends a statement or declaration.
func (p *Parser) ExpectAndConsumeSemi(msg string) bool {
	return p.ExpectAndConsume(token.Semicolon, diag.SynExpectedAfter, msg)
}
