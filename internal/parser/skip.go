package parser

import (
	"slices"
	"strconv"

	"ember/internal/token"
	"ember/internal/trace"
)

// SkipFlags control where SkipUntil stops.
type SkipFlags uint8

const (
	// StopAtSemi stops before a ';' that is not one of the targets.
	StopAtSemi SkipFlags = 1 << iota
	// StopBeforeMatch leaves the matched target unconsumed.
	StopBeforeMatch
	// StopAtCodeCompletion stops at the completion token without reporting it.
	StopAtCodeCompletion
)

func (f SkipFlags) has(flag SkipFlags) bool { return f&flag != 0 }

// SkipUntil skips tokens until one of kinds is found. Nested (), [] and {}
// groups and ?: pairs are skipped as a whole. It returns true when a target
// was found (and consumed unless StopBeforeMatch); false on end of file, at a
// completion token, at a ';' with StopAtSemi, or before a close delimiter
// that belongs to an enclosing group.
func (p *Parser) SkipUntil(kinds []token.Kind, flags SkipFlags) bool {
	start := p.consumed
	found := p.skipUntil(kinds, flags)
	if skipped := p.consumed - start; skipped > 0 {
		trace.Point(p.tracer, trace.ScopeRecovery, "skip_until", p.tok.Kind.String(), map[string]string{
			"skipped": strconv.Itoa(skipped),
			"found":   strconv.FormatBool(found),
		})
	}
	return found
}

// SkipTo is SkipUntil for a single target.
func (p *Parser) SkipTo(k token.Kind, flags SkipFlags) bool {
	return p.SkipUntil([]token.Kind{k}, flags)
}

func (p *Parser) skipUntil(kinds []token.Kind, flags SkipFlags) bool {
	firstTokenSkipped := true
	for {
		if slices.Contains(kinds, p.tok.Kind) {
			if !flags.has(StopBeforeMatch) {
				p.ConsumeAnyToken(false)
			}
			return true
		}

		// Вызывающий сдался и хочет дочитать файл: без рекурсии.
		if len(kinds) == 1 && kinds[0] == token.EOF && !flags.has(StopAtSemi) && !flags.has(StopAtCodeCompletion) {
			for !p.IsEOF() {
				p.ConsumeAnyToken(false)
			}
			return true
		}

		nested := flags & StopAtCodeCompletion
		switch p.tok.Kind {
		case token.EOF:
			return false
		case token.CodeCompletion:
			if !flags.has(StopAtCodeCompletion) {
				p.HandleUnexpectedCodeCompletionToken()
			}
			return false
		case token.LParen:
			p.ConsumeParen()
			p.skipUntil([]token.Kind{token.RParen}, nested)
		case token.LBracket:
			p.ConsumeBracket()
			p.skipUntil([]token.Kind{token.RBracket}, nested)
		case token.LBrace:
			p.ConsumeBrace()
			p.skipUntil([]token.Kind{token.RBrace}, nested)
		case token.Question:
			// ?: ведут себя как скобки, но ';' всё ещё останавливает.
			p.ConsumeToken()
			p.skipUntil([]token.Kind{token.Colon}, flags&(StopAtCodeCompletion|StopAtSemi))

		// Непарная закрывающая: если снаружи есть открытая, она её и закрывает.
		case token.RParen:
			if p.parenCount > 0 && !firstTokenSkipped {
				return false
			}
			p.ConsumeParen()
		case token.RBracket:
			if p.bracketCount > 0 && !firstTokenSkipped {
				return false
			}
			p.ConsumeBracket()
		case token.RBrace:
			if p.braceCount > 0 && !firstTokenSkipped {
				return false
			}
			p.ConsumeBrace()

		case token.Semicolon:
			if flags.has(StopAtSemi) {
				return false
			}
			p.ConsumeToken()
		default:
			p.ConsumeAnyToken(false)
		}
		firstTokenSkipped = false
	}
}

// startsTopLevelDecl reports whether tok, seen at the start of a line, is a
// good place to resume after a malformed declaration.
func startsTopLevelDecl(tok token.Token) bool {
	if !tok.AtStartOfLine() {
		return false
	}
	switch tok.Kind {
	case token.KwImport, token.KwFun, token.KwStruct, token.KwClass, token.KwInterface, token.KwEnum,
		token.KwPublic, token.KwProtected, token.KwPrivate:
		return true
	}
	return false
}

// SkipMalformedDecl skips the rest of a declaration that could not be
// parsed: up to and including its ';', up to a '}' that closes an enclosing
// body, or up to the next declaration keyword starting a line.
func (p *Parser) SkipMalformedDecl() {
	start := p.consumed
	defer func() {
		if skipped := p.consumed - start; skipped > 0 {
			trace.Point(p.tracer, trace.ScopeRecovery, "skip_decl", p.tok.Kind.String(), map[string]string{
				"skipped": strconv.Itoa(skipped),
			})
		}
	}()
	for {
		switch p.tok.Kind {
		case token.LBrace:
			// Скорее всего это тело функции или записи.
			p.ConsumeBrace()
			p.skipUntil([]token.Kind{token.RBrace}, 0)
			if p.atOr(token.Comma, token.LBrace) {
				continue
			}
			p.TryConsumeToken(token.Semicolon)
			return
		case token.LBracket:
			p.ConsumeBracket()
			p.skipUntil([]token.Kind{token.RBracket}, 0)
			continue
		case token.LParen:
			p.ConsumeParen()
			p.skipUntil([]token.Kind{token.RParen}, 0)
			continue
		case token.RBrace, token.EOF:
			return
		case token.Semicolon:
			p.ConsumeToken()
			return
		case token.CodeCompletion:
			p.HandleUnexpectedCodeCompletionToken()
			return
		}
		if p.consumed > start && startsTopLevelDecl(p.tok) {
			return
		}
		p.ConsumeAnyToken(false)
	}
}
