package parser

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

// GreaterThanIsOperatorScope sets whether '>' is an operator (rather than
// the end of a generic argument list) until Restore.
type GreaterThanIsOperatorScope struct {
	p    *Parser
	prev bool
}

func NewGreaterThanIsOperatorScope(p *Parser, val bool) *GreaterThanIsOperatorScope {
	g := &GreaterThanIsOperatorScope{p: p, prev: p.greaterThanIsOperator}
	p.greaterThanIsOperator = val
	return g
}

// Restore puts the previous setting back; later calls do nothing.
func (g *GreaterThanIsOperatorScope) Restore() {
	if g.p == nil {
		return
	}
	g.p.greaterThanIsOperator = g.prev
	g.p = nil
}

// GreaterThanIsOperator reports how a '>' would be read right now.
func (p *Parser) GreaterThanIsOperator() bool { return p.greaterThanIsOperator }

// BalancedDelimiterTracker consumes one (), [] or {} pair, enforcing the
// nesting limit and recovering from a missing close. Inside the pair '>' is
// always an operator. Close must be called when done, normally by defer.
type BalancedDelimiterTracker struct {
	p        *Parser
	kind     token.Kind
	close    token.Kind
	final    token.Kind // recovery after a missing close also stops here
	openLoc  source.Loc
	closeLoc source.Loc
	gt       *GreaterThanIsOperatorScope
}

// NewBalancedDelimiterTracker tracks the pair opened by open.
func NewBalancedDelimiterTracker(p *Parser, open token.Kind) *BalancedDelimiterTracker {
	var closeKind token.Kind
	switch open {
	case token.LParen:
		closeKind = token.RParen
	case token.LBracket:
		closeKind = token.RBracket
	case token.LBrace:
		closeKind = token.RBrace
	default:
		panic(fmt.Sprintf("parser: %s is not an open delimiter", open))
	}
	return &BalancedDelimiterTracker{
		p:     p,
		kind:  open,
		close: closeKind,
		final: token.Semicolon,
		gt:    NewGreaterThanIsOperatorScope(p, true),
	}
}

// SetFinal replaces the ';' at which a missing-close recovery gives up.
func (t *BalancedDelimiterTracker) SetFinal(k token.Kind) *BalancedDelimiterTracker {
	t.final = k
	return t
}

// Close restores the '>' setting.
func (t *BalancedDelimiterTracker) Close() { t.gt.Restore() }

func (t *BalancedDelimiterTracker) OpenLoc() source.Loc  { return t.openLoc }
func (t *BalancedDelimiterTracker) CloseLoc() source.Loc { return t.closeLoc }
func (t *BalancedDelimiterTracker) Range() source.Range {
	return source.Range{Begin: t.openLoc, End: t.closeLoc}
}

func (t *BalancedDelimiterTracker) depth() uint16 {
	switch t.kind {
	case token.LParen:
		return t.p.parenCount
	case token.LBracket:
		return t.p.bracketCount
	}
	return t.p.braceCount
}

// diagnoseOverflow reports the nesting limit and stops the parser.
func (t *BalancedDelimiterTracker) diagnoseOverflow() {
	p := t.p
	p.DiagTok(diag.SynBracketDepthExceeded).Int(int64(p.opts.BracketDepth)).Emit()
	p.DiagTok(diag.SynNoteBracketDepth).Emit()
	p.CutOffParsing()
}

// ConsumeOpen consumes the open delimiter. It fails when the current token
// is something else, and when the nesting limit is reached, in which case
// parsing is cut off.
func (t *BalancedDelimiterTracker) ConsumeOpen() bool {
	if !t.p.at(t.kind) {
		return false
	}
	if t.depth() < t.p.depthLimit {
		t.openLoc = t.p.ConsumeAnyToken(false)
		return true
	}
	t.diagnoseOverflow()
	return false
}

// ExpectAndConsume is ConsumeOpen with a diagnostic when the open delimiter
// is missing; skipTo (unless Invalid) is then skipped to.
func (t *BalancedDelimiterTracker) ExpectAndConsume(id diag.ID, msg string, skipTo token.Kind) bool {
	t.openLoc = t.p.tok.Loc
	if !t.p.ExpectAndConsume(t.kind, id, msg) {
		if skipTo != token.Invalid {
			t.p.SkipTo(skipTo, StopAtSemi)
		}
		return false
	}
	if t.depth() < t.p.depthLimit {
		return true
	}
	t.diagnoseOverflow()
	return false
}

// ConsumeClose consumes the close delimiter. A ';' directly before it is
// reported and dropped. Otherwise the missing close is diagnosed, and false
// is returned.
func (t *BalancedDelimiterTracker) ConsumeClose() bool {
	p := t.p
	if p.at(t.close) {
		t.closeLoc = p.ConsumeAnyToken(false)
		return true
	}
	if p.at(token.Semicolon) && p.PeekNextToken().Is(t.close) {
		semi := p.ConsumeToken()
		p.Diag(diag.SynExtraneousSemiBefore, semi).Tok(t.close).
			RemovalFixIt(source.TokenRange(semi, semi)).Emit()
		t.closeLoc = p.ConsumeAnyToken(false)
		return true
	}
	if !p.cutOff {
		t.diagnoseMissingClose()
	}
	return false
}

func (t *BalancedDelimiterTracker) diagnoseMissingClose() {
	p := t.p
	p.DiagTok(diag.SynExpected).Tok(t.close).Emit()
	p.Diag(diag.SynNoteMatching, t.openLoc).Tok(t.kind).Emit()

	// Если мы уже стоим на какой-то закрывающей скобке, её не трогаем.
	if p.atOr(token.RParen, token.RBrace, token.RBracket) {
		return
	}
	if p.SkipUntil([]token.Kind{t.close, t.final}, StopAtSemi|StopBeforeMatch) && p.at(t.close) {
		t.closeLoc = p.ConsumeAnyToken(false)
	}
}

// SkipToEnd drops everything up to the close delimiter and consumes it.
func (t *BalancedDelimiterTracker) SkipToEnd() {
	t.p.SkipTo(t.close, StopBeforeMatch)
	t.ConsumeClose()
}
