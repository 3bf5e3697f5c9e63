package parser

import "ember/internal/sema"

// scopeCacheSize bounds the free list of recycled scope nodes.
const scopeCacheSize = 16

// EnterScope pushes a new scope with flags.
func (p *Parser) EnterScope(flags sema.ScopeFlags) {
	var s *sema.Scope
	if n := len(p.scopeCache); n > 0 {
		s = p.scopeCache[n-1]
		p.scopeCache = p.scopeCache[:n-1]
	} else {
		s = new(sema.Scope)
	}
	s.Init(p.CurScope(), flags)
	p.scopes = append(p.scopes, s)
}

// ExitScope pops the current scope after telling sema about it.
func (p *Parser) ExitScope() {
	n := len(p.scopes)
	if n == 0 {
		panic("parser: scope imbalance")
	}
	s := p.scopes[n-1]
	p.actions.ActOnPopScope(p.tok.Loc, s)
	p.scopes[n-1] = nil
	p.scopes = p.scopes[:n-1]
	if len(p.scopeCache) < scopeCacheSize {
		p.scopeCache = append(p.scopeCache, s)
	}
}

// CurScope returns the innermost scope, nil once the parser is closed.
func (p *Parser) CurScope() *sema.Scope {
	if len(p.scopes) == 0 {
		return nil
	}
	return p.scopes[len(p.scopes)-1]
}

// ScopeDepth is the number of open scopes, the translation unit included.
func (p *Parser) ScopeDepth() int { return len(p.scopes) }

// ParsingScope enters a scope on creation and exits it on Exit. Use as
//
//	g := NewParsingScope(p, flags, true, false)
//	defer g.Exit()
type ParsingScope struct {
	p *Parser
}

// NewParsingScope enters a scope with flags when enter is set. With
// beforeCompoundStmt the scope is left for the compound statement parser to
// enter, and the guard does nothing.
func NewParsingScope(p *Parser, flags sema.ScopeFlags, enter, beforeCompoundStmt bool) *ParsingScope {
	if !enter || beforeCompoundStmt {
		return &ParsingScope{}
	}
	p.EnterScope(flags)
	return &ParsingScope{p: p}
}

// Exit leaves the scope; later calls do nothing.
func (g *ParsingScope) Exit() {
	if g.p == nil {
		return
	}
	g.p.ExitScope()
	g.p = nil
}

// MultiParsingScope enters any number of scopes and exits them together.
type MultiParsingScope struct {
	p *Parser
	n int
}

func NewMultiParsingScope(p *Parser) *MultiParsingScope {
	return &MultiParsingScope{p: p}
}

func (g *MultiParsingScope) Enter(flags sema.ScopeFlags) {
	g.p.EnterScope(flags)
	g.n++
}

// Entered is the number of scopes still open through g.
func (g *MultiParsingScope) Entered() int { return g.n }

// Exit leaves every scope entered through g, innermost first.
func (g *MultiParsingScope) Exit() {
	for ; g.n > 0; g.n-- {
		g.p.ExitScope()
	}
}

// ParsingScopeFlags temporarily replaces the flags of the current scope.
type ParsingScopeFlags struct {
	scope *sema.Scope
	old   sema.ScopeFlags
}

// NewParsingScopeFlags sets flags on the current scope when manage is set.
func NewParsingScopeFlags(p *Parser, flags sema.ScopeFlags, manage bool) *ParsingScopeFlags {
	s := p.CurScope()
	if !manage || s == nil {
		return &ParsingScopeFlags{}
	}
	g := &ParsingScopeFlags{scope: s, old: s.Flags()}
	s.SetFlags(flags)
	return g
}

// Restore puts the old flags back; later calls do nothing.
func (g *ParsingScopeFlags) Restore() {
	if g.scope == nil {
		return
	}
	g.scope.SetFlags(g.old)
	g.scope = nil
}
