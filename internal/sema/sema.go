package sema

import (
	"strconv"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// Sema receives callbacks from the parser for one translation unit.
type Sema struct {
	engine *diag.Engine
	tree   *ast.Builder
	idents *source.IdentTable
	tracer trace.Tracer

	tuScope     *Scope
	completions []Completion
	popped      int
}

// New creates a Sema that reports through engine and inspects nodes in tree.
func New(engine *diag.Engine, tree *ast.Builder, idents *source.IdentTable) *Sema {
	return &Sema{engine: engine, tree: tree, idents: idents, tracer: trace.Nop}
}

// SetTracer routes scope events to t.
func (s *Sema) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	s.tracer = t
}

func (s *Sema) Engine() *diag.Engine       { return s.engine }
func (s *Sema) Tree() *ast.Builder         { return s.tree }
func (s *Sema) TUScope() *Scope            { return s.tuScope }
func (s *Sema) ScopesPopped() int          { return s.popped }
func (s *Sema) Idents() *source.IdentTable { return s.idents }

// ParsingDeclState is returned by PushParsingDeclaration and must be handed
// back to PopParsingDeclaration.
type ParsingDeclState struct {
	prev *diag.DelayedPool
	pool *diag.DelayedPool
}

// Pool is the pool made current by the push.
func (st ParsingDeclState) Pool() *diag.DelayedPool { return st.pool }

// PushParsingDeclaration makes pool the destination of delayable
// diagnostics until the matching pop.
func (s *Sema) PushParsingDeclaration(pool *diag.DelayedPool) ParsingDeclState {
	prev := s.engine.SetDelayedPool(pool)
	return ParsingDeclState{prev: prev, pool: pool}
}

// PopParsingDeclaration restores the previous pool. With a valid decl the
// held diagnostics of the pool and of every parent pool are reported;
// otherwise they are dropped.
func (s *Sema) PopParsingDeclaration(state ParsingDeclState, decl ast.DeclID) {
	s.engine.SetDelayedPool(state.prev)
	pool := state.pool
	if pool == nil {
		return
	}
	if !decl.IsValid() {
		pool.Clear()
		return
	}
	for p := pool; p != nil; p = p.Parent() {
		pending := p.Pending()
		p.Clear()
		for _, d := range pending {
			s.engine.EmitDelayed(d)
		}
	}
}

// ActOnTranslationUnitScope records the outermost scope.
func (s *Sema) ActOnTranslationUnitScope(scope *Scope) {
	s.tuScope = scope
}

// ActOnPopScope is called before the parser discards scope.
func (s *Sema) ActOnPopScope(loc source.Loc, scope *Scope) {
	s.popped++
	trace.Point(s.tracer, trace.ScopeNode, "pop_scope", scope.Flags().String(), map[string]string{
		"decls": strconv.Itoa(len(scope.Decls())),
		"depth": strconv.Itoa(scope.Depth()),
	})
	if scope == s.tuScope {
		s.tuScope = nil
	}
}

// ActOnBreak checks that a break has a loop to leave.
func (s *Sema) ActOnBreak(loc source.Loc, scope *Scope) bool {
	if scope != nil && scope.BreakParent() != nil {
		return true
	}
	s.engine.Diagnose(diag.SemaOutsideLoop, loc).Tok(token.KwBreak).Emit()
	return false
}

// ActOnContinue checks that a continue has a loop to restart.
func (s *Sema) ActOnContinue(loc source.Loc, scope *Scope) bool {
	if scope != nil && scope.ContinueParent() != nil {
		return true
	}
	s.engine.Diagnose(diag.SemaOutsideLoop, loc).Tok(token.KwContinue).Emit()
	return false
}

// ActOnReturn checks that a return is inside a function body.
func (s *Sema) ActOnReturn(loc source.Loc, scope *Scope) bool {
	if scope != nil && scope.FnParent() != nil {
		return true
	}
	s.engine.Diagnose(diag.SemaReturnOutsideFun, loc).Emit()
	return false
}
