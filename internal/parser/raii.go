package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
)

// ParsingDeclRAII collects the delayable diagnostics of one declaration
// while it is parsed. Complete hands them to sema together with the
// resulting declaration; Abort drops them. Exactly one of the two takes
// effect; Close (deferred) aborts if neither ran.
type ParsingDeclRAII struct {
	actions Actions
	pool    *diag.DelayedPool
	state   sema.ParsingDeclState
	popped  bool
}

// NewParsingDeclRAII pushes a pool nested in parent (nil for none).
func NewParsingDeclRAII(p *Parser, parent *diag.DelayedPool) *ParsingDeclRAII {
	r := &ParsingDeclRAII{actions: p.actions, pool: diag.NewDelayedPool(parent)}
	r.push()
	return r
}

// StealParsingDeclRAII takes over the diagnostics held by other, aborts it,
// and pushes a pool with other's parent.
func StealParsingDeclRAII(p *Parser, other *ParsingDeclRAII) *ParsingDeclRAII {
	var parent *diag.DelayedPool
	if other != nil {
		parent = other.pool.Parent()
	}
	r := &ParsingDeclRAII{actions: p.actions, pool: diag.NewDelayedPool(parent)}
	if other != nil {
		r.pool.Steal(other.pool)
		other.Abort()
	}
	r.push()
	return r
}

func (r *ParsingDeclRAII) push() {
	r.state = r.actions.PushParsingDeclaration(r.pool)
	r.popped = false
}

func (r *ParsingDeclRAII) pop(decl ast.DeclID) {
	r.actions.PopParsingDeclaration(r.state, decl)
	r.popped = true
}

// Pool is where delayable diagnostics go while r is pushed.
func (r *ParsingDeclRAII) Pool() *diag.DelayedPool { return r.pool }

// Popped reports whether Complete or Abort already ran.
func (r *ParsingDeclRAII) Popped() bool { return r.popped }

// Complete pops the pool, reporting its diagnostics against decl. An
// invalid decl drops them. Completing twice panics.
func (r *ParsingDeclRAII) Complete(decl ast.DeclID) {
	if r.popped {
		panic("parser: ParsingDeclRAII completed after pop")
	}
	r.pop(decl)
}

// Abort pops the pool dropping its diagnostics; after a pop it does nothing.
func (r *ParsingDeclRAII) Abort() {
	if r.popped {
		return
	}
	r.pop(ast.NoDeclID)
}

// Reset aborts and pushes the same pool again, empty.
func (r *ParsingDeclRAII) Reset() {
	r.Abort()
	r.push()
}

func (r *ParsingDeclRAII) Close() { r.Abort() }

// ParsingDeclSpec is a DeclSpec whose diagnostics wait for the declaration.
type ParsingDeclSpec struct {
	DeclSpec
	raii *ParsingDeclRAII
}

func NewParsingDeclSpec(p *Parser) *ParsingDeclSpec {
	return &ParsingDeclSpec{raii: NewParsingDeclRAII(p, nil)}
}

// Complete reports what the specifiers produced against decl. After a
// declarator took the pool over it does nothing.
func (s *ParsingDeclSpec) Complete(decl ast.DeclID) {
	if !s.raii.Popped() {
		s.raii.Complete(decl)
	}
}

func (s *ParsingDeclSpec) Abort() { s.raii.Abort() }
func (s *ParsingDeclSpec) Close() { s.raii.Close() }

// ParsingDeclarator is a Declarator that takes over the pool of its
// decl-spec: completing the declarator also reports what the specifiers
// produced, and dropping it drops them.
type ParsingDeclarator struct {
	Declarator
	p    *Parser
	raii *ParsingDeclRAII
}

func NewParsingDeclarator(p *Parser, ds *ParsingDeclSpec, ctx DeclaratorContext) *ParsingDeclarator {
	d := &ParsingDeclarator{p: p, raii: StealParsingDeclRAII(p, ds.raii)}
	d.Declarator.init(p, &ds.DeclSpec, ctx)
	return d
}

func (d *ParsingDeclarator) Complete(decl ast.DeclID) { d.raii.Complete(decl) }

// Clear readies d for the next declarator after ','. Scopes opened for the
// previous one are left and its pool starts over empty.
func (d *ParsingDeclarator) Clear() {
	d.Declarator.scopes.Exit()
	d.raii.Reset()
	d.Declarator.init(d.p, d.Spec, d.Context)
}

// Close aborts the pool and leaves any scope the declarator opened.
func (d *ParsingDeclarator) Close() {
	d.raii.Close()
	d.Declarator.scopes.Exit()
}
