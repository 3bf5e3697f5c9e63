package sema

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

type fixture struct {
	engine *diag.Engine
	bag    *diag.Bag
	tree   *ast.Builder
	idents *source.IdentTable
	sema   *Sema
}

func newFixture() *fixture {
	bag := diag.NewBag(0)
	engine := diag.NewEngine(diag.Options{}, bag)
	tree := ast.NewBuilder()
	idents := source.NewIdentTable()
	return &fixture{engine: engine, bag: bag, tree: tree, idents: idents, sema: New(engine, tree, idents)}
}

func (f *fixture) ids() []diag.ID {
	var out []diag.ID
	for _, d := range f.bag.Items() {
		out = append(out, d.ID)
	}
	return out
}

func TestScopeJumpTargets(t *testing.T) {
	var tu, fn, loop, block, inner Scope
	tu.Init(nil, DeclScope)
	fn.Init(&tu, FnScope|DeclScope)
	loop.Init(&fn, BreakScope|ContinueScope)
	block.Init(&loop, DeclScope|BlockScope|CompoundStmtScope)
	inner.Init(&block, FnScope)

	if tu.FnParent() != nil || tu.BreakParent() != nil {
		t.Fatalf("translation unit scope must not have jump targets")
	}
	if block.BreakParent() != &loop || block.ContinueParent() != &loop {
		t.Fatalf("block inside loop should target the loop")
	}
	if block.FnParent() != &fn {
		t.Fatalf("FnParent = %p, want %p", block.FnParent(), &fn)
	}
	if inner.BreakParent() != nil {
		t.Fatalf("a nested function body must not inherit the loop")
	}
	if got := block.Depth(); got != 3 {
		t.Fatalf("Depth = %d, want 3", got)
	}
	if got := (BreakScope | ContinueScope).String(); got != "break|continue" {
		t.Fatalf("flags String = %q", got)
	}
}

func TestScopeInitRecycles(t *testing.T) {
	idents := source.NewIdentTable()
	var s Scope
	s.Init(nil, DeclScope)
	s.AddDecl(idents.Intern("x"), 1)
	s.Init(nil, BlockScope)
	if len(s.Decls()) != 0 {
		t.Fatalf("Init must drop previous decls")
	}
	if _, ok := s.LookupLocal(idents.Intern("x")); ok {
		t.Fatalf("Init must drop previous names")
	}
}

func TestLookupWalksParents(t *testing.T) {
	idents := source.NewIdentTable()
	var outer, inner Scope
	outer.Init(nil, DeclScope)
	inner.Init(&outer, DeclScope)
	x := idents.Intern("x")
	outer.AddDecl(x, 7)
	id, where := inner.Lookup(x)
	if id != 7 || where != &outer {
		t.Fatalf("Lookup = (%d, %p), want (7, %p)", id, where, &outer)
	}
	if _, ok := inner.LookupLocal(x); ok {
		t.Fatalf("LookupLocal must not see the parent")
	}
}

func TestRedefinition(t *testing.T) {
	f := newFixture()
	var tu Scope
	tu.Init(nil, DeclScope)

	name := f.idents.Intern("x")
	int1 := f.tree.Types.Basic(token.KwInt, source.FileLoc(1))
	first := f.tree.NewDecl(ast.DeclVar, name, source.FileLoc(5))
	f.tree.Decls.Get(first).Type = int1
	second := f.tree.NewDecl(ast.DeclVar, name, source.FileLoc(20))
	f.tree.Decls.Get(second).Type = int1

	f.sema.ActOnDeclarator(&tu, first)
	f.sema.ActOnDeclarator(&tu, second)

	got := f.ids()
	want := []diag.ID{diag.SemaRedefinition, diag.SemaNotePrevious}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("diagnostics = %v, want %v", got, want)
	}
	items := f.bag.Items()
	if items[0].Message != "redefinition of 'x'" {
		t.Fatalf("message = %q", items[0].Message)
	}
	if items[1].Loc != source.FileLoc(5) {
		t.Fatalf("note at %v, want the first declaration", items[1].Loc)
	}
	if !f.tree.Decls.Get(second).Invalid {
		t.Fatalf("redefinition should be marked invalid")
	}
}

func TestPrototypeThenDefinition(t *testing.T) {
	f := newFixture()
	var tu Scope
	tu.Init(nil, DeclScope)
	name := f.idents.Intern("f")

	proto := f.tree.NewDecl(ast.DeclFun, name, source.FileLoc(1))
	def := f.tree.NewDecl(ast.DeclFun, name, source.FileLoc(10))
	data, _ := f.tree.Decls.Fun(def)
	data.Body = f.tree.NewStmt(ast.Stmt{Kind: ast.StmtCompound})
	again := f.tree.NewDecl(ast.DeclFun, name, source.FileLoc(20))
	againData, _ := f.tree.Decls.Fun(again)
	againData.Body = f.tree.NewStmt(ast.Stmt{Kind: ast.StmtCompound})

	f.sema.ActOnDeclarator(&tu, proto)
	f.sema.ActOnDeclarator(&tu, def)
	if f.bag.Len() != 0 {
		t.Fatalf("prototype followed by definition reported %v", f.ids())
	}
	f.sema.ActOnDeclarator(&tu, again)
	if got := f.ids(); len(got) != 2 || got[0] != diag.SemaRedefinition {
		t.Fatalf("second definition: %v", got)
	}
}

func TestVoidVariable(t *testing.T) {
	f := newFixture()
	id := f.tree.NewDecl(ast.DeclVar, f.idents.Intern("v"), source.FileLoc(3))
	f.tree.Decls.Get(id).Type = f.tree.Types.Basic(token.KwVoid, source.FileLoc(1))
	f.sema.ActOnDeclarator(nil, id)
	items := f.bag.Items()
	if len(items) != 1 || items[0].Message != "variable 'v' has incomplete type 'void'" {
		t.Fatalf("diagnostics = %+v", items)
	}
}

func TestJumpChecks(t *testing.T) {
	f := newFixture()
	var fn, loop Scope
	fn.Init(nil, FnScope|DeclScope)
	loop.Init(&fn, BreakScope|ContinueScope)

	if !f.sema.ActOnBreak(source.FileLoc(1), &loop) || !f.sema.ActOnContinue(source.FileLoc(1), &loop) {
		t.Fatalf("break/continue inside a loop rejected")
	}
	if !f.sema.ActOnReturn(source.FileLoc(1), &loop) {
		t.Fatalf("return inside a function rejected")
	}
	if f.sema.ActOnBreak(source.FileLoc(2), &fn) {
		t.Fatalf("break outside a loop accepted")
	}
	if f.sema.ActOnContinue(source.FileLoc(3), &fn) {
		t.Fatalf("continue outside a loop accepted")
	}
	items := f.bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(items))
	}
	if items[0].Message != "'break' statement not in loop statement" {
		t.Fatalf("message = %q", items[0].Message)
	}
	if items[1].Message != "'continue' statement not in loop statement" {
		t.Fatalf("message = %q", items[1].Message)
	}
}

func TestParsingDeclarationEmitsOnDecl(t *testing.T) {
	f := newFixture()
	outer := diag.NewDelayedPool(nil)
	inner := diag.NewDelayedPool(outer)

	outerState := f.sema.PushParsingDeclaration(outer)
	f.engine.Diagnose(diag.SynDuplicateSpecifier, source.FileLoc(1)).Tok(token.KwConst).Emit()
	innerState := f.sema.PushParsingDeclaration(inner)
	f.engine.Diagnose(diag.SynEmptyDeclaration, source.FileLoc(2)).Emit()

	if f.bag.Len() != 0 {
		t.Fatalf("delayable diagnostics leaked before the pop")
	}
	if outer.Len() != 1 || inner.Len() != 1 {
		t.Fatalf("pool sizes = %d/%d, want 1/1", outer.Len(), inner.Len())
	}

	decl := f.tree.NewDecl(ast.DeclVar, f.idents.Intern("x"), source.FileLoc(2))
	f.sema.PopParsingDeclaration(innerState, decl)
	if f.engine.DelayedPool() != outer {
		t.Fatalf("pop must restore the previous pool")
	}
	got := f.ids()
	if len(got) != 2 || got[0] != diag.SynEmptyDeclaration || got[1] != diag.SynDuplicateSpecifier {
		t.Fatalf("emitted %v, want own pool then parent", got)
	}

	f.sema.PopParsingDeclaration(outerState, decl)
	if f.bag.Len() != 2 {
		t.Fatalf("parent diagnostics emitted twice: %v", f.ids())
	}
	if f.engine.DelayedPool() != nil {
		t.Fatalf("outermost pop must clear the pool")
	}
}

func TestParsingDeclarationDiscardsWithoutDecl(t *testing.T) {
	f := newFixture()
	pool := diag.NewDelayedPool(nil)
	state := f.sema.PushParsingDeclaration(pool)
	f.engine.Diagnose(diag.SynMissingTypeSpecifier, source.FileLoc(1)).Emit()
	f.engine.Diagnose(diag.SynExpectedIdent, source.FileLoc(2)).Emit()
	f.sema.PopParsingDeclaration(state, ast.NoDeclID)

	got := f.ids()
	if len(got) != 1 || got[0] != diag.SynExpectedIdent {
		t.Fatalf("emitted %v, want only the non-delayable error", got)
	}
	if pool.Len() != 0 {
		t.Fatalf("discarded pool still holds %d", pool.Len())
	}
}

func TestCodeCompleteOrdinaryName(t *testing.T) {
	f := newFixture()
	var tu, fn Scope
	tu.Init(nil, DeclScope)
	fn.Init(&tu, FnScope|DeclScope)
	point := f.tree.NewDecl(ast.DeclRecord, f.idents.Intern("Point"), source.FileLoc(1))
	tu.AddDecl(f.idents.Intern("Point"), point)
	local := f.tree.NewDecl(ast.DeclVar, f.idents.Intern("count"), source.FileLoc(5))
	fn.AddDecl(f.idents.Intern("count"), local)

	f.sema.CodeCompleteOrdinaryName(source.FileLoc(9), &fn, CompleteExpression)
	f.sema.CodeCompleteOrdinaryName(source.FileLoc(9), &fn, CompleteType)

	got := f.sema.Completions()
	if len(got) != 2 {
		t.Fatalf("got %d completions", len(got))
	}
	expr := got[0].Candidates
	if !contains(expr, "count") || !contains(expr, "Point") || !contains(expr, "true") {
		t.Fatalf("expression candidates = %v", expr)
	}
	if contains(expr, "int") {
		t.Fatalf("expression context should not offer type keywords: %v", expr)
	}
	typ := got[1].Candidates
	if contains(typ, "count") || !contains(typ, "Point") || !contains(typ, "int") {
		t.Fatalf("type candidates = %v", typ)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
