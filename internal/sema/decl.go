package sema

import (
	"ember/internal/ast"
	"ember/internal/diag"
)

// ActOnDeclarator validates a declaration the parser just built and makes it
// visible in scope. The returned ID is the declaration to keep using; it is
// id itself, marked invalid when a check failed.
func (s *Sema) ActOnDeclarator(scope *Scope, id ast.DeclID) ast.DeclID {
	decl := s.tree.Decls.Get(id)
	if decl == nil {
		return ast.NoDeclID
	}

	switch decl.Kind {
	case ast.DeclVar, ast.DeclParam, ast.DeclField:
		if s.tree.Types.IsVoid(decl.Type) {
			s.engine.Diagnose(diag.SemaVoidVariable, decl.Loc).Decl(s.tree.Decl(id)).Emit()
			decl.Invalid = true
		}
	}

	if decl.Name == nil || scope == nil {
		return id
	}
	if prev, ok := scope.LookupLocal(decl.Name); ok && !s.compatibleRedeclaration(prev, id) {
		if b := s.engine.Diagnose(diag.SemaRedefinition, decl.Loc); b.IsActive() {
			b.Decl(s.tree.Decl(id)).Emit()
		}
		if p := s.tree.Decls.Get(prev); p != nil {
			s.engine.Diagnose(diag.SemaNotePrevious, p.Loc).Emit()
		}
		decl.Invalid = true
		return id
	}
	scope.AddDecl(decl.Name, id)
	return id
}

// compatibleRedeclaration allows a prototype or forward declaration to be
// followed by at most one definition of the same kind.
func (s *Sema) compatibleRedeclaration(prev, next ast.DeclID) bool {
	p, n := s.tree.Decls.Get(prev), s.tree.Decls.Get(next)
	if p == nil || n == nil || p.Kind != n.Kind {
		return false
	}
	switch p.Kind {
	case ast.DeclFun:
		pf, _ := s.tree.Decls.Fun(prev)
		nf, _ := s.tree.Decls.Fun(next)
		return !pf.Body.IsValid() || !nf.Body.IsValid()
	case ast.DeclRecord:
		pr, _ := s.tree.Decls.Record(prev)
		nr, _ := s.tree.Decls.Record(next)
		return pr.Tag == nr.Tag && (!pr.Defined || !nr.Defined)
	case ast.DeclEnum:
		pe, _ := s.tree.Decls.Enum(prev)
		ne, _ := s.tree.Decls.Enum(next)
		return !pe.Defined || !ne.Defined
	case ast.DeclImport:
		return true
	}
	return false
}
