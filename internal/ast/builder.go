package ast

import (
	"ember/internal/source"
)

// Builder owns every node of one translation unit.
type Builder struct {
	Decls Decls
	Types Types
	Stmts Stmts
	Exprs Exprs

	// TopLevel lists the declarations of the translation unit in source order.
	TopLevel []DeclID
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) NewDecl(kind DeclKind, name *source.IdentInfo, loc source.Loc) DeclID {
	return b.Decls.New(kind, name, loc)
}

func (b *Builder) NewStmt(stmt Stmt) StmtID { return b.Stmts.New(stmt) }
func (b *Builder) NewExpr(expr Expr) ExprID { return b.Exprs.New(expr) }
func (b *Builder) NewType(typ Type) TypeID  { return b.Types.New(typ) }

func (b *Builder) PushTopLevel(id DeclID) {
	b.TopLevel = append(b.TopLevel, id)
}

// Decl returns a handle usable as a diagnostic argument.
func (b *Builder) Decl(id DeclID) DeclRef { return DeclRef{b: b, ID: id} }

// Type returns a handle usable as a diagnostic argument.
func (b *Builder) Type(id TypeID) TypeRef { return TypeRef{b: b, ID: id} }

// DeclRef names a declaration in diagnostics.
type DeclRef struct {
	b  *Builder
	ID DeclID
}

func (r DeclRef) DiagName() string {
	if r.b == nil {
		return "<invalid>"
	}
	d := r.b.Decls.Get(r.ID)
	if d == nil || d.Name == nil {
		return "<anonymous>"
	}
	return d.Name.Name
}

// TypeRef names a type in diagnostics.
type TypeRef struct {
	b  *Builder
	ID TypeID
}

func (r TypeRef) DiagName() string {
	if r.b == nil {
		return "<invalid>"
	}
	return r.b.Types.Spell(r.ID)
}
