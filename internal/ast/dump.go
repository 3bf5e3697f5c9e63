package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the translation unit.
func Dump(w io.Writer, b *Builder) error {
	d := dumper{b: b, w: w}
	for _, id := range b.TopLevel {
		d.decl(id, 0)
	}
	return d.err
}

type dumper struct {
	b   *Builder
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) decl(id DeclID, depth int) {
	decl := d.b.Decls.Get(id)
	if decl == nil {
		d.line(depth, "<nil decl>")
		return
	}
	name := d.b.Decl(id).DiagName()
	head := decl.Kind.String()
	if decl.Access != AccessNone {
		head = decl.Access.String() + " " + head
	}
	if decl.Invalid {
		head += " (invalid)"
	}
	switch decl.Kind {
	case DeclImport:
		imp, _ := d.b.Decls.Import(id)
		parts := make([]string, 0, len(imp.Path))
		for _, p := range imp.Path {
			parts = append(parts, p.Name)
		}
		d.line(depth, "%s %s", head, strings.Join(parts, "."))
	case DeclFun:
		fn, _ := d.b.Decls.Fun(id)
		d.line(depth, "%s %s: %s", head, name, d.b.Types.Spell(decl.Type))
		for _, g := range fn.Generic {
			d.decl(g, depth+1)
		}
		for _, p := range fn.Params {
			d.decl(p, depth+1)
		}
		if fn.Body.IsValid() {
			d.stmt(fn.Body, depth+1)
		}
	case DeclRecord:
		rec, _ := d.b.Decls.Record(id)
		d.line(depth, "%s %s %s", head, rec.Tag.Spelling(), name)
		for _, g := range rec.Generic {
			d.decl(g, depth+1)
		}
		for _, m := range rec.Members {
			d.decl(m, depth+1)
		}
	case DeclEnum:
		en, _ := d.b.Decls.Enum(id)
		d.line(depth, "%s %s", head, name)
		for _, e := range en.Enumerators {
			d.decl(e, depth+1)
		}
	case DeclVar, DeclParam, DeclField, DeclEnumerator:
		v, _ := d.b.Decls.Var(id)
		if decl.Type.IsValid() {
			d.line(depth, "%s %s: %s", head, name, d.b.Types.Spell(decl.Type))
		} else {
			d.line(depth, "%s %s", head, name)
		}
		if v.Init.IsValid() {
			d.expr(v.Init, depth+1)
		}
	default:
		d.line(depth, "%s %s", head, name)
	}
}

func (d *dumper) stmt(id StmtID, depth int) {
	s := d.b.Stmts.Get(id)
	if s == nil {
		d.line(depth, "<nil stmt>")
		return
	}
	d.line(depth, "%s", s.Kind)
	switch s.Kind {
	case StmtCompound:
		for _, c := range s.Body {
			d.stmt(c, depth+1)
		}
	case StmtDecl:
		for _, decl := range s.Decls {
			d.decl(decl, depth+1)
		}
	case StmtExpr, StmtReturn:
		if s.Expr.IsValid() {
			d.expr(s.Expr, depth+1)
		}
	case StmtIf, StmtWhile:
		d.expr(s.Cond, depth+1)
		if s.Then.IsValid() {
			d.stmt(s.Then, depth+1)
		}
		if s.Else.IsValid() {
			d.stmt(s.Else, depth+1)
		}
	}
}

func (d *dumper) expr(id ExprID, depth int) {
	e := d.b.Exprs.Get(id)
	if e == nil {
		d.line(depth, "<invalid expr>")
		return
	}
	switch e.Kind {
	case ExprIdent:
		d.line(depth, "ident %s", e.Name.Name)
	case ExprLiteral:
		d.line(depth, "literal %s", e.Text)
	case ExprMember:
		d.line(depth, "member %s%s", e.Op.Spelling(), e.Name.Name)
		d.expr(e.X, depth+1)
	case ExprGenericName:
		args := make([]string, 0, len(e.TypeArgs))
		for _, a := range e.TypeArgs {
			args = append(args, d.b.Types.Spell(a))
		}
		d.line(depth, "generic %s<%s>", e.Name.Name, strings.Join(args, ", "))
	default:
		if e.Op.IsPunctOrOp() {
			d.line(depth, "%s %s", e.Kind, e.Op.Spelling())
		} else {
			d.line(depth, "%s", e.Kind)
		}
		if e.Cond.IsValid() {
			d.expr(e.Cond, depth+1)
		}
		if e.X.IsValid() {
			d.expr(e.X, depth+1)
		}
		if e.Y.IsValid() {
			d.expr(e.Y, depth+1)
		}
		for _, a := range e.Args {
			d.expr(a, depth+1)
		}
	}
}
