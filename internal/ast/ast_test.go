package ast

import (
	"strings"
	"testing"

	"ember/internal/source"
	"ember/internal/token"
)

func TestDeclPayloads(t *testing.T) {
	idents := source.NewIdentTable()
	b := NewBuilder()

	fn := b.NewDecl(DeclFun, idents.Intern("main"), source.FileLoc(1))
	if _, ok := b.Decls.Fun(fn); !ok {
		t.Fatalf("fun payload missing")
	}
	if _, ok := b.Decls.Record(fn); ok {
		t.Fatalf("fun must not expose a record payload")
	}

	rec := b.NewDecl(DeclRecord, idents.Intern("Point"), source.FileLoc(10))
	data, ok := b.Decls.Record(rec)
	if !ok {
		t.Fatalf("record payload missing")
	}
	data.Tag = token.KwStruct
	again, _ := b.Decls.Record(rec)
	if again.Tag != token.KwStruct {
		t.Fatalf("payload is not shared: %v", again.Tag)
	}

	if b.Decls.Get(NoDeclID) != nil {
		t.Fatalf("NoDeclID must resolve to nil")
	}
	if got := b.Decls.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
}

func TestTypeSpelling(t *testing.T) {
	idents := source.NewIdentTable()
	b := NewBuilder()
	loc := source.FileLoc(1)

	i := b.Types.Basic(token.KwInt, loc)
	ptr := b.Types.Pointer(i, loc)
	list := b.NewType(Type{Kind: TypeNamed, Name: idents.Intern("List"), Loc: loc})
	gen := b.NewType(Type{Kind: TypeGeneric, Elem: list, Args: []TypeID{ptr, b.Types.Basic(token.KwFloat, loc)}, Loc: loc})
	fn := b.NewType(Type{Kind: TypeFunction, Elem: b.Types.Basic(token.KwVoid, loc), Params: []TypeID{gen}, Loc: loc})

	tests := []struct {
		id   TypeID
		want string
	}{
		{i, "int"},
		{ptr, "int*"},
		{gen, "List<int*, float>"},
		{fn, "void(List<int*, float>)"},
		{NoTypeID, "<invalid>"},
	}
	for _, tt := range tests {
		if got := b.Types.Spell(tt.id); got != tt.want {
			t.Errorf("Spell(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
	if !b.Types.IsVoid(b.Types.Get(fn).Elem) {
		t.Errorf("result type should be void")
	}
	if got := b.Type(gen).DiagName(); got != "List<int*, float>" {
		t.Errorf("TypeRef.DiagName = %q", got)
	}
}

func TestDump(t *testing.T) {
	idents := source.NewIdentTable()
	b := NewBuilder()
	loc := source.FileLoc(1)

	fn := b.NewDecl(DeclFun, idents.Intern("f"), loc)
	b.Decls.Get(fn).Type = b.NewType(Type{Kind: TypeFunction, Elem: b.Types.Basic(token.KwInt, loc), Params: []TypeID{b.Types.Basic(token.KwInt, loc)}})
	param := b.NewDecl(DeclParam, idents.Intern("x"), loc)
	b.Decls.Get(param).Type = b.Types.Basic(token.KwInt, loc)
	ret := b.NewStmt(Stmt{Kind: StmtReturn, Expr: b.NewExpr(Expr{Kind: ExprIdent, Name: idents.Intern("x")})})
	data, _ := b.Decls.Fun(fn)
	data.Params = []DeclID{param}
	data.Body = b.NewStmt(Stmt{Kind: StmtCompound, Body: []StmtID{ret}})
	b.PushTopLevel(fn)

	var sb strings.Builder
	if err := Dump(&sb, b); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want := strings.Join([]string{
		"fun f: int(int)",
		"  param x: int",
		"  compound",
		"    return",
		"      ident x",
		"",
	}, "\n")
	if sb.String() != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", sb.String(), want)
	}
	if got := b.Decl(fn).DiagName(); got != "f" {
		t.Fatalf("DeclRef.DiagName = %q", got)
	}
}
