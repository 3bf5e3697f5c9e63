package ast

import (
	"strings"

	"ember/internal/arena"
	"ember/internal/source"
	"ember/internal/token"
)

type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeBasic
	TypeNamed
	TypePointer
	TypeReference
	TypeArray
	TypeFunction
	TypeGeneric
)

// Type is a syntactic type. Which fields are meaningful depends on Kind:
// Basic uses Basic; Named uses Name and Decl; Pointer, Reference and Array
// use Elem (Array also Size); Function uses Elem as result and Params;
// Generic uses Elem as the base and Args.
type Type struct {
	Kind   TypeKind
	Loc    source.Loc
	Basic  token.Kind
	Name   *source.IdentInfo
	Decl   DeclID
	Elem   TypeID
	Size   ExprID
	Params []TypeID
	Args   []TypeID
	Const  bool
}

// Types manages allocation of types.
type Types struct {
	Arena arena.Arena[Type]
}

func (t *Types) New(typ Type) TypeID {
	return TypeID(t.Arena.New(typ))
}

func (t *Types) Get(id TypeID) *Type {
	if !id.IsValid() {
		return nil
	}
	return t.Arena.At(arena.Handle[Type](id))
}

func (t *Types) Basic(kind token.Kind, loc source.Loc) TypeID {
	return t.New(Type{Kind: TypeBasic, Basic: kind, Loc: loc})
}

func (t *Types) Pointer(elem TypeID, loc source.Loc) TypeID {
	return t.New(Type{Kind: TypePointer, Elem: elem, Loc: loc})
}

func (t *Types) Reference(elem TypeID, loc source.Loc) TypeID {
	return t.New(Type{Kind: TypeReference, Elem: elem, Loc: loc})
}

func (t *Types) Len() int { return t.Arena.Len() }

// IsVoid reports whether id names the void type directly.
func (t *Types) IsVoid(id TypeID) bool {
	typ := t.Get(id)
	return typ != nil && typ.Kind == TypeBasic && typ.Basic == token.KwVoid
}

// Spell renders a type the way it is written in source.
func (t *Types) Spell(id TypeID) string {
	var sb strings.Builder
	t.spell(&sb, id)
	return sb.String()
}

func (t *Types) spell(sb *strings.Builder, id TypeID) {
	typ := t.Get(id)
	if typ == nil {
		sb.WriteString("<invalid>")
		return
	}
	if typ.Const {
		sb.WriteString("const ")
	}
	switch typ.Kind {
	case TypeBasic:
		sb.WriteString(typ.Basic.Spelling())
	case TypeNamed:
		if typ.Name != nil {
			sb.WriteString(typ.Name.Name)
		}
	case TypePointer:
		t.spell(sb, typ.Elem)
		sb.WriteByte('*')
	case TypeReference:
		t.spell(sb, typ.Elem)
		sb.WriteByte('&')
	case TypeArray:
		t.spell(sb, typ.Elem)
		sb.WriteString("[]")
	case TypeFunction:
		t.spell(sb, typ.Elem)
		sb.WriteByte('(')
		for i, p := range typ.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.spell(sb, p)
		}
		sb.WriteByte(')')
	case TypeGeneric:
		t.spell(sb, typ.Elem)
		sb.WriteByte('<')
		for i, a := range typ.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.spell(sb, a)
		}
		sb.WriteByte('>')
	default:
		sb.WriteString("<invalid>")
	}
}
