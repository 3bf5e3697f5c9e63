package ast

import (
	"ember/internal/arena"
	"ember/internal/source"
	"ember/internal/token"
)

type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclImport
	DeclVar
	DeclFun
	DeclParam
	DeclRecord
	DeclEnum
	DeclEnumerator
	DeclField
	DeclGenericParam
)

func (k DeclKind) String() string {
	switch k {
	case DeclImport:
		return "import"
	case DeclVar:
		return "var"
	case DeclFun:
		return "fun"
	case DeclParam:
		return "param"
	case DeclRecord:
		return "record"
	case DeclEnum:
		return "enum"
	case DeclEnumerator:
		return "enumerator"
	case DeclField:
		return "field"
	case DeclGenericParam:
		return "generic param"
	default:
		return "invalid"
	}
}

// Access is the declared visibility.
type Access uint8

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return ""
}

// Decl is the common header of every declaration; Payload indexes the
// per-kind arena selected by Kind.
type Decl struct {
	Kind    DeclKind
	Name    *source.IdentInfo
	Loc     source.Loc
	Range   source.Range
	Access  Access
	Const   bool
	Type    TypeID
	Invalid bool
	Payload uint32
}

// FunData is the payload of DeclFun.
type FunData struct {
	Params  []DeclID
	Generic []DeclID
	Body    StmtID // NoStmtID for a prototype
}

// RecordData is the payload of DeclRecord.
type RecordData struct {
	Tag     token.Kind // struct, class or interface
	Generic []DeclID
	Members []DeclID
	Defined bool
}

// EnumData is the payload of DeclEnum.
type EnumData struct {
	Enumerators []DeclID
	Defined     bool
}

// VarData is the payload of DeclVar, DeclParam, DeclField and DeclEnumerator.
type VarData struct {
	Init ExprID
}

// ImportData is the payload of DeclImport.
type ImportData struct {
	Path []*source.IdentInfo
}

// Decls manages allocation of declarations.
type Decls struct {
	Arena   arena.Arena[Decl]
	Funs    arena.Arena[FunData]
	Records arena.Arena[RecordData]
	Enums   arena.Arena[EnumData]
	Vars    arena.Arena[VarData]
	Imports arena.Arena[ImportData]
}

// New allocates a declaration header with an empty payload of its kind.
func (d *Decls) New(kind DeclKind, name *source.IdentInfo, loc source.Loc) DeclID {
	var payload uint32
	switch kind {
	case DeclFun:
		payload = uint32(d.Funs.New(FunData{}))
	case DeclRecord:
		payload = uint32(d.Records.New(RecordData{}))
	case DeclEnum:
		payload = uint32(d.Enums.New(EnumData{}))
	case DeclVar, DeclParam, DeclField, DeclEnumerator:
		payload = uint32(d.Vars.New(VarData{}))
	case DeclImport:
		payload = uint32(d.Imports.New(ImportData{}))
	}
	h := d.Arena.New(Decl{Kind: kind, Name: name, Loc: loc, Range: source.RangeAt(loc), Payload: payload})
	return DeclID(h)
}

// Get returns the declaration header or nil.
func (d *Decls) Get(id DeclID) *Decl {
	if !id.IsValid() {
		return nil
	}
	return d.Arena.At(arena.Handle[Decl](id))
}

func (d *Decls) Fun(id DeclID) (*FunData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclFun {
		return nil, false
	}
	return d.Funs.At(arena.Handle[FunData](decl.Payload)), true
}

func (d *Decls) Record(id DeclID) (*RecordData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclRecord {
		return nil, false
	}
	return d.Records.At(arena.Handle[RecordData](decl.Payload)), true
}

func (d *Decls) Enum(id DeclID) (*EnumData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclEnum {
		return nil, false
	}
	return d.Enums.At(arena.Handle[EnumData](decl.Payload)), true
}

func (d *Decls) Var(id DeclID) (*VarData, bool) {
	decl := d.Get(id)
	if decl == nil {
		return nil, false
	}
	switch decl.Kind {
	case DeclVar, DeclParam, DeclField, DeclEnumerator:
		return d.Vars.At(arena.Handle[VarData](decl.Payload)), true
	}
	return nil, false
}

func (d *Decls) Import(id DeclID) (*ImportData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclImport {
		return nil, false
	}
	return d.Imports.At(arena.Handle[ImportData](decl.Payload)), true
}

// Len returns the number of declarations.
func (d *Decls) Len() int { return d.Arena.Len() }
