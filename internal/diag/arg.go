package diag

import (
	"strconv"

	"ember/internal/source"
	"ember/internal/token"
)

// ArgKind tags the payload of an Arg.
type ArgKind uint8

const (
	ArgBool ArgKind = iota
	ArgString
	ArgInt
	ArgUint
	ArgIdent
	ArgDecl
	ArgType
	ArgTokenKind
)

// Named is implemented by decl and type handles so the formatter can print
// them without knowing their representation.
type Named interface {
	DiagName() string
}

// Arg is one positional argument of a diagnostic. Exactly one payload is set.
// String, identifier, decl and type payloads are borrowed from their owners.
type Arg struct {
	kind  ArgKind
	num   uint64
	str   string
	ident *source.IdentInfo
	named Named
}

func BoolArg(v bool) Arg {
	a := Arg{kind: ArgBool}
	if v {
		a.num = 1
	}
	return a
}

func StringArg(s string) Arg              { return Arg{kind: ArgString, str: s} }
func IntArg(v int64) Arg                  { return Arg{kind: ArgInt, num: uint64(v)} }
func UintArg(v uint64) Arg                { return Arg{kind: ArgUint, num: v} }
func IdentArg(info *source.IdentInfo) Arg { return Arg{kind: ArgIdent, ident: info} }
func DeclArg(d Named) Arg                 { return Arg{kind: ArgDecl, named: d} }
func TypeArg(t Named) Arg                 { return Arg{kind: ArgType, named: t} }
func TokenKindArg(k token.Kind) Arg       { return Arg{kind: ArgTokenKind, num: uint64(k)} }

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Enum reduces any integer-backed enum to an integer argument.
func Enum[E integer](v E) Arg { return IntArg(int64(v)) }

func (a Arg) Kind() ArgKind { return a.kind }

func (a Arg) Bool() bool               { return a.num != 0 }
func (a Arg) String() string           { return a.Render() }
func (a Arg) Int() int64               { return int64(a.num) }
func (a Arg) Uint() uint64             { return a.num }
func (a Arg) Ident() *source.IdentInfo { return a.ident }
func (a Arg) Named() Named             { return a.named }
func (a Arg) TokenKind() token.Kind    { return token.Kind(a.num) }

// Number returns the payload used by %s and %select directives.
func (a Arg) Number() (int64, bool) {
	switch a.kind {
	case ArgBool, ArgInt, ArgUint:
		return int64(a.num), true
	}
	return 0, false
}

// Render returns the text substituted for a plain %N directive.
func (a Arg) Render() string {
	switch a.kind {
	case ArgBool:
		return strconv.FormatBool(a.Bool())
	case ArgString:
		return a.str
	case ArgInt:
		return strconv.FormatInt(a.Int(), 10)
	case ArgUint:
		return strconv.FormatUint(a.num, 10)
	case ArgIdent:
		if a.ident == nil {
			return "<anonymous>"
		}
		return a.ident.Name
	case ArgDecl, ArgType:
		if a.named == nil {
			return "<null>"
		}
		return a.named.DiagName()
	case ArgTokenKind:
		return a.TokenKind().String()
	}
	return ""
}
