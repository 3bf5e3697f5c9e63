package ast

import (
	"ember/internal/arena"
	"ember/internal/source"
	"ember/internal/token"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLiteral
	ExprParen
	ExprUnary
	ExprPostfix
	ExprBinary
	ExprConditional
	ExprCall
	ExprIndex
	ExprMember
	ExprGenericName
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "ident"
	case ExprLiteral:
		return "literal"
	case ExprParen:
		return "paren"
	case ExprUnary:
		return "unary"
	case ExprPostfix:
		return "postfix"
	case ExprBinary:
		return "binary"
	case ExprConditional:
		return "conditional"
	case ExprCall:
		return "call"
	case ExprIndex:
		return "index"
	case ExprMember:
		return "member"
	case ExprGenericName:
		return "generic name"
	}
	return "invalid"
}

// Expr is an expression node.
//   - Ident: Name
//   - Literal: Op is the literal token kind, Text its spelling
//   - Paren, Unary, Postfix: X, Op
//   - Binary: X Op Y
//   - Conditional: Cond ? X : Y
//   - Call: X(Args...); Index: X[Y]; Member: X.Name or X->Name (Op)
//   - GenericName: Name<TypeArgs...>
type Expr struct {
	Kind     ExprKind
	Range    source.Range
	Op       token.Kind
	Text     string
	Name     *source.IdentInfo
	X        ExprID
	Y        ExprID
	Cond     ExprID
	Args     []ExprID
	TypeArgs []TypeID
}

type Exprs struct {
	Arena arena.Arena[Expr]
}

func (e *Exprs) New(expr Expr) ExprID {
	return ExprID(e.Arena.New(expr))
}

func (e *Exprs) Get(id ExprID) *Expr {
	if !id.IsValid() {
		return nil
	}
	return e.Arena.At(arena.Handle[Expr](id))
}

func (e *Exprs) Len() int { return e.Arena.Len() }
