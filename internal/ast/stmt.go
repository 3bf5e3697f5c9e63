package ast

import (
	"ember/internal/arena"
	"ember/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtCompound
	StmtNull
	StmtExpr
	StmtDecl
	StmtReturn
	StmtIf
	StmtWhile
	StmtBreak
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtCompound:
		return "compound"
	case StmtNull:
		return "null"
	case StmtExpr:
		return "expr"
	case StmtDecl:
		return "decl"
	case StmtReturn:
		return "return"
	case StmtIf:
		return "if"
	case StmtWhile:
		return "while"
	case StmtBreak:
		return "break"
	case StmtContinue:
		return "continue"
	}
	return "invalid"
}

// Stmt is a statement node.
//   - Compound: Body
//   - Expr, Return: Expr (Return may have none)
//   - Decl: Decls
//   - If: Cond, Then, Else
//   - While: Cond, Then
type Stmt struct {
	Kind  StmtKind
	Range source.Range
	Expr  ExprID
	Cond  ExprID
	Then  StmtID
	Else  StmtID
	Body  []StmtID
	Decls []DeclID
}

type Stmts struct {
	Arena arena.Arena[Stmt]
}

func (s *Stmts) New(stmt Stmt) StmtID {
	return StmtID(s.Arena.New(stmt))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	if !id.IsValid() {
		return nil
	}
	return s.Arena.At(arena.Handle[Stmt](id))
}

func (s *Stmts) Len() int { return s.Arena.Len() }
