package sema

import (
	"sort"

	"ember/internal/ast"
	"ember/internal/source"
	"ember/internal/token"
)

// CompletionContext says what kind of construct the completion point
// appeared in.
type CompletionContext uint8

const (
	CompleteTopLevel CompletionContext = iota
	CompleteClass
	CompleteStatement
	CompleteExpression
	CompleteType
)

func (c CompletionContext) String() string {
	switch c {
	case CompleteTopLevel:
		return "top-level"
	case CompleteClass:
		return "class"
	case CompleteStatement:
		return "statement"
	case CompleteExpression:
		return "expression"
	case CompleteType:
		return "type"
	}
	return "unknown"
}

// Completion is one code-completion request and its results.
type Completion struct {
	Context    CompletionContext
	Loc        source.Loc
	Candidates []string
}

var completionKeywords = map[CompletionContext][]token.Kind{
	CompleteTopLevel: {
		token.KwImport, token.KwFun, token.KwConst, token.KwPublic, token.KwPrivate,
		token.KwStruct, token.KwEnum, token.KwClass, token.KwInterface,
	},
	CompleteClass: {
		token.KwFun, token.KwConst, token.KwPublic, token.KwProtected, token.KwPrivate,
	},
	CompleteStatement: {
		token.KwReturn, token.KwIf, token.KwWhile, token.KwBreak, token.KwContinue, token.KwConst,
	},
	CompleteExpression: {token.KwTrue, token.KwFalse},
}

// CodeCompleteOrdinaryName collects the keywords valid in ctx and every
// name visible from scope.
func (s *Sema) CodeCompleteOrdinaryName(loc source.Loc, scope *Scope, ctx CompletionContext) {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok || name == "" {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, k := range completionKeywords[ctx] {
		add(k.Spelling())
	}
	if ctx != CompleteExpression {
		for k := token.KwVoid; k <= token.KwString; k++ {
			add(k.Spelling())
		}
	}
	for sc := scope; sc != nil; sc = sc.Parent() {
		for _, id := range sc.Decls() {
			decl := s.tree.Decls.Get(id)
			if decl == nil || decl.Name == nil || !visibleIn(decl.Kind, ctx) {
				continue
			}
			add(decl.Name.Name)
		}
	}
	sort.Strings(out)
	s.completions = append(s.completions, Completion{Context: ctx, Loc: loc, Candidates: out})
}

func visibleIn(kind ast.DeclKind, ctx CompletionContext) bool {
	switch ctx {
	case CompleteType, CompleteTopLevel, CompleteClass:
		return kind == ast.DeclRecord || kind == ast.DeclEnum || kind == ast.DeclGenericParam
	}
	return kind != ast.DeclImport
}

// Completions returns every request recorded so far.
func (s *Sema) Completions() []Completion { return s.completions }
