package sema

import (
	"ember/internal/ast"
	"ember/internal/source"
)

// ScopeFlags classify a scope. A scope may carry several.
type ScopeFlags uint16

const (
	FnScope                ScopeFlags = 1 << iota // function body
	BreakScope                                    // break targets this scope
	ContinueScope                                 // continue targets this scope
	DeclScope                                     // declarations may appear here
	ClassScope                                    // struct, class or interface body
	EnumScope                                     // enum body
	BlockScope                                    // { } block
	FunctionPrototypeScope                        // parameter list
	TemplateParamScope                            // generic parameter list
	CompoundStmtScope                             // compound statement
)

var scopeFlagNames = [...]string{
	"fn", "break", "continue", "decl", "class", "enum", "block",
	"prototype", "template", "compound",
}

func (f ScopeFlags) String() string {
	if f == 0 {
		return "none"
	}
	out := ""
	for i, name := range scopeFlagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += name
	}
	return out
}

// Scope is one level of the parser's lexical scope stack. Scopes are owned
// by the parser's cache and recycled; Init resets every field.
type Scope struct {
	parent   *Scope
	flags    ScopeFlags
	depth    int
	fnParent *Scope
	brk      *Scope
	cont     *Scope
	decls    []ast.DeclID
	names    map[*source.IdentInfo]ast.DeclID
}

// Init prepares s as a child of parent.
func (s *Scope) Init(parent *Scope, flags ScopeFlags) {
	decls := s.decls[:0]
	names := s.names
	clear(names)
	*s = Scope{parent: parent, decls: decls, names: names}
	if parent != nil {
		s.depth = parent.depth + 1
	}
	s.SetFlags(flags)
}

// SetFlags replaces the flags and recomputes the jump targets.
func (s *Scope) SetFlags(flags ScopeFlags) {
	s.flags = flags
	s.fnParent, s.brk, s.cont = nil, nil, nil
	if p := s.parent; p != nil {
		s.fnParent = p.fnParent
		if flags&FnScope == 0 {
			s.brk = p.brk
			s.cont = p.cont
		}
	}
	if flags&FnScope != 0 {
		s.fnParent = s
	}
	if flags&BreakScope != 0 {
		s.brk = s
	}
	if flags&ContinueScope != 0 {
		s.cont = s
	}
}

func (s *Scope) Parent() *Scope    { return s.parent }
func (s *Scope) Flags() ScopeFlags { return s.flags }
func (s *Scope) Depth() int        { return s.depth }

// FnParent is the nearest enclosing function body, or nil.
func (s *Scope) FnParent() *Scope { return s.fnParent }

// BreakParent is the scope a break would leave, or nil outside loops.
func (s *Scope) BreakParent() *Scope { return s.brk }

// ContinueParent is the scope a continue would restart, or nil.
func (s *Scope) ContinueParent() *Scope { return s.cont }

func (s *Scope) Is(flags ScopeFlags) bool { return s.flags&flags != 0 }

// Decls lists the declarations made directly in s, in order.
func (s *Scope) Decls() []ast.DeclID { return s.decls }

// AddDecl records id under name. A later declaration shadows an earlier one
// in the same scope.
func (s *Scope) AddDecl(name *source.IdentInfo, id ast.DeclID) {
	s.decls = append(s.decls, id)
	if name == nil {
		return
	}
	if s.names == nil {
		s.names = make(map[*source.IdentInfo]ast.DeclID)
	}
	s.names[name] = id
}

// LookupLocal searches s only.
func (s *Scope) LookupLocal(name *source.IdentInfo) (ast.DeclID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Lookup searches s and its parents.
func (s *Scope) Lookup(name *source.IdentInfo) (ast.DeclID, *Scope) {
	for sc := s; sc != nil; sc = sc.parent {
		if id, ok := sc.names[name]; ok {
			return id, sc
		}
	}
	return ast.NoDeclID, nil
}

// IsInnermostDeclScope reports whether s is the closest enclosing scope that
// may own declarations.
func (s *Scope) IsInnermostDeclScope() bool { return s.flags&DeclScope != 0 }
