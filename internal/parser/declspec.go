package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
)

// DeclSpec collects the specifiers in front of a declarator.
type DeclSpec struct {
	Range source.Range

	Access    ast.Access
	AccessLoc source.Loc
	Const     bool
	ConstLoc  source.Loc
	Fun       bool
	FunLoc    source.Loc

	// TypeSpec is a basic-type keyword, a tag keyword, Ident for a named
	// type, or Invalid when no type was written.
	TypeSpec token.Kind
	TypeLoc  source.Loc
	TypeName *source.IdentInfo
	TypeDecl ast.DeclID
	TypeArgs []ast.TypeID

	// ImplicitType is set when the type was filled in by finishDeclSpec.
	ImplicitType bool
}

func accessOf(k token.Kind) ast.Access {
	switch k {
	case token.KwPublic:
		return ast.AccessPublic
	case token.KwProtected:
		return ast.AccessProtected
	case token.KwPrivate:
		return ast.AccessPrivate
	}
	return ast.AccessNone
}

// HasTypeSpec reports whether a type specifier was seen.
func (ds *DeclSpec) HasTypeSpec() bool { return ds.TypeSpec != token.Invalid }

// IsTag reports whether the specifiers introduce a record or an enum.
func (ds *DeclSpec) IsTag() bool { return ds.TypeSpec.IsTagKeyword() }

// typeSpelling is how the type specifier is quoted in diagnostics.
func (ds *DeclSpec) typeSpelling() string {
	if ds.TypeSpec == token.Ident && ds.TypeName != nil {
		return ds.TypeName.Name
	}
	return ds.TypeSpec.Spelling()
}

// SetAccess records an access specifier. The returned ID is UnknownID on
// success; otherwise it is the diagnostic to report with the returned
// spelling.
func (ds *DeclSpec) SetAccess(k token.Kind, loc source.Loc) (diag.ID, string) {
	a := accessOf(k)
	switch ds.Access {
	case ast.AccessNone:
		ds.Access, ds.AccessLoc = a, loc
		return diag.UnknownID, ""
	case a:
		return diag.SynDuplicateSpecifier, k.Spelling()
	}
	return diag.SynConflictingSpecifier, ds.Access.String()
}

func (ds *DeclSpec) SetConst(loc source.Loc) (diag.ID, string) {
	if ds.Const {
		return diag.SynDuplicateSpecifier, token.KwConst.Spelling()
	}
	ds.Const, ds.ConstLoc = true, loc
	return diag.UnknownID, ""
}

func (ds *DeclSpec) SetFun(loc source.Loc) (diag.ID, string) {
	if ds.Fun {
		return diag.SynDuplicateSpecifier, token.KwFun.Spelling()
	}
	ds.Fun, ds.FunLoc = true, loc
	return diag.UnknownID, ""
}

// SetTypeSpec records the type specifier. Types never combine: a second one
// conflicts with the first, even when it is the same keyword.
func (ds *DeclSpec) SetTypeSpec(k token.Kind, loc source.Loc, name *source.IdentInfo) (diag.ID, string) {
	if ds.HasTypeSpec() {
		return diag.SynConflictingSpecifier, ds.typeSpelling()
	}
	ds.TypeSpec, ds.TypeLoc, ds.TypeName = k, loc, name
	return diag.UnknownID, ""
}

// startsDeclSpec reports whether the current token can begin a declaration
// in ctx.
func (p *Parser) startsDeclSpec(ctx DeclaratorContext) bool {
	k := p.tok.Kind
	switch {
	case k.IsAccess():
		return ctx == CtxFile || ctx == CtxMember
	case k == token.KwConst, k == token.KwFun, k.IsBasicType():
		return true
	case k.IsTagKeyword():
		return ctx == CtxFile || ctx == CtxMember
	case k == token.Ident:
		return p.isTypeName(ctx)
	}
	return false
}

// isTypeName decides whether the identifier at the current token names a
// type. Declared records, enums and generic parameters always do; other
// declarations never do. An unknown name counts as a type where the
// following token only makes sense after one.
func (p *Parser) isTypeName(ctx DeclaratorContext) bool {
	if id, _ := p.lookup(p.tok.Ident); id.IsValid() {
		return isTypeDecl(p.tree.Decls.Get(id))
	}
	next := p.PeekNextToken()
	switch ctx {
	case CtxTypeName:
		return true
	case CtxBlock:
		return next.Is(token.Ident)
	case CtxParam:
		return next.IsOneOf(token.Ident, token.Star, token.Amp, token.Lt, token.Comma, token.RParen)
	}
	return next.IsOneOf(token.Ident, token.Star, token.Amp, token.Lt)
}

func isTypeDecl(d *ast.Decl) bool {
	if d == nil {
		return false
	}
	switch d.Kind {
	case ast.DeclRecord, ast.DeclEnum, ast.DeclGenericParam:
		return true
	}
	return false
}

// lookup resolves name from the current scope outwards.
func (p *Parser) lookup(name *source.IdentInfo) (ast.DeclID, *sema.Scope) {
	s := p.CurScope()
	if s == nil || name == nil {
		return ast.NoDeclID, nil
	}
	return s.Lookup(name)
}

// ParseDeclSpec reads specifiers until the first token that cannot be one.
func (p *Parser) ParseDeclSpec(ds *DeclSpec, ctx DeclaratorContext) {
	ds.Range = source.RangeAt(p.tok.Loc)
	for {
		tok := p.tok
		var (
			id   diag.ID
			prev string
		)
		switch {
		case tok.Kind.IsAccess():
			id, prev = ds.SetAccess(tok.Kind, tok.Loc)
		case tok.Is(token.KwConst):
			id, prev = ds.SetConst(tok.Loc)
		case tok.Is(token.KwFun):
			id, prev = ds.SetFun(tok.Loc)
		case tok.Kind.IsBasicType(), tok.Kind.IsTagKeyword():
			id, prev = ds.SetTypeSpec(tok.Kind, tok.Loc, nil)
		case tok.Is(token.Ident):
			if ds.HasTypeSpec() || !p.isTypeName(ctx) {
				return
			}
			p.ConsumeToken()
			ds.SetTypeSpec(token.Ident, tok.Loc, tok.Ident)
			ds.TypeDecl, _ = p.lookup(tok.Ident)
			ds.Range.End = tok.Loc
			if p.at(token.Lt) {
				ds.TypeArgs = p.parseGenericArgs()
			}
			continue
		case tok.IsCodeCompletion():
			p.actions.CodeCompleteOrdinaryName(tok.Loc, p.CurScope(), completionFor(ctx))
			p.CutOffParsing()
			return
		default:
			return
		}
		if id != diag.UnknownID {
			p.Diag(id, tok.Loc).Str(prev).Emit()
		}
		ds.Range.End = tok.Loc
		p.ConsumeToken()
	}
}

func completionFor(ctx DeclaratorContext) sema.CompletionContext {
	switch ctx {
	case CtxMember:
		return sema.CompleteClass
	case CtxBlock:
		return sema.CompleteStatement
	case CtxParam, CtxTypeName:
		return sema.CompleteType
	}
	return sema.CompleteTopLevel
}

// finishDeclSpec fills in a missing type. 'fun' defaults to void silently;
// anything else defaults to int with a warning that waits for the
// declaration.
func (p *Parser) finishDeclSpec(ds *DeclSpec) {
	if ds.HasTypeSpec() {
		return
	}
	ds.ImplicitType = true
	ds.TypeLoc = ds.Range.Begin
	if ds.Fun {
		ds.TypeSpec = token.KwVoid
		return
	}
	p.Diag(diag.SynMissingTypeSpecifier, ds.Range.Begin).Emit()
	ds.TypeSpec = token.KwInt
}

// specType builds the type named by the specifiers alone.
func (p *Parser) specType(ds *DeclSpec) ast.TypeID {
	var t ast.TypeID
	switch {
	case ds.TypeSpec.IsBasicType():
		t = p.tree.Types.Basic(ds.TypeSpec, ds.TypeLoc)
	case ds.TypeSpec == token.Ident:
		t = p.tree.NewType(ast.Type{Kind: ast.TypeNamed, Loc: ds.TypeLoc, Name: ds.TypeName, Decl: ds.TypeDecl})
		if len(ds.TypeArgs) > 0 {
			t = p.tree.NewType(ast.Type{Kind: ast.TypeGeneric, Loc: ds.TypeLoc, Elem: t, Args: ds.TypeArgs})
		}
	default:
		return ast.NoTypeID
	}
	if ds.Const {
		p.tree.Types.Get(t).Const = true
	}
	return t
}

// parseGenericArgs parses '<' type (',' type)* '>' after a type name.
func (p *Parser) parseGenericArgs() []ast.TypeID {
	lt := p.ConsumeToken()
	gt := NewGreaterThanIsOperatorScope(p, false)
	defer gt.Restore()

	var args []ast.TypeID
	for {
		if arg, ok := p.ParseTypeName().Get(); ok {
			args = append(args, arg)
		} else {
			p.SkipUntil([]token.Kind{token.Gt, token.Shr, token.Comma}, StopAtSemi|StopBeforeMatch)
		}
		if _, ok := p.TryConsumeToken(token.Comma); !ok {
			break
		}
	}
	if !p.consumeClosingAngle() {
		p.DiagTok(diag.SynExpected).Tok(token.Gt).Emit()
		p.Diag(diag.SynNoteMatching, lt).Tok(token.Lt).Emit()
	}
	return args
}

// consumeClosingAngle consumes a '>' that ends a generic list. A token that
// starts with '>' ('>>', '>=', '>>=') is split and its tail stays current.
func (p *Parser) consumeClosingAngle() bool {
	var rest token.Kind
	switch p.tok.Kind {
	case token.Gt:
		p.ConsumeToken()
		return true
	case token.Shr:
		rest = token.Gt
	case token.GtEq:
		rest = token.Assign
	case token.ShrAssign:
		rest = token.GtEq
	default:
		return false
	}
	tok := p.tok
	p.prevTokLoc = tok.Loc
	p.prevTokEnd = tok.Loc.WithOffset(1)
	p.consumed++
	p.tok = token.Token{
		Kind: rest,
		Loc:  tok.Loc.WithOffset(1),
		Len:  tok.Len - 1,
		Text: tok.Text[1:],
	}
	return true
}

// ParseTypeName parses a type in isolation: specifiers followed by '*', '&'
// and '[]' suffixes.
func (p *Parser) ParseTypeName() Result[ast.TypeID] {
	var ds DeclSpec
	p.ParseDeclSpec(&ds, CtxTypeName)
	if !ds.HasTypeSpec() || ds.IsTag() {
		if !p.cutOff {
			p.DiagTok(diag.SynExpectedType).Emit()
		}
		return Invalid[ast.TypeID]()
	}
	t := p.specType(&ds)
	for {
		switch p.tok.Kind {
		case token.Star:
			t = p.tree.Types.Pointer(t, p.ConsumeToken())
		case token.Amp:
			t = p.tree.Types.Reference(t, p.ConsumeToken())
		case token.LBracket:
			size, ok := p.parseArraySize()
			if !ok {
				return Invalid[ast.TypeID]()
			}
			t = p.tree.NewType(ast.Type{Kind: ast.TypeArray, Loc: p.prevTokLoc, Elem: t, Size: size})
		default:
			return Ok(t)
		}
	}
}
