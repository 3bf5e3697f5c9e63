package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
)

// DeclaratorContext says where a declarator appears.
type DeclaratorContext uint8

const (
	CtxFile     DeclaratorContext = iota // top level
	CtxMember                            // record body
	CtxBlock                             // function body
	CtxParam                             // parameter list
	CtxTypeName                          // generic argument, no name allowed
)

// ChunkKind classifies one piece of a declarator.
type ChunkKind uint8

const (
	ChunkPointer ChunkKind = iota
	ChunkReference
	ChunkArray
	ChunkFunction
	ChunkGeneric
)

// DeclaratorChunk is one '*', '&', '[n]', '(params)' or '<T>' of a
// declarator.
type DeclaratorChunk struct {
	Kind    ChunkKind
	Loc     source.Loc
	Size    ast.ExprID   // array
	Params  []ast.DeclID // function
	Generic []ast.DeclID // generic parameter list
}

// Declarator is the part of a declaration after the specifiers. Chunks are
// stored name-adjacent first: for "*a[3]" the array chunk precedes the
// pointer chunk, and the type is built from the last chunk inwards.
type Declarator struct {
	Spec    *DeclSpec
	Context DeclaratorContext
	Name    *source.IdentInfo
	NameLoc source.Loc
	Range   source.Range
	Chunks  []DeclaratorChunk
	Invalid bool

	// declScope is the scope the name is declared in; generic parameters
	// live in a scope of their own that stays open until Close.
	declScope *sema.Scope
	scopes    MultiParsingScope
}

func (d *Declarator) init(p *Parser, spec *DeclSpec, ctx DeclaratorContext) {
	*d = Declarator{
		Spec:      spec,
		Context:   ctx,
		Range:     source.RangeAt(p.tok.Loc),
		declScope: p.CurScope(),
		scopes:    MultiParsingScope{p: p},
	}
}

// NewDeclarator creates a declarator without a diagnostic pool of its own.
func NewDeclarator(p *Parser, spec *DeclSpec, ctx DeclaratorContext) *Declarator {
	d := &Declarator{}
	d.init(p, spec, ctx)
	return d
}

// DeclScope is the scope the declared name belongs to.
func (d *Declarator) DeclScope() *sema.Scope { return d.declScope }

// FunctionChunk returns the parameter list that makes this a function
// declarator: the first chunk next to the name that is not a generic list.
func (d *Declarator) FunctionChunk() *DeclaratorChunk {
	for i := range d.Chunks {
		switch d.Chunks[i].Kind {
		case ChunkGeneric:
			continue
		case ChunkFunction:
			return &d.Chunks[i]
		}
		return nil
	}
	return nil
}

// GenericParams returns the generic parameters declared after the name.
func (d *Declarator) GenericParams() []ast.DeclID {
	for _, c := range d.Chunks {
		if c.Kind == ChunkGeneric {
			return c.Generic
		}
	}
	return nil
}

// ParseDeclarator parses a (possibly abstract) declarator into d.
func (p *Parser) ParseDeclarator(d *Declarator) {
	p.parseDeclaratorInternal(d)
	if d.Range.End.IsInvalid() || d.Range.End.Less(p.prevTokLoc) {
		d.Range.End = p.prevTokLoc
	}
}

func (p *Parser) parseDeclaratorInternal(d *Declarator) {
	var kind ChunkKind
	switch p.tok.Kind {
	case token.Star:
		kind = ChunkPointer
	case token.Amp:
		kind = ChunkReference
	default:
		p.parseDirectDeclarator(d)
		return
	}
	loc := p.ConsumeToken()
	p.parseDeclaratorInternal(d)
	d.Chunks = append(d.Chunks, DeclaratorChunk{Kind: kind, Loc: loc})
}

// isGroupingParen: a '(' where a name is expected opens a nested declarator
// unless it looks like a parameter list of an abstract declarator.
func (p *Parser) isGroupingParen(d *Declarator) bool {
	next := p.PeekNextToken()
	switch next.Kind {
	case token.Star, token.Amp, token.LParen:
		return true
	case token.Ident:
		if id, _ := p.lookup(next.Ident); id.IsValid() {
			return !isTypeDecl(p.tree.Decls.Get(id))
		}
		return d.Context != CtxParam
	}
	return false
}

func (p *Parser) parseDirectDeclarator(d *Declarator) {
	switch {
	case p.at(token.Ident) && d.Context != CtxTypeName:
		d.Name = p.tok.Ident
		d.NameLoc = p.ConsumeToken()
		if p.at(token.Lt) && (d.Context == CtxFile || d.Context == CtxMember) {
			p.parseGenericParams(d)
			if d.Invalid {
				return
			}
		}
	case p.at(token.LParen) && p.isGroupingParen(d):
		tr := NewBalancedDelimiterTracker(p, token.LParen)
		defer tr.Close()
		if !tr.ConsumeOpen() {
			d.Invalid = true
			return
		}
		p.parseDeclaratorInternal(d)
		if !tr.ConsumeClose() {
			d.Invalid = true
			return
		}
	case d.Context == CtxParam || d.Context == CtxTypeName:
		// безымянный параметр
	default:
		if !p.cutOff {
			p.DiagTok(diag.SynExpectedDeclarator).Emit()
		}
		d.Invalid = true
		return
	}

	for !d.Invalid {
		switch p.tok.Kind {
		case token.LParen:
			p.parseFunctionSuffix(d)
		case token.LBracket:
			size, ok := p.parseArraySize()
			if !ok {
				d.Invalid = true
				return
			}
			d.Chunks = append(d.Chunks, DeclaratorChunk{Kind: ChunkArray, Loc: p.prevTokLoc, Size: size})
		default:
			return
		}
	}
}

// parseArraySize parses '[' expr? ']'.
func (p *Parser) parseArraySize() (ast.ExprID, bool) {
	tr := NewBalancedDelimiterTracker(p, token.LBracket)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return ast.NoExprID, false
	}
	size := ast.NoExprID
	if !p.at(token.RBracket) {
		e, ok := p.ParseAssignmentExpression().Get()
		if !ok {
			p.SkipTo(token.RBracket, StopAtSemi|StopBeforeMatch)
		}
		size = e
	}
	return size, tr.ConsumeClose()
}

// parseFunctionSuffix parses a parameter list. Parameters are declared in a
// prototype scope that ends with the list; the body scope re-adds them.
func (p *Parser) parseFunctionSuffix(d *Declarator) {
	tr := NewBalancedDelimiterTracker(p, token.LParen)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		d.Invalid = true
		return
	}
	chunk := DeclaratorChunk{Kind: ChunkFunction, Loc: tr.OpenLoc()}

	proto := NewParsingScope(p, sema.FunctionPrototypeScope|sema.DeclScope, true, false)
	defer proto.Exit()
	for p.startsDeclSpec(CtxParam) {
		if id, ok := p.parseParameter().Get(); ok {
			chunk.Params = append(chunk.Params, id)
		}
		if _, ok := p.TryConsumeToken(token.Comma); !ok {
			break
		}
	}
	if !tr.ConsumeClose() {
		d.Invalid = true
		return
	}
	d.Chunks = append(d.Chunks, chunk)
}

func (p *Parser) parseParameter() Result[ast.DeclID] {
	ds := NewParsingDeclSpec(p)
	defer ds.Close()
	p.ParseDeclSpec(&ds.DeclSpec, CtxParam)
	p.finishDeclSpec(&ds.DeclSpec)

	d := NewParsingDeclarator(p, ds, CtxParam)
	defer d.Close()
	p.ParseDeclarator(&d.Declarator)
	if d.Invalid {
		p.SkipUntil([]token.Kind{token.Comma, token.RParen}, StopAtSemi|StopBeforeMatch)
		return Invalid[ast.DeclID]()
	}

	loc := d.NameLoc
	if loc.IsInvalid() {
		loc = ds.Range.Begin
	}
	id := p.newDecl(ast.DeclParam, &d.Declarator, loc)
	id = p.actions.ActOnDeclarator(d.declScope, id)
	d.Complete(id)
	ds.Complete(id)
	return Ok(id)
}

// parseGenericParams parses '<' ident (',' ident)* '>' after a declared
// name and opens the scope the parameters live in.
func (p *Parser) parseGenericParams(d *Declarator) {
	lt := p.ConsumeToken()
	d.scopes.Enter(sema.TemplateParamScope | sema.DeclScope)
	chunk := DeclaratorChunk{Kind: ChunkGeneric, Loc: lt}
	for {
		if !p.at(token.Ident) {
			if !p.cutOff {
				p.DiagTok(diag.SynExpectedIdent).Emit()
			}
			d.Invalid = true
			return
		}
		id := p.tree.NewDecl(ast.DeclGenericParam, p.tok.Ident, p.tok.Loc)
		p.ConsumeToken()
		chunk.Generic = append(chunk.Generic, p.actions.ActOnDeclarator(p.CurScope(), id))
		if _, ok := p.TryConsumeToken(token.Comma); !ok {
			break
		}
	}
	if !p.consumeClosingAngle() {
		p.DiagTok(diag.SynExpected).Tok(token.Gt).Emit()
		p.Diag(diag.SynNoteMatching, lt).Tok(token.Lt).Emit()
		d.Invalid = true
		return
	}
	d.Chunks = append(d.Chunks, chunk)
}

// BuildType combines the specifiers with the chunks, outermost chunk first.
func (p *Parser) BuildType(d *Declarator) ast.TypeID {
	t := p.specType(d.Spec)
	for i := len(d.Chunks) - 1; i >= 0; i-- {
		c := d.Chunks[i]
		switch c.Kind {
		case ChunkPointer:
			t = p.tree.Types.Pointer(t, c.Loc)
		case ChunkReference:
			t = p.tree.Types.Reference(t, c.Loc)
		case ChunkArray:
			t = p.tree.NewType(ast.Type{Kind: ast.TypeArray, Loc: c.Loc, Elem: t, Size: c.Size})
		case ChunkFunction:
			params := make([]ast.TypeID, 0, len(c.Params))
			for _, prm := range c.Params {
				params = append(params, p.tree.Decls.Get(prm).Type)
			}
			t = p.tree.NewType(ast.Type{Kind: ast.TypeFunction, Loc: c.Loc, Elem: t, Params: params})
		}
	}
	return t
}

// newDecl creates a declaration of kind for d, carrying over the
// specifiers and the built type.
func (p *Parser) newDecl(kind ast.DeclKind, d *Declarator, loc source.Loc) ast.DeclID {
	id := p.tree.NewDecl(kind, d.Name, loc)
	decl := p.tree.Decls.Get(id)
	decl.Range = source.Range{Begin: d.Spec.Range.Begin, End: d.Range.End}
	decl.Access = d.Spec.Access
	decl.Const = d.Spec.Const
	switch kind {
	case ast.DeclRecord, ast.DeclEnum:
	default:
		decl.Type = p.BuildType(d)
	}
	return id
}
