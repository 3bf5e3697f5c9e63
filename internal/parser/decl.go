package parser

import (
	"strings"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
)

// ParseTopLevelDecls parses declarations until end of file or a fatal
// error. Every declaration that was created is also pushed to the tree's
// top level.
func (p *Parser) ParseTopLevelDecls() []Result[ast.DeclID] {
	var out []Result[ast.DeclID]
	for p.IsParsing() {
		out = p.appendTopLevelDecl(out)
	}
	return out
}

func (p *Parser) appendTopLevelDecl(out []Result[ast.DeclID]) []Result[ast.DeclID] {
	for _, res := range p.ParseTopLevelDecl() {
		if id, ok := res.Get(); ok {
			p.tree.PushTopLevel(id)
		}
		out = append(out, res)
	}
	return out
}

// ParseTopLevelDecl parses one top-level declaration group. It returns
// nothing for stray semicolons and a single invalid result when no
// declaration could be made.
func (p *Parser) ParseTopLevelDecl() []Result[ast.DeclID] {
	switch p.tok.Kind {
	case token.Semicolon:
		p.parseExtraSemis()
		return nil
	case token.RBrace:
		p.DiagTok(diag.SynExpectedDeclaration).Emit()
		p.ConsumeBrace()
		return []Result[ast.DeclID]{Invalid[ast.DeclID]()}
	case token.KwImport:
		return []Result[ast.DeclID]{p.parseImport()}
	case token.CodeCompletion:
		p.actions.CodeCompleteOrdinaryName(p.tok.Loc, p.CurScope(), sema.CompleteTopLevel)
		p.CutOffParsing()
		return nil
	}
	if !p.startsDeclSpec(CtxFile) {
		p.DiagTok(diag.SynExpectedDeclaration).Emit()
		p.SkipMalformedDecl()
		return []Result[ast.DeclID]{Invalid[ast.DeclID]()}
	}
	p.sawDecl = true
	return p.parseDeclGroup(CtxFile)
}

// parseExtraSemis drops a run of ';' outside any function with one warning.
func (p *Parser) parseExtraSemis() {
	first := p.ConsumeToken()
	last := first
	for p.at(token.Semicolon) {
		last = p.ConsumeToken()
	}
	p.Diag(diag.SynExtraSemi, first).RemovalFixIt(source.TokenRange(first, last)).Emit()
}

// parseImport parses 'import' ident ('.' ident)* ';'.
func (p *Parser) parseImport() Result[ast.DeclID] {
	importLoc := p.ConsumeToken()
	var path []*source.IdentInfo
	nameLoc := p.tok.Loc
	for {
		if !p.at(token.Ident) {
			if !p.cutOff {
				p.DiagTok(diag.SynExpectedIdent).Emit()
			}
			p.SkipMalformedDecl()
			return Invalid[ast.DeclID]()
		}
		nameLoc = p.tok.Loc
		path = append(path, p.tok.Ident)
		p.ConsumeToken()
		if _, ok := p.TryConsumeToken(token.Dot); !ok {
			break
		}
	}

	if p.sawDecl {
		parts := make([]string, len(path))
		for i, id := range path {
			parts[i] = id.Name
		}
		p.Diag(diag.SynImportAfterDecl, importLoc).Str(strings.Join(parts, ".")).Emit()
	}

	id := p.tree.NewDecl(ast.DeclImport, path[len(path)-1], nameLoc)
	imp, _ := p.tree.Decls.Import(id)
	imp.Path = path
	p.tree.Decls.Get(id).Range = source.Range{Begin: importLoc, End: nameLoc}
	id = p.actions.ActOnDeclarator(p.CurScope(), id)
	p.ExpectAndConsumeSemi("import")
	return Ok(id)
}

// parseDeclGroup parses specifiers followed by one or more declarators.
func (p *Parser) parseDeclGroup(ctx DeclaratorContext) []Result[ast.DeclID] {
	ds := NewParsingDeclSpec(p)
	defer ds.Close()
	p.ParseDeclSpec(&ds.DeclSpec, ctx)
	if p.cutOff {
		return []Result[ast.DeclID]{Invalid[ast.DeclID]()}
	}
	if p.at(token.Semicolon) && !ds.IsTag() {
		ds.Abort()
		p.Diag(diag.SynEmptyDeclaration, ds.Range.Begin).Emit()
		p.ConsumeToken()
		return nil
	}
	p.finishDeclSpec(&ds.DeclSpec)

	// один декларатор на всю группу: после ',' он очищается
	d := NewParsingDeclarator(p, ds, ctx)
	defer d.Close()
	var out []Result[ast.DeclID]
	for {
		res, done := p.parseDeclaratorAndTail(d, ds, ctx)
		out = append(out, res)
		if done || p.cutOff {
			break
		}
		if _, ok := p.TryConsumeToken(token.Comma); ok {
			d.Clear()
			continue
		}
		d.Close()
		p.ExpectAndConsumeSemi("declaration")
		break
	}
	return out
}

// parseDeclaratorAndTail parses one declarator into d and what follows it.
// done is set when the group cannot continue with ',' (a body was parsed,
// or the declaration was skipped).
func (p *Parser) parseDeclaratorAndTail(d *ParsingDeclarator, ds *ParsingDeclSpec, ctx DeclaratorContext) (res Result[ast.DeclID], done bool) {
	p.ParseDeclarator(&d.Declarator)
	if d.Invalid {
		p.SkipMalformedDecl()
		return Invalid[ast.DeclID](), true
	}

	fn := d.FunctionChunk()
	switch {
	case ds.IsTag():
		if ds.TypeSpec == token.KwEnum {
			return p.parseEnumTail(d, ds), true
		}
		return p.parseRecordTail(d, ds), true
	case fn != nil:
		return p.parseFunTail(d, ds, fn)
	case ds.Fun:
		p.DiagTok(diag.SynExpected).Tok(token.LParen).Emit()
		p.SkipMalformedDecl()
		return Invalid[ast.DeclID](), true
	}
	return p.parseVarTail(d, ctx), false
}

// parseVarTail finishes a variable or field: an optional initializer.
func (p *Parser) parseVarTail(d *ParsingDeclarator, ctx DeclaratorContext) Result[ast.DeclID] {
	kind := ast.DeclVar
	if ctx == CtxMember {
		kind = ast.DeclField
	}
	id := p.newDecl(kind, &d.Declarator, d.NameLoc)
	id = p.actions.ActOnDeclarator(d.declScope, id)

	if _, ok := p.TryConsumeToken(token.Assign); ok {
		if init, ok := p.ParseAssignmentExpression().Get(); ok {
			v, _ := p.tree.Decls.Var(id)
			v.Init = init
		} else {
			p.SkipUntil([]token.Kind{token.Comma}, StopAtSemi|StopBeforeMatch)
		}
	}
	p.extendDeclRange(id)
	d.Complete(id)
	return Ok(id)
}

// parseFunTail finishes a function: either a prototype, which may be
// followed by more declarators, or a body.
func (p *Parser) parseFunTail(d *ParsingDeclarator, ds *ParsingDeclSpec, fn *DeclaratorChunk) (Result[ast.DeclID], bool) {
	id := p.newDecl(ast.DeclFun, &d.Declarator, d.NameLoc)
	fd, _ := p.tree.Decls.Fun(id)
	fd.Params = fn.Params
	fd.Generic = d.GenericParams()
	hasBody := p.at(token.LBrace)
	if hasBody {
		fd.Body = p.tree.NewStmt(ast.Stmt{Kind: ast.StmtCompound})
	}
	id = p.actions.ActOnDeclarator(d.declScope, id)
	d.Complete(id)
	if !hasBody {
		return Ok(id), false
	}

	// Тело разбирается уже без отложенных диагностик объявления.
	ds.Complete(id)
	p.parseFunctionBody(fd.Body, fd.Params)
	p.extendDeclRange(id)
	return Ok(id), true
}

// parseFunctionBody parses the compound statement of a function into body,
// in a function scope that sees the parameters.
func (p *Parser) parseFunctionBody(body ast.StmtID, params []ast.DeclID) {
	scope := NewParsingScope(p, sema.FnScope|sema.DeclScope|sema.CompoundStmtScope, true, false)
	defer scope.Exit()
	cur := p.CurScope()
	for _, prm := range params {
		if decl := p.tree.Decls.Get(prm); decl != nil && decl.Name != nil && !decl.Invalid {
			cur.AddDecl(decl.Name, prm)
		}
	}
	if p.opts.SkipFunctionBodies {
		p.skipFunctionBody(body)
		return
	}
	p.parseCompoundStatementBody(body)
}

// skipFunctionBody consumes a balanced body without parsing it.
func (p *Parser) skipFunctionBody(body ast.StmtID) {
	tr := NewBalancedDelimiterTracker(p, token.LBrace)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return
	}
	tr.SkipToEnd()
	p.tree.Stmts.Get(body).Range = tr.Range()
}

// parseRecordTail finishes 'struct|class|interface' name: a forward
// declaration or a body with members, optionally followed by ';'.
func (p *Parser) parseRecordTail(d *ParsingDeclarator, ds *ParsingDeclSpec) Result[ast.DeclID] {
	id := p.newDecl(ast.DeclRecord, &d.Declarator, d.NameLoc)
	rec, _ := p.tree.Decls.Record(id)
	rec.Tag = ds.TypeSpec
	rec.Generic = d.GenericParams()
	rec.Defined = p.at(token.LBrace)
	id = p.actions.ActOnDeclarator(d.declScope, id)
	d.Complete(id)
	ds.Complete(id)

	if !rec.Defined {
		p.ExpectAndConsumeSemi("declaration")
		return Ok(id)
	}
	rec.Members = p.parseRecordBody()
	p.extendDeclRange(id)
	p.TryConsumeToken(token.Semicolon)
	return Ok(id)
}

// parseRecordBody parses '{' member* '}'. "public:" style labels set the
// access of the members after them.
func (p *Parser) parseRecordBody() []ast.DeclID {
	tr := NewBalancedDelimiterTracker(p, token.LBrace)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return nil
	}
	scope := NewParsingScope(p, sema.ClassScope|sema.DeclScope, true, false)
	defer scope.Exit()

	var members []ast.DeclID
	access := ast.AccessNone
	for !p.atOr(token.RBrace, token.EOF) && p.IsParsing() {
		switch {
		case p.at(token.Semicolon):
			p.ConsumeToken()
			continue
		case p.tok.Kind.IsAccess() && p.PeekNextToken().Is(token.Colon):
			access = accessOf(p.tok.Kind)
			p.ConsumeToken()
			p.ConsumeToken()
			continue
		case p.tok.IsCodeCompletion():
			p.actions.CodeCompleteOrdinaryName(p.tok.Loc, p.CurScope(), sema.CompleteClass)
			p.CutOffParsing()
			continue
		case !p.startsDeclSpec(CtxMember):
			p.DiagTok(diag.SynExpected).Tok(token.RBrace).Emit()
			p.SkipMalformedDecl()
			continue
		}
		for _, res := range p.parseDeclGroup(CtxMember) {
			id, ok := res.Get()
			if !ok {
				continue
			}
			if decl := p.tree.Decls.Get(id); decl.Access == ast.AccessNone {
				decl.Access = access
			}
			members = append(members, id)
		}
	}
	tr.ConsumeClose()
	return members
}

// parseEnumTail finishes 'enum' name: a forward declaration or a list of
// enumerators, optionally followed by ';'.
func (p *Parser) parseEnumTail(d *ParsingDeclarator, ds *ParsingDeclSpec) Result[ast.DeclID] {
	id := p.newDecl(ast.DeclEnum, &d.Declarator, d.NameLoc)
	en, _ := p.tree.Decls.Enum(id)
	en.Defined = p.at(token.LBrace)
	id = p.actions.ActOnDeclarator(d.declScope, id)
	d.Complete(id)
	ds.Complete(id)

	if !en.Defined {
		p.ExpectAndConsumeSemi("declaration")
		return Ok(id)
	}
	en.Enumerators = p.parseEnumBody()
	p.extendDeclRange(id)
	p.TryConsumeToken(token.Semicolon)
	return Ok(id)
}

// parseEnumBody parses '{' (enumerator (',' enumerator)* ','?)? '}'.
func (p *Parser) parseEnumBody() []ast.DeclID {
	tr := NewBalancedDelimiterTracker(p, token.LBrace)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return nil
	}
	scope := NewParsingScope(p, sema.EnumScope|sema.DeclScope, true, false)
	defer scope.Exit()

	var out []ast.DeclID
	for p.at(token.Ident) {
		id := p.tree.NewDecl(ast.DeclEnumerator, p.tok.Ident, p.tok.Loc)
		p.ConsumeToken()
		if _, ok := p.TryConsumeToken(token.Assign); ok {
			if val, ok := p.ParseAssignmentExpression().Get(); ok {
				v, _ := p.tree.Decls.Var(id)
				v.Init = val
			} else {
				p.SkipUntil([]token.Kind{token.Comma, token.RBrace}, StopAtSemi|StopBeforeMatch)
			}
		}
		p.extendDeclRange(id)
		out = append(out, p.actions.ActOnDeclarator(p.CurScope(), id))
		if _, ok := p.TryConsumeToken(token.Comma); !ok {
			break
		}
	}
	if !p.atOr(token.RBrace, token.EOF) && !p.cutOff {
		p.DiagTok(diag.SynExpectedIdent).Emit()
		p.SkipTo(token.RBrace, StopBeforeMatch)
	}
	tr.ConsumeClose()
	return out
}

// extendDeclRange stretches the declaration's range to the last consumed
// token.
func (p *Parser) extendDeclRange(id ast.DeclID) {
	if decl := p.tree.Decls.Get(id); decl != nil && decl.Range.End.Less(p.prevTokLoc) {
		decl.Range.End = p.prevTokLoc
	}
}
