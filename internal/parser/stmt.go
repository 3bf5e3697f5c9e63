package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
)

// ParseStatement parses one statement.
func (p *Parser) ParseStatement() Result[ast.StmtID] {
	switch p.tok.Kind {
	case token.LBrace:
		return p.ParseCompoundStatement()
	case token.Semicolon:
		loc := p.ConsumeToken()
		return Ok(p.tree.NewStmt(ast.Stmt{Kind: ast.StmtNull, Range: source.RangeAt(loc)}))
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwBreak, token.KwContinue:
		return p.parseJumpStatement()
	case token.CodeCompletion:
		p.actions.CodeCompleteOrdinaryName(p.tok.Loc, p.CurScope(), sema.CompleteStatement)
		p.CutOffParsing()
		return Invalid[ast.StmtID]()
	}
	if p.startsDeclSpec(CtxBlock) {
		return p.parseDeclStatement()
	}
	return p.parseExprStatement()
}

// ParseCompoundStatement parses '{' stmt* '}' in a block scope of its own.
func (p *Parser) ParseCompoundStatement() Result[ast.StmtID] {
	if !p.at(token.LBrace) {
		p.DiagTok(diag.SynExpected).Tok(token.LBrace).Emit()
		return Invalid[ast.StmtID]()
	}
	scope := NewParsingScope(p, sema.BlockScope|sema.DeclScope|sema.CompoundStmtScope, true, false)
	defer scope.Exit()
	id := p.tree.NewStmt(ast.Stmt{Kind: ast.StmtCompound})
	if st := p.parseCompoundStatementBody(id); st.IsError() {
		return Invalid[ast.StmtID]()
	}
	return Ok(id)
}

// parseCompoundStatementBody fills the compound statement id from '{' to
// '}'. The caller has entered the scope. The statements read so far stay
// attached to id even when the '}' is missing.
func (p *Parser) parseCompoundStatementBody(id ast.StmtID) Status {
	tr := NewBalancedDelimiterTracker(p, token.LBrace)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return StatusError()
	}
	var body []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) && p.IsParsing() {
		if s, ok := p.ParseStatement().Get(); ok {
			body = append(body, s)
		}
	}
	st := StatusOK()
	if p.completionReached {
		st = StatusCompletion()
	} else if !tr.ConsumeClose() {
		st = StatusError()
	}
	stmt := p.tree.Stmts.Get(id)
	stmt.Body = body
	stmt.Range = source.Range{Begin: tr.OpenLoc(), End: p.prevTokLoc}
	return st
}

func (p *Parser) parseReturnStatement() Result[ast.StmtID] {
	loc := p.ConsumeToken()
	p.actions.ActOnReturn(loc, p.CurScope())
	st := ast.Stmt{Kind: ast.StmtReturn}
	if !p.at(token.Semicolon) {
		e, ok := p.ParseExpression().Get()
		if !ok {
			p.recoverStatement()
			return Invalid[ast.StmtID]()
		}
		st.Expr = e
	}
	p.ExpectAndConsumeSemi("return statement")
	st.Range = source.Range{Begin: loc, End: p.prevTokLoc}
	return Ok(p.tree.NewStmt(st))
}

// parseCondition parses '(' expr ')' after 'if' or 'while'.
func (p *Parser) parseCondition(after string) (ast.ExprID, bool) {
	// без ')' тело не проглатываем: восстановление встаёт перед '{'
	tr := NewBalancedDelimiterTracker(p, token.LParen).SetFinal(token.LBrace)
	defer tr.Close()
	if !tr.ExpectAndConsume(diag.SynExpectedAfter, after, token.Invalid) {
		p.SkipUntil([]token.Kind{token.LBrace, token.RParen}, StopAtSemi|StopBeforeMatch)
		p.TryConsumeToken(token.RParen)
		return ast.NoExprID, false
	}
	cond, ok := p.ParseExpression().Get()
	if !ok {
		p.SkipTo(token.RParen, StopAtSemi|StopBeforeMatch)
	}
	if !tr.ConsumeClose() {
		return cond, false
	}
	return cond, ok
}

func (p *Parser) parseIfStatement() Result[ast.StmtID] {
	loc := p.ConsumeToken()
	cond, _ := p.parseCondition("'if'")
	if p.cutOff {
		return Invalid[ast.StmtID]()
	}
	st := ast.Stmt{Kind: ast.StmtIf, Cond: cond}
	st.Then = p.parseSubStatement()
	if _, ok := p.TryConsumeToken(token.KwElse); ok {
		st.Else = p.parseSubStatement()
	}
	st.Range = source.Range{Begin: loc, End: p.prevTokLoc}
	return Ok(p.tree.NewStmt(st))
}

func (p *Parser) parseWhileStatement() Result[ast.StmtID] {
	loc := p.ConsumeToken()
	scope := NewParsingScope(p, sema.BreakScope|sema.ContinueScope|sema.DeclScope, true, false)
	defer scope.Exit()
	// условие ещё не тело цикла: break и continue в нём цикл не видят
	cond := p.parseLoopCondition("'while'")
	if p.cutOff {
		return Invalid[ast.StmtID]()
	}
	st := ast.Stmt{Kind: ast.StmtWhile, Cond: cond}
	st.Then = p.parseSubStatement()
	st.Range = source.Range{Begin: loc, End: p.prevTokLoc}
	return Ok(p.tree.NewStmt(st))
}

// parseLoopCondition parses the condition of the loop whose scope is
// current with the scope's own loop flags taken away.
func (p *Parser) parseLoopCondition(after string) ast.ExprID {
	flags := NewParsingScopeFlags(p, p.CurScope().Flags()&^(sema.BreakScope|sema.ContinueScope), true)
	defer flags.Restore()
	cond, _ := p.parseCondition(after)
	return cond
}

// parseSubStatement parses the body of if/else/while. A missing body is
// reported without consuming anything.
func (p *Parser) parseSubStatement() ast.StmtID {
	if p.atOr(token.RBrace, token.EOF) {
		if !p.cutOff {
			p.DiagTok(diag.SynExpectedStatement).Emit()
		}
		return ast.NoStmtID
	}
	id, _ := p.ParseStatement().Get()
	return id
}

func (p *Parser) parseJumpStatement() Result[ast.StmtID] {
	kw := p.tok.Kind
	loc := p.ConsumeToken()
	kind := ast.StmtBreak
	if kw == token.KwBreak {
		p.actions.ActOnBreak(loc, p.CurScope())
	} else {
		kind = ast.StmtContinue
		p.actions.ActOnContinue(loc, p.CurScope())
	}
	p.ExpectAndConsumeSemi(kw.Spelling() + " statement")
	return Ok(p.tree.NewStmt(ast.Stmt{Kind: kind, Range: source.Range{Begin: loc, End: p.prevTokLoc}}))
}

func (p *Parser) parseDeclStatement() Result[ast.StmtID] {
	begin := p.tok.Loc
	var decls []ast.DeclID
	for _, res := range p.parseDeclGroup(CtxBlock) {
		if id, ok := res.Get(); ok {
			decls = append(decls, id)
		}
	}
	if len(decls) == 0 {
		return Invalid[ast.StmtID]()
	}
	return Ok(p.tree.NewStmt(ast.Stmt{Kind: ast.StmtDecl, Decls: decls, Range: source.Range{Begin: begin, End: p.prevTokLoc}}))
}

func (p *Parser) parseExprStatement() Result[ast.StmtID] {
	begin := p.tok.Loc
	e, ok := p.ParseExpression().Get()
	if !ok {
		p.recoverStatement()
		return Invalid[ast.StmtID]()
	}
	p.ExpectAndConsumeSemi("expression")
	return Ok(p.tree.NewStmt(ast.Stmt{Kind: ast.StmtExpr, Expr: e, Range: source.Range{Begin: begin, End: p.prevTokLoc}}))
}

// recoverStatement skips the rest of a broken statement, stopping before
// the '}' of the enclosing block.
func (p *Parser) recoverStatement() {
	start := p.consumed
	p.SkipUntil([]token.Kind{token.RBrace}, StopAtSemi|StopBeforeMatch)
	p.TryConsumeToken(token.Semicolon)
	if p.consumed == start && !p.atOr(token.RBrace, token.EOF) && p.IsParsing() {
		// Ничего не съели: продвигаемся, иначе цикл блока не закончится.
		p.ConsumeAnyToken(false)
	}
}
