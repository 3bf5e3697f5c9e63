package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
)

// ParseExpression - точка входа для выражений (запятая-оператор не
// поддерживается).
func (p *Parser) ParseExpression() Result[ast.ExprID] {
	return p.ParseAssignmentExpression()
}

// ParseAssignmentExpression parses a full expression at assignment
// precedence. Generic-looking '<' candidates do not outlive it.
func (p *Parser) ParseAssignmentExpression() Result[ast.ExprID] {
	res := p.parseBinaryExpr(precAssignment)
	p.angles.Clear(p)
	return res
}

// parseBinaryExpr - precedence climbing над унарными выражениями.
func (p *Parser) parseBinaryExpr(minPrec int) Result[ast.ExprID] {
	lhs, ok := p.parseUnaryExpr().Get()
	if !ok {
		return Invalid[ast.ExprID]()
	}
	for {
		op := p.tok
		prec, rightAssoc := p.binaryPrec(op.Kind)
		if prec < minPrec || prec < 0 {
			return Ok(lhs)
		}
		if op.IsOneOf(token.Gt, token.Shr) {
			p.checkPotentialAngleBracketDelimiter(op.Loc)
		}
		if prec <= precLogicalAnd {
			p.angles.Clear(p)
		}
		p.ConsumeToken()

		if op.Is(token.Question) {
			res, ok := p.parseConditionalRest(lhs)
			if !ok {
				return Invalid[ast.ExprID]()
			}
			lhs = res
			continue
		}

		next := prec + 1
		if rightAssoc {
			next = prec
		}
		rhs, ok := p.parseBinaryExpr(next).Get()
		if !ok {
			return Invalid[ast.ExprID]()
		}
		lhs = p.tree.NewExpr(ast.Expr{
			Kind:  ast.ExprBinary,
			Range: p.cover(lhs, rhs),
			Op:    op.Kind,
			X:     lhs,
			Y:     rhs,
		})
	}
}

// parseConditionalRest parses "x : y" after "cond ?".
func (p *Parser) parseConditionalRest(cond ast.ExprID) (ast.ExprID, bool) {
	x, ok := p.parseBinaryExpr(precAssignment).Get()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.ExpectAndConsume(token.Colon, diag.SynExpected, "") {
		return ast.NoExprID, false
	}
	y, ok := p.parseBinaryExpr(precConditional).Get()
	if !ok {
		return ast.NoExprID, false
	}
	return p.tree.NewExpr(ast.Expr{
		Kind:  ast.ExprConditional,
		Range: p.cover(cond, y),
		Op:    token.Question,
		Cond:  cond,
		X:     x,
		Y:     y,
	}), true
}

// cover is the range from the start of a to the end of b.
func (p *Parser) cover(a, b ast.ExprID) source.Range {
	return source.Range{Begin: p.tree.Exprs.Get(a).Range.Begin, End: p.tree.Exprs.Get(b).Range.End}
}

// parseUnaryExpr обрабатывает префиксные операторы.
func (p *Parser) parseUnaryExpr() Result[ast.ExprID] {
	if !isUnaryOp(p.tok.Kind) {
		return p.parsePostfixExpr()
	}
	op := p.tok
	p.ConsumeToken()
	x, ok := p.parseUnaryExpr().Get()
	if !ok {
		return Invalid[ast.ExprID]()
	}
	return Ok(p.tree.NewExpr(ast.Expr{
		Kind:  ast.ExprUnary,
		Range: source.Range{Begin: op.Loc, End: p.tree.Exprs.Get(x).Range.End},
		Op:    op.Kind,
		X:     x,
	}))
}

// parsePostfixExpr parses a primary expression followed by calls, indexing,
// member access and postfix ++/--.
func (p *Parser) parsePostfixExpr() Result[ast.ExprID] {
	x, ok := p.parsePrimaryExpr().Get()
	if !ok {
		return Invalid[ast.ExprID]()
	}
	for {
		begin := p.tree.Exprs.Get(x).Range.Begin
		switch p.tok.Kind {
		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return Invalid[ast.ExprID]()
			}
			x = p.tree.NewExpr(ast.Expr{Kind: ast.ExprCall, Range: source.Range{Begin: begin, End: p.prevTokLoc}, X: x, Args: args})
		case token.LBracket:
			idx, ok := p.parseIndex()
			if !ok {
				return Invalid[ast.ExprID]()
			}
			x = p.tree.NewExpr(ast.Expr{Kind: ast.ExprIndex, Range: source.Range{Begin: begin, End: p.prevTokLoc}, X: x, Y: idx})
		case token.Dot, token.Arrow:
			op := p.tok.Kind
			p.ConsumeToken()
			if p.tok.IsCodeCompletion() {
				p.actions.CodeCompleteOrdinaryName(p.tok.Loc, p.CurScope(), sema.CompleteExpression)
				p.CutOffParsing()
				return Invalid[ast.ExprID]()
			}
			if !p.at(token.Ident) {
				p.DiagTok(diag.SynExpectedIdent).Emit()
				return Invalid[ast.ExprID]()
			}
			name := p.tok.Ident
			end := p.ConsumeToken()
			x = p.tree.NewExpr(ast.Expr{Kind: ast.ExprMember, Range: source.Range{Begin: begin, End: end}, Op: op, X: x, Name: name})
		case token.PlusPlus, token.MinusMinus:
			op := p.tok.Kind
			end := p.ConsumeToken()
			x = p.tree.NewExpr(ast.Expr{Kind: ast.ExprPostfix, Range: source.Range{Begin: begin, End: end}, Op: op, X: x})
		default:
			return Ok(x)
		}
	}
}

// parseCallArgs parses '(' (expr (',' expr)*)? ')'.
func (p *Parser) parseCallArgs() ([]ast.ExprID, bool) {
	tr := NewBalancedDelimiterTracker(p, token.LParen)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return nil, false
	}
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.ParseAssignmentExpression().Get()
			if !ok {
				if p.cutOff {
					return nil, false
				}
				p.SkipTo(token.RParen, StopAtSemi|StopBeforeMatch)
				break
			}
			args = append(args, arg)
			if _, ok := p.TryConsumeToken(token.Comma); !ok {
				break
			}
		}
	}
	return args, tr.ConsumeClose()
}

// parseIndex parses '[' expr ']'.
func (p *Parser) parseIndex() (ast.ExprID, bool) {
	tr := NewBalancedDelimiterTracker(p, token.LBracket)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return ast.NoExprID, false
	}
	idx, ok := p.ParseExpression().Get()
	if !ok {
		if p.cutOff {
			return ast.NoExprID, false
		}
		p.SkipTo(token.RBracket, StopAtSemi|StopBeforeMatch)
	}
	if !tr.ConsumeClose() || !ok {
		return ast.NoExprID, false
	}
	return idx, true
}

func (p *Parser) parsePrimaryExpr() Result[ast.ExprID] {
	tok := p.tok
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentExpr()
	case token.IntLit, token.FloatLit, token.KwTrue, token.KwFalse:
		p.ConsumeToken()
		return Ok(p.literal(tok))
	case token.StringLit, token.CharLit:
		p.ConsumeStringToken()
		return Ok(p.literal(tok))
	case token.LParen:
		return p.parseParenExpr()
	case token.CodeCompletion:
		p.actions.CodeCompleteOrdinaryName(tok.Loc, p.CurScope(), sema.CompleteExpression)
		p.CutOffParsing()
		return Invalid[ast.ExprID]()
	}
	if !p.cutOff {
		p.DiagTok(diag.SynExpectedExpression).Emit()
	}
	return Invalid[ast.ExprID]()
}

func (p *Parser) literal(tok token.Token) ast.ExprID {
	return p.tree.NewExpr(ast.Expr{
		Kind:  ast.ExprLiteral,
		Range: source.RangeAt(tok.Loc),
		Op:    tok.Kind,
		Text:  tok.Text,
	})
}

// parseIdentExpr parses a name. A name declared with generic parameters
// takes a generic argument list; any other name followed by '<' is
// remembered in case the matching '>' shows up later.
func (p *Parser) parseIdentExpr() Result[ast.ExprID] {
	tok := p.tok
	p.ConsumeToken()
	id := p.tree.NewExpr(ast.Expr{Kind: ast.ExprIdent, Range: source.RangeAt(tok.Loc), Name: tok.Ident})
	if !p.at(token.Lt) {
		return Ok(id)
	}

	decl, _ := p.lookup(tok.Ident)
	if p.hasGenericParams(decl) {
		args := p.parseGenericArgs()
		return Ok(p.tree.NewExpr(ast.Expr{
			Kind:     ast.ExprGenericName,
			Range:    source.Range{Begin: tok.Loc, End: p.prevTokLoc},
			Name:     tok.Ident,
			TypeArgs: args,
		}))
	}

	var prio AnglePriority
	switch d := p.tree.Decls.Get(decl); {
	case d == nil:
		prio = DependentName
	case d.Kind == ast.DeclFun, d.Kind == ast.DeclRecord:
		prio = PotentialTypo
	default:
		return Ok(id)
	}
	if !p.tok.HasLeadingSpace() {
		prio |= NoSpaceBeforeLess
	} else {
		prio |= SpaceBeforeLess
	}
	p.angles.Add(p, id, p.tok.Loc, prio)
	return Ok(id)
}

// hasGenericParams reports whether decl is a function or record declared
// with generic parameters.
func (p *Parser) hasGenericParams(decl ast.DeclID) bool {
	if fd, ok := p.tree.Decls.Fun(decl); ok {
		return len(fd.Generic) > 0
	}
	if rd, ok := p.tree.Decls.Record(decl); ok {
		return len(rd.Generic) > 0
	}
	return false
}

// parseParenExpr parses '(' expr ')'.
func (p *Parser) parseParenExpr() Result[ast.ExprID] {
	tr := NewBalancedDelimiterTracker(p, token.LParen)
	defer tr.Close()
	if !tr.ConsumeOpen() {
		return Invalid[ast.ExprID]()
	}
	x, ok := p.ParseExpression().Get()
	if !ok {
		if p.cutOff {
			return Invalid[ast.ExprID]()
		}
		p.SkipTo(token.RParen, StopAtSemi|StopBeforeMatch)
	}
	if !tr.ConsumeClose() || !ok {
		return Invalid[ast.ExprID]()
	}
	return Ok(p.tree.NewExpr(ast.Expr{Kind: ast.ExprParen, Range: tr.Range(), Op: token.LParen, X: x}))
}
