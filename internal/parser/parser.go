package parser

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// DefaultBracketDepth bounds (), [] and {} nesting unless Options says otherwise.
const DefaultBracketDepth = 256

// MaxBracketDepth is the largest depth the nesting counters can hold.
const MaxBracketDepth = math.MaxUint16 - 1

// TokenStream is what the parser reads from; *lexer.Lexer implements it.
type TokenStream interface {
	Lex() token.Token
	// LookAhead(0) is the token after the one most recently lexed.
	LookAhead(n int) token.Token
	// EnterToken pushes tok back so the next Lex returns it.
	EnterToken(tok token.Token, reinject bool)
}

// Actions receives semantic callbacks; *sema.Sema implements it.
type Actions interface {
	PushParsingDeclaration(pool *diag.DelayedPool) sema.ParsingDeclState
	PopParsingDeclaration(state sema.ParsingDeclState, decl ast.DeclID)
	ActOnPopScope(loc source.Loc, scope *sema.Scope)
	ActOnTranslationUnitScope(scope *sema.Scope)
	ActOnDeclarator(scope *sema.Scope, decl ast.DeclID) ast.DeclID
	ActOnBreak(loc source.Loc, scope *sema.Scope) bool
	ActOnContinue(loc source.Loc, scope *sema.Scope) bool
	ActOnReturn(loc source.Loc, scope *sema.Scope) bool
	CodeCompleteOrdinaryName(loc source.Loc, scope *sema.Scope, ctx sema.CompletionContext)
}

type Options struct {
	// BracketDepth is the deepest (), [] or {} nesting accepted; 0 means
	// DefaultBracketDepth.
	BracketDepth       int
	SkipFunctionBodies bool
	Tracer             trace.Tracer
}

// Parser — состояние разбора одной единицы трансляции.
type Parser struct {
	lx      TokenStream
	actions Actions
	engine  *diag.Engine
	tree    *ast.Builder
	opts    Options
	tracer  trace.Tracer

	tok        token.Token // текущий, ещё не съеденный
	prevTokLoc source.Loc
	prevTokEnd source.Loc
	consumed   int

	parenCount   uint16
	bracketCount uint16
	braceCount   uint16
	depthLimit   uint16

	greaterThanIsOperator bool
	angles                AngleBracketTracker

	scopes     []*sema.Scope
	scopeCache []*sema.Scope

	cutOff            bool
	completionReached bool
	sawDecl           bool
}

// New creates a parser, enters the translation-unit scope and primes the
// first token.
func New(lx TokenStream, actions Actions, engine *diag.Engine, tree *ast.Builder, opts Options) *Parser {
	if opts.BracketDepth <= 0 {
		opts.BracketDepth = DefaultBracketDepth
	}
	opts.BracketDepth = min(opts.BracketDepth, MaxBracketDepth)
	limit, err := safecast.Conv[uint16](opts.BracketDepth)
	if err != nil {
		panic(fmt.Errorf("parser: bracket depth: %w", err))
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	p := &Parser{
		lx:                    lx,
		actions:               actions,
		engine:                engine,
		tree:                  tree,
		opts:                  opts,
		tracer:                tracer,
		depthLimit:            limit,
		greaterThanIsOperator: true,
		tok:                   token.Token{Kind: token.EOF},
	}
	p.EnterScope(sema.DeclScope)
	actions.ActOnTranslationUnitScope(p.CurScope())
	p.tok = p.lx.Lex()
	return p
}

func (p *Parser) Tok() token.Token        { return p.tok }
func (p *Parser) Tree() *ast.Builder      { return p.tree }
func (p *Parser) Engine() *diag.Engine    { return p.engine }
func (p *Parser) Options() Options        { return p.opts }
func (p *Parser) IsEOF() bool             { return p.tok.Kind == token.EOF }
func (p *Parser) ParenCount() uint16      { return p.parenCount }
func (p *Parser) BracketCount() uint16    { return p.bracketCount }
func (p *Parser) BraceCount() uint16      { return p.braceCount }
func (p *Parser) CompletionReached() bool { return p.completionReached }
func (p *Parser) WasCutOff() bool         { return p.cutOff }

// IsParsing reports whether there is input left worth looking at. A fatal
// diagnostic ends parsing the same way end of file does.
func (p *Parser) IsParsing() bool {
	return !p.IsEOF() && !p.engine.HasFatalErrorOccurred()
}

// CutOffParsing makes the parser behave as if it reached end of file.
func (p *Parser) CutOffParsing() {
	if p.tok.IsCodeCompletion() {
		p.completionReached = true
	}
	if !p.cutOff {
		trace.Point(p.tracer, trace.ScopeRecovery, "cut_off", p.tok.Kind.String(), map[string]string{
			"loc": p.tok.Loc.String(),
		})
	}
	p.cutOff = true
	p.tok = token.Token{Kind: token.EOF, Loc: p.tok.Loc}
}

// EndParsing is CutOffParsing for callers outside error recovery.
func (p *Parser) EndParsing() { p.CutOffParsing() }

// Close exits the translation-unit scope. Every other scope must already be
// gone.
func (p *Parser) Close() {
	if len(p.scopes) != 1 {
		panic(fmt.Sprintf("parser: Close with %d open scopes", len(p.scopes)))
	}
	p.ExitScope()
}

// Diag starts a diagnostic at loc.
func (p *Parser) Diag(id diag.ID, loc source.Loc) *diag.Builder {
	return p.engine.Diagnose(id, loc)
}

// DiagTok starts a diagnostic at the current token.
func (p *Parser) DiagTok(id diag.ID) *diag.Builder {
	return p.engine.Diagnose(id, p.tok.Loc)
}
