package lexer

import (
	"ember/internal/source"
	"ember/internal/token"
)

// Lexer turns one buffer into tokens. It doubles as the parser's token
// stream: Lex, LookAhead and EnterToken share one queue of pending tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	queue  []token.Token // looked-ahead or re-entered tokens, front first
	flags  token.Flags   // flags gathered for the next scanned token

	completionDone bool
}

// New creates a lexer over the buffer id of mgr.
func New(mgr *source.Manager, id source.FileID, opts Options) *Lexer {
	f := mgr.File(id)
	if f == nil {
		panic("lexer: unknown file")
	}
	return NewForFile(f, opts)
}

// NewForFile creates a lexer over f.
func NewForFile(f *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   f,
		cursor: NewCursor(f),
		opts:   opts,
		flags:  token.StartOfLine,
	}
}

// File returns the buffer being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Lex returns the next token. After the end of input it keeps returning EOF.
func (lx *Lexer) Lex() token.Token {
	if len(lx.queue) > 0 {
		tok := lx.queue[0]
		lx.queue = lx.queue[1:]
		return tok
	}
	return lx.scan()
}

// LookAhead returns the token n positions after the next one to be returned
// by Lex without consuming anything. LookAhead(0) is the next token.
func (lx *Lexer) LookAhead(n int) token.Token {
	for len(lx.queue) <= n {
		lx.queue = append(lx.queue, lx.scan())
	}
	return lx.queue[n]
}

// EnterToken pushes tok so that the next Lex returns it. Tokens that were not
// lexed before (reinject == false) are marked as annotations.
func (lx *Lexer) EnterToken(tok token.Token, reinject bool) {
	if !reinject {
		tok.Flags |= token.Annotation
	}
	lx.queue = append([]token.Token{tok}, lx.queue...)
}

// All lexes the remaining input, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Lex()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	start := lx.cursor.Mark()
	if lx.atCompletionPoint() {
		lx.completionDone = true
		return lx.make(token.CodeCompletion, start)
	}
	if lx.cursor.EOF() {
		tok := lx.make(token.EOF, start)
		tok.Text = ""
		return tok
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) atCompletionPoint() bool {
	return lx.opts.Completion && !lx.completionDone && lx.cursor.Off >= lx.opts.CompletionOffset
}

// make builds a token from start to the cursor and consumes pending flags.
func (lx *Lexer) make(k token.Kind, start Mark) token.Token {
	tok := token.Token{
		Kind:  k,
		Flags: lx.flags,
		Loc:   lx.cursor.Loc(start),
		Len:   lx.cursor.Len(start),
		Text:  lx.cursor.Text(start),
	}
	lx.flags = 0
	return tok
}
