package lexer

import (
	"ember/internal/diag"
	"ember/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Engine receives lexical diagnostics; nil drops them.
	Engine *diag.Engine
	// Idents interns identifier spellings; nil leaves Token.Ident unset.
	Idents *source.IdentTable
	// Completion, when set, produces one CodeCompletion token at
	// CompletionOffset (a byte offset in the buffer).
	Completion       bool
	CompletionOffset uint32
}

func (lx *Lexer) diag(id diag.ID, m Mark) *diag.Builder {
	if lx.opts.Engine == nil {
		return nil
	}
	return lx.opts.Engine.Diagnose(id, lx.cursor.Loc(m))
}
