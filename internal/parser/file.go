package parser

import (
	"context"
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
)

// FileResult describes one parsed translation unit.
type FileResult struct {
	Decls             []Result[ast.DeclID]
	CutOff            bool
	CompletionReached bool
}

// ParseFile parses everything lx yields into tree and closes the parser.
// ctx is checked between top-level declarations; on cancellation the parse
// ends early and the context error is returned with what was parsed so far.
func ParseFile(ctx context.Context, lx TokenStream, actions Actions, engine *diag.Engine, tree *ast.Builder, opts Options) (FileResult, error) {
	p := New(lx, actions, engine, tree, opts)
	var (
		res FileResult
		err error
	)
	for p.IsParsing() {
		if cerr := ctx.Err(); cerr != nil {
			err = fmt.Errorf("parse cancelled: %w", cerr)
			p.EndParsing()
			break
		}
		res.Decls = p.appendTopLevelDecl(res.Decls)
	}
	res.CutOff = p.WasCutOff()
	res.CompletionReached = p.CompletionReached()
	p.Close()
	return res, err
}
