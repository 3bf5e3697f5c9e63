package fuzztests

import (
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		mgr := source.NewManager()
		id := mgr.AddVirtual("fuzz.em", input)
		engine := diag.NewEngine(diag.Options{})
		lx := lexer.New(mgr, id, lexer.Options{Engine: engine, Idents: source.NewIdentTable()})

		toks := lx.All()
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream must end with EOF")
		}
		// каждый токен кроме EOF съедает хотя бы один байт
		if len(toks) > len(input)+1 {
			t.Fatalf("%d tokens from %d bytes", len(toks), len(input))
		}
		if next := lx.Lex(); next.Kind != token.EOF {
			t.Fatalf("lexer must keep returning EOF, got %v", next.Kind)
		}
	})
}
