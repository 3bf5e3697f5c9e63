package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag, *source.Manager) {
	mgr := source.NewManager()
	id := mgr.AddVirtual("test.em", []byte(input))
	bag := diag.NewBag(0)
	eng := diag.NewEngine(diag.Options{}, bag)
	lx := lexer.New(mgr, id, lexer.Options{Engine: eng, Idents: source.NewIdentTable()})
	return lx, bag, mgr
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexDeclaration(t *testing.T) {
	lx, bag, _ := makeTestLexer("public fun f(int a, uint* b) { return a >= 0x1F; }")
	got := kinds(lx.All())
	want := []token.Kind{
		token.KwPublic, token.KwFun, token.Ident, token.LParen, token.KwInt, token.Ident,
		token.Comma, token.KwUint, token.Star, token.Ident, token.RParen, token.LBrace,
		token.KwReturn, token.Ident, token.GtEq, token.IntLit, token.Semicolon, token.RBrace,
		token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestLexOperatorsGreedy(t *testing.T) {
	lx, _, _ := makeTestLexer("<<= >>= ... :: -> ++ -- && || != == <= << >> < > ~ ?")
	got := kinds(lx.All())
	want := []token.Kind{
		token.ShlAssign, token.ShrAssign, token.Ellipsis, token.ColonColon, token.Arrow,
		token.PlusPlus, token.MinusMinus, token.AndAnd, token.OrOr, token.BangEq, token.EqEq,
		token.LtEq, token.Shl, token.Shr, token.Lt, token.Gt, token.Tilde, token.Question,
		token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
}

func TestLexLocationsAndFlags(t *testing.T) {
	lx, _, mgr := makeTestLexer("int  x;\n  // comment\nfloat y")
	toks := lx.All()

	type pos struct {
		Text      string
		Line, Col uint32
		Len       uint32
		StartLine bool
		Leading   bool
	}
	var got []pos
	for _, tk := range toks[:len(toks)-1] {
		p := mgr.Presumed(tk.Loc)
		got = append(got, pos{tk.Text, p.Line, p.Col, tk.Len, tk.AtStartOfLine(), tk.HasLeadingSpace()})
	}
	want := []pos{
		{"int", 1, 1, 3, true, false},
		{"x", 1, 6, 1, false, true},
		{";", 1, 7, 1, false, false},
		{"float", 3, 1, 5, true, false},
		{"y", 3, 7, 1, false, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("positions (-want +got):\n%s", diff)
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o17", token.IntLit},
		{"0xFF", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"2.5E+10", token.FloatLit},
	}
	for _, tt := range tests {
		lx, bag, _ := makeTestLexer(tt.in)
		tok := lx.Lex()
		if tok.Kind != tt.kind || tok.Text != tt.in {
			t.Errorf("%q: got %v %q", tt.in, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", tt.in)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		in      string
		id      diag.ID
		message string
	}{
		{"0x", diag.LexBadNumber, "invalid numeric literal '0x'"},
		{"12abc", diag.LexBadNumber, "invalid numeric literal '12abc'"},
		{"1e+", diag.LexBadNumber, "invalid numeric literal '1e+'"},
		{"\"abc\n\"", diag.LexUnterminatedString, "missing terminating '\"' character"},
		{"'a", diag.LexUnterminatedString, "missing terminating ''' character"},
		{"''", diag.LexEmptyChar, "empty character constant"},
		{"/* open", diag.LexUnterminatedComment, "unterminated /* comment"},
		{"$", diag.LexUnknownChar, "invalid character '$' in source file"},
		{"a\x00b", diag.LexNullCharacter, "null character ignored"},
	}
	for _, tt := range tests {
		lx, bag, _ := makeTestLexer(tt.in)
		lx.All()
		if bag.Len() == 0 {
			t.Errorf("%q: no diagnostic", tt.in)
			continue
		}
		d := bag.Items()[0]
		if d.ID != tt.id || d.Message != tt.message {
			t.Errorf("%q: got %s %q", tt.in, d.ID.Code(), d.Message)
		}
	}
}

func TestLookAheadAndEnterToken(t *testing.T) {
	lx, _, _ := makeTestLexer("a b c")
	if got := lx.LookAhead(1).Text; got != "b" {
		t.Fatalf("LookAhead(1) = %q", got)
	}
	a := lx.Lex()
	if a.Text != "a" || lx.LookAhead(0).Text != "b" {
		t.Fatalf("lookahead consumed tokens")
	}
	lx.EnterToken(a, true)
	if got := lx.Lex(); got.Text != "a" || got.IsAnnotation() {
		t.Fatalf("reinjected token = %+v", got)
	}
	synth := token.Token{Kind: token.Semicolon, Loc: a.Loc}
	lx.EnterToken(synth, false)
	if got := lx.Lex(); !got.IsAnnotation() || got.Kind != token.Semicolon {
		t.Fatalf("entered token = %+v", got)
	}
	rest := kinds(lx.All())
	if diff := cmp.Diff([]token.Kind{token.Ident, token.Ident, token.EOF}, rest); diff != "" {
		t.Fatalf("rest (-want +got):\n%s", diff)
	}
	if lx.Lex().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestIdentsAreInterned(t *testing.T) {
	lx, _, _ := makeTestLexer("name other name")
	toks := lx.All()
	if toks[0].Ident == nil || toks[0].Ident != toks[2].Ident || toks[0].Ident == toks[1].Ident {
		t.Fatalf("identifier records are not shared")
	}
}

func TestCodeCompletionToken(t *testing.T) {
	mgr := source.NewManager()
	id := mgr.AddVirtual("cc.em", []byte("int value;"))
	lx := lexer.New(mgr, id, lexer.Options{Completion: true, CompletionOffset: 6})
	got := kinds(lx.All())
	want := []token.Kind{token.KwInt, token.Ident, token.CodeCompletion, token.Ident, token.Semicolon, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
}

func TestMeasureTokenLength(t *testing.T) {
	mgr := source.NewManager()
	id := mgr.AddVirtual("m.em", []byte("value >>= 12;"))
	cases := map[uint32]uint32{0: 5, 6: 3, 10: 2, 12: 1, 5: 0}
	for off, want := range cases {
		if got := lexer.MeasureTokenLength(mgr, mgr.LocForOffset(id, off)); got != want {
			t.Errorf("offset %d: length %d, want %d", off, got, want)
		}
	}
	r := lexer.CharRange(mgr, source.TokenRange(mgr.LocForOffset(id, 0), mgr.LocForOffset(id, 6)))
	if r.IsTokenRange || r.End != mgr.LocForOffset(id, 9) {
		t.Fatalf("CharRange = %+v", r)
	}
}
