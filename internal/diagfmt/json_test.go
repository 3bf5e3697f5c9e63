package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/lexer"
)

func TestJSONBasic(t *testing.T) {
	s := newSample("dir/test.em", sampleSource)
	s.emitSample()

	var buf bytes.Buffer
	err := JSON(&buf, s.bag, s.mgr, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", output.Count)
	}

	first := output.Diagnostics[0]
	want := DiagnosticJSON{
		Level:   "error",
		Code:    "SYN2001",
		Message: "expected ')'",
		Location: &LocationJSON{
			File: "test.em", StartByte: 7, EndByte: 8,
			StartLine: 1, StartCol: 8, EndLine: 1, EndCol: 9,
		},
		Notes: []NoteJSON{{
			Message: "to match this '('",
			Location: &LocationJSON{
				File: "test.em", StartByte: 5, EndByte: 6,
				StartLine: 1, StartCol: 6, EndLine: 1, EndCol: 7,
			},
		}},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("first diagnostic mismatch (-want +got):\n%s", diff)
	}

	second := output.Diagnostics[1]
	if len(second.FixIts) != 1 {
		t.Fatalf("expected one fix-it, got %+v", second.FixIts)
	}
	fx := second.FixIts[0]
	if fx.NewText != ";" || fx.Location.StartByte != 16 || fx.Location.EndByte != 16 {
		t.Fatalf("unexpected fix-it %+v", fx)
	}
}

func TestJSONMaxAndOmissions(t *testing.T) {
	s := newSample("test.em", sampleSource)
	s.emitSample()

	out := BuildDiagnosticsOutput(s.bag, s.mgr, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max should truncate output, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Notes != nil || d.FixIts != nil {
		t.Fatalf("notes and fix-its are opt-in: %+v", d)
	}
	if d.Location.StartLine != 0 {
		t.Fatalf("positions are opt-in: %+v", d.Location)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	s := newSample("tok.em", "int x;")
	tokens := lexer.New(s.mgr, s.id, lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens, s.mgr); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(out))
	}
	x := out[1]
	if x.Text != "x" || x.Start != 4 || x.End != 5 || x.Line != 1 || x.Col != 5 {
		t.Fatalf("unexpected token %+v", x)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	s := newSample("tok.em", "int x;")
	tokens := lexer.New(s.mgr, s.id, lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, s.mgr); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"x" at 1:5-1:6 (leading_space)`)) {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
