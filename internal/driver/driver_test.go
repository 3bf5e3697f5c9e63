package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/token"
	"ember/internal/trace"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func ids(u *Unit) []diag.ID {
	var out []diag.ID
	for _, d := range u.Bag.Items() {
		out = append(out, d.ID)
	}
	return out
}

func phaseNames(u *Unit) []string {
	var out []string
	for _, p := range u.Timer.Phases() {
		out = append(out, p.Name)
	}
	return out
}

// recorder collects progress events from any number of goroutines.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) statuses(file string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		if ev.File == file {
			out = append(out, string(ev.Stage)+":"+string(ev.Status))
		}
	}
	return out
}

func TestParseSource(t *testing.T) {
	u, err := ParseSource(context.Background(), "mem.em", []byte("int x;\nfun f() { return; }\n"), Options{})
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if !u.Loaded() || u.Failed() || u.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", ids(u))
	}
	if len(u.Result.Decls) != 2 || len(u.Tree.TopLevel) != 2 || u.Result.CutOff {
		t.Fatalf("unexpected result %+v", u.Result)
	}
	if diff := cmp.Diff([]string{"parse"}, phaseNames(u)); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.em")
	u, err := ParseFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("missing file must be a diagnostic, got error %v", err)
	}
	if u.Loaded() || !u.Failed() {
		t.Fatalf("unit should be unloaded and failed")
	}
	items := u.Bag.Items()
	if len(items) != 1 || items[0].ID != diag.DrvCannotOpen || items[0].Level != diag.LevelFatal {
		t.Fatalf("unexpected diagnostics %+v", items)
	}
	if !strings.HasPrefix(items[0].Message, "cannot open file '"+path+"': ") {
		t.Fatalf("unexpected message %q", items[0].Message)
	}
	if diff := cmp.Diff([]string{"load"}, phaseNames(u)); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFilesIsolatesUnits(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "a.em", "int x;\n")
	redef := writeSource(t, dir, "b.em", "int x;\nint x;\n")
	missing := filepath.Join(dir, "c.em")
	paths := []string{good, redef, missing}

	rec := &recorder{}
	units, err := ParseFiles(context.Background(), paths, Options{Jobs: 2, Progress: rec})
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if len(units) != len(paths) {
		t.Fatalf("expected %d units, got %d", len(paths), len(units))
	}
	for i, u := range units {
		if u.Path != paths[i] {
			t.Fatalf("unit %d is %s, want %s", i, u.Path, paths[i])
		}
	}

	if got := ids(units[0]); len(got) != 0 {
		t.Fatalf("a.em: unexpected diagnostics %v", got)
	}
	if diff := cmp.Diff([]diag.ID{diag.SemaRedefinition, diag.SemaNotePrevious}, ids(units[1])); diff != "" {
		t.Fatalf("b.em diagnostics mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]diag.ID{diag.DrvCannotOpen}, ids(units[2])); diff != "" {
		t.Fatalf("c.em diagnostics mismatch (-want +got):\n%s", diff)
	}

	errs, warns := Totals(units)
	if errs != 2 || warns != 0 {
		t.Fatalf("Totals = %d errors, %d warnings", errs, warns)
	}

	wantGood := []string{":queued", "load:working", "load:done", "parse:working", "parse:done"}
	if diff := cmp.Diff(wantGood, rec.statuses(good)); diff != "" {
		t.Fatalf("progress for a.em mismatch (-want +got):\n%s", diff)
	}
	wantMissing := []string{":queued", "load:working", "load:error"}
	if diff := cmp.Diff(wantMissing, rec.statuses(missing)); diff != "" {
		t.Fatalf("progress for c.em mismatch (-want +got):\n%s", diff)
	}

	report := Timings(units)
	if len(report.Phases) != 2 || report.Phases[0].Name != "load" || report.Phases[1].Name != "parse" {
		t.Fatalf("unexpected merged timings %+v", report)
	}
}

func TestParseFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.em", "int x;\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units, err := ParseFiles(ctx, []string{path}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(units) != 1 || units[0].Loaded() {
		t.Fatalf("cancelled run should not load files")
	}
}

func TestParseFilesEmpty(t *testing.T) {
	units, err := ParseFiles(context.Background(), nil, Options{})
	if err != nil || units != nil {
		t.Fatalf("ParseFiles(nil) = %v, %v", units, err)
	}
}

func TestTokenize(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.em", "int x;")
	u, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var kinds []token.Kind
	for _, tok := range u.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.KwInt, token.Ident, token.Semicolon, token.EOF}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if len(u.Tree.TopLevel) != 0 {
		t.Fatalf("Tokenize must not parse")
	}
	if diff := cmp.Diff([]string{"load", "lex"}, phaseNames(u)); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestConsumerSeesEveryUnit(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.em", "b.em", "c.em", "d.em"} {
		paths = append(paths, writeSource(t, dir, name, "int x;\nint x;\n"))
	}

	seen := map[string]int{}
	opts := Options{
		Jobs: 4,
		Consumer: func(u *Unit) diag.Consumer {
			return diag.FuncConsumer(func(level diag.Level, d *diag.Diagnostic) {
				// вызовы сериализованы драйвером
				seen[u.Path]++
			})
		},
	}
	if _, err := ParseFiles(context.Background(), paths, opts); err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	for _, p := range paths {
		if seen[p] != 2 {
			t.Fatalf("%s: consumer saw %d diagnostics, want 2", p, seen[p])
		}
	}
}

func TestCompletionAndBracketDepth(t *testing.T) {
	src := "int x = "
	u, err := ParseSource(context.Background(), "c.em", []byte(src), Options{Complete: true, CompleteOffset: uint32(len(src))})
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	got := u.Completions()
	if len(got) != 1 || got[0].Context != sema.CompleteExpression || !u.Result.CompletionReached {
		t.Fatalf("unexpected completions %+v", got)
	}

	u, err = ParseSource(context.Background(), "d.em", []byte("int x = (((1)));"), Options{BracketDepth: 2})
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if !u.Result.CutOff {
		t.Fatalf("exceeding the bracket depth must cut parsing off")
	}
	if got := ids(u); len(got) == 0 || got[0] != diag.SynBracketDepthExceeded {
		t.Fatalf("unexpected diagnostics %v", got)
	}
}

func TestTraceSpans(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.em", "int x;\n")
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)

	if _, err := ParseFiles(ctx, []string{path}, Options{}); err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}

	begins := map[string]trace.Event{}
	var order []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			begins[ev.Name] = ev
			order = append(order, ev.Name)
		}
	}
	if diff := cmp.Diff([]string{"parse_files", path, "load", "parse"}, order); diff != "" {
		t.Fatalf("span order mismatch (-want +got):\n%s", diff)
	}
	if begins[path].ParentID != begins["parse_files"].SpanID {
		t.Fatalf("unit span is not nested in the run span")
	}
	for _, pass := range []string{"load", "parse"} {
		if begins[pass].ParentID != begins[path].SpanID {
			t.Fatalf("%s span is not nested in the unit span", pass)
		}
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"string s = \"abc;\nint y;\n", "missing terminating '\"' character"},
		{"char c = 'a;\nint y;\n", "missing terminating ''' character"},
		{"\"", "missing terminating '\"' character"},
		{"'", "missing terminating ''' character"},
	}
	for _, tt := range tests {
		u, err := ParseSource(context.Background(), "lit.em", []byte(tt.src), Options{})
		if err != nil {
			t.Fatalf("%q: ParseSource: %v", tt.src, err)
		}
		items := u.Bag.Items()
		if len(items) == 0 || items[0].ID != diag.LexUnterminatedString || items[0].Message != tt.want {
			t.Fatalf("%q: unexpected diagnostics %+v", tt.src, items)
		}
	}
}
