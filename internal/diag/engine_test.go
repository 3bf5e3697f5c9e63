package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/source"
	"ember/internal/token"
)

type recorded struct {
	Level   Level
	ID      ID
	Loc     source.Loc
	Message string
}

type recorder struct {
	CountingConsumer
	got []recorded
}

func (r *recorder) HandleDiagnostic(level Level, d *Diagnostic) {
	r.CountingConsumer.HandleDiagnostic(level, d)
	r.got = append(r.got, recorded{Level: level, ID: d.ID, Loc: d.Loc, Message: d.Message})
}

func newTestEngine(opts Options) (*Engine, *recorder) {
	rec := &recorder{}
	return NewEngine(opts, rec), rec
}

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}

func TestEngineEmitsOnce(t *testing.T) {
	eng, rec := newTestEngine(Options{})
	locX := source.FileLoc(12)

	b := eng.Diagnose(SynExpectedIdent, locX)
	if !eng.IsInFlight() {
		t.Fatalf("engine must be in flight after Diagnose")
	}
	if !b.Emit() {
		t.Fatalf("diagnostic was not emitted")
	}
	if eng.IsInFlight() {
		t.Fatalf("engine must be idle after Emit")
	}
	if b.Emit() {
		t.Fatalf("second Emit must be a no-op")
	}
	want := []recorded{{Level: LevelError, ID: SynExpectedIdent, Loc: locX, Message: "expected identifier"}}
	if diff := cmp.Diff(want, rec.got); diff != "" {
		t.Fatalf("consumer mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineArgsReachConsumer(t *testing.T) {
	var got *Diagnostic
	eng := NewEngine(Options{}, FuncConsumer(func(_ Level, d *Diagnostic) { got = d }))
	loc := source.FileLoc(3)

	eng.Diagnose(SemaRedefinition, loc).Str("foo").Emit()

	if got == nil || got.ID != SemaRedefinition || got.Loc != loc {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
	if len(got.Args) != 1 || got.Args[0].Kind() != ArgString || got.Args[0].Render() != "foo" {
		t.Fatalf("args = %+v", got.Args)
	}
	if got.Message != "redefinition of 'foo'" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestEngineSecondDiagnosePanics(t *testing.T) {
	eng, _ := newTestEngine(Options{})
	b := eng.Diagnose(SynExpectedIdent, source.FileLoc(1))
	mustPanic(t, func() { eng.Diagnose(SynExpectedExpression, source.FileLoc(2)) })
	b.Emit()
	eng.Diagnose(SynExpectedExpression, source.FileLoc(2)).Emit()
}

func TestBuilderMove(t *testing.T) {
	eng, rec := newTestEngine(Options{})
	b := eng.Diagnose(SynExpected, source.FileLoc(1)).Tok(token.RParen)
	moved := b.Move()
	if b.IsActive() || !moved.IsActive() {
		t.Fatalf("Move must transfer ownership")
	}
	b.Str("ignored")
	if b.Emit() {
		t.Fatalf("inert builder emitted")
	}
	again := moved.Move()
	again.Emit()
	moved.Emit()
	if len(rec.got) != 1 || rec.got[0].Message != "expected ')'" {
		t.Fatalf("got %+v", rec.got)
	}
}

func TestBuilderWithoutActiveDiagnosticPanics(t *testing.T) {
	eng, _ := newTestEngine(Options{})
	b := eng.Diagnose(SynExpectedIdent, source.FileLoc(1))
	if !eng.FlushActiveDiagnostic(false) {
		t.Fatalf("flush failed")
	}
	mustPanic(t, func() { b.Emit() })
}

func TestWarningOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantLevel Level
		emitted   bool
	}{
		{"default", Options{}, LevelWarning, true},
		{"ignored", Options{IgnoreAllWarnings: true}, LevelIgnored, false},
		{"werror", Options{WarningsAsErrors: true}, LevelError, true},
		{"suppress all", Options{SuppressAll: true}, LevelWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, rec := newTestEngine(tt.opts)
			ok := eng.Diagnose(SynExtraSemi, source.FileLoc(1)).Emit()
			if ok != tt.emitted {
				t.Fatalf("emitted = %v, want %v", ok, tt.emitted)
			}
			if ok && rec.got[0].Level != tt.wantLevel {
				t.Fatalf("level = %v, want %v", rec.got[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestForceBypassesSuppression(t *testing.T) {
	eng, rec := newTestEngine(Options{SuppressAll: true})
	if !eng.Diagnose(SynExpectedIdent, source.FileLoc(1)).ForceEmit() {
		t.Fatalf("forced diagnostic was suppressed")
	}
	if len(rec.got) != 1 {
		t.Fatalf("got %d diagnostics", len(rec.got))
	}
}

func TestIndependentCounters(t *testing.T) {
	eng, rec := newTestEngine(Options{})
	eng.Diagnose(SynExtraSemi, source.FileLoc(1)).Emit()
	eng.Diagnose(SynExtraSemi, source.FileLoc(2)).Emit()
	eng.Diagnose(SynExpectedIdent, source.FileLoc(3)).Emit()
	eng.Diagnose(SynNoteMatching, source.FileLoc(4)).Tok(token.LParen).Emit()

	if eng.NumWarnings() != 2 || eng.NumErrors() != 1 {
		t.Fatalf("warnings=%d errors=%d", eng.NumWarnings(), eng.NumErrors())
	}
	if rec.NumWarnings() != 2 || rec.NumErrors() != 1 {
		t.Fatalf("consumer warnings=%d errors=%d", rec.NumWarnings(), rec.NumErrors())
	}
	if !eng.HasErrorOccurred() || eng.HasFatalErrorOccurred() {
		t.Fatalf("error flags wrong")
	}
}

func TestErrorLimit(t *testing.T) {
	eng, rec := newTestEngine(Options{ErrorLimit: 2})
	for i := range 5 {
		eng.Diagnose(SynExpectedIdent, source.FileLoc(uint32(i+1))).Emit()
		eng.Diagnose(SynNoteMatching, source.FileLoc(1)).Tok(token.LParen).Emit()
	}
	var ids []ID
	for _, r := range rec.got {
		ids = append(ids, r.ID)
	}
	want := []ID{SynExpectedIdent, SynNoteMatching, SynExpectedIdent, SynNoteMatching, DrvTooManyErrors}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	if !eng.HasFatalErrorOccurred() {
		t.Fatalf("error limit must be fatal")
	}
}

func TestFatalSuppressesFollowing(t *testing.T) {
	eng, rec := newTestEngine(Options{})
	eng.Diagnose(SynBracketDepthExceeded, source.FileLoc(1)).Uint(256).Emit()
	eng.Diagnose(SynNoteBracketDepth, source.FileLoc(1)).Emit()
	if eng.Diagnose(SynExpected, source.FileLoc(2)).Tok(token.RParen).Emit() {
		t.Fatalf("error after fatal must be suppressed")
	}
	eng.Diagnose(SynNoteMatching, source.FileLoc(1)).Tok(token.LParen).Emit()

	if len(rec.got) != 2 {
		t.Fatalf("got %+v", rec.got)
	}
	if rec.got[0].Message != "bracket nesting level exceeded maximum of 256" || rec.got[0].Level != LevelFatal {
		t.Fatalf("fatal = %+v", rec.got[0])
	}
}

func TestSetLevel(t *testing.T) {
	eng, rec := newTestEngine(Options{})
	eng.SetLevel(SynExtraSemi, LevelError)
	eng.Diagnose(SynExtraSemi, source.FileLoc(1)).Emit()
	if rec.got[0].Level != LevelError {
		t.Fatalf("override ignored")
	}
	mustPanic(t, func() { eng.SetLevel(SynNoteMatching, LevelError) })
}

func TestDelayedRouting(t *testing.T) {
	eng, rec := newTestEngine(Options{})
	pool := NewDelayedPool(nil)
	prev := eng.SetDelayedPool(pool)
	if prev != nil {
		t.Fatalf("fresh engine must have no pool")
	}

	if eng.Diagnose(SynDuplicateSpecifier, source.FileLoc(1)).Tok(token.KwConst).Emit() {
		t.Fatalf("delayable diagnostic must be held")
	}
	eng.Diagnose(SemaNotePrevious, source.FileLoc(2)).Emit()
	eng.Diagnose(SynExpectedIdent, source.FileLoc(3)).Emit()

	if pool.Len() != 2 || len(rec.got) != 1 {
		t.Fatalf("pool=%d consumer=%d", pool.Len(), len(rec.got))
	}
	eng.SetDelayedPool(nil)
	for _, d := range pool.Pending() {
		eng.EmitDelayed(d)
	}
	if len(rec.got) != 3 || rec.got[1].Message != "duplicate 'const' specifier" || rec.got[2].Level != LevelNote {
		t.Fatalf("replay = %+v", rec.got)
	}
}

func TestCopyStringAndReset(t *testing.T) {
	eng, _ := newTestEngine(Options{})
	buf := []byte("name")
	s := eng.CopyString(string(buf))
	buf[0] = 'x'
	if s != "name" || eng.ArenaBytes() != 4 {
		t.Fatalf("CopyString = %q, bytes=%d", s, eng.ArenaBytes())
	}
	eng.Diagnose(SynExpectedIdent, source.FileLoc(1)).Emit()
	eng.Reset()
	if eng.NumErrors() != 0 || eng.ArenaBytes() != 0 {
		t.Fatalf("Reset kept state")
	}
	eng.Diagnose(SynExpectedIdent, source.FileLoc(1))
	mustPanic(t, eng.Reset)
}
