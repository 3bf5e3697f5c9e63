package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/observ"
	"ember/internal/parser"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// Options configures how units are loaded, lexed and parsed.
type Options struct {
	BracketDepth       int
	SkipFunctionBodies bool
	Diag               diag.Options
	// MaxDiagnostics caps each unit's bag; 0 keeps everything.
	MaxDiagnostics int
	// Jobs bounds ParseFiles parallelism; 0 means GOMAXPROCS.
	Jobs int
	// BaseDir makes rendered paths relative.
	BaseDir string

	// Complete requests code completion at CompleteOffset, a byte offset in
	// the unit's buffer.
	Complete       bool
	CompleteOffset uint32

	// Consumer, when set, builds an extra consumer for each unit next to its
	// bag. Calls into the returned consumers are serialized across units.
	Consumer func(u *Unit) diag.Consumer
	Progress ProgressSink
}

// Unit is one source file and everything built while processing it. Each
// unit owns its manager, engine and semantic state; nothing is shared
// between units.
type Unit struct {
	Path    string
	Manager *source.Manager
	File    source.FileID
	Idents  *source.IdentTable
	Engine  *diag.Engine
	Bag     *diag.Bag
	Tree    *ast.Builder
	Sema    *sema.Sema
	Tokens  []token.Token
	Result  parser.FileResult
	Timer   *observ.Timer
}

// Loaded reports whether the buffer made it into the manager.
func (u *Unit) Loaded() bool { return u.File.IsValid() }

// Failed reports whether any error was emitted for the unit.
func (u *Unit) Failed() bool { return u.Engine.HasErrorOccurred() }

func (u *Unit) Completions() []sema.Completion { return u.Sema.Completions() }

func newUnit(path string, opts Options, mu *sync.Mutex) *Unit {
	mgr := source.NewManager()
	if opts.BaseDir != "" {
		mgr.SetBaseDir(opts.BaseDir)
	}
	u := &Unit{
		Path:    path,
		Manager: mgr,
		Idents:  source.NewIdentTable(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Tree:    ast.NewBuilder(),
		Timer:   observ.NewTimer(),
	}
	// повторы одной и той же диагностики в bag не попадают
	consumers := []diag.Consumer{diag.NewDedup(u.Bag)}
	if opts.Consumer != nil {
		if c := opts.Consumer(u); c != nil {
			consumers = append(consumers, &lockedConsumer{mu: mu, c: c})
		}
	}
	u.Engine = diag.NewEngine(opts.Diag, consumers...)
	u.Sema = sema.New(u.Engine, u.Tree, u.Idents)
	return u
}

// lockedConsumer serializes a consumer shared by units parsed in parallel.
type lockedConsumer struct {
	mu *sync.Mutex
	c  diag.Consumer
}

func (l *lockedConsumer) HandleDiagnostic(level diag.Level, d *diag.Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.HandleDiagnostic(level, d)
}

func (l *lockedConsumer) FinishProcessing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.FinishProcessing()
}

// stage runs fn as one timed, traced pipeline step and reports progress.
func (u *Unit) stage(ctx context.Context, opts Options, st Stage, fn func() (string, error)) error {
	done := u.Timer.Track(string(st))
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, string(st), trace.CurrentSpan(ctx))
	emit(opts.Progress, Event{File: u.Path, Stage: st, Status: StatusWorking})

	start := time.Now()
	note, err := fn()
	status := StatusDone
	if err != nil {
		status = StatusError
		note = err.Error()
	}
	span.End(note)
	done(note)
	emit(opts.Progress, Event{File: u.Path, Stage: st, Status: status, Err: err, Elapsed: time.Since(start)})
	return err
}

// load reads the unit's file. A read failure becomes a fatal diagnostic and
// is not returned: the unit simply ends up not loaded.
func (u *Unit) load(ctx context.Context, opts Options) {
	_ = u.stage(ctx, opts, StageLoad, func() (string, error) {
		id, err := u.Manager.Load(u.Path)
		if err != nil {
			u.Engine.Diagnose(diag.DrvCannotOpen, source.NoLoc).Str(u.Path).Str(err.Error()).Emit()
			return "", err
		}
		u.File = id
		return fmt.Sprintf("%d bytes", len(u.Manager.File(id).Content)), nil
	})
}

func (u *Unit) lexer(opts Options) *lexer.Lexer {
	return lexer.New(u.Manager, u.File, lexer.Options{
		Engine:           u.Engine,
		Idents:           u.Idents,
		Completion:       opts.Complete,
		CompletionOffset: opts.CompleteOffset,
	})
}

func (u *Unit) tokenize(ctx context.Context, opts Options) error {
	return u.stage(ctx, opts, StageLex, func() (string, error) {
		u.Tokens = u.lexer(opts).All()
		return fmt.Sprintf("%d tokens", len(u.Tokens)), nil
	})
}

func (u *Unit) parse(ctx context.Context, opts Options) error {
	return u.stage(ctx, opts, StageParse, func() (string, error) {
		tracer := trace.FromContext(ctx)
		u.Sema.SetTracer(tracer)
		res, err := parser.ParseFile(ctx, u.lexer(opts), u.Sema, u.Engine, u.Tree, parser.Options{
			BracketDepth:       opts.BracketDepth,
			SkipFunctionBodies: opts.SkipFunctionBodies,
			Tracer:             tracer,
		})
		u.Result = res
		if err != nil {
			return "", err
		}
		note := fmt.Sprintf("%d decls", len(res.Decls))
		if res.CutOff {
			note += ", cut off"
		}
		return note, nil
	})
}

// finish flushes the consumers and puts the bag in source order.
func (u *Unit) finish() {
	u.Engine.Finish()
	u.Bag.Sort(u.Manager)
}

// process runs one unit end to end under a unit-level trace span.
func process(ctx context.Context, u *Unit, opts Options, work func(context.Context, *Unit) error) error {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, u.Path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer u.finish()

	if !u.Loaded() {
		u.load(ctx, opts)
	}
	if !u.Loaded() {
		span.End("not loaded")
		return nil
	}
	err := work(ctx, u)
	detail := "ok"
	switch {
	case err != nil:
		detail = err.Error()
	case u.Failed():
		detail = fmt.Sprintf("%d errors", u.Engine.NumErrors())
	}
	span.End(detail)
	return err
}

// ParseFile loads and parses path. Problems with the file itself are
// reported through the unit's bag; the error is only for cancellation.
func ParseFile(ctx context.Context, path string, opts Options) (*Unit, error) {
	u := newUnit(path, opts, &sync.Mutex{})
	err := process(ctx, u, opts, func(ctx context.Context, u *Unit) error { return u.parse(ctx, opts) })
	return u, err
}

// ParseSource parses content held in memory under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*Unit, error) {
	u := newUnit(name, opts, &sync.Mutex{})
	u.File = u.Manager.AddVirtual(name, content)
	err := process(ctx, u, opts, func(ctx context.Context, u *Unit) error { return u.parse(ctx, opts) })
	return u, err
}

// Tokenize loads path and lexes it to EOF without parsing.
func Tokenize(ctx context.Context, path string, opts Options) (*Unit, error) {
	u := newUnit(path, opts, &sync.Mutex{})
	err := process(ctx, u, opts, func(ctx context.Context, u *Unit) error { return u.tokenize(ctx, opts) })
	return u, err
}
