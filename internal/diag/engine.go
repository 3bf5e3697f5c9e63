package diag

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/arena"
	"ember/internal/source"
)

// Options configures suppression and promotion of diagnostics.
type Options struct {
	IgnoreAllWarnings bool
	WarningsAsErrors  bool
	// ErrorLimit stops reporting after that many errors; 0 means no limit.
	ErrorLimit  int
	SuppressAll bool
}

// Engine routes diagnostics from producers to consumers.
//
// At most one diagnostic is in flight: Diagnose moves the engine from idle to
// in-flight and hands out the only live Builder; flushing moves it back. An
// engine belongs to one compilation unit and is not safe for concurrent use.
type Engine struct {
	opts       Options
	errorLimit uint32
	consumers  []Consumer
	overrides  map[ID]Level

	active *Diagnostic
	pool   *DelayedPool
	// strings outlive the buffers they were copied from
	strings arena.Strings

	numErrors     uint32
	numWarnings   uint32
	errorOccurred bool
	fatalOccurred bool

	// fate of the last non-note, inherited by the notes that follow it
	lastSuppressed bool
	lastDelayed    bool
}

// NewEngine creates an idle engine that reports to consumers in order.
func NewEngine(opts Options, consumers ...Consumer) *Engine {
	e := &Engine{consumers: consumers}
	e.SetOptions(opts)
	return e
}

// SetOptions replaces the suppression configuration.
func (e *Engine) SetOptions(opts Options) {
	limit, err := safecast.Conv[uint32](opts.ErrorLimit)
	if err != nil {
		limit = 0
	}
	e.opts = opts
	e.errorLimit = limit
}

func (e *Engine) Options() Options { return e.opts }

// SetSuppressAll drops every diagnostic that is not forced.
func (e *Engine) SetSuppressAll(v bool) { e.opts.SuppressAll = v }

// AddConsumer appends c to the consumer chain.
func (e *Engine) AddConsumer(c Consumer) { e.consumers = append(e.consumers, c) }

func (e *Engine) Consumers() []Consumer { return e.consumers }

// SetLevel remaps the level of id. Notes cannot be remapped.
func (e *Engine) SetLevel(id ID, level Level) {
	if id.DefaultLevel() == LevelNote {
		panic(fmt.Sprintf("diag: cannot remap note %s", id.Code()))
	}
	if e.overrides == nil {
		e.overrides = make(map[ID]Level)
	}
	e.overrides[id] = level
}

// Diagnose starts a diagnostic at loc. Calling it while another diagnostic is
// in flight is a bug in the caller and panics.
func (e *Engine) Diagnose(id ID, loc source.Loc) *Builder {
	level := id.DefaultLevel()
	if l, ok := e.overrides[id]; ok {
		level = l
	}
	return e.start(&Diagnostic{ID: id, Loc: loc, Level: level, Format: id.Format()})
}

// DiagnoseWith starts a copy of d relocated to loc.
func (e *Engine) DiagnoseWith(d Diagnostic, loc source.Loc) *Builder {
	d.Loc = loc
	if d.Format == "" {
		d.Format = d.ID.Format()
	}
	d.Message = ""
	return e.start(&d)
}

func (e *Engine) start(d *Diagnostic) *Builder {
	if e.active != nil {
		panic(fmt.Sprintf("diag: Diagnose(%s) while %s is in flight", d.ID.Code(), e.active.ID.Code()))
	}
	e.active = d
	return &Builder{engine: e, diag: d}
}

// IsInFlight reports whether a diagnostic has been started but not flushed.
func (e *Engine) IsInFlight() bool { return e.active != nil }

// FlushActiveDiagnostic formats the in-flight diagnostic and hands it to every
// consumer. It returns whether the diagnostic was emitted; force bypasses
// suppression and delaying.
func (e *Engine) FlushActiveDiagnostic(force bool) bool {
	return e.flush(force, true)
}

// EmitDelayed reports a diagnostic taken out of a DelayedPool.
func (e *Engine) EmitDelayed(d Diagnostic) bool {
	e.start(&d)
	return e.flush(false, false)
}

func (e *Engine) flush(force, allowDelay bool) bool {
	d := e.active
	if d == nil {
		return false
	}
	e.active = nil

	if !force && allowDelay && e.pool != nil {
		if (d.IsNote() && e.lastDelayed) || (!d.IsNote() && d.ID.IsDelayable()) {
			e.pool.Add(*d)
			if !d.IsNote() {
				e.lastDelayed = true
			}
			return false
		}
	}
	if !d.IsNote() {
		e.lastDelayed = false
	}

	level := e.effectiveLevel(d)
	if !force {
		if e.suppressed(d, level) {
			return false
		}
	} else if level != LevelNote {
		e.lastSuppressed = false
	}

	d.Level = level
	d.Message = FormatMessage(d.Format, d.Args)
	e.dispatch(d)
	return true
}

func (e *Engine) effectiveLevel(d *Diagnostic) Level {
	level := d.Level
	if level == LevelWarning {
		if e.opts.IgnoreAllWarnings {
			return LevelIgnored
		}
		if e.opts.WarningsAsErrors {
			return LevelError
		}
	}
	return level
}

// suppressed decides the fate of d and records it for following notes.
func (e *Engine) suppressed(d *Diagnostic, level Level) bool {
	if level == LevelNote {
		return e.lastSuppressed
	}
	drop := false
	switch {
	case e.opts.SuppressAll, level == LevelIgnored:
		drop = true
	case e.fatalOccurred:
		drop = true
	case level.IsErrorLike() && e.errorLimit > 0 && e.numErrors >= e.errorLimit:
		e.dispatch(&Diagnostic{
			ID:      DrvTooManyErrors,
			Loc:     d.Loc,
			Level:   LevelFatal,
			Format:  DrvTooManyErrors.Format(),
			Message: DrvTooManyErrors.Format(),
		})
		drop = true
	}
	e.lastSuppressed = drop
	return drop
}

func (e *Engine) dispatch(d *Diagnostic) {
	switch d.Level {
	case LevelWarning:
		e.numWarnings++
	case LevelError:
		e.numErrors++
		e.errorOccurred = true
	case LevelFatal:
		e.numErrors++
		e.errorOccurred = true
		e.fatalOccurred = true
	}
	for _, c := range e.consumers {
		c.HandleDiagnostic(d.Level, d)
	}
}

// SetDelayedPool makes p the destination of delayable diagnostics and returns
// the previous pool. nil disables delaying.
func (e *Engine) SetDelayedPool(p *DelayedPool) *DelayedPool {
	prev := e.pool
	e.pool = p
	e.lastDelayed = false
	return prev
}

// DelayedPool returns the pool currently collecting delayable diagnostics.
func (e *Engine) DelayedPool() *DelayedPool { return e.pool }

// CopyString copies s into the engine's arena so it can be borrowed by a
// diagnostic argument after its original buffer is gone.
func (e *Engine) CopyString(s string) string { return e.strings.Copy(s) }

// ArenaBytes reports the bytes copied by CopyString.
func (e *Engine) ArenaBytes() int { return e.strings.Allocated() }

func (e *Engine) NumErrors() int              { return int(e.numErrors) }
func (e *Engine) NumWarnings() int            { return int(e.numWarnings) }
func (e *Engine) HasErrorOccurred() bool      { return e.errorOccurred }
func (e *Engine) HasFatalErrorOccurred() bool { return e.fatalOccurred }

// Finish tells every consumer that the unit is done. It returns true when any
// consumer still holds unflushed state.
func (e *Engine) Finish() bool {
	pending := false
	for _, c := range e.consumers {
		if c.FinishProcessing() {
			pending = true
		}
	}
	return pending
}

// Reset clears counters and drops the string arena. Strings returned by
// CopyString must not be used afterwards.
func (e *Engine) Reset() {
	if e.active != nil {
		panic("diag: Reset with a diagnostic in flight")
	}
	e.strings.Reset()
	e.pool = nil
	e.numErrors, e.numWarnings = 0, 0
	e.errorOccurred, e.fatalOccurred = false, false
	e.lastSuppressed, e.lastDelayed = false, false
}
