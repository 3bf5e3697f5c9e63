package diag

import (
	"ember/internal/source"
	"ember/internal/token"
)

// Builder is the handle of the in-flight diagnostic.
//
// It is move-only: Move hands the right to flush to a new handle and leaves
// the old one inert. Emit flushes exactly once; every later call, and every
// call on an inert handle, does nothing. Methods chain and are no-ops on an
// inert handle.
type Builder struct {
	engine *Engine
	diag   *Diagnostic
}

// IsActive reports whether the handle still owns the in-flight diagnostic.
func (b *Builder) IsActive() bool { return b != nil && b.engine != nil }

// Move transfers ownership to a new handle.
func (b *Builder) Move() *Builder {
	if !b.IsActive() {
		return &Builder{}
	}
	nb := &Builder{engine: b.engine, diag: b.diag}
	b.engine, b.diag = nil, nil
	return nb
}

// Emit flushes the diagnostic and reports whether consumers saw it.
func (b *Builder) Emit() bool { return b.emit(false) }

// ForceEmit flushes the diagnostic bypassing suppression.
func (b *Builder) ForceEmit() bool { return b.emit(true) }

func (b *Builder) emit(force bool) bool {
	if !b.IsActive() {
		return false
	}
	e, d := b.engine, b.diag
	b.engine, b.diag = nil, nil
	if e.active != d {
		panic("diag: builder emitted without a matching in-flight diagnostic")
	}
	return e.FlushActiveDiagnostic(force)
}

// Diagnostic exposes the in-flight record for inspection.
func (b *Builder) Diagnostic() *Diagnostic {
	if !b.IsActive() {
		return nil
	}
	return b.diag
}

// Arg appends a positional argument.
func (b *Builder) Arg(a Arg) *Builder {
	if b.IsActive() {
		b.diag.Args = append(b.diag.Args, a)
	}
	return b
}

func (b *Builder) Str(s string) *Builder                 { return b.Arg(StringArg(s)) }
func (b *Builder) Int(v int64) *Builder                  { return b.Arg(IntArg(v)) }
func (b *Builder) Uint(v uint64) *Builder                { return b.Arg(UintArg(v)) }
func (b *Builder) Bool(v bool) *Builder                  { return b.Arg(BoolArg(v)) }
func (b *Builder) Ident(info *source.IdentInfo) *Builder { return b.Arg(IdentArg(info)) }
func (b *Builder) Decl(d Named) *Builder                 { return b.Arg(DeclArg(d)) }
func (b *Builder) Type(t Named) *Builder                 { return b.Arg(TypeArg(t)) }
func (b *Builder) Tok(k token.Kind) *Builder             { return b.Arg(TokenKindArg(k)) }

// Range highlights r.
func (b *Builder) Range(r source.CharRange) *Builder {
	if b.IsActive() && r.IsValid() {
		b.diag.Ranges = append(b.diag.Ranges, r)
	}
	return b
}

// TokenRange highlights a token-granular range.
func (b *Builder) TokenRange(r source.Range) *Builder { return b.Range(source.AsTokenRange(r)) }

// FixIt attaches f; null fix-its are dropped.
func (b *Builder) FixIt(f FixIt) *Builder {
	if b.IsActive() && !f.IsNull() {
		b.diag.FixIts = append(b.diag.FixIts, f)
	}
	return b
}

func (b *Builder) InsertionFixIt(loc source.Loc, code string) *Builder {
	return b.FixIt(Insertion(loc, code, false))
}

func (b *Builder) RemovalFixIt(r source.CharRange) *Builder {
	return b.FixIt(Removal(r))
}

func (b *Builder) ReplacementFixIt(r source.CharRange, code string) *Builder {
	return b.FixIt(Replacement(r, code))
}

// SetLoc moves the primary location.
func (b *Builder) SetLoc(loc source.Loc) *Builder {
	if b.IsActive() {
		b.diag.Loc = loc
	}
	return b
}
