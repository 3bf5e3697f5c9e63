package diag

import "ember/internal/source"

type dedupKey struct {
	id    ID
	level Level
	loc   source.Loc
	msg   string
}

// Dedup forwards diagnostics to next, dropping repeats of an identical
// diagnostic at the same location together with their notes.
type Dedup struct {
	CountingConsumer
	next     Consumer
	seen     map[dedupKey]struct{}
	dropping bool
}

func NewDedup(next Consumer) *Dedup {
	return &Dedup{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *Dedup) HandleDiagnostic(level Level, d *Diagnostic) {
	if level == LevelNote {
		if !r.dropping {
			r.forward(level, d)
		}
		return
	}
	key := dedupKey{id: d.ID, level: level, loc: d.Loc, msg: d.Message}
	if _, ok := r.seen[key]; ok {
		r.dropping = true
		return
	}
	r.seen[key] = struct{}{}
	r.dropping = false
	r.forward(level, d)
}

func (r *Dedup) forward(level Level, d *Diagnostic) {
	r.CountingConsumer.HandleDiagnostic(level, d)
	if r.next != nil {
		r.next.HandleDiagnostic(level, d)
	}
}

func (r *Dedup) FinishProcessing() bool {
	if r.next == nil {
		return false
	}
	return r.next.FinishProcessing()
}
