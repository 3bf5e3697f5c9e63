package diag

import (
	"sort"

	"ember/internal/source"
)

// Bag stores emitted diagnostics for later rendering.
type Bag struct {
	CountingConsumer
	items []Diagnostic
	count int
	max   int
	// dropping is set while the notes of a rejected diagnostic arrive
	dropping bool
}

// NewBag creates a bag that keeps at most max non-note diagnostics; 0 means
// no limit.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// HandleDiagnostic keeps a copy of d. Notes stay with their diagnostic.
func (b *Bag) HandleDiagnostic(level Level, d *Diagnostic) {
	b.CountingConsumer.HandleDiagnostic(level, d)
	if level == LevelNote {
		if !b.dropping {
			b.items = append(b.items, *d)
		}
		return
	}
	b.dropping = b.max > 0 && b.count >= b.max
	if !b.dropping {
		b.items = append(b.items, *d)
		b.count++
	}
}

// Add appends d directly, bypassing the engine.
func (b *Bag) Add(d Diagnostic) { b.HandleDiagnostic(d.Level, &d) }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the stored diagnostics. Do not modify the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether an error or fatal error is stored.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Level.IsErrorLike() {
			return true
		}
	}
	return false
}

// HasWarnings reports whether a warning is stored.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Level == LevelWarning {
			return true
		}
	}
	return false
}

// Group is a diagnostic followed by its notes.
type Group struct {
	Diagnostic
	Notes []Diagnostic
}

// Groups returns the stored diagnostics with notes attached to their owner.
// Leading orphan notes form their own groups.
func (b *Bag) Groups() []Group {
	var out []Group
	for _, d := range b.items {
		if d.IsNote() && len(out) > 0 {
			last := &out[len(out)-1]
			last.Notes = append(last.Notes, d)
			continue
		}
		out = append(out, Group{Diagnostic: d})
	}
	return out
}

// Sort orders groups by location in the translation unit, keeping notes
// behind their owner. Groups at the same location keep their order.
func (b *Bag) Sort(mgr *source.Manager) {
	groups := b.Groups()
	sort.SliceStable(groups, func(i, j int) bool {
		return mgr.IsBeforeInTranslationUnit(groups[i].Loc, groups[j].Loc)
	})
	items := make([]Diagnostic, 0, len(b.items))
	for _, g := range groups {
		items = append(items, g.Diagnostic)
		items = append(items, g.Notes...)
	}
	b.items = items
}

// Merge appends the diagnostics of other.
func (b *Bag) Merge(other *Bag) {
	b.items = append(b.items, other.items...)
	b.count += other.count
	b.numErrors += other.numErrors
	b.numWarnings += other.numWarnings
}
