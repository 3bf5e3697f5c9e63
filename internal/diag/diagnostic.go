package diag

import "ember/internal/source"

// Diagnostic is one report. It is mutable only through a Builder while in
// flight; after the flush Message holds the formatted text and consumers
// must treat the value as frozen.
type Diagnostic struct {
	ID      ID
	Loc     source.Loc
	Level   Level
	Format  string
	Args    []Arg
	FixIts  []FixIt
	Ranges  []source.CharRange
	Message string
}

// Code returns the stable identifier of the diagnostic.
func (d *Diagnostic) Code() string { return d.ID.Code() }

// IsNote reports whether the diagnostic annotates the previous one.
func (d *Diagnostic) IsNote() bool { return d.Level == LevelNote }
