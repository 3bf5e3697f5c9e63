package diagfmt

import (
	"io"

	"ember/internal/diag"
	"ember/internal/source"
)

// Stream is a diag.Consumer that prints each diagnostic as soon as the
// engine emits it.
type Stream struct {
	diag.CountingConsumer
	p *printer
}

// NewStream renders to w with opts; locations resolve through mgr.
func NewStream(w io.Writer, mgr *source.Manager, opts PrettyOpts) *Stream {
	return &Stream{p: newPrinter(w, mgr, opts)}
}

func (s *Stream) HandleDiagnostic(level diag.Level, d *diag.Diagnostic) {
	s.CountingConsumer.HandleDiagnostic(level, d)
	if level == diag.LevelNote && !s.p.opts.ShowNotes {
		return
	}
	s.p.diagnostic(d)
}
