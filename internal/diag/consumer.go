package diag

// Consumer receives every diagnostic the engine emits.
type Consumer interface {
	// HandleDiagnostic is called once per emitted diagnostic, notes included.
	HandleDiagnostic(level Level, d *Diagnostic)
	// FinishProcessing is called at the end of the unit and reports whether
	// the consumer still holds unflushed state.
	FinishProcessing() bool
}

// CountingConsumer tallies warnings and errors. Consumers embed it to get the
// default bookkeeping.
type CountingConsumer struct {
	numWarnings int
	numErrors   int
}

func (c *CountingConsumer) HandleDiagnostic(level Level, _ *Diagnostic) {
	switch {
	case level == LevelWarning:
		c.numWarnings++
	case level.IsErrorLike():
		c.numErrors++
	}
}

func (c *CountingConsumer) FinishProcessing() bool { return false }

func (c *CountingConsumer) NumWarnings() int { return c.numWarnings }
func (c *CountingConsumer) NumErrors() int   { return c.numErrors }

// NopConsumer drops everything.
type NopConsumer struct{}

func (NopConsumer) HandleDiagnostic(Level, *Diagnostic) {}

func (NopConsumer) FinishProcessing() bool { return false }

// FuncConsumer adapts a function.
type FuncConsumer func(level Level, d *Diagnostic)

func (f FuncConsumer) HandleDiagnostic(level Level, d *Diagnostic) { f(level, d) }
func (FuncConsumer) FinishProcessing() bool                        { return false }
