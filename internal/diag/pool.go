package diag

// DelayedPool holds diagnostics produced while a declaration is being parsed
// until the parser knows whether the declaration survives.
type DelayedPool struct {
	pending []Diagnostic
	parent  *DelayedPool
}

// NewDelayedPool creates an empty pool nested in parent (which may be nil).
func NewDelayedPool(parent *DelayedPool) *DelayedPool {
	return &DelayedPool{parent: parent}
}

// Add appends d.
func (p *DelayedPool) Add(d Diagnostic) { p.pending = append(p.pending, d) }

// Steal moves the diagnostics of other into p, leaving other empty.
func (p *DelayedPool) Steal(other *DelayedPool) {
	if other == nil || other == p {
		return
	}
	p.pending = append(p.pending, other.pending...)
	other.pending = nil
}

func (p *DelayedPool) Parent() *DelayedPool { return p.parent }

// Pending returns the held diagnostics in arrival order.
func (p *DelayedPool) Pending() []Diagnostic { return p.pending }

func (p *DelayedPool) Len() int { return len(p.pending) }

// Clear drops everything held.
func (p *DelayedPool) Clear() { p.pending = nil }
