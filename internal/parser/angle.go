package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
)

// AnglePriority ranks candidate '<' tokens. Higher wins when two candidates
// compete at the same nesting level. The two groups are or-ed together.
type AnglePriority uint8

const (
	// PotentialTypo: the name before '<' is an ordinary value.
	PotentialTypo AnglePriority = 0
	// DependentName: the name before '<' could not be resolved at all.
	DependentName AnglePriority = 2

	SpaceBeforeLess   AnglePriority = 0
	NoSpaceBeforeLess AnglePriority = 1
)

// AngleCandidate is a '<' that might have been meant as the start of a
// generic argument list.
type AngleCandidate struct {
	Name     ast.ExprID
	LessLoc  source.Loc
	Priority AnglePriority

	parens, brackets, braces uint16
}

// isActive: the parser sits at exactly the nesting where the '<' was seen.
func (c *AngleCandidate) isActive(p *Parser) bool {
	return p.parenCount == c.parens && p.bracketCount == c.brackets && p.braceCount == c.braces
}

// isActiveOrNested: active, or the '<' was seen deeper than the parser now is.
func (c *AngleCandidate) isActiveOrNested(p *Parser) bool {
	return c.isActive(p) || p.parenCount < c.parens || p.bracketCount < c.brackets || p.braceCount < c.braces
}

// AngleBracketTracker remembers '<' candidates per nesting level.
type AngleBracketTracker struct {
	locs []AngleCandidate
}

// Add records a candidate. An active candidate is replaced only by one of at
// least its priority; otherwise a new record is pushed.
func (t *AngleBracketTracker) Add(p *Parser, name ast.ExprID, lessLoc source.Loc, prio AnglePriority) {
	if n := len(t.locs); n > 0 && t.locs[n-1].isActive(p) {
		top := &t.locs[n-1]
		if top.Priority <= prio {
			top.Name = name
			top.LessLoc = lessLoc
			top.Priority = prio
		}
		return
	}
	t.locs = append(t.locs, AngleCandidate{
		Name:     name,
		LessLoc:  lessLoc,
		Priority: prio,
		parens:   p.parenCount,
		brackets: p.bracketCount,
		braces:   p.braceCount,
	})
}

// Clear drops candidates recorded at the current nesting or deeper.
func (t *AngleBracketTracker) Clear(p *Parser) {
	for n := len(t.locs); n > 0 && t.locs[n-1].isActiveOrNested(p); n = len(t.locs) {
		t.locs = t.locs[:n-1]
	}
}

// Current returns the candidate recorded at the current nesting, or nil.
func (t *AngleBracketTracker) Current(p *Parser) *AngleCandidate {
	if n := len(t.locs); n > 0 && t.locs[n-1].isActive(p) {
		return &t.locs[n-1]
	}
	return nil
}

// Len is the number of live candidates.
func (t *AngleBracketTracker) Len() int { return len(t.locs) }

// checkPotentialAngleBracketDelimiter is called with the '>' about to be
// consumed as an operator. A live candidate at the same nesting turns into a
// warning with a note at its '<'.
func (p *Parser) checkPotentialAngleBracketDelimiter(gtLoc source.Loc) bool {
	c := p.angles.Current(p)
	if c == nil {
		return false
	}
	p.Diag(diag.SynGenericComparison, gtLoc).Str(p.exprName(c.Name)).Emit()
	p.Diag(diag.SynNoteGenericLess, c.LessLoc).Emit()
	p.angles.Clear(p)
	return true
}

// exprName spells the name a candidate was recorded for.
func (p *Parser) exprName(id ast.ExprID) string {
	e := p.tree.Exprs.Get(id)
	if e == nil || e.Name == nil {
		return "<expression>"
	}
	return e.Name.Name
}
