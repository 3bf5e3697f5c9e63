package source

// Range is a token-granular pair of locations.
type Range struct {
	Begin Loc
	End   Loc
}

// RangeAt returns the range that begins and ends at loc.
func RangeAt(loc Loc) Range { return Range{Begin: loc, End: loc} }

func (r Range) IsValid() bool   { return r.Begin.IsValid() && r.End.IsValid() }
func (r Range) IsInvalid() bool { return !r.IsValid() }

// FullyContains reports whether other lies within r.
func (r Range) FullyContains(other Range) bool {
	return r.Begin <= other.Begin && r.End >= other.End
}

// CharRange is a character-granular range.
//
// When IsTokenRange is set, End is the start of the last token and the real
// end must be found by measuring that token. Otherwise End is the final
// character itself.
type CharRange struct {
	Range
	IsTokenRange bool
}

// TokenRange builds a token range.
func TokenRange(begin, end Loc) CharRange {
	return CharRange{Range: Range{Begin: begin, End: end}, IsTokenRange: true}
}

// CharRangeOf builds a character range.
func CharRangeOf(begin, end Loc) CharRange {
	return CharRange{Range: Range{Begin: begin, End: end}}
}

// AsTokenRange wraps a token-granular Range.
func AsTokenRange(r Range) CharRange { return CharRange{Range: r, IsTokenRange: true} }

func (r CharRange) IsCharRange() bool { return !r.IsTokenRange }
