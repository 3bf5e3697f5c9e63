package diag

import "ember/internal/source"

// FixIt is a suggested edit attached to a diagnostic.
//
// RemoveRange is replaced by CodeToInsert, or by the text covered by
// InsertFromRange when that range is valid. An empty RemoveRange at one
// location is a pure insertion.
type FixIt struct {
	RemoveRange              source.CharRange
	InsertFromRange          source.CharRange
	CodeToInsert             string
	BeforePreviousInsertions bool
}

// IsNull reports whether the fix-it carries no edit.
func (f FixIt) IsNull() bool { return f.RemoveRange.IsInvalid() }

// IsInsertion reports whether nothing is removed.
func (f FixIt) IsInsertion() bool {
	return !f.RemoveRange.IsTokenRange && f.RemoveRange.Begin == f.RemoveRange.End
}

// Insertion inserts code at loc.
func Insertion(loc source.Loc, code string, beforePrevious bool) FixIt {
	return FixIt{
		RemoveRange:              source.CharRangeOf(loc, loc),
		CodeToInsert:             code,
		BeforePreviousInsertions: beforePrevious,
	}
}

// InsertionFromRange copies the text of from to loc.
func InsertionFromRange(loc source.Loc, from source.CharRange, beforePrevious bool) FixIt {
	return FixIt{
		RemoveRange:              source.CharRangeOf(loc, loc),
		InsertFromRange:          from,
		BeforePreviousInsertions: beforePrevious,
	}
}

// Removal deletes r.
func Removal(r source.CharRange) FixIt {
	return FixIt{RemoveRange: r}
}

// Replacement replaces r with code.
func Replacement(r source.CharRange, code string) FixIt {
	return FixIt{RemoveRange: r, CodeToInsert: code}
}
