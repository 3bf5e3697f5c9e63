package lexer

import "ember/internal/source"

// MeasureTokenLength returns the length of the token that starts at loc, or 0
// when loc does not point into a buffer. Nothing is reported.
func MeasureTokenLength(mgr *source.Manager, loc source.Loc) uint32 {
	id, off := mgr.Decompose(loc)
	if id.IsInvalid() {
		return 0
	}
	lx := NewForFile(mgr.File(id), Options{})
	lx.cursor.Off = off
	tok := lx.scan()
	if tok.Loc != lx.cursor.Loc(Mark(off)) {
		// loc pointed at trivia
		return 0
	}
	return tok.Len
}

// TokenEndLoc returns the location just past the token starting at loc.
func TokenEndLoc(mgr *source.Manager, loc source.Loc) source.Loc {
	n := MeasureTokenLength(mgr, loc)
	if n == 0 {
		return loc
	}
	return loc.WithOffset(int32(n))
}

// CharRange converts a token range into a character range ending just past
// its last token.
func CharRange(mgr *source.Manager, r source.CharRange) source.CharRange {
	if !r.IsTokenRange {
		return r
	}
	return source.CharRangeOf(r.Begin, TokenEndLoc(mgr, r.End))
}
