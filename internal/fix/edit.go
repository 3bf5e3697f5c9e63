package fix

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
)

// Edit is a fix-it resolved to byte offsets of one buffer.
type Edit struct {
	File    source.FileID
	Start   uint32
	End     uint32
	NewText string
	OldText string
	// Before puts an insertion ahead of others at the same offset.
	Before bool
}

// IsInsertion reports whether nothing is removed.
func (e Edit) IsInsertion() bool { return e.Start == e.End }

// Resolve measures the token ranges of f and maps it to a buffer edit.
func Resolve(mgr *source.Manager, f diag.FixIt) (Edit, error) {
	if f.IsNull() {
		return Edit{}, fmt.Errorf("fix: null fix-it")
	}
	file, start, end, err := resolveRange(mgr, f.RemoveRange)
	if err != nil {
		return Edit{}, err
	}
	e := Edit{
		File:    file,
		Start:   start,
		End:     end,
		NewText: f.CodeToInsert,
		OldText: string(mgr.File(file).Content[start:end]),
		Before:  f.BeforePreviousInsertions,
	}
	if f.InsertFromRange.IsValid() {
		from, fs, fe, err := resolveRange(mgr, f.InsertFromRange)
		if err != nil {
			return Edit{}, fmt.Errorf("fix: insert-from range: %w", err)
		}
		e.NewText = string(mgr.File(from).Content[fs:fe])
	}
	return e, nil
}

func resolveRange(mgr *source.Manager, r source.CharRange) (source.FileID, uint32, uint32, error) {
	if r.Begin.IsMacroID() {
		r.Begin = mgr.SpellingLoc(r.Begin)
	}
	if r.End.IsMacroID() {
		r.End = mgr.SpellingLoc(r.End)
	}
	r = lexer.CharRange(mgr, r)
	fb, start := mgr.Decompose(r.Begin)
	fe, end := mgr.Decompose(r.End)
	switch {
	case fb.IsInvalid() || fe.IsInvalid():
		return source.NoFileID, 0, 0, fmt.Errorf("fix: range %s..%s is outside every buffer", r.Begin, r.End)
	case fb != fe:
		return source.NoFileID, 0, 0, fmt.Errorf("fix: range spans two buffers")
	case end < start:
		return source.NoFileID, 0, 0, fmt.Errorf("fix: inverted range %d..%d", start, end)
	}
	return fb, start, end, nil
}

// spansConflict reports whether two edits of one buffer overlap.
// Ranges are half-open; two insertions never conflict, an insertion
// conflicts with a removal only strictly inside it.
func spansConflict(a, b Edit) bool {
	if a.File != b.File {
		return false
	}
	if a.IsInsertion() && b.IsInsertion() {
		return false
	}
	if a.IsInsertion() {
		return b.Start < a.Start && a.Start < b.End
	}
	if b.IsInsertion() {
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// ApplyEdits returns content with edits applied. Edits must not conflict;
// insertions at one offset keep their order unless marked Before.
func ApplyEdits(content []byte, edits []Edit) []byte {
	ordered := sortedEdits(edits)
	out := make([]byte, 0, len(content))
	var pos uint32
	for _, e := range ordered {
		if e.Start < pos {
			continue
		}
		out = append(out, content[pos:e.Start]...)
		out = append(out, e.NewText...)
		pos = e.End
	}
	return append(out, content[pos:]...)
}
