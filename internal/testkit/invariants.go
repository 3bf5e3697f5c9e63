// Package testkit holds structural checks shared by tests that parse
// arbitrary input.
package testkit

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/source"
)

// CheckDeclInvariants runs a minimal set of invariants on a parsed unit:
// 1) every top-level id resolves and appears once
// 2) every declaration location lies inside f
// 3) every valid declaration range is ordered
func CheckDeclInvariants(b *ast.Builder, f *source.File) error {
	if b == nil || f == nil {
		return fmt.Errorf("nil builder or file")
	}

	seen := make(map[ast.DeclID]bool, len(b.TopLevel))
	for i, id := range b.TopLevel {
		if b.Decls.Get(id) == nil {
			return fmt.Errorf("top-level #%d: unknown decl %d", i, id)
		}
		if seen[id] {
			return fmt.Errorf("top-level #%d: decl %d listed twice", i, id)
		}
		seen[id] = true
	}

	lo, hi := f.Base, f.Base+f.Len()
	inFile := func(loc source.Loc) bool {
		return loc.IsFileID() && loc.Offset() >= lo && loc.Offset() <= hi
	}
	for i := 1; i <= b.Decls.Len(); i++ {
		id := ast.DeclID(i)
		d := b.Decls.Get(id)
		if d == nil {
			continue
		}
		if d.Loc.IsValid() && !inFile(d.Loc) {
			return fmt.Errorf("decl %d (%s): location %v outside [%d, %d]", id, d.Kind, d.Loc, lo, hi)
		}
		if !d.Range.IsValid() {
			continue
		}
		if !inFile(d.Range.Begin) || !inFile(d.Range.End) {
			return fmt.Errorf("decl %d (%s): range %v-%v outside the file", id, d.Kind, d.Range.Begin, d.Range.End)
		}
		if d.Range.End.Less(d.Range.Begin) {
			return fmt.Errorf("decl %d (%s): range ends before it begins", id, d.Kind)
		}
	}
	return nil
}
