package diag

import (
	"testing"

	"ember/internal/source"
)

func TestDelayedPoolSteal(t *testing.T) {
	parent := NewDelayedPool(nil)
	a := NewDelayedPool(parent)
	b := NewDelayedPool(parent)
	a.Add(Diagnostic{ID: SynDuplicateSpecifier, Loc: source.FileLoc(1)})
	a.Add(Diagnostic{ID: SynEmptyDeclaration, Loc: source.FileLoc(2)})
	b.Add(Diagnostic{ID: SynMissingTypeSpecifier, Loc: source.FileLoc(3)})

	b.Steal(a)
	if a.Len() != 0 || b.Len() != 3 {
		t.Fatalf("after steal a=%d b=%d", a.Len(), b.Len())
	}
	if b.Pending()[1].ID != SynDuplicateSpecifier {
		t.Fatalf("stolen diagnostics must follow existing ones")
	}
	if b.Parent() != parent {
		t.Fatalf("parent lost")
	}
	b.Steal(b)
	b.Steal(nil)
	if b.Len() != 3 {
		t.Fatalf("self steal changed the pool")
	}
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("Clear kept diagnostics")
	}
}

func TestBagGroupsAndLimit(t *testing.T) {
	bag := NewBag(2)
	eng := NewEngine(Options{}, bag)
	eng.Diagnose(SemaRedefinition, source.FileLoc(9)).Str("x").Emit()
	eng.Diagnose(SemaNotePrevious, source.FileLoc(1)).Emit()
	eng.Diagnose(SynExtraSemi, source.FileLoc(4)).Emit()
	eng.Diagnose(SynExpectedIdent, source.FileLoc(5)).Emit()
	eng.Diagnose(SynNoteMatching, source.FileLoc(5)).Str("(").Emit()

	if bag.Len() != 3 {
		t.Fatalf("bag kept %d items", bag.Len())
	}
	groups := bag.Groups()
	if len(groups) != 2 || len(groups[0].Notes) != 1 || len(groups[1].Notes) != 0 {
		t.Fatalf("groups = %+v", groups)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("bag flags wrong")
	}
	// counting covers everything the engine emitted, kept or not
	if bag.NumErrors() != 2 || bag.NumWarnings() != 1 {
		t.Fatalf("counts errors=%d warnings=%d", bag.NumErrors(), bag.NumWarnings())
	}
}

func TestBagSort(t *testing.T) {
	mgr := source.NewManager()
	id := mgr.AddVirtual("s.em", []byte("0123456789"))
	bag := NewBag(0)
	eng := NewEngine(Options{}, bag)
	eng.Diagnose(SemaRedefinition, mgr.LocForOffset(id, 8)).Str("late").Emit()
	eng.Diagnose(SemaNotePrevious, mgr.LocForOffset(id, 0)).Emit()
	eng.Diagnose(SynExtraSemi, mgr.LocForOffset(id, 2)).Emit()

	bag.Sort(mgr)
	items := bag.Items()
	if items[0].ID != SynExtraSemi || items[1].ID != SemaRedefinition || items[2].ID != SemaNotePrevious {
		t.Fatalf("order = %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestDedup(t *testing.T) {
	bag := NewBag(0)
	dd := NewDedup(bag)
	eng := NewEngine(Options{}, dd)
	for range 3 {
		eng.Diagnose(SynExpectedIdent, source.FileLoc(7)).Emit()
		eng.Diagnose(SynNoteMatching, source.FileLoc(2)).Str("(").Emit()
	}
	eng.Diagnose(SynExpectedIdent, source.FileLoc(8)).Emit()
	if bag.Len() != 3 {
		t.Fatalf("dedup forwarded %d items", bag.Len())
	}
	if dd.NumErrors() != 2 {
		t.Fatalf("dedup counted %d errors", dd.NumErrors())
	}
	if eng.Finish() {
		t.Fatalf("no consumer holds state")
	}
}
