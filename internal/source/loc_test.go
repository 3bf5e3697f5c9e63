package source

import "testing"

func TestLocRawRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 42, uint32(MacroIDBit) - 1, uint32(MacroIDBit), uint32(MacroIDBit) + 7, ^uint32(0)}
	for _, raw := range cases {
		if got := LocFromRaw(raw).Raw(); got != raw {
			t.Errorf("round trip of %#x gave %#x", raw, got)
		}
	}
	if !LocFromRaw(0).IsInvalid() || NoLoc.Raw() != 0 {
		t.Fatalf("raw 0 must be the invalid location")
	}
}

func TestLocSpaces(t *testing.T) {
	f := FileLoc(10)
	if !f.IsFileID() || f.IsMacroID() || f.Offset() != 10 {
		t.Fatalf("file loc misclassified: %v", f)
	}
	m := MacroLoc(10)
	if !m.IsMacroID() || m.IsFileID() || m.Offset() != 10 {
		t.Fatalf("macro loc misclassified: %v", m)
	}
	if f == m {
		t.Fatalf("file and macro locations with equal offsets must differ")
	}
}

func TestLocWithOffset(t *testing.T) {
	if got := FileLoc(10).WithOffset(5); got != FileLoc(15) {
		t.Errorf("got %v, want file:15", got)
	}
	if got := FileLoc(10).WithOffset(-10); got.Raw() != 0 {
		t.Errorf("got %v, want offset 0", got)
	}
	if got := MacroLoc(3).WithOffset(4); got != MacroLoc(7) {
		t.Errorf("got %v, want macro:7", got)
	}
}

func TestLocWithOffsetPanics(t *testing.T) {
	cases := map[string]func(){
		"into macro bit": func() { FileLoc(uint32(MacroIDBit) - 1).WithOffset(1) },
		"below zero":     func() { FileLoc(3).WithOffset(-4) },
		"macro overflow": func() { MacroLoc(uint32(MacroIDBit) - 1).WithOffset(2) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestLocAsMapKey(t *testing.T) {
	seen := map[Loc]int{}
	seen[FileLoc(5)]++
	seen[LocFromRaw(5)]++
	seen[MacroLoc(5)]++
	if seen[FileLoc(5)] != 2 || len(seen) != 2 {
		t.Fatalf("unexpected map contents: %v", seen)
	}
}

func TestFileIDClasses(t *testing.T) {
	if NoFileID.IsValid() || !FileID(3).IsValid() || FileID(3).IsLoaded() || !FileID(-3).IsLoaded() {
		t.Fatalf("file id classification is wrong")
	}
	if FileIDSentinel == NoFileID {
		t.Fatalf("sentinel must differ from the empty key")
	}
}

func TestRanges(t *testing.T) {
	if (Range{Begin: FileLoc(1)}).IsValid() {
		t.Errorf("range with invalid end must be invalid")
	}
	outer := Range{Begin: FileLoc(1), End: FileLoc(20)}
	if !outer.FullyContains(Range{Begin: FileLoc(2), End: FileLoc(20)}) {
		t.Errorf("expected containment")
	}
	if outer.FullyContains(Range{Begin: FileLoc(0), End: FileLoc(3)}) {
		t.Errorf("unexpected containment")
	}
	tr := TokenRange(FileLoc(1), FileLoc(4))
	cr := CharRangeOf(FileLoc(1), FileLoc(4))
	if !tr.IsTokenRange || cr.IsTokenRange || !cr.IsCharRange() {
		t.Errorf("token/char flag mixed up")
	}
}
