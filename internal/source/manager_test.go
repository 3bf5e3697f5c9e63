package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerLayout(t *testing.T) {
	m := NewManager()
	a := m.AddVirtual("a.em", []byte("abc"))
	b := m.AddVirtual("b.em", []byte("xy\nz"))

	if got := m.LocForStartOfFile(a); got != FileLoc(1) {
		t.Fatalf("first buffer must start at offset 1, got %v", got)
	}
	// 3 bytes of a plus one byte of padding
	if got := m.LocForStartOfFile(b); got != FileLoc(5) {
		t.Fatalf("second buffer start = %v, want file:5", got)
	}
	end := m.LocForEndOfFile(a)
	if id, off := m.Decompose(end); id != a || off != 3 {
		t.Fatalf("end of a decomposed to (%d,%d)", id, off)
	}
	if id, _ := m.Decompose(NoLoc); id.IsValid() {
		t.Fatalf("invalid loc must not decompose")
	}
}

func TestManagerPresumed(t *testing.T) {
	m := NewManager()
	id := m.AddVirtual("main.em", []byte("fun f()\n{\n  return;\n}\n"))

	tests := []struct {
		off       uint32
		line, col uint32
	}{
		{0, 1, 1},
		{7, 1, 8},
		{8, 2, 1},
		{12, 3, 3},
	}
	for _, tt := range tests {
		p := m.Presumed(m.LocForOffset(id, tt.off))
		if p.Line != tt.line || p.Col != tt.col || p.Filename != "main.em" {
			t.Errorf("offset %d: got %s, want %d:%d", tt.off, p, tt.line, tt.col)
		}
	}
	if got := m.LineText(m.LocForOffset(id, 12)); got != "  return;" {
		t.Errorf("LineText = %q", got)
	}
	if got := string(m.CharacterData(m.LocForOffset(id, 12))[:6]); got != "return" {
		t.Errorf("CharacterData = %q", got)
	}
}

func TestManagerIsBeforeInTranslationUnit(t *testing.T) {
	m := NewManager()
	a := m.AddVirtual("a.em", []byte("aaaa"))
	b := m.AddVirtual("b.em", []byte("bb"))

	la := m.LocForOffset(a, 3)
	lb := m.LocForOffset(b, 0)
	if !m.IsBeforeInTranslationUnit(la, lb) || m.IsBeforeInTranslationUnit(lb, la) {
		t.Fatalf("buffers must be ordered by registration")
	}
	if !m.IsBeforeInTranslationUnit(m.LocForOffset(a, 1), la) {
		t.Fatalf("offsets inside a buffer must be ordered")
	}
}

func TestManagerExpansion(t *testing.T) {
	m := NewManager()
	id := m.AddVirtual("m.em", []byte("int value;"))
	spelled := m.LocForOffset(id, 4)

	exp := m.CreateExpansionLoc(spelled, 5)
	if !exp.IsMacroID() {
		t.Fatalf("expansion must live in macro space")
	}
	if got := m.SpellingLoc(exp.WithOffset(2)); got != spelled.WithOffset(2) {
		t.Fatalf("SpellingLoc = %v, want %v", got, spelled.WithOffset(2))
	}
	if p := m.Presumed(exp); p.Line != 1 || p.Col != 5 {
		t.Fatalf("presumed macro loc = %s", p)
	}
	second := m.CreateExpansionLoc(exp, 1)
	if m.SpellingLoc(second) != spelled {
		t.Fatalf("nested expansion must resolve to the file spelling")
	}
}

func TestManagerLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.em")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m := NewManager()
	id, err := m.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := m.File(id)
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got, ok := m.Lookup(path); !ok || got != id {
		t.Fatalf("Lookup(%q) = %d, %v", path, got, ok)
	}
	if _, err := m.Load(filepath.Join(dir, "missing.em")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFileLine(t *testing.T) {
	f := &File{Content: []byte("one\ntwo\nthree")}
	f.LineIdx = buildLineIndex(f.Content)
	for line, want := range map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""} {
		if got := f.Line(line); got != want {
			t.Errorf("Line(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestIdentTable(t *testing.T) {
	tab := NewIdentTable()
	a := tab.Intern("value")
	b := tab.InternBytes([]byte("value"))
	if a != b || a.ID == NoIdent {
		t.Fatalf("interning must be stable: %v %v", a, b)
	}
	// "é" precomposed vs decomposed
	pre := tab.Intern("café")
	dec := tab.Intern("cafe\u0301")
	if pre != dec {
		t.Fatalf("NFC-equal spellings must share a record")
	}
	if tab.Get(pre.ID) != pre || tab.Len() != 3 {
		t.Fatalf("unexpected table state: len=%d", tab.Len())
	}
}
