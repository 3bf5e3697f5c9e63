package lexer

import (
	"testing"

	"ember/internal/source"
)

func createFile(content string) *source.File {
	mgr := source.NewManager()
	return mgr.File(mgr.AddVirtual("test.em", []byte(content)))
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("cursor must stay at EOF")
	}
}

func TestCursorPeekAndMark(t *testing.T) {
	c := NewCursor(createFile("abc"))
	if b0, b1, b2, ok := c.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Fatalf("Peek3 failed")
	}
	m := c.Mark()
	c.Bump()
	if !c.Eat('b') || c.Eat('x') {
		t.Fatalf("Eat misbehaves")
	}
	if c.Text(m) != "ab" || c.Len(m) != 2 {
		t.Fatalf("Text = %q", c.Text(m))
	}
	if c.Loc(m) != source.FileLoc(1) {
		t.Fatalf("first byte must be at file:1, got %v", c.Loc(m))
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 past the end must fail")
	}
	c.Reset(m)
	if c.Peek() != 'a' {
		t.Fatalf("Reset did not rewind")
	}
}
