package diag

import (
	"testing"

	"ember/internal/source"
	"ember/internal/token"
)

type fakeDecl string

func (f fakeDecl) DiagName() string { return string(f) }

type color uint8

func TestFormatMessage(t *testing.T) {
	ident := source.NewIdentTable().Intern("counter")
	tests := []struct {
		format string
		args   []Arg
		want   string
	}{
		{"plain", nil, "plain"},
		{"100%% sure", nil, "100% sure"},
		{"expected %q0", []Arg{TokenKindArg(token.Semicolon)}, "expected ';'"},
		{"%0 error%s0", []Arg{IntArg(1)}, "1 error"},
		{"%0 error%s0", []Arg{IntArg(3)}, "3 errors"},
		{"%0 then %1", []Arg{StringArg("a"), UintArg(7)}, "a then 7"},
		{"%select{zero|one|two}0!", []Arg{Enum(color(2))}, "two!"},
		{"%select{no|yes}0", []Arg{BoolArg(true)}, "yes"},
		{"missing %select{'\"'|'''}0", []Arg{IntArg(1)}, "missing '''"},
		{"%select{a|b}0 %s1", []Arg{IntArg(0), IntArg(2)}, "a s"},
		{"use of %q0", []Arg{IdentArg(ident)}, "use of 'counter'"},
		{"%0 and %1", []Arg{DeclArg(fakeDecl("f")), TypeArg(fakeDecl("int*"))}, "f and int*"},
		{"%1%0", []Arg{StringArg("b"), StringArg("a")}, "ab"},
		{"%0", []Arg{BoolArg(false)}, "false"},
	}
	for _, tt := range tests {
		if got := FormatMessage(tt.format, tt.args); got != tt.want {
			t.Errorf("FormatMessage(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatMessageMalformed(t *testing.T) {
	for _, format := range []string{"%1", "%", "%select{a|b}0", "%x0", "%q"} {
		t.Run(format, func(t *testing.T) {
			mustPanic(t, func() { FormatMessage(format, []Arg{IntArg(5)}) })
		})
	}
}

func TestTableFormatsAreWellFormed(t *testing.T) {
	args := []Arg{IntArg(0), StringArg("x"), StringArg("y")}
	for id, inf := range table {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("%s: %v", id.Code(), r)
				}
			}()
			FormatMessage(inf.format, args)
		}()
		if inf.delayable && inf.level == LevelNote {
			t.Errorf("%s: notes follow their owner and cannot be delayable", id.Code())
		}
	}
}

func TestIDCode(t *testing.T) {
	cases := map[ID]string{
		LexUnknownChar:   "LEX1001",
		SynExpected:      "SYN2001",
		SemaRedefinition: "SEM3001",
		DrvCannotOpen:    "DRV4001",
		UnknownID:        "E0000",
	}
	for id, want := range cases {
		if got := id.Code(); got != want {
			t.Errorf("Code(%d) = %q, want %q", id, got, want)
		}
	}
	if ID(9999).Format() != UnknownID.Format() {
		t.Errorf("unknown ids must fall back to the unknown entry")
	}
}
