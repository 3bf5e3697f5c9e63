package fuzztests

import (
	"testing"
)

const maxFuzzInput = 64 << 10 // 64 KiB

// seeds cover every declaration form and the recovery paths the parser
// has regression tests for.
var seeds = []string{
	"",
	"int x;\n",
	"const uint u = 1;",
	"int x = 1\nint y;\n",
	"int x = (((1)));",
	"int *p;\nint &r;\nint a[4];",
	"fun f(int, float);",
	"fun add(int a) { return a; }\nfun main() { int a; int b; bool c = add < (a > b); }\n",
	"struct Box<T> { T v; };\nBox<int> b;\nBox<Box<int>> c;\n",
	"fun f() { while (1) { continue; } }",
	"fun f() { if 1) return; }",
	"int f() { this is not ( parsed ] }\nint g;",
	"const const int (;",
	"int x;\nimport a.b;",
	"}\nint x;",
	"fun f() { return;",
	"\"unterminated\nint y;",
	"int x = 0x;\nint y = 1e+;",
	"/* open comment\nint z;",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

// clampInput copies input and cuts it to maxFuzzInput so the harness never
// aliases the fuzzer's buffer.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
