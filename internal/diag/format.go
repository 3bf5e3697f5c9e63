package diag

import (
	"fmt"
	"strings"
)

// FormatMessage substitutes args into a diagnostic format string.
//
// Directives:
//
//	%N            argument N rendered as text
//	%sN           "s" unless integer argument N equals 1
//	%qN           argument N in single quotes
//	%select{a|b}N the choice indexed by integer argument N
//	%%            a literal percent sign
//
// A directive naming a missing argument, or a malformed directive, is a
// mistake in the diagnostic table and panics.
func FormatMessage(format string, args []Arg) string {
	var b strings.Builder
	b.Grow(len(format) + 16*len(args))
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(format) {
			panic(fmt.Sprintf("diag: dangling %% in %q", format))
		}
		switch {
		case format[i] == '%':
			b.WriteByte('%')
		case isDigit(format[i]):
			n, next := readIndex(format, i)
			b.WriteString(argAt(format, args, n).Render())
			i = next - 1
		// select{ проверяется раньше %sN
		case strings.HasPrefix(format[i:], "select{"):
			open := i + len("select")
			end := strings.IndexByte(format[open:], '}')
			if end < 0 {
				panic(fmt.Sprintf("diag: unterminated %%select in %q", format))
			}
			choices := strings.Split(format[open+1:open+end], "|")
			n, next := readIndex(format, open+end+1)
			v, ok := argAt(format, args, n).Number()
			if !ok || v < 0 || int(v) >= len(choices) {
				panic(fmt.Sprintf("diag: %%select index %d out of range in %q", v, format))
			}
			b.WriteString(choices[v])
			i = next - 1
		case format[i] == 's':
			n, next := readIndex(format, i+1)
			if v, ok := argAt(format, args, n).Number(); !ok || v != 1 {
				b.WriteByte('s')
			}
			i = next - 1
		case format[i] == 'q':
			n, next := readIndex(format, i+1)
			b.WriteByte('\'')
			b.WriteString(argAt(format, args, n).Render())
			b.WriteByte('\'')
			i = next - 1
		default:
			panic(fmt.Sprintf("diag: unknown directive %%%c in %q", format[i], format))
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func readIndex(format string, i int) (int, int) {
	start := i
	n := 0
	for i < len(format) && isDigit(format[i]) {
		n = n*10 + int(format[i]-'0')
		i++
	}
	if i == start {
		panic(fmt.Sprintf("diag: directive without argument index in %q", format))
	}
	return n, i
}

func argAt(format string, args []Arg, n int) Arg {
	if n >= len(args) {
		panic(fmt.Sprintf("diag: %q references argument %d of %d", format, n, len(args)))
	}
	return args[n]
}
