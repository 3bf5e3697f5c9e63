package fuzztests

import (
	"context"
	"testing"
	"time"

	"ember/internal/driver"
	"ember/internal/testkit"
)

// parseTimeout bounds one parse; exceeding it points at a recovery loop.
const parseTimeout = 5 * time.Second

func FuzzParserNoHang(f *testing.F) {
	addSeeds(f)
	f.Add([]byte("fun f() { { { { } } } }"))
	f.Add([]byte("fun f() { f(;); }"))
	f.Add([]byte("a ( } ) ; x"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		type result struct {
			unit *driver.Unit
			err  error
		}
		done := make(chan result, 1)
		go func() {
			u, err := driver.ParseSource(context.Background(), "fuzz.em", input, driver.Options{MaxDiagnostics: 128})
			done <- result{u, err}
		}()

		select {
		case r := <-done:
			if r.err != nil {
				t.Fatalf("ParseSource: %v", r.err)
			}
			u := r.unit
			if err := testkit.CheckDeclInvariants(u.Tree, u.Manager.File(u.File)); err != nil {
				t.Fatalf("invariants: %v", err)
			}
		case <-time.After(parseTimeout):
			t.Fatalf("parser hung on %d bytes: %q", len(input), input)
		}
	})
}
