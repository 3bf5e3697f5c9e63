package observ

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	load := tm.Begin("load")
	tm.End(load, "")
	done := tm.Track("parse")
	done("3 decls")
	tm.End(42, "ignored")

	want := Report{
		TotalMS: 2,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 1},
			{Name: "parse", DurationMS: 1, Note: "3 decls"},
		},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	wantText := "timings:\n" +
		"  load             1.000 ms\n" +
		"  parse            1.000 ms  (3 decls)\n" +
		"  total            2.000 ms\n"
	if got := tm.Summary(); got != wantText {
		t.Fatalf("Summary() =\n%s\nwant\n%s", got, wantText)
	}
}

func TestTimerEmpty(t *testing.T) {
	tm := NewTimer()
	if r := tm.Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("empty timer reported %+v", r)
	}
	if len(tm.Phases()) != 0 {
		t.Fatalf("empty timer has phases")
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "parse", DurationMS: 2, Note: "a"}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "parse", DurationMS: 4}, {Name: "finish", DurationMS: 1}}}

	want := Report{
		TotalMS: 8,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 1},
			{Name: "parse", DurationMS: 6},
			{Name: "finish", DurationMS: 1},
		},
	}
	if diff := cmp.Diff(want, Merge(a, b)); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
