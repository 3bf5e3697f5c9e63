package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	ov, oc, od := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = ov, oc, od })
}

func TestInfo(t *testing.T) {
	withVersion(t, "1.2.3", "abc123", "2026-01-15")
	want := "ember 1.2.3\ncommit: abc123\nbuilt:  2026-01-15\ngo:     " +
		runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH + "\n"
	if got := Info(false); got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}

	withVersion(t, "0.1.0-dev", "", "")
	if got := Info(false); strings.Contains(got, "commit:") || strings.Contains(got, "built:") {
		t.Fatalf("empty optional fields must be omitted: %q", got)
	}
}

func TestColored(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	color.NoColor = false
	withVersion(t, "1.2.3-rc.1+build.5", "", "")
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "m-rc.1+build.5") {
		t.Fatalf("unexpected coloured version %q", got)
	}

	color.NoColor = true
	if got := Colored(); got != "1.2.3-rc.1+build.5" {
		t.Fatalf("Colored() without colour = %q", got)
	}

	withVersion(t, "nightly", "", "")
	if got := Colored(); got != "nightly" {
		t.Fatalf("non-semver versions are returned as is, got %q", got)
	}
}
