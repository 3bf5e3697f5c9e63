package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[project]
name = "demo"
sources = ["src"]

[parser]
bracket_depth = 64
skip_function_bodies = true

[diagnostics]
error_limit = 5
warnings_as_errors = true
format = "json"
context = 2
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	want := Config{
		Project:     ProjectConfig{Name: "demo", Sources: []string{"src"}},
		Parser:      ParserConfig{BracketDepth: 64, SkipFunctionBodies: true},
		Diagnostics: DiagnosticsConfig{ErrorLimit: 5, WarningsAsErrors: true, Format: "json", Context: 2},
	}
	if diff := cmp.Diff(want, m.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	wantRoot, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != wantRoot {
		t.Fatalf("root = %q, want %q", m.Root, wantRoot)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Skipf("found a manifest above the temp dir: %s", m.Path)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing parser", "[project]\nname = \"x\"\n", "missing [parser] section"},
		{"bad toml", "[parser\n", "failed to parse TOML"},
		{"unknown key", "[parser]\ndepth = 3\n", "unknown keys: parser.depth"},
		{"negative depth", "[parser]\nbracket_depth = -1\n", "bracket_depth must not be negative"},
		{"bad format", "[parser]\n[diagnostics]\nformat = \"xml\"\n", "format must be pretty or json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[project]\n")
	if _, err := LoadFile(path); !errors.Is(err, ErrParserSectionMissing) {
		t.Fatalf("expected ErrParserSectionMissing, got %v", err)
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "b.em"), "")
	writeFile(t, filepath.Join(root, "src", "a.em"), "")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "")
	writeFile(t, filepath.Join(root, "src", ".cache", "c.em"), "")
	writeFile(t, filepath.Join(root, "extra.em"), "")

	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root, Config: Config{
		Project: ProjectConfig{Sources: []string{"src", "extra.em", "src/a.em"}},
	}}
	got, err := m.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(root, "extra.em"),
		filepath.Join(root, "src", "a.em"),
		filepath.Join(root, "src", "b.em"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}

	m.Config.Project.Sources = []string{"missing"}
	if _, err := m.SourceFiles(); err == nil {
		t.Fatalf("missing source should fail")
	}
}
