package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file looked up by Load.
const ManifestName = "ember.toml"

// SourceExt is the extension of ember source files.
const SourceExt = ".em"

// ErrParserSectionMissing is returned for a manifest without [parser].
var ErrParserSectionMissing = errors.New("missing [parser] section")

// Config mirrors ember.toml.
type Config struct {
	Project     ProjectConfig     `toml:"project"`
	Parser      ParserConfig      `toml:"parser"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
	// Sources lists files and directories relative to the manifest.
	Sources []string `toml:"sources"`
}

type ParserConfig struct {
	BracketDepth       int  `toml:"bracket_depth"`
	SkipFunctionBodies bool `toml:"skip_function_bodies"`
}

type DiagnosticsConfig struct {
	ErrorLimit       int    `toml:"error_limit"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	IgnoreWarnings   bool   `toml:"ignore_warnings"`
	Format           string `toml:"format"`
	Context          int    `toml:"context"`
}

// Manifest is a loaded ember.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// FindManifest walks up from startDir to locate ember.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load finds and decodes the manifest above startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadFile decodes and validates one manifest.
func LoadFile(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("parser") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrParserSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Parser.BracketDepth < 0 {
		return fmt.Errorf("[parser].bracket_depth must not be negative, got %d", c.Parser.BracketDepth)
	}
	if c.Diagnostics.ErrorLimit < 0 {
		return fmt.Errorf("[diagnostics].error_limit must not be negative, got %d", c.Diagnostics.ErrorLimit)
	}
	if c.Diagnostics.Context < 0 {
		return fmt.Errorf("[diagnostics].context must not be negative, got %d", c.Diagnostics.Context)
	}
	switch c.Diagnostics.Format {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("[diagnostics].format must be pretty or json, got %q", c.Diagnostics.Format)
	}
	return nil
}

// SourceFiles expands [project].sources into .em files, sorted. Without
// sources the whole project root is scanned.
func (m *Manifest) SourceFiles() ([]string, error) {
	sources := m.Config.Project.Sources
	if len(sources) == 0 {
		sources = []string{"."}
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	for _, rel := range sources {
		path := filepath.Join(m.Root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%s: source %q: %w", m.Path, rel, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		files, err := CollectSources(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Path, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	sort.Strings(out)
	return out, nil
}

// CollectSources returns every .em file below dir, skipping hidden
// directories.
func CollectSources(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(out)
	return out, nil
}
