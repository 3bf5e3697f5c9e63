package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/driver"
	"ember/internal/project"
)

// settings is the merged view of ember.toml and the command line. Flags win
// over the file when they were set explicitly.
type settings struct {
	manifest *project.Manifest
	driver   driver.Options
	color    bool
	quiet    bool
	timings  bool
	format   string
	context  int8
	ui       string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, found, err := project.Load(wd)
	if err != nil {
		return nil, err
	}

	s := &settings{format: "pretty", context: 0}
	if found {
		s.manifest = manifest
		s.driver.BaseDir = manifest.Root
		cfg := manifest.Config
		s.driver.BracketDepth = cfg.Parser.BracketDepth
		s.driver.SkipFunctionBodies = cfg.Parser.SkipFunctionBodies
		s.driver.Diag = diag.Options{
			ErrorLimit:        cfg.Diagnostics.ErrorLimit,
			WarningsAsErrors:  cfg.Diagnostics.WarningsAsErrors,
			IgnoreAllWarnings: cfg.Diagnostics.IgnoreWarnings,
		}
		if cfg.Diagnostics.Format != "" {
			s.format = cfg.Diagnostics.Format
		}
		ctxLines, err := safecast.Conv[int8](cfg.Diagnostics.Context)
		if err != nil {
			return nil, fmt.Errorf("%s: diagnostics.context: %w", manifest.Path, err)
		}
		s.context = ctxLines
	} else {
		s.driver.BaseDir = wd
	}

	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.driver.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.driver.Jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if flags.Changed("bracket-depth") {
		if s.driver.BracketDepth, err = flags.GetInt("bracket-depth"); err != nil {
			return nil, fmt.Errorf("failed to get bracket-depth flag: %w", err)
		}
		if s.driver.BracketDepth < 0 {
			return nil, fmt.Errorf("--bracket-depth must not be negative")
		}
	}
	if flags.Changed("werror") {
		if s.driver.Diag.WarningsAsErrors, err = flags.GetBool("werror"); err != nil {
			return nil, fmt.Errorf("failed to get werror flag: %w", err)
		}
	}
	if flags.Changed("no-warn") {
		if s.driver.Diag.IgnoreAllWarnings, err = flags.GetBool("no-warn"); err != nil {
			return nil, fmt.Errorf("failed to get no-warn flag: %w", err)
		}
	}
	if s.driver.Diag.WarningsAsErrors && s.driver.Diag.IgnoreAllWarnings {
		return nil, fmt.Errorf("--werror and --no-warn cannot be used together")
	}

	if s.ui, err = flags.GetString("ui"); err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	switch s.ui {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", s.ui)
	}
	return s, nil
}

// inputs resolves the command arguments into source files. Directories are
// searched for .em files; without arguments the project's sources are used.
func (s *settings) inputs(args []string) ([]string, error) {
	if len(args) == 0 {
		if s.manifest == nil {
			return nil, fmt.Errorf("no input files and no %s found", project.ManifestName)
		}
		return s.manifest.SourceFiles()
	}
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// несуществующий файл уйдёт в драйвер и станет диагностикой
			files = append(files, arg)
			continue
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := project.CollectSources(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
