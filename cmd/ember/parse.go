package main

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"ember/internal/ast"
	"ember/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [file.em|directory]...",
		Short: "Parse ember source files and print their declarations",
		RunE:  runParse,
	}
	cmd.Flags().Bool("dump", true, "print the parsed declarations")
	cmd.Flags().Int("complete-at", -1, "request code completion at this byte offset (single file)")
	cmd.Flags().Bool("skip-bodies", false, "skip function bodies")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	completeAt, err := cmd.Flags().GetInt("complete-at")
	if err != nil {
		return fmt.Errorf("failed to get complete-at flag: %w", err)
	}
	skipBodies, err := cmd.Flags().GetBool("skip-bodies")
	if err != nil {
		return fmt.Errorf("failed to get skip-bodies flag: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	files, err := s.inputs(args)
	if err != nil {
		return err
	}

	opts := s.driver
	if cmd.Flags().Changed("skip-bodies") {
		opts.SkipFunctionBodies = skipBodies
	}
	if completeAt >= 0 {
		if len(files) != 1 {
			return fmt.Errorf("--complete-at needs exactly one file")
		}
		offset, err := toOffset(completeAt)
		if err != nil {
			return err
		}
		opts.Complete, opts.CompleteOffset = true, offset
	}

	units, err := runFiles(cmd, s, "parsing", files, opts, driver.ParseFiles)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, u := range units {
		if !u.Loaded() {
			continue
		}
		if len(units) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", u.Path)
		}
		if dump {
			if err := ast.Dump(out, u.Tree); err != nil {
				return fmt.Errorf("failed to dump %s: %w", u.Path, err)
			}
		}
		for _, c := range u.Completions() {
			fmt.Fprintf(out, "completion (%s): %s\n", c.Context, strings.Join(c.Candidates, " "))
		}
	}
	return renderDiagnostics(cmd, s, units, renderOpts{format: "pretty", pretty: s.prettyOpts()})
}

func toOffset(n int) (uint32, error) {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %d: %w", n, err)
	}
	return off, nil
}
