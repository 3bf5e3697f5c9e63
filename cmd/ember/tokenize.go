package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file.em|directory]...",
		Short: "Print the tokens of ember source files",
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	files, err := s.inputs(args)
	if err != nil {
		return err
	}

	units, err := runFiles(cmd, s, "tokenizing", files, s.driver, driver.TokenizeFiles)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, u := range units {
		if !u.Loaded() {
			continue
		}
		if len(units) > 1 && format == "pretty" {
			fmt.Fprintf(out, "==> %s <==\n", u.Path)
		}
		if format == "json" {
			err = diagfmt.FormatTokensJSON(out, u.Tokens, u.Manager)
		} else {
			err = diagfmt.FormatTokensPretty(out, u.Tokens, u.Manager)
		}
		if err != nil {
			return fmt.Errorf("failed to print tokens of %s: %w", u.Path, err)
		}
	}
	return renderDiagnostics(cmd, s, units, renderOpts{format: "pretty", pretty: s.prettyOpts()})
}
