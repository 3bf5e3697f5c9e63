package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] [file.em|directory]...",
		Short: "Report diagnostics for ember source files",
		Long:  `Parse ember sources and report syntax and scope diagnostics, optionally with fix-it suggestions`,
		RunE:  runDiag,
	}
	cmd.Flags().String("format", "", "output format (pretty|json); defaults to the project setting or pretty")
	cmd.Flags().String("path-mode", "", "how to print paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("no-notes", false, "hide notes")
	cmd.Flags().Bool("suggest", false, "show fix-it suggestions")
	cmd.Flags().Bool("preview", false, "show the source after applying each suggestion")
	cmd.Flags().Bool("stream", false, "print diagnostics as they are produced")
	return cmd
}

func runDiag(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = s.format
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	noNotes, err := cmd.Flags().GetBool("no-notes")
	if err != nil {
		return fmt.Errorf("failed to get no-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	stream, err := cmd.Flags().GetBool("stream")
	if err != nil {
		return fmt.Errorf("failed to get stream flag: %w", err)
	}

	pretty := s.prettyOpts()
	if pathModeStr != "" {
		if pretty.PathMode, err = diagfmt.ParsePathMode(pathModeStr); err != nil {
			return err
		}
	}
	pretty.ShowNotes = !noNotes
	pretty.ShowFixes = suggest || preview
	pretty.ShowPreview = preview

	ro := renderOpts{
		format: format,
		pretty: pretty,
		json: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pretty.PathMode,
			Max:              s.driver.MaxDiagnostics,
			IncludeNotes:     !noNotes,
			IncludeFixes:     suggest,
		},
	}

	files, err := s.inputs(args)
	if err != nil {
		return err
	}

	opts := s.driver
	if stream && format == "pretty" {
		// поток и прогресс-бар не уживаются в одном терминале
		s.ui = "off"
		errOut := cmd.ErrOrStderr()
		opts.Consumer = func(u *driver.Unit) diag.Consumer {
			return diagfmt.NewStream(errOut, u.Manager, pretty)
		}
		ro.streamed = true
	}

	units, err := runFiles(cmd, s, "checking", files, opts, driver.ParseFiles)
	if err != nil {
		return fmt.Errorf("diagnostics failed: %w", err)
	}
	return renderDiagnostics(cmd, s, units, ro)
}
