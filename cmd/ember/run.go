package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/trace"
	"ember/internal/ui"
)

// showProgress reports whether a run over files gets the progress view.
// --ui=auto draws it only on a terminal and only for more than one file.
func (s *settings) showProgress(files int) bool {
	if s.quiet {
		return false
	}
	switch s.ui {
	case "on":
		return true
	case "off":
		return false
	}
	return files > 1 && isTerminal(os.Stdout)
}

type runFunc func(context.Context, []string, driver.Options) ([]*driver.Unit, error)

// runFiles runs fn over files, behind the progress view when it is enabled.
func runFiles(cmd *cobra.Command, s *settings, title string, files []string, opts driver.Options, fn runFunc) ([]*driver.Unit, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.showProgress(len(files)) {
		return fn(ctx, files, opts)
	}

	type outcome struct {
		units []*driver.Unit
		err   error
	}
	events := make(chan driver.Event, 256)
	done := make(chan outcome, 1)
	opts.Progress = driver.ChanSink(events)
	go func() {
		units, err := fn(ctx, files, opts)
		close(events)
		done <- outcome{units: units, err: err}
	}()

	uiErr := ui.Run(cmd.OutOrStdout(), title, files, events)
	if uiErr != nil {
		// view died early; keep the driver from blocking on a full channel
		for range events {
		}
	}
	res := <-done
	if res.err != nil {
		return res.units, res.err
	}
	return res.units, uiErr
}

type renderOpts struct {
	format   string
	pretty   diagfmt.PrettyOpts
	json     diagfmt.JSONOpts
	streamed bool
}

// renderDiagnostics prints every unit's bag and the summary line, and turns
// errors in the input into errHadErrors.
func renderDiagnostics(cmd *cobra.Command, s *settings, units []*driver.Unit, ro renderOpts) error {
	tracer := trace.FromContext(cmd.Context())
	span := trace.Begin(tracer, trace.ScopePass, "render", 0)
	defer span.End(ro.format)

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	errs, warns := driver.Totals(units)

	switch ro.format {
	case "json":
		merged := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
		for _, u := range units {
			part := diagfmt.BuildDiagnosticsOutput(u.Bag, u.Manager, ro.json)
			merged.Diagnostics = append(merged.Diagnostics, part.Diagnostics...)
		}
		if ro.json.Max > 0 && len(merged.Diagnostics) > ro.json.Max {
			merged.Diagnostics = merged.Diagnostics[:ro.json.Max]
		}
		merged.Count = len(merged.Diagnostics)
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(merged); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	case "pretty":
		if !ro.streamed {
			for _, u := range units {
				diagfmt.Pretty(errOut, u.Bag, u.Manager, ro.pretty)
			}
		}
		if !s.quiet {
			diagfmt.Summary(errOut, errs, warns)
		}
	default:
		return fmt.Errorf("unknown format: %s", ro.format)
	}

	printTimings(errOut, s, units)
	if errs > 0 {
		return errHadErrors
	}
	return nil
}

func printTimings(w io.Writer, s *settings, units []*driver.Unit) {
	if !s.timings {
		return
	}
	fmt.Fprint(w, driver.Timings(units).String())
}

// prettyOpts is the excerpt style shared by the commands that print
// diagnostics as text.
func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	mode := diagfmt.PathModeAuto
	if s.manifest != nil {
		mode = diagfmt.PathModeRelative
	}
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   s.context,
		PathMode:  mode,
		ShowNotes: true,
	}
}
