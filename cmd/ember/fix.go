package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] [file.em|directory]...",
		Short: "Apply fix-it suggestions to ember source files",
		Long:  "Parse the sources, collect the fix-its attached to diagnostics and apply them according to the chosen strategy.",
		RunE:  runFix,
	}
	cmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply the fix with this identifier")
	cmd.Flags().Bool("list", false, "list fix identifiers without applying anything")
	cmd.Flags().Bool("dry-run", false, "print the fixed sources instead of writing them")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	files, err := s.inputs(args)
	if err != nil {
		return err
	}
	units, err := runFiles(cmd, s, "fixing", files, s.driver, driver.ParseFiles)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if list {
		for _, u := range units {
			for _, id := range fix.Candidates(u.Manager, u.Bag.Items()) {
				fmt.Fprintf(out, "%s\t%s\n", u.Path, id)
			}
		}
		return nil
	}

	applied := 0
	for _, u := range units {
		if !u.Loaded() {
			continue
		}
		res, err := fix.Apply(u.Manager, u.Bag.Items(), fix.ApplyOptions{Mode: mode, TargetID: targetID, Write: !dryRun})
		if errors.Is(err, fix.ErrNoFixes) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", u.Path, err)
		}
		for _, a := range res.Applied {
			if !s.quiet {
				fmt.Fprintf(errOut, "applied %s: %s (%d edits)\n", a.ID, a.Message, a.EditCount)
			}
		}
		for _, sk := range res.Skipped {
			if !s.quiet {
				fmt.Fprintf(errOut, "skipped %s: %s\n", sk.ID, sk.Reason)
			}
		}
		if dryRun {
			for _, content := range res.Buffers {
				if _, err := out.Write(content); err != nil {
					return err
				}
			}
		}
		applied += len(res.Applied)
		// one fix across all inputs, not one per file
		if mode != fix.ApplyModeAll && applied > 0 {
			break
		}
	}

	printTimings(errOut, s, units)
	if applied == 0 && !s.quiet {
		fmt.Fprintln(errOut, fix.ErrNoFixes.Error())
	}
	return nil
}
