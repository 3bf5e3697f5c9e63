package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/version"
)

// errHadErrors reports that the command ran but the input had errors. It
// sets the exit status without printing anything more.
var errHadErrors = errors.New("errors were reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ember",
		Short:         "ember front-end tools",
		Long:          `ember lexes and parses .em sources and reports diagnostics with fix-its`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				stopTrace()
				return err
			}
			pendingCleanup = func() {
				stopProf()
				stopTrace()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			runCleanup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	flags.Int("bracket-depth", 0, "maximum (), [] and {} nesting (0 = project or default)")
	flags.Bool("werror", false, "treat warnings as errors")
	flags.Bool("no-warn", false, "ignore all warnings")
	flags.Int("jobs", 0, "max parallel workers (0 = auto)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval for trace output (0 = off)")
	flags.String("ui", "auto", "progress view for multi-file runs (auto|on|off)")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(newTokenizeCmd(), newParseCmd(), newDiagCmd(), newFixCmd(), newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	runCleanup()
	if err == nil {
		return
	}
	if !errors.Is(err, errHadErrors) {
		fmt.Fprintf(os.Stderr, "ember: %v\n", err)
	}
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
