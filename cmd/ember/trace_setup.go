package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/trace"
)

var (
	pendingCleanup func()
	activeRing     *trace.RingTracer
)

func runCleanup() {
	if pendingCleanup != nil {
		pendingCleanup()
		pendingCleanup = nil
	}
}

// setupTracing reads the --trace* flags, attaches the tracer to the command
// context and returns the function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	output, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeat, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  heartbeat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	switch t := tracer.(type) {
	case *trace.RingTracer:
		activeRing = t
	case *trace.MultiTracer:
		activeRing = t.Ring()
	}

	cmd.SetContext(trace.WithTracer(ctx, tracer))
	hb := trace.StartHeartbeat(tracer, heartbeat)

	return func() {
		hb.Stop()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
		activeRing = nil
	}, nil
}

// dumpTraceOnPanic writes the ring buffer to stderr before re-panicking, so
// the last spans before a crash are not lost.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if activeRing != nil {
		fmt.Fprintln(os.Stderr, "trace: last events before panic:")
		_ = activeRing.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}
