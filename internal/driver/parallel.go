package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"ember/internal/observ"
	"ember/internal/trace"
)

// ParseFiles parses every path in its own unit, in parallel. Units come back
// in the order of paths. Files that cannot be read still get a unit whose bag
// holds the reason; the error is only for cancellation.
func ParseFiles(ctx context.Context, paths []string, opts Options) ([]*Unit, error) {
	return runFiles(ctx, "parse_files", paths, opts, func(ctx context.Context, u *Unit) error {
		return u.parse(ctx, opts)
	})
}

// TokenizeFiles is ParseFiles without the parser.
func TokenizeFiles(ctx context.Context, paths []string, opts Options) ([]*Unit, error) {
	return runFiles(ctx, "tokenize_files", paths, opts, func(ctx context.Context, u *Unit) error {
		return u.tokenize(ctx, opts)
	})
}

func runFiles(ctx context.Context, name string, paths []string, opts Options, work func(context.Context, *Unit) error) ([]*Unit, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, name, trace.CurrentSpan(ctx))
	span.WithExtra("files", fmt.Sprint(len(paths)))
	ctx = trace.WithSpan(ctx, span)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// mu общий для всех consumer'ов, созданных через opts.Consumer
	var mu sync.Mutex
	units := make([]*Unit, len(paths))
	for i, path := range paths {
		units[i] = newUnit(path, opts, &mu)
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for _, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return process(gctx, u, opts, work)
		})
	}
	err := g.Wait()

	detail := "ok"
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	return units, err
}

// Totals sums error and warning counts over units.
func Totals(units []*Unit) (errors, warnings int) {
	for _, u := range units {
		if u == nil {
			continue
		}
		errors += u.Engine.NumErrors()
		warnings += u.Engine.NumWarnings()
	}
	return errors, warnings
}

// Timings merges the per-unit timers into one report.
func Timings(units []*Unit) observ.Report {
	reports := make([]observ.Report, 0, len(units))
	for _, u := range units {
		if u != nil {
			reports = append(reports, u.Timer.Report())
		}
	}
	return observ.Merge(reports...)
}
