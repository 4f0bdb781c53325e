package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/phpfmt/pkg/format"
)

// Runner orchestrates multi-file formatting using a format.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *format.Pipeline

	// Options are applied to every file.
	PipelineOptions format.PipelineOptions
}

// New creates a new Runner with the given pipeline.
func New(pipeline *format.Pipeline, opts format.PipelineOptions) *Runner {
	return &Runner{Pipeline: pipeline, PipelineOptions: opts}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// Each worker formats one file at a time; the Formatter builds fresh rule
// instances per document, so workers share only immutable configuration.
// A failing file is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each goroutine owns one slot, so outcomes need no locking and stay
	// in discovery order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(gctx, path, r.PipelineOptions)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = pr
			}
			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i := range files {
		if done[i] {
			result.add(outcomes[i])
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	return result, nil
}
