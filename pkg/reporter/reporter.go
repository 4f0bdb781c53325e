// Package reporter writes the results of a run in the selected output
// format.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/phpfmt/pkg/analysis"
	"github.com/yaklabco/phpfmt/pkg/runner"
)

// Reporter writes a runner.Result.
type Reporter interface {
	// Report writes result and returns the number of outstanding findings:
	// files still needing formatting plus problems.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// analyzingReporter turns a runner.Result into an analysis.Report and
// hands it to a Renderer.
type analyzingReporter struct {
	renderer Renderer
	analysis analysis.Options
}

var _ Reporter = (*analyzingReporter)(nil)

func (a *analyzingReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.analysis)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	t := report.Totals
	return t.FilesChanged - t.FilesWritten + t.Problems, nil
}

// New returns a Reporter for opts.Format, defaulting to text on stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	renderers := map[Format]func(Options) Renderer{
		FormatText:    func(o Options) Renderer { return NewTextRenderer(o) },
		FormatJSON:    func(o Options) Renderer { return NewJSONRenderer(o) },
		FormatDiff:    func(o Options) Renderer { return NewDiffRenderer(o) },
		FormatSummary: func(o Options) Renderer { return NewSummaryRenderer(o) },
	}
	newRenderer, ok := renderers[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	aopts := analysis.DefaultOptions()
	aopts.WorkingDir = opts.WorkingDir
	return &analyzingReporter{renderer: newRenderer(opts), analysis: aopts}, nil
}
