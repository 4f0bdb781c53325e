package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/phpfmt/internal/ui/pretty"
	"github.com/yaklabco/phpfmt/pkg/analysis"
)

// TextRenderer formats reports as styled terminal output.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if len(report.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No PHP files found."))
		}
		return nil
	}

	for _, file := range report.Files {
		switch file.Status {
		case analysis.StatusError:
			fmt.Fprintf(bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render("error: "+file.Error),
			)
		case analysis.StatusChanged, analysis.StatusFormatted:
			if r.opts.ListFiles {
				fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.FormatStatus(file.Status))
			}
		case analysis.StatusSkipped:
			fmt.Fprintf(bw, "%s: %s (%s)\n", r.styles.FilePath.Render(file.Path), r.styles.FormatStatus(file.Status), file.Reason)
		case analysis.StatusOK:
		}
	}

	r.writeProblems(bw, report)

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}
	return nil
}

// writeProblems writes problems grouped by file, in report order.
func (r *TextRenderer) writeProblems(w io.Writer, report *analysis.Report) {
	if len(report.Problems) == 0 {
		return
	}

	counts := make(map[string]int, len(report.Files))
	for _, f := range report.Files {
		counts[f.Path] = f.Problems
	}

	fmt.Fprintln(w)
	current := ""
	for i, p := range report.Problems {
		if i == 0 || p.FilePath != current {
			if i > 0 {
				fmt.Fprintln(w)
			}
			current = p.FilePath
			fmt.Fprintln(w, r.styles.FormatFileHeader(current, counts[current]))
		}
		fmt.Fprint(w, r.styles.FormatProblem(p, r.opts.ShowContext))
	}
	fmt.Fprintln(w)
}
