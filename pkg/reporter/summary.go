package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/phpfmt/internal/ui/pretty"
	"github.com/yaklabco/phpfmt/pkg/analysis"
)

// SummaryRenderer formats reports as aggregated tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	tables *pretty.TableFormatter
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &SummaryRenderer{
		opts:   opts,
		styles: styles,
		tables: pretty.NewTableFormatter(styles, terminalWidth(opts.Writer)),
		out:    opts.Writer,
	}
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	totals := report.Totals
	if !totals.HasChanges() && !totals.HasProblems() && !totals.HasErrors() {
		fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(totals))
		return nil
	}

	if rows := r.fileRows(report.Files); len(rows) > 0 {
		fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
		fmt.Fprint(r.out, r.tables.Format([]string{"FILE", "STATUS", "PROBLEMS", "+/-"}, rows))
		fmt.Fprintln(r.out)
	}

	if len(report.ByRule) > 0 {
		fmt.Fprintln(r.out, r.styles.Bold.Render("Rules"))
		fmt.Fprint(r.out, r.tables.FormatRuleCounts(report.ByRule))
	}

	fmt.Fprint(r.out, r.styles.FormatSummary(totals))
	return nil
}

// fileRows lists files that are not simply ok.
func (r *SummaryRenderer) fileRows(files []analysis.FileEntry) [][]string {
	var rows [][]string
	for _, f := range files {
		if f.Status == analysis.StatusOK && f.Problems == 0 {
			continue
		}
		changes := ""
		if f.Additions > 0 || f.Deletions > 0 {
			changes = fmt.Sprintf("+%d/-%d", f.Additions, f.Deletions)
		}
		rows = append(rows, []string{f.Path, r.styles.FormatStatus(f.Status), fmt.Sprint(f.Problems), changes})
	}
	return rows
}
