package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/phpfmt/internal/ui/pretty"
	"github.com/yaklabco/phpfmt/pkg/analysis"
)

// DiffRenderer prints the changes for each file as a git-style unified
// diff, with paths relative to the working directory.
type DiffRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffRenderer returns a DiffRenderer writing to opts.Writer.
func NewDiffRenderer(opts Options) *DiffRenderer {
	return &DiffRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *DiffRenderer) Render(_ context.Context, report *analysis.Report) error {
	changed := 0
	for _, file := range report.Files {
		switch {
		case file.Status == analysis.StatusError:
			fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Error.Render("error: "+file.Error))
		case file.Diff != "":
			changed++
			r.writeFile(file.Path, file.Diff)
		}
	}

	if changed > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.out, r.stat(changed, report.Totals.Additions, report.Totals.Deletions))
	}
	return nil
}

// writeFile prints diff under headers for path. The ---/+++ lines of diff
// name the absolute path and are replaced.
func (r *DiffRenderer) writeFile(path, diff string) {
	body := strings.TrimSuffix(diff, "\n")
	if rest, ok := cutFileHeaders(body); ok {
		body = rest
	}

	r.emit(r.styles.DiffHeader, "diff --git a/"+path+" b/"+path)
	r.emit(r.styles.DiffRemove, "--- a/"+path)
	r.emit(r.styles.DiffAdd, "+++ b/"+path)
	for _, line := range strings.Split(body, "\n") {
		r.emit(r.lineStyle(line), line)
	}
	fmt.Fprintln(r.out)
}

func cutFileHeaders(diff string) (string, bool) {
	if !strings.HasPrefix(diff, "--- ") {
		return diff, false
	}
	_, rest, ok := strings.Cut(diff, "\n")
	if !ok || !strings.HasPrefix(rest, "+++ ") {
		return diff, false
	}
	_, rest, _ = strings.Cut(rest, "\n")
	return rest, true
}

func (r *DiffRenderer) lineStyle(line string) lipgloss.Style {
	if line == "" {
		return r.styles.DiffContext
	}
	switch line[0] {
	case '@':
		return r.styles.DiffHunk
	case '+':
		return r.styles.DiffAdd
	case '-':
		return r.styles.DiffRemove
	}
	return r.styles.DiffContext
}

func (r *DiffRenderer) emit(style lipgloss.Style, line string) {
	fmt.Fprintln(r.out, style.Render(line))
}

// stat returns a git --stat style closing line.
func (r *DiffRenderer) stat(files, additions, deletions int) string {
	parts := []string{fmt.Sprintf("%d %s changed", files, pretty.Plural(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pretty.Plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pretty.Plural(deletions, "deletion", "deletions"))))
	}
	return strings.Join(parts, ", ")
}
