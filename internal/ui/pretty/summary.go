package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/phpfmt/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// Plural returns one when n is 1 and many otherwise.
func Plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats report totals as a single line.
// Example: "2 files need formatting, 3 problems in 1 file (12 files checked)".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	var parts []string

	switch {
	case totals.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s formatted",
			totals.FilesWritten, Plural(totals.FilesWritten, wordFile, wordFiles))))
	case totals.FilesChanged > 0:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s %s formatting",
			totals.FilesChanged, Plural(totals.FilesChanged, wordFile, wordFiles),
			Plural(totals.FilesChanged, "needs", "need"))))
	}

	if totals.Problems > 0 {
		parts = append(parts, fmt.Sprintf("%d %s in %d %s",
			totals.Problems, Plural(totals.Problems, "problem", "problems"),
			totals.FilesWithProblems, Plural(totals.FilesWithProblems, wordFile, wordFiles)))
	}

	if totals.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed",
			totals.FilesErrored, Plural(totals.FilesErrored, wordFile, wordFiles))))
	}

	if len(parts) == 0 {
		parts = append(parts, s.Success.Render("All files formatted"))
	}

	return strings.Join(parts, ", ") +
		s.Dim.Render(fmt.Sprintf(" (%d %s checked)", totals.Files, Plural(totals.Files, wordFile, wordFiles))) +
		"\n"
}

// FormatSummary formats report totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render, totals.Files)
	if totals.FilesChanged > 0 {
		row("Files changed", s.Changed.Render, totals.FilesChanged)
	}
	if totals.FilesWritten > 0 {
		row("Files written", s.Success.Render, totals.FilesWritten)
	}
	if totals.FilesSkipped > 0 {
		row("Files skipped", s.Skipped.Render, totals.FilesSkipped)
	}
	if totals.FilesErrored > 0 {
		row("Files failed", s.Failure.Render, totals.FilesErrored)
	}

	builder.WriteString("\n")
	row("Problems", s.SummaryValue.Render, totals.Problems)

	builder.WriteString("\n")
	switch {
	case totals.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case totals.FilesChanged > totals.FilesWritten:
		builder.WriteString(s.Failure.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
