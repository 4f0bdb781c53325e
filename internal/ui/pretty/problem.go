package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/phpfmt/pkg/analysis"
)

// FormatProblem formats a single problem for terminal output.
func (s *Styles) FormatProblem(p analysis.ProblemEntry, showContext bool) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(p.FilePath),
		p.StartLine,
		p.StartColumn,
	)

	// Main line: location  message  (rule)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Message.Render(p.Message),
		s.RuleName.Render("("+p.Rule+")"),
	))

	if showContext && p.Source != "" {
		builder.WriteString(s.FormatSourceContext(p.Source, p.StartColumn))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
// Tabs are shown as single spaces so the caret lines up with column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", " ")) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	switch problemCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 problem)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d problems)", problemCount))
	}
	return header
}

// FormatStatus returns a styled label for a file outcome.
func (s *Styles) FormatStatus(status analysis.Status) string {
	switch status {
	case analysis.StatusChanged:
		return s.Changed.Render("needs formatting")
	case analysis.StatusFormatted:
		return s.Formatted.Render("formatted")
	case analysis.StatusSkipped:
		return s.Skipped.Render("skipped")
	case analysis.StatusError:
		return s.Error.Render("error")
	case analysis.StatusOK:
		return s.Dim.Render("ok")
	default:
		return string(status)
	}
}
