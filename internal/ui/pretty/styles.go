// Package pretty renders phpfmt's terminal output with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes.
const (
	red    = "9"
	green  = "10"
	yellow = "11"
	cyan   = "14"
	silver = "7"
	gray   = "8"
)

// Styles holds one lipgloss.Style per kind of output element.
type Styles struct {
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleName   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Error      lipgloss.Style

	Changed   lipgloss.Style
	Formatted lipgloss.Style
	Skipped   lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TableCell   lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// palette builds styles that carry attributes only when color is on.
type palette bool

func (p palette) fg(color string) lipgloss.Style {
	if !p {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (p palette) strong(color string) lipgloss.Style {
	return p.fg(color).Bold(bool(p))
}

func (p palette) bold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(bool(p))
}

// NewStyles returns the output styles. With colorEnabled false every
// style renders text unchanged apart from table padding.
func NewStyles(colorEnabled bool) *Styles {
	p := palette(colorEnabled)
	return &Styles{
		FilePath:   p.bold(),
		Location:   p.fg(gray),
		RuleName:   p.fg(gray),
		Message:    lipgloss.NewStyle(),
		SourceLine: p.fg(silver),
		Caret:      p.fg(yellow),
		Error:      p.strong(red),

		Changed:   p.strong(yellow),
		Formatted: p.strong(green),
		Skipped:   p.fg(gray),

		DiffHeader:  p.bold(),
		DiffHunk:    p.fg(cyan),
		DiffAdd:     p.fg(green),
		DiffRemove:  p.fg(red),
		DiffContext: p.fg(gray),

		SummaryTitle: p.bold(),
		SummaryValue: lipgloss.NewStyle(),
		Success:      p.strong(green),
		Failure:      p.strong(red),

		TableHeader: p.strong(silver).Padding(0, 1),
		TableBorder: p.fg(gray),
		TableCell:   lipgloss.NewStyle().Padding(0, 1),

		Dim:  p.fg(gray),
		Bold: p.bold(),
	}
}

// IsColorEnabled resolves a --color mode ("always", "never" or "auto") for
// w. Auto enables color for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
