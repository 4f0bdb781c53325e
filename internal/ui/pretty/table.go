package pretty

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/phpfmt/pkg/analysis"
)

const defaultTermWidth = 100

// TableFormatter formats tabular CLI output.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter. A non-positive
// termWidth falls back to 100 columns.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders rows under headers. Rows shorter than headers are padded.
func (t *TableFormatter) Format(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		for len(row) < len(headers) {
			row = append(row, "")
		}
		padded[i] = row
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.TableBorder).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(headers...).
		Rows(padded...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.styles.TableHeader
			}
			return t.styles.TableCell
		})

	if width := lipgloss.Width(tbl.String()); width > t.termWidth {
		tbl = tbl.Width(t.termWidth)
	}

	return tbl.String() + "\n"
}

// FormatRuleCounts renders the per-rule problem breakdown.
func (t *TableFormatter) FormatRuleCounts(byRule []analysis.RuleAnalysis) string {
	rows := make([][]string, 0, len(byRule))
	for _, ra := range byRule {
		rows = append(rows, []string{ra.Rule, strconv.Itoa(ra.Problems), strconv.Itoa(len(ra.Files))})
	}
	return t.Format([]string{"RULE", "PROBLEMS", "FILES"}, rows)
}

// RuleInfo describes a registered rule for listing.
type RuleInfo struct {
	Name        string
	Description string
	Default     bool
	Enabled     bool
}

// FormatRules renders the rule listing shown by the rules command.
func (t *TableFormatter) FormatRules(rules []RuleInfo) string {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		state := t.styles.Dim.Render("off")
		if r.Enabled {
			state = t.styles.Success.Render("on")
		}
		def := ""
		if r.Default {
			def = "yes"
		}
		rows = append(rows, []string{r.Name, state, def, r.Description})
	}
	return t.Format([]string{"RULE", "ENABLED", "DEFAULT", "DESCRIPTION"}, rows)
}
