package rules

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// AlignAssignmentsRule aligns the "=" and "=>" operators of consecutive
// lines that assign at the same level.
type AlignAssignmentsRule struct {
	format.BaseRule
	enabled bool
}

// NewAlignAssignmentsRule creates the assignment alignment rule.
func NewAlignAssignmentsRule(ctx *format.Context) *AlignAssignmentsRule {
	r := &AlignAssignmentsRule{
		BaseRule: format.NewBaseRule(
			"align-assignments",
			"Align assignment operators and double arrows on consecutive lines",
		),
	}
	if ctx != nil {
		r.enabled = ctx.Config.AlignAssignments
	}
	return r
}

// Priority implements format.Rule.
func (r *AlignAssignmentsRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodBlock, 100, r.enabled)(m)
}

// ProcessBlock implements format.BlockRule.
func (r *AlignAssignmentsRule) ProcessBlock(lines [][]*token.Token) {
	var run []*token.Token
	var widths []int
	for _, line := range lines {
		op := assignmentOf(line)
		if op != nil && len(run) > 0 && !sameColumnGroup(run[0], op) {
			pad(run, widths)
			run, widths = nil, nil
		}
		if op == nil {
			pad(run, widths)
			run, widths = nil, nil
			continue
		}
		run = append(run, op)
		widths = append(widths, lineWidth(line, op))
	}
	pad(run, widths)
}

// assignmentOf returns the first "=" or "=>" on line that belongs to the
// expression the line starts, or nil.
func assignmentOf(line []*token.Token) *token.Token {
	first := line[0]
	if !first.IsCode() || !isExpressionStart(first) || spansLines(line) {
		return nil
	}
	for _, t := range line[1:] {
		if !t.Is(token.Assign, token.DoubleArrow) {
			continue
		}
		if t.Parent() != first.Parent() || t.StatementStart() != first.StatementStart() {
			return nil
		}
		return t
	}
	return nil
}

func sameColumnGroup(a, b *token.Token) bool {
	return a.Kind == b.Kind && a.Parent() == b.Parent()
}

// AlignCommentsRule aligns trailing line comments on consecutive lines.
type AlignCommentsRule struct {
	format.BaseRule
	enabled bool
}

// NewAlignCommentsRule creates the comment alignment rule.
func NewAlignCommentsRule(ctx *format.Context) *AlignCommentsRule {
	r := &AlignCommentsRule{
		BaseRule: format.NewBaseRule(
			"align-comments",
			"Align trailing comments on consecutive lines",
		),
	}
	if ctx != nil {
		r.enabled = ctx.Config.AlignComments
	}
	return r
}

// Priority implements format.Rule.
func (r *AlignCommentsRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodBlock, 200, r.enabled)(m)
}

// ProcessBlock implements format.BlockRule.
func (r *AlignCommentsRule) ProcessBlock(lines [][]*token.Token) {
	var run []*token.Token
	var widths []int
	var parent *token.Token
	for _, line := range lines {
		c := trailingComment(line)
		if c != nil && len(run) > 0 && line[0].Parent() != parent {
			pad(run, widths)
			run, widths = nil, nil
		}
		if c == nil {
			pad(run, widths)
			run, widths = nil, nil
			continue
		}
		if len(run) == 0 {
			parent = line[0].Parent()
		}
		run = append(run, c)
		widths = append(widths, lineWidth(line, c))
	}
	pad(run, widths)
}

// trailingComment returns the single-line comment that ends line after
// code, or nil.
func trailingComment(line []*token.Token) *token.Token {
	if len(line) < 2 || spansLines(line[:len(line)-1]) {
		return nil
	}
	c := line[len(line)-1]
	if c.Kind != token.Comment || (!strings.HasPrefix(c.Text, "//") && !strings.HasPrefix(c.Text, "#")) {
		return nil
	}
	return c
}

// lineWidth returns the display width of line up to, but not including, the
// gap before stop.
func lineWidth(line []*token.Token, stop *token.Token) int {
	w := 0
	for i, t := range line {
		if t == stop {
			break
		}
		if i > 0 && t.Gap().Any(token.Space|token.Tab) {
			w += 1 + max(t.Padding, 0)
		}
		w += uniseg.StringWidth(t.Text + t.Suffix)
	}
	return w
}

// pad aligns the tokens of a run on the widest line of the run. Runs of one
// line are left alone.
func pad(run []*token.Token, widths []int) {
	if len(run) < 2 {
		return
	}
	widest := 0
	for _, w := range widths {
		widest = max(widest, w)
	}
	for i, t := range run {
		t.AddBefore(token.Tab)
		t.Padding = widest - widths[i]
	}
}
