package rules

import (
	"strings"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// IndentationRule assigns an indentation level to the first token of every
// output line, and the indentation of heredoc bodies.
type IndentationRule struct {
	format.BaseRule
	heredoc config.HeredocIndent
}

// NewIndentationRule creates the indentation rule.
func NewIndentationRule(ctx *format.Context) *IndentationRule {
	r := &IndentationRule{
		BaseRule: format.NewBaseRule(
			"indentation",
			"Indent blocks, switch cases, continuation lines and heredocs",
		),
		heredoc: config.HeredocMixed,
	}
	if ctx != nil {
		r.heredoc = ctx.Config.HeredocIndent
	}
	return r
}

// Priority implements format.Rule.
func (r *IndentationRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodBeforeRender, 1000, true)(m)
}

// BeforeRender implements format.DocumentRule.
func (r *IndentationRule) BeforeRender(tokens []*token.Token) {
	// lineStart[i] is the index of the first token on token i's line.
	lineStart := make([]int, len(tokens))
	lineIndent := func(t *token.Token) int {
		return tokens[lineStart[t.Index]].Indent
	}
	alt := altLevels(tokens)

	for i, t := range tokens {
		if t.Kind == token.EOF {
			break
		}
		starts := i == 0 || format.StartsLine(t)
		if starts {
			lineStart[i] = i
		} else {
			lineStart[i] = lineStart[i-1]
		}

		if starts && !t.Is(token.HeredocBody, token.EndHeredoc) {
			t.Indent = level(t, lineIndent, alt)
		}
		if t.Kind == token.StartHeredoc {
			r.heredocLevel(t, lineStart[i] == i, lineIndent(t))
		}
	}
}

// level computes the indentation of t, which starts a line. alt holds the
// alternative-syntax block levels of statement starts.
func level(t *token.Token, lineIndent func(*token.Token) int, alt []int) int {
	if t.Kind.IsCloseBracket() {
		if open := t.OpenedBy(); open != nil {
			return lineIndent(open)
		}
		return 0
	}

	n := 0
	p := t.Parent()
	if p != nil {
		n = lineIndent(p)
		if indents(p) {
			n++
		}
		if isSwitchBrace(p) && !isCaseLabel(t) && !(t.Kind.IsComment() && isCaseLabel(t.NextCode())) {
			n++
		}
	}

	anchor := t
	if !t.IsCode() {
		anchor = t.NextCode()
	}
	if anchor != nil {
		if start := anchor.StatementStart(); start != nil && start.Parent() == p {
			n += alt[start.Index]
		}
	}

	if !continuesBlock(t) && (!isExpressionStart(t) || (p != nil && !indents(p))) {
		n++
	}
	return n
}

// indents reports whether the contents of the bracket open are indented one
// level deeper than its line.
func indents(open *token.Token) bool {
	return open.Is(token.OpenBrace) || lineBreakAfter(open)
}

// continuesBlock reports whether t, although it does not start an
// expression, lines up with the statement it belongs to.
func continuesBlock(t *token.Token) bool {
	switch {
	case t.Is(token.OpenBrace):
		return isBlockBrace(t)
	case t.Is(token.Else, token.Elseif, token.Catch, token.Finally):
		return true
	case t.Is(token.While):
		return t.PrevCode().Is(token.CloseBrace)
	}
	return false
}

// heredocLevel sets the indentation of the closing marker of the heredoc
// opened by start. Body lines follow the marker when rendered.
func (r *IndentationRule) heredocLevel(start *token.Token, startsLine bool, line int) {
	end := start.Heredoc()
	if end == nil {
		return
	}
	switch r.heredoc {
	case config.HeredocHanging:
		end.Indent = line + 1
	case config.HeredocMixed:
		if startsLine {
			end.Indent = line
		} else {
			end.Indent = line + 1
		}
	default:
		end.Indent = line
	}
}

// altEnds lists the keywords closing alternative-syntax blocks.
//
//nolint:gochecknoglobals // read-only lookup table
var altEnds = map[string]bool{
	"endif": true, "endwhile": true, "endfor": true,
	"endforeach": true, "endswitch": true, "enddeclare": true,
}

type altBlock struct {
	parent   *token.Token
	isSwitch bool
}

// altLevels returns, for every statement start, the number of enclosing
// alternative-syntax blocks ("if ($a): ... endif;") opened inside the same
// bracket. Statements directly inside an alternative switch, other than its
// case labels, get one more level.
func altLevels(tokens []*token.Token) []int {
	levels := make([]int, len(tokens))
	var open []altBlock

	for i, t := range tokens {
		if !t.IsCode() || !t.StartsStatement() {
			continue
		}
		parent := t.Parent()
		depth, top := 0, -1
		for j, b := range open {
			if b.parent == parent {
				depth++
				top = j
			}
		}

		switch {
		case t.Is(token.Name) && altEnds[strings.ToLower(t.Text)]:
			if top >= 0 {
				open = append(open[:top], open[top+1:]...)
				depth--
			}
			levels[i] = depth
			continue
		case t.Is(token.Else, token.Elseif) && isAltHeader(t) && top >= 0:
			levels[i] = depth - 1
			continue
		}

		levels[i] = depth
		if top >= 0 && open[top].isSwitch && !t.Is(token.Case, token.Default) {
			levels[i]++
		}
		if isAltHeader(t) {
			open = append(open, altBlock{parent: parent, isSwitch: t.Is(token.Switch)})
		}
	}
	return levels
}

// isAltHeader reports whether the statement started by t is the header of
// an alternative-syntax block.
func isAltHeader(t *token.Token) bool {
	return t.Is(token.If, token.Elseif, token.Else, token.While, token.For,
		token.Foreach, token.Switch, token.Declare) && t.StatementEnd().Is(token.Colon)
}
