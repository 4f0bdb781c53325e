package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// ControlStructureSpacingRule joins continuation keywords to the preceding
// closing brace and moves braceless bodies to their own line.
type ControlStructureSpacingRule struct {
	format.BaseRule
}

// NewControlStructureSpacingRule creates the control structure spacing rule.
func NewControlStructureSpacingRule(_ *format.Context) *ControlStructureSpacingRule {
	return &ControlStructureSpacingRule{
		BaseRule: format.NewBaseRule(
			"control-structure-spacing",
			"Cuddle else, catch and finally; put braceless bodies on their own line",
		),
	}
}

// Priority implements format.Rule.
func (r *ControlStructureSpacingRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 500, true)(m)
}

// Kinds implements format.TokenRule.
func (r *ControlStructureSpacingRule) Kinds() []token.Kind {
	return []token.Kind{
		token.Else, token.Elseif, token.Catch, token.Finally, token.While, token.CloseParen,
	}
}

// ProcessTokens implements format.TokenRule.
func (r *ControlStructureSpacingRule) ProcessTokens(tokens []*token.Token) {
	for _, t := range tokens {
		switch t.Kind {
		case token.CloseParen:
			kw := controlKeyword(t)
			if kw.Is(token.If, token.Elseif, token.While, token.For, token.Foreach) {
				braceless(t)
			}
			continue
		case token.While:
			prev := t.PrevCode()
			if !prev.Is(token.CloseBrace) || !prev.OpenedBy().PrevCode().Is(token.Do) {
				continue
			}
		case token.Else:
			if !t.NextCode().Is(token.If) {
				braceless(t)
			}
		}

		if t.PrevCode().Is(token.CloseBrace) && t.Prev() == t.PrevCode() {
			t.SuppressBefore(token.Newline)
			t.AddBefore(token.Space)
		}
	}
}

// braceless puts the body that follows t on its own line when it is a
// single statement without braces.
func braceless(t *token.Token) {
	next := t.NextCode()
	if next == nil || next.Is(token.OpenBrace, token.Colon, token.Semicolon) {
		return
	}
	if t.Kind == token.CloseParen && t.OpenedBy().PrevCode().Is(token.While) {
		// The condition of a do-while loop.
		if prev := t.OpenedBy().PrevCode().PrevCode(); prev.Is(token.CloseBrace) {
			return
		}
	}
	t.AddAfter(token.Line)
}
