package rules

import (
	"strings"

	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// MixedIndentationRule reports source lines indented with both tabs and
// spaces. It changes nothing; indentation is rebuilt later.
type MixedIndentationRule struct {
	format.BaseRule
	ctx *format.Context
}

// NewMixedIndentationRule creates the mixed indentation rule.
func NewMixedIndentationRule(ctx *format.Context) *MixedIndentationRule {
	return &MixedIndentationRule{
		BaseRule: format.NewBaseRule(
			"mixed-indentation",
			"Report lines indented with both tabs and spaces",
		),
		ctx: ctx,
	}
}

// Priority implements format.Rule.
func (r *MixedIndentationRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 600, true)(m)
}

// Kinds implements format.TokenRule.
func (r *MixedIndentationRule) Kinds() []token.Kind { return nil }

// ProcessTokens implements format.TokenRule.
func (r *MixedIndentationRule) ProcessTokens(tokens []*token.Token) {
	for _, t := range tokens {
		indent := t.OriginalIndent
		if indent == "" || !strings.Contains(indent, "\t") || !strings.Contains(indent, " ") {
			continue
		}
		end := t
		for n := t.Next(); n != nil && n.Line == t.Line; n = n.Next() {
			end = n
		}
		r.ctx.Report(format.NewProblem(t, "line %d is indented with tabs and spaces", t.Line).
			WithEnd(end).
			WithRule(r.Name()).
			Build())
	}
}
