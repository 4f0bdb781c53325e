package rules

import (
	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// PreserveNewlinesRule keeps line breaks from the source where the token
// index allows a line to break, and keeps blank lines between statements.
type PreserveNewlinesRule struct {
	format.BaseRule
	idx    *tokenindex.Index
	blanks bool
}

// NewPreserveNewlinesRule creates the preserve newlines rule.
func NewPreserveNewlinesRule(ctx *format.Context) *PreserveNewlinesRule {
	r := &PreserveNewlinesRule{
		BaseRule: format.NewBaseRule(
			"preserve-newlines",
			"Keep line breaks and blank lines from the source where they are allowed",
		),
	}
	if ctx != nil {
		r.idx = ctx.Index
		r.blanks = ctx.Config.BlankLines == config.BlankPreserve
	}
	return r
}

// Priority implements format.Rule.
func (r *PreserveNewlinesRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 300, true)(m)
}

// Kinds implements format.TokenRule.
func (r *PreserveNewlinesRule) Kinds() []token.Kind { return nil }

// ProcessTokens implements format.TokenRule.
func (r *PreserveNewlinesRule) ProcessTokens(tokens []*token.Token) {
	for _, t := range tokens {
		prev := t.Prev()
		if prev == nil {
			continue
		}
		newlines := t.OriginalNewlines()
		if newlines == 0 {
			continue
		}

		if r.idx.Is(tokenindex.PreserveNewlineAfter, prev.Kind) || r.idx.Is(tokenindex.PreserveNewlineBefore, t.Kind) {
			t.AddBefore(token.Line)
		}

		if !r.blanks || newlines < 2 {
			continue
		}
		if r.idx.Is(tokenindex.PreserveBlankAfter, prev.Kind) ||
			r.idx.Is(tokenindex.PreserveBlankBefore, t.Kind) ||
			(t.IsCode() && t.StartsStatement()) {
			t.AddBefore(token.Blank)
		}
	}
}
