package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// OneLineBodiesRule keeps short function and closure bodies on one line
// when they were written that way.
type OneLineBodiesRule struct {
	format.BaseRule
	ctx     *format.Context
	enabled bool
}

// NewOneLineBodiesRule creates the one-line bodies rule.
func NewOneLineBodiesRule(ctx *format.Context) *OneLineBodiesRule {
	r := &OneLineBodiesRule{
		BaseRule: format.NewBaseRule(
			"one-line-bodies",
			"Keep single-statement function bodies written on one line",
		),
		ctx: ctx,
	}
	if ctx != nil {
		r.enabled = ctx.Config.OneLineBodies
	}
	return r
}

// Priority implements format.Rule.
func (r *OneLineBodiesRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodBeforeRender, 100, r.enabled)(m)
}

// BeforeRender implements format.DocumentRule.
func (r *OneLineBodiesRule) BeforeRender(tokens []*token.Token) {
	for _, t := range tokens {
		if t.Kind != token.Function {
			continue
		}

		if named(t) {
			if d := r.ctx.Declaration(t.StatementStart()); d != nil && d.Keyword == t && d.Collapsible() {
				collapse(d.Start, d.Body)
			}
			continue
		}
		if open := closureBody(t); open != nil {
			collapse(t, open)
		}
	}
}

// named reports whether fn is the keyword of a named function.
func named(fn *token.Token) bool {
	n := fn.NextCode()
	if n.Is(token.Amp) {
		n = n.NextCode()
	}
	return n.Is(token.Name)
}

// closureBody returns the open brace of the closure introduced by fn, or
// nil.
func closureBody(fn *token.Token) *token.Token {
	n := fn.NextCode()
	if n.Is(token.Amp) {
		n = n.NextCode()
	}
	if !n.Is(token.OpenParen) {
		return nil
	}
	for s := n; s != nil; s = s.NextSibling() {
		switch s.Kind {
		case token.OpenBrace:
			return s
		case token.Semicolon, token.Comma:
			return nil
		}
	}
	return nil
}

// collapse keeps the tokens from start to the end of the body at open on
// one line.
func collapse(start, open *token.Token) {
	closer := open.ClosedBy()
	if closer == nil || !token.Preserve(start, closer, true) {
		return
	}
	open.AddBefore(token.Space)
	if closer.Prev() != open {
		open.AddAfter(token.Space)
		closer.AddBefore(token.Space)
	}
}
