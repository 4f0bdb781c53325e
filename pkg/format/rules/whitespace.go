package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// StandardWhitespaceRule applies the spacing categories of the token index
// and places line breaks after statements.
type StandardWhitespaceRule struct {
	format.BaseRule
	idx *tokenindex.Index
}

// NewStandardWhitespaceRule creates the standard whitespace rule.
func NewStandardWhitespaceRule(ctx *format.Context) *StandardWhitespaceRule {
	r := &StandardWhitespaceRule{
		BaseRule: format.NewBaseRule(
			"standard-whitespace",
			"Space keywords, brackets and punctuation; break lines after statements",
		),
	}
	if ctx != nil {
		r.idx = ctx.Index
	}
	return r
}

// Priority implements format.Rule.
func (r *StandardWhitespaceRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 100, true)(m)
}

// Kinds implements format.TokenRule.
func (r *StandardWhitespaceRule) Kinds() []token.Kind { return nil }

// ProcessTokens implements format.TokenRule.
func (r *StandardWhitespaceRule) ProcessTokens(tokens []*token.Token) {
	for _, t := range tokens {
		if !t.IsCode() {
			continue
		}
		r.categories(t)

		switch t.Kind {
		case token.OpenParen:
			r.openParen(t)
		case token.OpenBracket:
			if isArrayIndex(t) {
				t.ForbidBefore(token.Space)
			}
		case token.Colon:
			if !isTernaryColon(t) {
				t.ForbidBefore(token.Space)
				t.AddAfter(token.Space)
			}
		case token.Ellipsis:
			if t.PrevCode().Is(token.Name, token.Array, token.Callable) {
				t.AddBefore(token.Space)
			}
		case token.OpenBrace:
			if format.IsListBrace(t) && t.PrevCode().Is(token.CloseParen) {
				t.AddBefore(token.Space)
			}
			t.ForbidAfter(token.Blank)
		case token.CloseBrace:
			t.ForbidBefore(token.Blank)
		case token.CloseBracket:
			if isAttributeClose(t) {
				t.AddAfter(token.Space)
			}
		case token.Semicolon:
			if p := t.Parent(); p.Is(token.OpenParen) && p.PrevCode().Is(token.For) {
				if !t.NextCode().Is(token.Semicolon, token.CloseParen) {
					t.AddAfter(token.Space)
				}
			}
		}

		if t.EndsStatement() && !t.Is(token.OpenTag, token.OpenTagWithEcho, token.CloseTag, token.InlineHTML) {
			t.AddAfter(token.Line)
		}
	}
}

func (r *StandardWhitespaceRule) categories(t *token.Token) {
	if r.idx.Is(tokenindex.SpaceAfter, t.Kind) {
		t.AddAfter(token.Space)
	}
	if r.idx.Is(tokenindex.SpaceBefore, t.Kind) {
		t.AddBefore(token.Space)
	}
	if r.idx.Is(tokenindex.NoSpaceAfter, t.Kind) {
		t.ForbidAfter(token.Space)
	}
	if r.idx.Is(tokenindex.NoSpaceBefore, t.Kind) {
		t.ForbidBefore(token.Space)
	}
}

func (r *StandardWhitespaceRule) openParen(t *token.Token) {
	closer := t.ClosedBy()
	if r.idx.Is(tokenindex.SpaceInsideParens, token.OpenParen) && closer != nil && closer.Prev() != t {
		t.AddAfter(token.Space)
		closer.AddBefore(token.Space)
	}

	prev := t.PrevCode()
	switch {
	case prev == nil:
	case r.idx.Is(tokenindex.SpaceBeforeParen, prev.Kind):
		t.AddBefore(token.Space)
	case prev.Is(token.Name, token.Variable, token.CloseParen, token.CloseBracket),
		r.idx.Is(tokenindex.Keyword, prev.Kind):
		t.ForbidBefore(token.Space)
	}
}
