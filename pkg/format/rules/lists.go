package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// ListSpacingRule puts every item of a broken list on its own line and adds
// trailing commas to broken lists where the language allows them.
type ListSpacingRule struct {
	format.BaseRule
	trailingCommas bool
}

// NewListSpacingRule creates the list spacing rule.
func NewListSpacingRule(ctx *format.Context) *ListSpacingRule {
	r := &ListSpacingRule{
		BaseRule: format.NewBaseRule(
			"list-spacing",
			"Break every item of a multi-line list onto its own line",
		),
	}
	if ctx != nil {
		r.trailingCommas = ctx.Config.TrailingCommas
	}
	return r
}

// Priority implements format.Rule.
func (r *ListSpacingRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodList, 100, true)(m)
}

// ProcessList implements format.ListRule.
func (r *ListSpacingRule) ProcessList(open *token.Token, items []*token.Token) {
	closer := open.ClosedBy()
	if closer == nil || controlKeyword(closer) != nil {
		return
	}

	if !isBroken(open, items) {
		token.Mirror(open)
		return
	}

	open.AddAfter(token.Line)
	for _, item := range items {
		leading(item).AddBefore(token.Line)
	}
	token.Mirror(open)

	if r.trailingCommas && closer.HasNewlineBefore() && allowsTrailingComma(open, items) {
		if last := closer.PrevCode(); last != open && !last.Is(token.Comma) {
			last.Suffix = ","
		}
	}
}

// isBroken reports whether the list already spans lines at its edges or
// between items.
func isBroken(open *token.Token, items []*token.Token) bool {
	if lineBreakAfter(open) {
		return true
	}
	for _, item := range items[1:] {
		if leading(item).IsFirstOnLine() {
			return true
		}
	}
	return false
}

// leading returns the first token of an item, including block comments on
// the item's line that precede it.
func leading(item *token.Token) *token.Token {
	lead := item
	for p := lead.Prev(); p != nil && p.Kind.IsComment() && !p.HasNewlineAfter(); p = lead.Prev() {
		lead = p
	}
	return lead
}

// allowsTrailingComma reports whether a comma may follow the last item of
// the list.
func allowsTrailingComma(open *token.Token, items []*token.Token) bool {
	closer := open.ClosedBy()
	switch open.Kind {
	case token.OpenBracket:
		// Array literals, but not index expressions or destructuring.
		return !isArrayIndex(open) && !closer.NextCode().Is(token.Assign)
	case token.OpenBrace:
		return true
	case token.OpenParen:
	default:
		return false
	}

	prev := open.PrevCode()
	switch {
	case isParamList(open):
		last := items[len(items)-1]
		for s := last; s != nil; s = s.NextSibling() {
			if s.Is(token.Ellipsis) {
				return false
			}
		}
		return true
	case isUseList(open):
		return true
	case prev.Is(token.Array):
		return !closer.NextCode().Is(token.Assign)
	case prev.Is(token.Isset, token.Unset, token.List, token.Empty, token.Eval,
		token.Declare, token.Exit, token.Echo, token.Print):
		return false
	case prev.Is(token.Name, token.Variable, token.CloseParen, token.CloseBracket, token.CloseBrace):
		return true
	}
	return false
}
