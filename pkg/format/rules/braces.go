package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// BracePlacementRule places the braces of blocks: on their own line for
// declarations listed by the preset, at the end of the line otherwise.
type BracePlacementRule struct {
	format.BaseRule
	ctx *format.Context
}

// NewBracePlacementRule creates the brace placement rule.
func NewBracePlacementRule(ctx *format.Context) *BracePlacementRule {
	return &BracePlacementRule{
		BaseRule: format.NewBaseRule(
			"brace-placement",
			"Place block braces for declarations and control structures",
		),
		ctx: ctx,
	}
}

// Priority implements format.Rule.
func (r *BracePlacementRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 400, true)(m)
}

// Kinds implements format.TokenRule.
func (r *BracePlacementRule) Kinds() []token.Kind {
	return []token.Kind{token.OpenBrace}
}

// ProcessTokens implements format.TokenRule.
func (r *BracePlacementRule) ProcessTokens(tokens []*token.Token) {
	for _, open := range tokens {
		if !isBlockBrace(open) {
			continue
		}
		closer := open.ClosedBy()

		if !open.StartsStatement() {
			if r.ownLine(open) {
				open.RequireBefore(token.Line)
			} else {
				open.AddBefore(token.Space)
				open.SuppressBefore(token.Newline)
			}
		}

		empty := closer.Prev() == open && closer.OriginalNewlines() == 0
		if !empty {
			open.AddAfter(token.Line)
		}
		token.Mirror(open)

		if next := closer.NextCode(); next != nil && !next.Is(token.CloseParen, token.CloseBracket,
			token.Semicolon, token.Comma, token.Arrow, token.NullsafeArrow, token.DoubleColon) {
			closer.AddAfter(token.Line)
		}
	}
}

// ownLine reports whether the brace opens the body of a declaration that
// the preset puts on its own line.
func (r *BracePlacementRule) ownLine(open *token.Token) bool {
	d := r.ctx.Declaration(open.StatementStart())
	if d == nil || d.Body != open || (d.Kind != format.DeclClass && d.Kind != format.DeclFunction) {
		return false
	}
	if !r.ctx.Index.Is(tokenindex.DeclarationBraceOnNewLine, d.Keyword.Kind) {
		return false
	}
	if d.Kind == format.DeclFunction {
		// A broken parameter list keeps the brace on its closing line.
		if params := paramsCloser(open); params != nil && lineBreakAfter(params.OpenedBy()) {
			return false
		}
	}
	return true
}
