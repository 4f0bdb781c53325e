package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// OperatorSpacingRule spaces binary and ternary operators and keeps unary
// operators against their operand.
type OperatorSpacingRule struct {
	format.BaseRule
	idx *tokenindex.Index
}

// NewOperatorSpacingRule creates the operator spacing rule.
func NewOperatorSpacingRule(ctx *format.Context) *OperatorSpacingRule {
	r := &OperatorSpacingRule{
		BaseRule: format.NewBaseRule(
			"operator-spacing",
			"Surround binary operators with spaces and attach unary operators",
		),
	}
	if ctx != nil {
		r.idx = ctx.Index
	}
	return r
}

// Priority implements format.Rule.
func (r *OperatorSpacingRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 200, true)(m)
}

// Kinds implements format.TokenRule.
func (r *OperatorSpacingRule) Kinds() []token.Kind {
	kinds := []token.Kind{token.Question, token.Colon, token.DoubleArrow}
	return append(kinds, r.idx.Kinds(tokenindex.Operator)...)
}

// ProcessTokens implements format.TokenRule.
func (r *OperatorSpacingRule) ProcessTokens(tokens []*token.Token) {
	for _, t := range tokens {
		switch {
		case t.Is(token.Question):
			r.question(t)
		case t.Is(token.Colon):
			if isTernaryColon(t) {
				if !t.Prev().Is(token.Question) {
					t.AddBefore(token.Space)
				}
				t.AddAfter(token.Space)
			}
		case t.Is(token.Inc, token.Dec):
			if isExpressionEnd(t.PrevCode()) && !t.PrevCode().Is(token.Inc, token.Dec) {
				t.ForbidBefore(token.Space)
			} else {
				t.ForbidAfter(token.Space)
			}
		case r.idx.Is(tokenindex.UnaryOperator, t.Kind):
			if !r.idx.Is(tokenindex.SpaceAfter, t.Kind) {
				t.ForbidAfter(token.Space)
			}
		case t.Is(token.Amp):
			r.ampersand(t)
		case t.Is(token.Pipe) && inTypeContext(t):
			t.ForbidBefore(token.Space)
			t.ForbidAfter(token.Space)
		case r.idx.Is(tokenindex.MaybeUnary, t.Kind) && !isExpressionEnd(t.PrevCode()):
			t.ForbidAfter(token.Space)
		case t.Is(token.Assign) && inDeclare(t):
		default:
			t.AddBefore(token.Space)
			t.AddAfter(token.Space)
		}
	}
}

func (r *OperatorSpacingRule) question(t *token.Token) {
	if isNullable(t) {
		t.ForbidAfter(token.Space)
		return
	}
	t.AddBefore(token.Space)
	if next := t.Next(); next.Is(token.Colon) {
		t.ForbidAfter(token.Space)
		return
	}
	t.AddAfter(token.Space)
}

func (r *OperatorSpacingRule) ampersand(t *token.Token) {
	next := t.NextCode()
	switch {
	case inTypeContext(t) && !next.Is(token.Variable, token.Ellipsis):
		// Intersection type.
		t.ForbidBefore(token.Space)
		t.ForbidAfter(token.Space)
	case inTypeContext(t), !isExpressionEnd(t.PrevCode()):
		// By reference.
		if !t.PrevCode().Is(token.OpenParen, token.OpenBracket) {
			t.AddBefore(token.Space)
		}
		t.ForbidAfter(token.Space)
	default:
		t.AddBefore(token.Space)
		t.AddAfter(token.Space)
	}
}

// inDeclare reports whether t is inside the parentheses of a declare
// statement.
func inDeclare(t *token.Token) bool {
	p := t.Parent()
	return p.Is(token.OpenParen) && p.PrevCode().Is(token.Declare)
}
