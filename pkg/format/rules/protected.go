package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// ProtectedTokensRule locks the whitespace that carries meaning: around
// open and close tags, inside heredocs, after inline HTML and after
// comments. It also keeps tokens that would merge apart.
type ProtectedTokensRule struct {
	format.BaseRule
}

// NewProtectedTokensRule creates the protected tokens rule.
func NewProtectedTokensRule(_ *format.Context) *ProtectedTokensRule {
	return &ProtectedTokensRule{
		BaseRule: format.NewBaseRule(
			"protected-tokens",
			"Keep whitespace inside heredocs, around PHP tags and after comments",
		),
	}
}

// Priority implements format.Rule.
func (r *ProtectedTokensRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodTokens, 10, true)(m)
}

// Kinds implements format.TokenRule.
func (r *ProtectedTokensRule) Kinds() []token.Kind { return nil }

// ProcessTokens implements format.TokenRule.
func (r *ProtectedTokensRule) ProcessTokens(tokens []*token.Token) {
	for _, t := range tokens {
		switch t.Kind {
		case token.StartHeredoc, token.HeredocBody, token.InlineHTML, token.CloseTag:
			t.SuppressAfter(token.All)
		case token.OpenTag:
			if next := t.Next(); next != nil && next.OriginalNewlines() > 0 {
				t.RequireAfter(token.Line)
			} else {
				t.RequireAfter(token.Space)
				t.SuppressAfter(token.Newline)
			}
			t.CriticalAfterSet(token.Space)
		case token.OpenTagWithEcho:
			t.AddAfter(token.Space)
			t.CriticalAfterSet(token.Space)
		case token.Comment, token.DocComment:
			r.comment(t)
		}

		if t.Kind == token.CloseTag {
			if t.OriginalNewlines() > 0 {
				t.RequireBefore(token.Line)
			} else {
				t.RequireBefore(token.Space)
				t.SuppressBefore(token.Newline)
			}
		}

		if prev := t.Prev(); prev != nil && mustSeparate(prev, t) {
			prev.CriticalAfterSet(token.Space)
		}
	}
}

func (r *ProtectedTokensRule) comment(t *token.Token) {
	prev := t.Prev()
	if prev != nil && t.OriginalNewlines() == 0 &&
		!prev.Is(token.OpenTag, token.InlineHTML, token.CloseTag) && !leadsItem(t) {
		t.RequireBefore(token.Space)
		t.SuppressBefore(token.Newline)
	}

	next := t.Next()
	if next == nil || next.Kind == token.EOF {
		return
	}
	switch {
	case t.Kind == token.Comment && !isBlockComment(t) && next.Kind != token.CloseTag:
		t.CriticalAfterSet(token.Line)
	case next.OriginalNewlines() > 0:
		t.AddAfter(token.Line)
	default:
		t.AddAfter(token.Space)
	}
}

// leadsItem reports whether t is a block comment directly after an open
// parenthesis or bracket with code following it on the same line. Such a
// comment moves with the first item of the list.
func leadsItem(t *token.Token) bool {
	if !isBlockComment(t) || !t.Prev().Is(token.OpenParen, token.OpenBracket) {
		return false
	}
	next := t.Next()
	return next != nil && !next.Kind.IsNotCode() && next.OriginalNewlines() == 0
}

func isBlockComment(t *token.Token) bool {
	return len(t.Text) >= 2 && t.Text[:2] == "/*"
}

// mustSeparate reports whether a and b would lex differently if rendered
// with nothing between them.
func mustSeparate(a, b *token.Token) bool {
	if a.Text == "" || b.Text == "" || a.Kind.IsComment() || b.Kind.IsComment() {
		return false
	}
	last, first := a.Text[len(a.Text)-1], b.Text[0]
	if isWordByte(last) && (isWordByte(first) || first == '$' || first == '\\') {
		return true
	}
	switch {
	case a.Is(token.Plus, token.Inc) && b.Is(token.Plus, token.Inc):
		return true
	case a.Is(token.Minus, token.Dec) && b.Is(token.Minus, token.Dec):
		return true
	case a.Is(token.Dot) && b.Is(token.Number) && first >= '0' && first <= '9':
		return true
	case a.Is(token.Number) && b.Is(token.Dot):
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
