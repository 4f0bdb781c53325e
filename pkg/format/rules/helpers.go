package rules

import (
	"strings"

	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// only returns a Priority function for a rule that runs in one stage.
func only(stage format.Method, priority int, enabled bool) func(format.Method) (int, bool) {
	return func(m format.Method) (int, bool) {
		if m != stage || !enabled {
			return 0, false
		}
		return priority, true
	}
}

// isExpressionEnd reports whether t can end an operand, which makes a
// following "+", "-" or "&" binary.
func isExpressionEnd(t *token.Token) bool {
	return t.Is(token.Variable, token.Number, token.String, token.Name,
		token.CloseParen, token.CloseBracket, token.CloseBrace, token.EndHeredoc,
		token.Inc, token.Dec)
}

// isExpressionStart reports whether t begins a statement, a list item or the
// contents of a bracket.
func isExpressionStart(t *token.Token) bool {
	if t.IsCode() && t.StartsStatement() {
		return true
	}
	p := t.PrevCode()
	if p == nil {
		return true
	}
	return p.Kind == token.Comma ||
		p.Kind.IsOpenBracket() ||
		p.EndsStatement() ||
		p.Is(token.OpenTag, token.OpenTagWithEcho) ||
		isAttributeClose(p)
}

func isAttributeClose(t *token.Token) bool {
	return t.Is(token.CloseBracket) && t.OpenedBy().Is(token.Attribute)
}

var modifiers = []token.Kind{
	token.Abstract, token.Final, token.Public, token.Protected,
	token.Private, token.Static, token.Readonly, token.Var,
}

func isModifier(t *token.Token) bool { return t.Is(modifiers...) }

// isNullable reports whether q is the "?" of a nullable type.
func isNullable(q *token.Token) bool {
	if !q.Is(token.Question) {
		return false
	}
	if !q.NextCode().Is(token.Name, token.Array, token.Callable, token.Static) {
		return false
	}
	p := q.PrevCode()
	return p == nil || p.Is(token.OpenParen, token.Comma, token.Colon, token.Const) || isModifier(p)
}

// isTernaryColon reports whether c is the ":" of a ternary expression.
func isTernaryColon(c *token.Token) bool {
	if !c.Is(token.Colon) {
		return false
	}
	start := c.StatementStart()
	depth := 0
	for s := c.PrevSibling(); s != nil; s = s.PrevSibling() {
		if start != nil && s.Index < start.Index {
			break
		}
		switch s.Kind {
		case token.Colon:
			depth++
		case token.Question:
			if isNullable(s) {
				continue
			}
			if depth == 0 {
				return true
			}
			depth--
		case token.Comma, token.DoubleArrow, token.Semicolon:
			return false
		}
	}
	return false
}

// isParamList reports whether open is the parenthesis of a function's
// parameter list.
func isParamList(open *token.Token) bool {
	if !open.Is(token.OpenParen) {
		return false
	}
	p := open.PrevCode()
	if p.Is(token.Name) {
		p = p.PrevCode()
	}
	if p.Is(token.Amp) {
		p = p.PrevCode()
	}
	return p.Is(token.Function, token.Fn)
}

// isUseList reports whether open is the parenthesis of a closure's "use"
// clause.
func isUseList(open *token.Token) bool {
	return open.Is(token.OpenParen) && open.PrevCode().Is(token.Use) && open.PrevCode().PrevCode().Is(token.CloseParen)
}

// inTypeContext reports whether t is part of a parameter, property or
// return type.
func inTypeContext(t *token.Token) bool {
	if p := t.Parent(); p != nil && isParamList(p) {
		for s := t.PrevSibling(); s != nil; s = s.PrevSibling() {
			switch s.Kind {
			case token.Comma:
				return true
			case token.Variable, token.Assign, token.Ellipsis:
				return false
			}
		}
		return true
	}

	for s := t.PrevCode(); s != nil; s = s.PrevCode() {
		switch {
		case s.Is(token.Name, token.Array, token.Callable, token.Static, token.Pipe,
			token.Amp, token.Question, token.OpenParen, token.CloseParen):
			if s.Is(token.Static) && !s.PrevCode().Is(token.Colon) {
				return true
			}
		case s.Is(token.Colon):
			pc := s.PrevCode()
			return pc.Is(token.CloseParen) && (isParamList(pc.OpenedBy()) || isUseList(pc.OpenedBy()))
		case isModifier(s), s.Is(token.Const):
			return true
		default:
			return false
		}
	}
	return false
}

// lineBreakAfter reports whether a line break follows t, looking past a
// comment on t's line.
func lineBreakAfter(t *token.Token) bool {
	if t.HasNewlineAfter() {
		return true
	}
	n := t.Next()
	return n != nil && n.Kind.IsComment() && n.HasNewlineAfter()
}

// isBlockBrace reports whether open delimits a block of statements or
// declarations.
func isBlockBrace(open *token.Token) bool {
	if !open.Is(token.OpenBrace) || format.IsListBrace(open) {
		return false
	}
	p := open.PrevCode()
	return !p.Is(token.Arrow, token.NullsafeArrow, token.DoubleColon, token.Dollar,
		token.Variable, token.CloseBracket)
}

// controlKeyword returns the control keyword whose condition ends with the
// parenthesis closer, or nil.
func controlKeyword(closer *token.Token) *token.Token {
	if !closer.Is(token.CloseParen) {
		return nil
	}
	kw := closer.OpenedBy().PrevCode()
	if kw.Is(token.If, token.Elseif, token.While, token.For, token.Foreach,
		token.Switch, token.Catch, token.Match, token.Declare) {
		return kw
	}
	return nil
}

func isSwitchBrace(open *token.Token) bool {
	if !open.Is(token.OpenBrace) {
		return false
	}
	return controlKeyword(open.PrevCode()).Is(token.Switch)
}

// isCaseLabel reports whether t is the case or default keyword of a switch
// label.
func isCaseLabel(t *token.Token) bool {
	return t.Is(token.Case, token.Default) && t.StartsStatement() && isSwitchBrace(t.Parent())
}

// isArrayIndex reports whether open is the bracket of an index or offset
// expression rather than an array literal.
func isArrayIndex(open *token.Token) bool {
	return open.Is(token.OpenBracket) &&
		open.PrevCode().Is(token.Variable, token.Name, token.CloseBracket,
			token.CloseParen, token.CloseBrace, token.String)
}

// paramsCloser returns the ")" ending the parameter list of the function
// whose body starts at body, or nil.
func paramsCloser(body *token.Token) *token.Token {
	for p := body.PrevCode(); p != nil && p.Index > body.StatementStart().Index; p = p.PrevCode() {
		if p.Is(token.CloseParen) && isParamList(p.OpenedBy()) {
			return p
		}
	}
	return nil
}

// spansLines reports whether a token of line continues onto another line,
// as heredocs, inline HTML and block comments can.
func spansLines(line []*token.Token) bool {
	for _, t := range line {
		if t.Is(token.StartHeredoc, token.HeredocBody, token.EndHeredoc, token.InlineHTML) {
			return true
		}
		if strings.Contains(t.Text, "\n") {
			return true
		}
	}
	return false
}
