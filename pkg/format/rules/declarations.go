package rules

import (
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// DeclarationSpacingRule separates functions and classes from what comes
// before them, and namespace and import sections from what follows them,
// with a blank line. Consecutive abstract method signatures stay together.
type DeclarationSpacingRule struct {
	format.BaseRule
	ctx *format.Context
}

// NewDeclarationSpacingRule creates the declaration spacing rule.
func NewDeclarationSpacingRule(ctx *format.Context) *DeclarationSpacingRule {
	return &DeclarationSpacingRule{
		BaseRule: format.NewBaseRule(
			"declaration-spacing",
			"Put blank lines around function, class, namespace and import declarations",
		),
		ctx: ctx,
	}
}

// Priority implements format.Rule.
func (r *DeclarationSpacingRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodBeforeRender, 200, true)(m)
}

// BeforeRender implements format.DocumentRule.
func (r *DeclarationSpacingRule) BeforeRender(tokens []*token.Token) {
	for _, t := range tokens {
		if !t.IsCode() || t.Kind == token.EOF || !t.StartsStatement() {
			continue
		}
		d := r.ctx.Declaration(t)
		if d == nil {
			continue
		}
		switch d.Kind {
		case format.DeclFunction, format.DeclClass:
			if !r.continuesAbstractRun(d) {
				blankBefore(d.First)
			}
		case format.DeclNamespace:
			if end := t.StatementEnd(); end.Is(token.Semicolon) {
				blankAfter(end)
			}
		case format.DeclUse:
			end := t.StatementEnd()
			if next := end.NextCode(); next != nil && next.StartsStatement() {
				if nd := r.ctx.Declaration(next); nd != nil && nd.Kind == format.DeclUse {
					continue
				}
			}
			blankAfter(end)
		}
	}
}

// continuesAbstractRun reports whether d is an abstract method signature
// directly following another one.
func (r *DeclarationSpacingRule) continuesAbstractRun(d *format.Declaration) bool {
	if !isAbstractSignature(d) || d.HasDocComment() {
		return false
	}
	prev := d.First.PrevCode()
	if prev == nil || !prev.Is(token.Semicolon) {
		return false
	}
	return isAbstractSignature(r.ctx.Declaration(prev.StatementStart()))
}

func isAbstractSignature(d *format.Declaration) bool {
	return d != nil && d.Kind == format.DeclFunction && d.Body == nil && d.HasModifier(token.Abstract)
}

// blankBefore puts a blank line before first and the comments on their own
// lines directly above it, unless they open their block.
func blankBefore(first *token.Token) {
	target := first
	for p := target.Prev(); p != nil && p.Kind.IsComment() && p.IsFirstOnLine(); p = target.Prev() {
		target = p
	}
	prev := target.PrevCode()
	if prev == nil || target.Prev() == nil || prev.Is(token.OpenBrace, token.OpenTag) {
		return
	}
	target.AddBefore(token.Blank)
}

// blankAfter puts a blank line after the statement ending at end, past any
// comment on the same line, unless the block or file ends there.
func blankAfter(end *token.Token) {
	target := end.Next()
	for target != nil && target.Kind.IsComment() && !target.IsFirstOnLine() {
		target = target.Next()
	}
	if target == nil || target.Is(token.EOF, token.CloseBrace, token.CloseTag) {
		return
	}
	target.AddBefore(token.Blank)
}
