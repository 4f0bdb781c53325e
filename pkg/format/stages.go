package format

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/phpfmt/internal/logging"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// pipeline runs the four rule stages over one document.
type pipeline struct {
	ctx   *Context
	rules []Rule
}

func newPipeline(ctx *Context, rules []Rule) *pipeline {
	return &pipeline{ctx: ctx, rules: rules}
}

// Ordered returns the rules enabled for m, in invocation order: ascending
// priority, then name.
func Ordered(rules []Rule, m Method) []Rule {
	type entry struct {
		rule     Rule
		priority int
	}
	var entries []entry
	for _, r := range rules {
		if !implements(r, m) {
			continue
		}
		if prio, ok := r.Priority(m); ok {
			entries = append(entries, entry{r, prio})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.rule.Name(), b.rule.Name())
	})

	out := make([]Rule, len(entries))
	for i, e := range entries {
		out[i] = e.rule
	}
	return out
}

func implements(r Rule, m Method) bool {
	var ok bool
	switch m {
	case MethodTokens:
		_, ok = r.(TokenRule)
	case MethodList:
		_, ok = r.(ListRule)
	case MethodBlock:
		_, ok = r.(BlockRule)
	case MethodBeforeRender:
		_, ok = r.(DocumentRule)
	}
	return ok
}

func (p *pipeline) run() error {
	stages := []struct {
		method Method
		run    func([]Rule)
	}{
		{MethodTokens, p.runTokens},
		{MethodList, p.runLists},
		{MethodBlock, p.runBlocks},
		{MethodBeforeRender, p.runDocument},
	}

	for _, stage := range stages {
		if p.ctx.Cancelled() {
			return fmt.Errorf("format %s: %w", p.ctx.Path(), p.ctx.Ctx.Err())
		}
		rules := Ordered(p.rules, stage.method)
		if len(rules) == 0 {
			continue
		}
		started := time.Now()
		stage.run(rules)
		if p.ctx.Config.Debug {
			p.ctx.Logger.Debug("stage complete",
				logging.FieldStage, stage.method,
				logging.FieldRules, ruleNames(rules),
				logging.FieldElapsed, time.Since(started))
		}
	}
	return nil
}

func ruleNames(rules []Rule) string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name()
	}
	return strings.Join(names, ",")
}

func (p *pipeline) runTokens(rules []Rule) {
	var all []*token.Token
	byKind := make(map[token.Kind][]*token.Token)
	for t := range p.ctx.Doc.All() {
		if t.Kind == token.EOF {
			continue
		}
		all = append(all, t)
		byKind[t.Kind] = append(byKind[t.Kind], t)
	}

	for _, r := range rules {
		tr, _ := r.(TokenRule)
		kinds := tr.Kinds()
		if kinds == nil {
			tr.ProcessTokens(all)
			continue
		}
		tr.ProcessTokens(subscribed(byKind, kinds))
	}
}

// subscribed merges the tokens of each kind into document order.
func subscribed(byKind map[token.Kind][]*token.Token, kinds []token.Kind) []*token.Token {
	var out []*token.Token
	seen := make(map[token.Kind]bool, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, byKind[k]...)
	}
	if len(seen) > 1 {
		slices.SortFunc(out, func(a, b *token.Token) int { return cmp.Compare(a.Index, b.Index) })
	}
	return out
}

// List is a bracketed list and the first code token of each of its items.
type List struct {
	Open  *token.Token
	Items []*token.Token
}

// Lists returns every non-empty list in doc, in document order. Lists are
// the contents of parentheses and square brackets, match arms, and grouped
// imports.
func Lists(doc *token.Document) []List {
	var out []List
	for t := range doc.All() {
		if !t.Is(token.OpenParen, token.OpenBracket) && !IsListBrace(t) {
			continue
		}
		first := t.NextCode()
		if first == nil || first == t.ClosedBy() {
			continue
		}
		items := []*token.Token{first}
		for s := first; s != nil; s = s.NextSibling() {
			if s.Kind != token.Comma {
				continue
			}
			if n := s.NextSibling(); n != nil {
				items = append(items, n)
			}
		}
		out = append(out, List{Open: t, Items: items})
	}
	return out
}

// IsListBrace reports whether open is the brace of a match expression or of
// a grouped import.
func IsListBrace(open *token.Token) bool {
	if open.Kind != token.OpenBrace {
		return false
	}
	prev := open.PrevCode()
	switch {
	case prev == nil:
		return false
	case prev.Kind == token.CloseParen:
		return prev.OpenedBy().PrevCode().Is(token.Match)
	case prev.Kind == token.Name:
		return strings.HasSuffix(prev.Text, "\\")
	default:
		return false
	}
}

func (p *pipeline) runLists(rules []Rule) {
	lists := Lists(p.ctx.Doc)
	for _, r := range rules {
		lr, _ := r.(ListRule)
		for _, l := range lists {
			lr.ProcessList(l.Open, l.Items)
		}
	}
}

// Lines splits doc into output lines using the line breaks decided so far.
// The EOF token is not included.
func Lines(doc *token.Document) [][]*token.Token {
	var lines [][]*token.Token
	var cur []*token.Token
	for t := range doc.All() {
		if t.Kind == token.EOF {
			break
		}
		if len(cur) > 0 && StartsLine(t) {
			lines = append(lines, cur)
			cur = nil
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// StartsLine reports whether t is rendered at the start of a line, either
// because a line break precedes it or because the previous token's text ends
// with one.
func StartsLine(t *token.Token) bool {
	if t.IsFirstOnLine() {
		return true
	}
	return strings.HasSuffix(t.Prev().Text, "\n")
}

// Blocks groups lines into runs separated by blank lines.
func Blocks(lines [][]*token.Token) [][][]*token.Token {
	var blocks [][][]*token.Token
	var cur [][]*token.Token
	for _, line := range lines {
		if len(cur) > 0 && line[0].HasBlankBefore() {
			blocks = append(blocks, cur)
			cur = nil
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func (p *pipeline) runBlocks(rules []Rule) {
	blocks := Blocks(Lines(p.ctx.Doc))
	for _, r := range rules {
		br, _ := r.(BlockRule)
		for _, b := range blocks {
			br.ProcessBlock(b)
		}
	}
}

func (p *pipeline) runDocument(rules []Rule) {
	for _, r := range rules {
		dr, _ := r.(DocumentRule)
		// Pointers are fetched per rule: a rule may reorder the document.
		dr.BeforeRender(p.ctx.Doc.Pointers())
	}
}
