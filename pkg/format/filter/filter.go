// Package filter normalizes a raw token stream before it is linked.
package filter

import (
	"strings"

	"github.com/yaklabco/phpfmt/pkg/token"
)

// Filter transforms a token slice. Filters run once per document, in order,
// before any links exist.
type Filter interface {
	Name() string
	Apply(tokens []token.Token) []token.Token
}

// Default returns the filters every document passes through.
func Default(tabSize int) []Filter {
	return []Filter{
		CollectColumn{TabSize: tabSize},
		RemoveWhitespace{},
		TrimCasts{},
		NormalizeComments{},
	}
}

// Run applies filters in order.
func Run(tokens []token.Token, filters ...Filter) []token.Token {
	for _, f := range filters {
		tokens = f.Apply(tokens)
	}
	return tokens
}

// CollectColumn records each token's tab-expanded column and, for the first
// token on a line, the line's original indentation.
type CollectColumn struct {
	TabSize int
}

// Name implements [Filter].
func (CollectColumn) Name() string { return "collect-column" }

// Apply implements [Filter].
func (f CollectColumn) Apply(tokens []token.Token) []token.Token {
	tabSize := f.TabSize
	if tabSize <= 0 {
		tabSize = 4
	}

	col := 1
	atLineStart := true
	indent := ""
	for i := range tokens {
		t := &tokens[i]
		t.ExpandedColumn = col

		if t.Kind == token.WhitespaceRun {
			if nl := strings.LastIndexByte(t.Text, '\n'); nl >= 0 {
				atLineStart = true
				indent = t.Text[nl+1:]
			} else if atLineStart {
				indent += t.Text
			}
		} else {
			if atLineStart {
				t.OriginalIndent = indent
				atLineStart = false
			}
			if strings.HasSuffix(t.Text, "\n") {
				atLineStart = true
				indent = ""
			}
		}

		for _, r := range t.Text {
			switch r {
			case '\n':
				col = 1
			case '\t':
				col += tabSize - (col-1)%tabSize
			default:
				col++
			}
		}
	}
	return tokens
}

// RemoveWhitespace drops whitespace tokens, keeping their text on the
// following token.
type RemoveWhitespace struct{}

// Name implements [Filter].
func (RemoveWhitespace) Name() string { return "remove-whitespace" }

// Apply implements [Filter].
func (RemoveWhitespace) Apply(tokens []token.Token) []token.Token {
	out := tokens[:0]
	pending := ""
	for _, t := range tokens {
		if t.Kind == token.WhitespaceRun {
			pending += t.Text
			continue
		}
		t.OriginalWhitespace = pending
		pending = ""
		out = append(out, t)
	}
	return out
}

// TrimCasts removes whitespace inside casts and lower-cases them.
type TrimCasts struct{}

// Name implements [Filter].
func (TrimCasts) Name() string { return "trim-casts" }

// Apply implements [Filter].
func (TrimCasts) Apply(tokens []token.Token) []token.Token {
	for i := range tokens {
		t := &tokens[i]
		if t.Kind != token.Cast {
			continue
		}
		inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(t.Text, "("), ")"))
		t.Text = "(" + strings.ToLower(inner) + ")"
	}
	return tokens
}

// NormalizeComments trims trailing whitespace from every comment line and
// rewrites shell-style line comments as "//" comments.
type NormalizeComments struct{}

// Name implements [Filter].
func (NormalizeComments) Name() string { return "normalize-comments" }

// Apply implements [Filter].
func (NormalizeComments) Apply(tokens []token.Token) []token.Token {
	for i := range tokens {
		t := &tokens[i]
		if !t.Kind.IsComment() {
			continue
		}
		text := t.Text
		if strings.HasPrefix(text, "#") && !strings.HasPrefix(text, "#[") {
			text = "//" + text[1:]
		}
		lines := strings.Split(text, "\n")
		for j, line := range lines {
			lines[j] = strings.TrimRight(line, " \t\r")
		}
		t.Text = strings.Join(lines, "\n")
	}
	return tokens
}
