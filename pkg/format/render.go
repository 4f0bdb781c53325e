package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// InvariantError reports a structural invariant broken by the time a
// document is rendered. It indicates a bug in a rule, not in the input.
type InvariantError struct {
	Token   *token.Token
	Message string
}

func (e *InvariantError) Error() string {
	if e.Token == nil {
		return "invariant violated: " + e.Message
	}
	return fmt.Sprintf("invariant violated at %d:%d (%s): %s",
		e.Token.Line, e.Token.Column, e.Token.Kind, e.Message)
}

// Render produces the formatted text of doc and records the output position
// of every token. It panics with an *InvariantError if an open bracket has
// no partner.
func Render(doc *token.Document, cfg *config.Config) string {
	r := &renderer{
		cfg:  cfg,
		unit: cfg.IndentUnit(),
		line: 1,
		col:  1,
	}

	var last *token.Token
	for t := range doc.All() {
		if t.Kind == token.EOF {
			break
		}
		if t.Kind.IsOpenBracket() && t.ClosedBy() == nil {
			panic(&InvariantError{Token: t, Message: "open bracket without partner"})
		}
		if last != nil {
			r.gap(last, t)
		}
		t.OutputLine, t.OutputColumn = r.line, r.col
		r.token(t)
		last = t
	}

	if last != nil && !last.Is(token.InlineHTML, token.CloseTag) && !strings.HasSuffix(r.b.String(), "\n") {
		r.write("\n")
	}
	return r.b.String()
}

// lineEnding returns "\r\n" when every line break in tokens is a CRLF pair,
// and "\n" otherwise.
func lineEnding(tokens []token.Token) string {
	crlf := false
	for i := range tokens {
		text := tokens[i].Text
		n := strings.Count(text, "\n")
		if n == 0 {
			continue
		}
		if strings.Count(text, "\r\n") != n {
			return "\n"
		}
		crlf = true
	}
	if crlf {
		return "\r\n"
	}
	return "\n"
}

// withLineEnding rewrites the line breaks of rendered text to eol.
func withLineEnding(text, eol string) string {
	if eol == "\n" {
		return text
	}
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", eol)
}

type renderer struct {
	cfg  *config.Config
	unit string
	b    strings.Builder

	line, col int
	indent    string // indentation of the current output line
}

func (r *renderer) write(s string) {
	r.b.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		r.line += strings.Count(s, "\n")
		r.col = 1 + utf8.RuneCountInString(s[i+1:])
		return
	}
	r.col += utf8.RuneCountInString(s)
}

func (r *renderer) gap(prev, t *token.Token) {
	if strings.HasSuffix(prev.Text, "\n") && prev.Suffix == "" {
		// The line break is part of the previous token.
		r.indent = ""
		return
	}

	ws := t.Gap()
	switch {
	case ws.Has(token.Blank):
		r.indent = strings.Repeat(r.unit, t.Indent)
		r.write("\n\n" + r.indent)
	case ws.Has(token.Line):
		r.indent = strings.Repeat(r.unit, t.Indent)
		r.write("\n" + r.indent)
	case ws.Any(token.Space | token.Tab):
		r.write(" " + strings.Repeat(" ", max(t.Padding, 0)))
	}
}

func (r *renderer) token(t *token.Token) {
	switch t.Kind {
	case token.Comment, token.DocComment:
		r.write(r.comment(t))
	case token.HeredocBody:
		r.write(r.heredocBody(t))
	case token.EndHeredoc:
		r.write(r.heredocEnd(t))
	default:
		r.write(t.Text)
	}
	r.write(t.Suffix)
}

// comment re-indents the continuation lines of a block comment.
func (r *renderer) comment(t *token.Token) string {
	if !strings.HasPrefix(t.Text, "/*") || !strings.Contains(t.Text, "\n") {
		return t.Text
	}
	lines := strings.Split(t.Text, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case trimmed == "":
			lines[i] = ""
		case strings.HasPrefix(trimmed, "*"):
			lines[i] = r.indent + " " + trimmed
		case t.OriginalIndent != "" && strings.HasPrefix(line, t.OriginalIndent):
			lines[i] = r.indent + line[len(t.OriginalIndent):]
		}
	}
	return strings.Join(lines, "\n")
}

// heredocIndents returns the original and the new indentation of the
// heredoc that t belongs to.
func (r *renderer) heredocIndents(t *token.Token) (orig, repl string, ok bool) {
	if r.cfg.HeredocIndent == config.HeredocNone {
		return "", "", false
	}
	end := t
	if t.Kind != token.EndHeredoc {
		end = t.Heredoc().Heredoc()
	}
	if end == nil {
		return "", "", false
	}
	label := strings.TrimLeft(end.Text, " \t")
	orig = end.Text[:len(end.Text)-len(label)]
	repl = strings.Repeat(r.unit, end.Indent)
	return orig, repl, true
}

func (r *renderer) heredocBody(t *token.Token) string {
	orig, repl, ok := r.heredocIndents(t)
	if !ok {
		return t.Text
	}
	atLineStart := strings.HasSuffix(t.Prev().Text, "\n")
	lines := strings.Split(t.Text, "\n")
	for i, line := range lines {
		if i == 0 && !atLineStart {
			continue
		}
		if i == len(lines)-1 && line == "" {
			break
		}
		if strings.TrimLeft(line, " \t") == "" && len(line) <= len(orig) {
			lines[i] = ""
			continue
		}
		lines[i] = repl + strings.TrimPrefix(line, orig)
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) heredocEnd(t *token.Token) string {
	_, repl, ok := r.heredocIndents(t)
	if !ok {
		return t.Text
	}
	return repl + strings.TrimLeft(t.Text, " \t")
}
