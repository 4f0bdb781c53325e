package token

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned when a document's brackets or heredocs cannot be
// paired.
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes a structural problem at a source position.
type SyntaxError struct {
	Path    string
	Line    int
	Column  int
	Text    string
	Message string
}

func (e *SyntaxError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Text == "" {
		return fmt.Sprintf("%s:%d:%d: %s", path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s near %q", path, e.Line, e.Column, e.Message, e.Text)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func (d *Document) syntaxError(t *Token, format string, args ...any) error {
	return &SyntaxError{
		Path:    d.Path,
		Line:    t.Line,
		Column:  t.Column,
		Text:    t.Text,
		Message: fmt.Sprintf(format, args...),
	}
}

// Link resolves every link of every token in one forward pass: neighbours,
// code neighbours, bracket pairs, parents, siblings, heredoc partners and
// statement boundaries. Whitespace state is left untouched.
func (d *Document) Link() error {
	for i := range d.Tokens {
		t := &d.Tokens[i]
		t.doc = d
		t.Index = i
		t.resetLinks()
	}

	if err := d.linkBrackets(); err != nil {
		return err
	}
	if err := d.linkHeredocs(); err != nil {
		return err
	}
	d.linkStatements()
	return nil
}

func (d *Document) linkBrackets() error {
	lastCode := noLink
	var stack []int
	lastSibling := make(map[int]int)

	for i := range d.Tokens {
		t := &d.Tokens[i]
		if i > 0 {
			t.prev = i - 1
			d.Tokens[i-1].next = i
		}
		if t.Kind == EOF {
			t.prevCode = lastCode
			continue
		}

		t.prevCode = lastCode
		if t.IsCode() {
			for j := lastCode + 1; j < i; j++ {
				d.Tokens[j].nextCode = i
			}
			if lastCode != noLink {
				d.Tokens[lastCode].nextCode = i
			}
			lastCode = i
		}

		parent := noLink
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}

		if t.Kind.IsCloseBracket() {
			if parent == noLink {
				return d.syntaxError(t, "unmatched %s", t.Kind)
			}
			open := &d.Tokens[parent]
			if open.Kind.Closer() != t.Kind {
				return d.syntaxError(t, "%s closes %s opened at %d:%d", t.Kind, open.Kind, open.Line, open.Column)
			}
			stack = stack[:len(stack)-1]
			t.openedBy = parent
			open.closedBy = i
			t.parent = open.parent
			t.Depth = open.Depth
			continue
		}

		t.parent = parent
		t.Depth = len(stack)
		if t.IsCode() {
			if prev, ok := lastSibling[parent]; ok {
				t.prevSib = prev
				d.Tokens[prev].nextSib = i
			}
			lastSibling[parent] = i
		}
		if t.Kind.IsOpenBracket() {
			stack = append(stack, i)
		}
	}

	if len(stack) > 0 {
		open := &d.Tokens[stack[len(stack)-1]]
		return d.syntaxError(open, "unclosed %s", open.Kind)
	}
	return nil
}

func (d *Document) linkHeredocs() error {
	start := noLink
	for i := range d.Tokens {
		t := &d.Tokens[i]
		switch t.Kind {
		case StartHeredoc:
			if start != noLink {
				return d.syntaxError(t, "nested heredoc")
			}
			start = i
		case HeredocBody:
			if start == noLink {
				return d.syntaxError(t, "heredoc body outside heredoc")
			}
			t.heredoc = start
		case EndHeredoc:
			if start == noLink {
				return d.syntaxError(t, "heredoc end without start")
			}
			t.heredoc = start
			d.Tokens[start].heredoc = i
			start = noLink
		}
	}
	if start != noLink {
		return d.syntaxError(&d.Tokens[start], "unterminated heredoc")
	}
	return nil
}

type statement struct {
	members   []int
	caseLabel bool
	ternary   int
}

type frame struct {
	block bool
	cur   *statement
}

// linkStatements assigns statement boundaries with a stack of bracket
// contexts. Parentheses and square brackets continue the statement that
// encloses them; braces start a new context.
func (d *Document) linkStatements() {
	stack := []*frame{{block: true}}

	for i := range d.Tokens {
		t := &d.Tokens[i]
		if !t.IsCode() || t.Kind == EOF {
			continue
		}
		f := stack[len(stack)-1]

		if t.Kind.IsCloseBracket() {
			if f.block {
				d.endStatement(f)
			}
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			f = stack[len(stack)-1]
			if f.cur == nil {
				f.cur = &statement{}
			}
			f.cur.members = append(f.cur.members, i)
			if t.Kind == CloseBrace && f.block && d.structural(f.cur) && !d.continues(t, f.cur) {
				d.endStatement(f)
			}
			continue
		}

		if f.cur == nil {
			f.cur = &statement{}
		}
		s := f.cur
		s.members = append(s.members, i)

		switch {
		case t.Kind == OpenBrace:
			stack = append(stack, &frame{block: true})
		case t.Kind.IsOpenBracket():
			stack = append(stack, &frame{cur: s})
		case !f.block:
		case t.Kind == Semicolon, t.Kind == CloseTag, t.Kind == OpenTag, t.Kind == InlineHTML:
			d.endStatement(f)
		case (t.Kind == Case || t.Kind == Default) && len(s.members) == 1:
			s.caseLabel = true
		case t.Kind == Question && s.caseLabel:
			s.ternary++
		case t.Kind == Colon && s.caseLabel:
			if s.ternary > 0 {
				s.ternary--
			} else {
				d.endStatement(f)
			}
		case t.Kind == Colon && d.endsLabelOrHeader(s):
			d.endStatement(f)
		}
	}

	for _, f := range stack {
		d.endStatement(f)
	}
}

// endsLabelOrHeader reports whether the colon just added to s ends a goto
// label or the header of an alternative-syntax block such as "if ($a):".
func (d *Document) endsLabelOrHeader(s *statement) bool {
	n := len(s.members)
	first := &d.Tokens[s.members[0]]
	if n == 2 {
		return first.Kind == Name || first.Kind == Else
	}
	if n < 4 {
		return false
	}
	switch first.Kind {
	case If, Elseif, While, For, Foreach, Switch, Declare:
		prev := &d.Tokens[s.members[n-2]]
		return prev.Kind == CloseParen && prev.openedBy == s.members[1]
	}
	return false
}

func (d *Document) endStatement(f *frame) {
	s := f.cur
	f.cur = nil
	if s == nil || len(s.members) == 0 {
		return
	}
	first, last := s.members[0], s.members[len(s.members)-1]
	for _, m := range s.members {
		d.Tokens[m].stmtStart = first
		d.Tokens[m].stmtEnd = last
	}
}

// leadingKeyword returns the first member of s that is not part of an
// attribute group.
func (d *Document) leadingKeyword(s *statement) *Token {
	skipUntil := noLink
	for _, m := range s.members {
		if skipUntil != noLink {
			if m == skipUntil {
				skipUntil = noLink
			}
			continue
		}
		t := &d.Tokens[m]
		if t.Kind == Attribute {
			skipUntil = t.closedBy
			continue
		}
		return t
	}
	return nil
}

// structural reports whether a closing brace at the statement's own level
// ends the statement.
func (d *Document) structural(s *statement) bool {
	t := d.leadingKeyword(s)
	if t == nil {
		return false
	}
	switch t.Kind {
	case If, Else, Elseif, While, For, Foreach, Switch, Try, Catch, Finally, Do,
		Declare, Namespace, Class, Interface, Trait, Enum, Use, OpenBrace,
		Abstract, Final, Readonly, Public, Protected, Private, Static, Var:
		return true
	case Function:
		n := t.NextCode()
		if n.Is(Amp) {
			n = n.NextCode()
		}
		return n.Is(Name)
	default:
		return false
	}
}

// continues reports whether the statement goes on after the brace closer.
func (d *Document) continues(closer *Token, s *statement) bool {
	next := closer.NextCode()
	if next == nil {
		return false
	}
	switch next.Kind {
	case Else, Elseif, Catch, Finally:
		return true
	case While:
		return d.leadingKeyword(s).Is(Do)
	case Semicolon:
		return d.leadingKeyword(s).Is(Use)
	default:
		return false
	}
}
