package format

import (
	"fmt"

	"github.com/yaklabco/phpfmt/pkg/token"
)

// Problem is a non-fatal issue found while formatting. Problems never stop a
// run; they are returned alongside the formatted text.
type Problem struct {
	// Rule is the name of the rule that reported the problem.
	Rule string

	// Message is a fmt template; Args are its arguments.
	Message string
	Args    []any

	// Filename is the path of the document.
	Filename string

	// Start is the first token the problem applies to.
	Start *token.Token

	// End is the last token the problem applies to (may be nil).
	End *token.Token
}

// Text returns the formatted message.
func (p Problem) Text() string {
	if len(p.Args) == 0 {
		return p.Message
	}
	return fmt.Sprintf(p.Message, p.Args...)
}

// Line returns the source line of the start token, or 0.
func (p Problem) Line() int {
	if p.Start == nil {
		return 0
	}
	return p.Start.Line
}

// Column returns the source column of the start token, or 0.
func (p Problem) Column() int {
	if p.Start == nil {
		return 0
	}
	return p.Start.Column
}

// EndLine returns the source line on which the problem ends.
func (p Problem) EndLine() int {
	if p.End == nil {
		return p.Line()
	}
	return p.End.EndLine()
}

func (p Problem) String() string {
	name := p.Filename
	if name == "" {
		name = "<input>"
	}
	s := fmt.Sprintf("%s:%d:%d: %s", name, p.Line(), p.Column(), p.Text())
	if p.Rule != "" {
		s += " (" + p.Rule + ")"
	}
	return s
}

// ProblemBuilder helps construct Problem values.
type ProblemBuilder struct {
	p Problem
}

// NewProblem starts a problem at start.
func NewProblem(start *token.Token, message string, args ...any) *ProblemBuilder {
	p := Problem{Message: message, Args: args, Start: start}
	if start != nil && start.Document() != nil {
		p.Filename = start.Document().Path
	}
	return &ProblemBuilder{p: p}
}

// WithEnd sets the last token of the problem.
func (b *ProblemBuilder) WithEnd(end *token.Token) *ProblemBuilder {
	b.p.End = end
	return b
}

// WithRule sets the reporting rule.
func (b *ProblemBuilder) WithRule(name string) *ProblemBuilder {
	b.p.Rule = name
	return b
}

// Build returns the constructed Problem.
func (b *ProblemBuilder) Build() Problem {
	return b.p
}
