// Package format provides the rule pipeline, the renderer and the file
// pipeline of phpfmt.
package format

import "github.com/yaklabco/phpfmt/pkg/token"

// Method names one stage of the rule pipeline.
type Method int

// Pipeline stages, in the order they run.
const (
	// MethodTokens visits the tokens a rule subscribes to, left to right.
	MethodTokens Method = iota
	// MethodList visits every bracketed, comma-delimited list.
	MethodList
	// MethodBlock visits every run of consecutive non-blank output lines.
	MethodBlock
	// MethodBeforeRender visits the whole document once.
	MethodBeforeRender
)

func (m Method) String() string {
	switch m {
	case MethodTokens:
		return "tokens"
	case MethodList:
		return "list"
	case MethodBlock:
		return "block"
	case MethodBeforeRender:
		return "before-render"
	default:
		return "unknown"
	}
}

// Rule is implemented by every formatting rule. A rule also implements one or
// more of TokenRule, ListRule, BlockRule and DocumentRule; the pipeline calls
// each of those methods in ascending priority order, breaking ties by name.
type Rule interface {
	// Name returns the unique, kebab-case name of the rule.
	Name() string

	// Description returns a one-line description of the rule.
	Description() string

	// Priority returns the priority of method m. A false second result
	// disables the method for this run.
	Priority(m Method) (int, bool)
}

// TokenRule is a rule that inspects individual tokens.
type TokenRule interface {
	Rule

	// Kinds returns the token kinds the rule wants to see, or nil for all.
	Kinds() []token.Kind

	// ProcessTokens receives every subscribed token in document order.
	ProcessTokens(tokens []*token.Token)
}

// ListRule is a rule that inspects comma-delimited lists.
type ListRule interface {
	Rule

	// ProcessList receives the open bracket of a list and the first code
	// token of each item.
	ProcessList(parent *token.Token, items []*token.Token)
}

// BlockRule is a rule that inspects runs of consecutive output lines.
type BlockRule interface {
	Rule

	// ProcessBlock receives the tokens of each line in a block.
	ProcessBlock(lines [][]*token.Token)
}

// DocumentRule is a rule that runs once over the whole document before it is
// rendered.
type DocumentRule interface {
	Rule

	// BeforeRender receives every token in document order.
	BeforeRender(tokens []*token.Token)
}

// BaseRule provides Name and Description. Embed it in rule implementations.
type BaseRule struct {
	name string
	desc string
}

// NewBaseRule creates a BaseRule.
func NewBaseRule(name, desc string) BaseRule {
	return BaseRule{name: name, desc: desc}
}

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.name }

// Description returns the rule description.
func (r *BaseRule) Description() string { return r.desc }
