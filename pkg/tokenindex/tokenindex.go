// Package tokenindex provides immutable category-membership tables for token
// kinds. Formatting rules consult an Index instead of hard-coding kinds, so
// presets can restyle output by editing data.
package tokenindex

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/yaklabco/phpfmt/pkg/token"
)

// ErrUnknownPreset is returned for a preset name with no override table.
var ErrUnknownPreset = errors.New("unknown preset")

// Category names a set of token kinds.
type Category uint8

// Categories consulted by the formatting rules.
const (
	Keyword Category = iota
	ControlKeyword
	DeclarationKeyword
	Modifier
	Operator
	AssignmentOperator
	ComparisonOperator
	ArithmeticOperator
	BitwiseOperator
	LogicalOperator
	UnaryOperator
	MaybeUnary
	ChainOperator

	// Spacing.
	SpaceAfter
	SpaceBefore
	SpaceBeforeParen
	SpaceInsideParens
	NoSpaceAfter
	NoSpaceBefore

	// Line breaks.
	PreserveNewlineBefore
	PreserveNewlineAfter
	PreserveBlankBefore
	PreserveBlankAfter
	DeclarationBraceOnNewLine

	NumCategories
)

var categoryNames = [NumCategories]string{
	Keyword:                   "keyword",
	ControlKeyword:            "control-keyword",
	DeclarationKeyword:        "declaration-keyword",
	Modifier:                  "modifier",
	Operator:                  "operator",
	AssignmentOperator:        "assignment-operator",
	ComparisonOperator:        "comparison-operator",
	ArithmeticOperator:        "arithmetic-operator",
	BitwiseOperator:           "bitwise-operator",
	LogicalOperator:           "logical-operator",
	UnaryOperator:             "unary-operator",
	MaybeUnary:                "maybe-unary",
	ChainOperator:             "chain-operator",
	SpaceAfter:                "space-after",
	SpaceBefore:               "space-before",
	SpaceBeforeParen:          "space-before-paren",
	SpaceInsideParens:         "space-inside-parens",
	NoSpaceAfter:              "no-space-after",
	NoSpaceBefore:             "no-space-before",
	PreserveNewlineBefore:     "preserve-newline-before",
	PreserveNewlineAfter:      "preserve-newline-after",
	PreserveBlankBefore:       "preserve-blank-before",
	PreserveBlankAfter:        "preserve-blank-after",
	DeclarationBraceOnNewLine: "declaration-brace-on-new-line",
}

func (c Category) String() string {
	if c < NumCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("tokenindex.Category(%d)", int(c))
}

// Index is an immutable table of category membership. It is safe for
// concurrent use.
type Index struct {
	name  string
	table [NumCategories][token.NumKinds]bool
}

// Name returns the preset the index was built for, or "" for the base table.
func (x *Index) Name() string { return x.name }

// Is reports whether kind belongs to category c.
func (x *Index) Is(c Category, kind token.Kind) bool {
	if c >= NumCategories || kind >= token.NumKinds {
		return false
	}
	return x.table[c][kind]
}

// Any reports whether kind belongs to at least one of the categories.
func (x *Index) Any(kind token.Kind, cs ...Category) bool {
	for _, c := range cs {
		if x.Is(c, kind) {
			return true
		}
	}
	return false
}

// Known reports whether the formatter understands kind.
func (x *Index) Known(kind token.Kind) bool {
	return kind.Valid()
}

// Kinds returns the members of category c in kind order.
func (x *Index) Kinds(c Category) []token.Kind {
	var out []token.Kind
	for k := token.Kind(0); k < token.NumKinds; k++ {
		if x.Is(c, k) {
			out = append(out, k)
		}
	}
	return out
}

// Op is a single override applied on top of the base table.
type Op struct {
	Remove   bool
	Category Category
	Kinds    []token.Kind
}

// Add returns an override adding kinds to c.
func Add(c Category, kinds ...token.Kind) Op { return Op{Category: c, Kinds: kinds} }

// Remove returns an override removing kinds from c.
func Remove(c Category, kinds ...token.Kind) Op {
	return Op{Remove: true, Category: c, Kinds: kinds}
}

// Builder derives an Index from the base table and ordered overrides.
type Builder struct {
	name string
	ops  []Op
}

// NewBuilder returns a builder starting from the base table.
func NewBuilder() *Builder { return &Builder{} }

// Named sets the name reported by the built index.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Add appends an override adding kinds to c.
func (b *Builder) Add(c Category, kinds ...token.Kind) *Builder {
	b.ops = append(b.ops, Add(c, kinds...))
	return b
}

// Remove appends an override removing kinds from c.
func (b *Builder) Remove(c Category, kinds ...token.Kind) *Builder {
	b.ops = append(b.ops, Remove(c, kinds...))
	return b
}

// Apply appends ops in order.
func (b *Builder) Apply(ops ...Op) *Builder {
	b.ops = append(b.ops, ops...)
	return b
}

// Build returns a new Index. The builder may be reused.
func (b *Builder) Build() *Index {
	x := &Index{name: b.name}
	for c, kinds := range base {
		for _, k := range kinds {
			x.table[c][k] = true
		}
	}
	for _, op := range b.ops {
		for _, k := range op.Kinds {
			x.table[op.Category][k] = !op.Remove
		}
	}
	return x
}

var (
	defaultOnce  sync.Once
	defaultIndex *Index

	presetMu    sync.Mutex
	presetCache = map[string]*Index{}
)

// Default returns the shared base index.
func Default() *Index {
	defaultOnce.Do(func() {
		defaultIndex = NewBuilder().Build()
	})
	return defaultIndex
}

// ForPreset returns the shared index for a preset. The empty name and
// "psr12" select the base table.
func ForPreset(name string) (*Index, error) {
	if name == "" || name == PresetPSR12 {
		return Default(), nil
	}
	ops, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPreset, name, PresetNames())
	}

	presetMu.Lock()
	defer presetMu.Unlock()
	if x, ok := presetCache[name]; ok {
		return x, nil
	}
	x := NewBuilder().Named(name).Apply(ops...).Build()
	presetCache[name] = x
	return x, nil
}

// PresetNames returns the known preset names, sorted.
func PresetNames() []string {
	names := []string{PresetPSR12}
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
