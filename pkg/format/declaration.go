package format

import (
	"github.com/tidwall/btree"

	"github.com/yaklabco/phpfmt/pkg/token"
)

// DeclarationKind classifies a declaration.
type DeclarationKind int

// Declaration kinds.
const (
	DeclFunction  DeclarationKind = iota + 1 // named function or method
	DeclClass                                // class, interface, trait or enum
	DeclProperty                             // property, with modifiers
	DeclConst                                // class or global constant
	DeclUse                                  // import or trait use
	DeclNamespace                            // namespace statement
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclProperty:
		return "property"
	case DeclConst:
		return "const"
	case DeclUse:
		return "use"
	case DeclNamespace:
		return "namespace"
	default:
		return "none"
	}
}

// Declaration is a view over the header of one declaration: its doc
// comment, attributes, modifiers and keyword.
type Declaration struct {
	Kind DeclarationKind

	// First is the first token of the declaration, which may be a doc
	// comment.
	First *token.Token

	// Start is the first code token of the declaration statement.
	Start *token.Token

	// Keyword is the declaration keyword, or the property variable.
	Keyword *token.Token

	// Modifiers lists modifier keywords in source order.
	Modifiers []token.Kind

	// Body is the open brace of a function or class body, or nil.
	Body *token.Token

	docComment  *token.Token
	blankBefore bool
}

// HasDocComment reports whether a doc comment precedes the declaration.
func (d *Declaration) HasDocComment() bool { return d.docComment != nil }

// DocComment returns the doc comment preceding the declaration, or nil.
func (d *Declaration) DocComment() *token.Token { return d.docComment }

// HasBlankBefore reports whether a blank line preceded the declaration when
// the view was built.
func (d *Declaration) HasBlankBefore() bool { return d.blankBefore }

// HasModifier reports whether kind is one of the declaration's modifiers.
func (d *Declaration) HasModifier(kind token.Kind) bool {
	for _, m := range d.Modifiers {
		if m == kind {
			return true
		}
	}
	return false
}

// Collapsible reports whether the body of the declaration may stay on the
// declaration's line.
func (d *Declaration) Collapsible() bool {
	return d.Kind == DeclFunction && d.Body != nil && !d.HasDocComment()
}

// declarations memoizes Declaration views for one run. Entries are keyed by
// the index of the last token of their header, so a change to any token can
// find the entry covering it with a single seek.
type declarations struct {
	doc        *token.Document
	generation int
	tree       btree.Map[int, *Declaration]
}

func newDeclarations(doc *token.Document) *declarations {
	return &declarations{doc: doc, generation: doc.Generation()}
}

// sync discards every entry if the document has been reordered.
func (m *declarations) sync() {
	if g := m.doc.Generation(); g != m.generation {
		m.tree.Clear()
		m.generation = g
	}
}

// invalidate drops the entry whose header contains t.
func (m *declarations) invalidate(t *token.Token) {
	if m.tree.Len() == 0 {
		return
	}
	iter := m.tree.Iter()
	if !iter.Seek(t.Index) {
		return
	}
	if iter.Value().First.Index <= t.Index {
		m.tree.Delete(iter.Key())
	}
}

// get returns the declaration starting at the statement start t.
func (m *declarations) get(t *token.Token) *Declaration {
	m.sync()
	iter := m.tree.Iter()
	if iter.Seek(t.Index) {
		if d := iter.Value(); d.Start == t {
			return d
		}
	}
	d := buildDeclaration(t)
	if d == nil {
		return nil
	}
	m.tree.Set(d.Keyword.Index, d)
	return d
}

func buildDeclaration(start *token.Token) *Declaration {
	if start == nil || !start.IsCode() || !start.StartsStatement() {
		return nil
	}

	d := &Declaration{Start: start, First: start}
	t := start
	for t != nil {
		switch {
		case t.Kind == token.Attribute:
			t = t.ClosedBy().NextCode()
			continue
		case t.Is(token.Abstract, token.Final, token.Public, token.Protected,
			token.Private, token.Static, token.Readonly, token.Var):
			d.Modifiers = append(d.Modifiers, t.Kind)
			t = t.NextCode()
			continue
		}
		break
	}
	if t == nil {
		return nil
	}
	d.Keyword = t

	switch t.Kind {
	case token.Function:
		n := t.NextCode()
		if n.Is(token.Amp) {
			n = n.NextCode()
		}
		if !n.Is(token.Name) {
			return nil
		}
		d.Kind = DeclFunction
		d.Body = bodyOf(t)
	case token.Class, token.Interface, token.Trait, token.Enum:
		d.Kind = DeclClass
		d.Body = bodyOf(t)
	case token.Const:
		d.Kind = DeclConst
	case token.Use:
		d.Kind = DeclUse
	case token.Namespace:
		d.Kind = DeclNamespace
	default:
		if len(d.Modifiers) == 0 {
			return nil
		}
		d.Kind = DeclProperty
	}

	if p := start.Prev(); p != nil && p.Kind == token.DocComment {
		d.docComment = p
		d.First = p
	}
	d.blankBefore = d.First.HasBlankBefore()
	return d
}

// bodyOf returns the open brace that follows keyword at the same level, or
// nil when the statement ends first.
func bodyOf(keyword *token.Token) *token.Token {
	for t := keyword.NextSibling(); t != nil; t = t.NextSibling() {
		switch t.Kind {
		case token.OpenBrace:
			return t
		case token.Semicolon:
			return nil
		}
	}
	return nil
}
