package token

import (
	"fmt"
	"iter"
)

// Document is the token arena of one source file.
//
// Tokens are never added or removed once a document is created, so pointers
// returned by its accessors stay valid until [Document.Reorder] permutes them.
type Document struct {
	// Path is the file name reported in problems and errors.
	Path string

	// Tokens holds every token in source order.
	Tokens []Token

	generation int
	onChange   func(*Token)
}

// NewDocument copies tokens into a new document and assigns indices. Links
// are resolved separately by [Document.Link].
func NewDocument(path string, tokens []Token) *Document {
	doc := &Document{Path: path, Tokens: make([]Token, len(tokens))}
	copy(doc.Tokens, tokens)
	for i := range doc.Tokens {
		t := &doc.Tokens[i]
		t.doc = doc
		t.Index = i
		t.before = newSide()
		t.after = newSide()
		t.resetLinks()
	}
	return doc
}

// Len returns the number of tokens.
func (d *Document) Len() int { return len(d.Tokens) }

// At returns the token at index i, or nil when i is out of range.
func (d *Document) At(i int) *Token {
	if i < 0 || i >= len(d.Tokens) {
		return nil
	}
	return &d.Tokens[i]
}

// First returns the first token, or nil for an empty document.
func (d *Document) First() *Token { return d.At(0) }

// Last returns the last token, or nil for an empty document.
func (d *Document) Last() *Token { return d.At(len(d.Tokens) - 1) }

// All iterates over every token in index order.
func (d *Document) All() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for i := range d.Tokens {
			if !yield(&d.Tokens[i]) {
				return
			}
		}
	}
}

// Pointers returns a slice of pointers to every token in index order.
func (d *Document) Pointers() []*Token {
	out := make([]*Token, len(d.Tokens))
	for i := range d.Tokens {
		out[i] = &d.Tokens[i]
	}
	return out
}

// Range returns pointers to the tokens from start to end inclusive.
func (d *Document) Range(start, end *Token) []*Token {
	if start == nil || end == nil || end.Index < start.Index {
		return nil
	}
	out := make([]*Token, 0, end.Index-start.Index+1)
	for i := start.Index; i <= end.Index; i++ {
		out = append(out, &d.Tokens[i])
	}
	return out
}

// Generation is incremented whenever Reorder moves tokens. Side tables keyed
// by index must be discarded when it changes.
func (d *Document) Generation() int { return d.generation }

// OnChange registers fn to be called whenever the whitespace before a token
// changes. Only one callback is kept.
func (d *Document) OnChange(fn func(*Token)) { d.onChange = fn }

func (d *Document) changed(t *Token) {
	if d.onChange != nil {
		d.onChange(t)
	}
}

// Segment is a contiguous, inclusive range of token indices.
type Segment struct {
	Start, End int
}

// Reorder permutes the segments of a contiguous run. The segments must tile
// the run in order; order[i] names the segment that moves into slot i.
//
// Whitespace belongs to slots rather than to tokens: the state before the
// first token and after the last token of slot i is kept for whichever
// segment lands in it. The document is relinked afterwards.
func (d *Document) Reorder(segments []Segment, order []int) error {
	if len(segments) != len(order) {
		return fmt.Errorf("reorder: %d segments, %d positions", len(segments), len(order))
	}
	if len(segments) < 2 {
		return nil
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Start != segments[i-1].End+1 {
			return fmt.Errorf("reorder: segment %d does not follow segment %d", i, i-1)
		}
	}

	type slot struct {
		before, after side
		ws            string
		indent        string
	}
	slots := make([]slot, len(segments))
	for i, s := range segments {
		first, last := &d.Tokens[s.Start], &d.Tokens[s.End]
		slots[i] = slot{before: first.before, after: last.after, ws: first.OriginalWhitespace, indent: first.OriginalIndent}
	}

	runStart := segments[0].Start
	moved := make([]Token, 0, segments[len(segments)-1].End-runStart+1)
	for _, idx := range order {
		s := segments[idx]
		moved = append(moved, d.Tokens[s.Start:s.End+1]...)
	}
	copy(d.Tokens[runStart:], moved)

	pos := runStart
	for i, idx := range order {
		s := segments[idx]
		n := s.End - s.Start
		first, last := &d.Tokens[pos], &d.Tokens[pos+n]
		first.before = slots[i].before
		first.OriginalWhitespace = slots[i].ws
		first.OriginalIndent = slots[i].indent
		last.after = slots[i].after
		pos += n + 1
	}

	d.generation++
	return d.Link()
}
