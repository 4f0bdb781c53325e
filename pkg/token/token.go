package token

// noLink is the link value of a missing neighbour.
const noLink = -1

// Token is a single lexical token of a PHP document.
//
// Tokens live in a [Document] arena and refer to each other by index; the
// accessor methods resolve those indices to pointers. Link fields are set by
// [Document.Link] and are read-only afterwards.
type Token struct {
	// Kind identifies what type of token this is.
	Kind Kind

	// Text is the source text of the token, as normalized by the filters.
	Text string

	// Source position (byte offset, 1-based line and column).
	Offset int
	Line   int
	Column int

	// Index is the position of the token in its document.
	Index int

	// OriginalWhitespace is the raw whitespace that preceded the token.
	OriginalWhitespace string

	// OriginalIndent is the leading whitespace of the source line, set only
	// on the first token of a line.
	OriginalIndent string

	// ExpandedColumn is the 1-based column with tabs expanded.
	ExpandedColumn int

	// Depth is the number of open brackets enclosing the token.
	Depth int

	// Suffix is rendered directly after Text, e.g. an added trailing comma.
	Suffix string

	// Padding is the number of extra spaces rendered before the token when
	// the gap before it is a space or carries the Tab marker.
	Padding int

	// Indent is the indentation level assigned to the token when it starts a
	// line.
	Indent int

	// Output position, recorded by the renderer.
	OutputLine   int
	OutputColumn int

	doc *Document

	prev, next         int
	prevCode, nextCode int
	prevSib, nextSib   int
	parent             int
	openedBy, closedBy int
	stmtStart, stmtEnd int
	heredoc            int

	before, after side
	gap           gapCache
}

func (t *Token) resetLinks() {
	t.prev, t.next = noLink, noLink
	t.prevCode, t.nextCode = noLink, noLink
	t.prevSib, t.nextSib = noLink, noLink
	t.parent = noLink
	t.openedBy, t.closedBy = noLink, noLink
	t.stmtStart, t.stmtEnd = noLink, noLink
	t.heredoc = noLink
	t.Depth = 0
	t.gap.valid = false
}

func (t *Token) link(i int) *Token {
	if i == noLink || t.doc == nil {
		return nil
	}
	return &t.doc.Tokens[i]
}

// Document returns the document that owns t.
func (t *Token) Document() *Document { return t.doc }

// Prev returns the previous token, or nil.
func (t *Token) Prev() *Token { return t.link(t.prev) }

// Next returns the next token, or nil.
func (t *Token) Next() *Token { return t.link(t.next) }

// PrevCode returns the closest previous token that is not a comment, or nil.
func (t *Token) PrevCode() *Token { return t.link(t.prevCode) }

// NextCode returns the closest next token that is not a comment, or nil.
func (t *Token) NextCode() *Token { return t.link(t.nextCode) }

// PrevSibling returns the previous code token with the same parent.
func (t *Token) PrevSibling() *Token { return t.link(t.prevSib) }

// NextSibling returns the next code token with the same parent.
func (t *Token) NextSibling() *Token { return t.link(t.nextSib) }

// Parent returns the innermost open bracket enclosing t, or nil.
func (t *Token) Parent() *Token { return t.link(t.parent) }

// OpenedBy returns the open bracket matching a close bracket.
func (t *Token) OpenedBy() *Token { return t.link(t.openedBy) }

// ClosedBy returns the close bracket matching an open bracket.
func (t *Token) ClosedBy() *Token { return t.link(t.closedBy) }

// StatementStart returns the first code token of the statement containing t.
func (t *Token) StatementStart() *Token { return t.link(t.stmtStart) }

// StatementEnd returns the last code token of the statement containing t.
func (t *Token) StatementEnd() *Token { return t.link(t.stmtEnd) }

// Heredoc returns the heredoc partner of t: the end token for a start token,
// and the start token for body and end tokens.
func (t *Token) Heredoc() *Token { return t.link(t.heredoc) }

// IsCode reports whether t carries syntax.
func (t *Token) IsCode() bool { return !t.Kind.IsNotCode() }

// Is reports whether t is of one of the given kinds. It is safe to call on a
// nil token.
func (t *Token) Is(kinds ...Kind) bool {
	if t == nil {
		return false
	}
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// EndsStatement reports whether t is the last token of its statement.
func (t *Token) EndsStatement() bool {
	return t.stmtEnd == t.Index
}

// StartsStatement reports whether t is the first token of its statement.
func (t *Token) StartsStatement() bool {
	return t.stmtStart == t.Index
}

// OriginalNewlines returns the number of line breaks in the whitespace that
// preceded t in the source.
func (t *Token) OriginalNewlines() int {
	n := 0
	for i := 0; i < len(t.OriginalWhitespace); i++ {
		if t.OriginalWhitespace[i] == '\n' {
			n++
		}
	}
	return n
}

// EndLine returns the source line on which t ends.
func (t *Token) EndLine() int {
	n := t.Line
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' {
			n++
		}
	}
	return n
}
