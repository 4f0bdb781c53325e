package token

// Mirror makes the closing bracket of open agree with it.
//
// When no line break follows open, line breaks before the closing bracket
// are removed and locked out. Otherwise a line break before the closing
// bracket is forced and locked. Locks already present in the gap are
// overridden.
func Mirror(open *Token) {
	closer := open.ClosedBy()
	if closer == nil {
		return
	}
	if closer.Prev() == open {
		return
	}
	if !newlineAfterCode(open) {
		override(closer.Prev(), closer, None, Newline)
		return
	}
	override(closer.Prev(), closer, Line, None)
}

// newlineAfterCode reports whether a line break follows t, looking past a
// comment that shares t's line.
func newlineAfterCode(t *Token) bool {
	if t.HasNewlineAfter() {
		return true
	}
	n := t.Next()
	if n != nil && n.Kind.IsComment() {
		return n.HasNewlineAfter()
	}
	return false
}

// Preserve keeps the tokens from start to end on one line if they were on
// one line in the source. With singleStatement set, the span may contain at
// most one complete statement besides the one it closes. Line breaks inside
// the span are removed and locked out, overriding earlier locks. It reports
// whether the span was preserved.
func Preserve(start, end *Token, singleStatement bool) bool {
	if start == nil || end == nil || end.Index <= start.Index || start.doc != end.doc {
		return false
	}
	if end.EndLine() != start.Line {
		return false
	}

	doc := start.doc
	statements := 0
	for i := start.Index + 1; i <= end.Index; i++ {
		t := &doc.Tokens[i]
		if t.OriginalNewlines() > 0 {
			return false
		}
		if (t.before.critical | doc.Tokens[i-1].after.critical).Any(Newline) {
			return false
		}
		if i < end.Index && t.IsCode() && t.EndsStatement() {
			statements++
		}
	}
	if singleStatement && statements > 1 {
		return false
	}

	for i := start.Index + 1; i <= end.Index; i++ {
		override(&doc.Tokens[i-1], &doc.Tokens[i], None, Newline)
	}
	return true
}
