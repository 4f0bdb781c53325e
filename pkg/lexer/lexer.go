// Package lexer splits PHP source into the token stream consumed by the
// formatter.
package lexer

import (
	"fmt"
	"strings"

	"github.com/yaklabco/phpfmt/pkg/token"
)

// Error is returned for source that cannot be tokenized.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap returns token.ErrSyntax.
func (e *Error) Unwrap() error { return token.ErrSyntax }

// lexer performs a single pass over PHP source. The emitted tokens are
// contiguous and cover the whole input, followed by an EOF token.
type lexer struct {
	src    string
	pos    int
	line   int
	col    int
	inPHP  bool
	tokens []token.Token
}

// Tokenize splits src into tokens. Whitespace is kept as WhitespaceRun tokens;
// the formatter's filters fold it into the following token.
func Tokenize(src []byte) ([]token.Token, error) {
	const initialCapacityDivisor = 3 // rough estimate of bytes per token
	lex := &lexer{
		src:    string(src),
		line:   1,
		col:    1,
		tokens: make([]token.Token, 0, len(src)/initialCapacityDivisor+1),
	}

	for lex.pos < len(lex.src) {
		var err error
		if lex.inPHP {
			err = lex.lexPHP()
		} else {
			lex.lexHTML()
		}
		if err != nil {
			return nil, err
		}
	}

	lex.tokens = append(lex.tokens, token.Token{
		Kind:   token.EOF,
		Offset: lex.pos,
		Line:   lex.line,
		Column: lex.col,
	})
	return lex.tokens, nil
}

// emit appends a token covering the next n bytes and advances past them.
func (l *lexer) emit(kind token.Kind, n int) {
	l.tokens = append(l.tokens, token.Token{
		Kind:   kind,
		Text:   l.src[l.pos : l.pos+n],
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	})
	l.advance(n)
}

func (l *lexer) advance(n int) {
	for _, c := range []byte(l.src[l.pos : l.pos+n]) {
		if c == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += n
}

func (l *lexer) errorf(format string, args ...any) error {
	return &Error{Line: l.line, Column: l.col, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) rest() string { return l.src[l.pos:] }

func (l *lexer) peek(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

// lexHTML consumes inline HTML up to and including the next open tag.
func (l *lexer) lexHTML() {
	rest := l.rest()
	idx, tagLen := findOpenTag(rest)
	if idx < 0 {
		l.emit(token.InlineHTML, len(rest))
		return
	}
	if idx > 0 {
		l.emit(token.InlineHTML, idx)
	}
	kind := token.OpenTag
	if strings.HasPrefix(l.rest(), "<?=") {
		kind = token.OpenTagWithEcho
	}
	l.emit(kind, tagLen)
	l.inPHP = true
}

// findOpenTag returns the offset and length of the first open tag in s.
func findOpenTag(s string) (int, int) {
	from := 0
	for {
		i := strings.Index(s[from:], "<?")
		if i < 0 {
			return -1, 0
		}
		i += from
		after := s[i+2:]
		switch {
		case strings.HasPrefix(after, "="):
			return i, 3
		case len(after) >= 3 && strings.EqualFold(after[:3], "php") &&
			(len(after) == 3 || isSpace(after[3])):
			return i, 5
		case len(after) == 0 || isSpace(after[0]):
			return i, 2
		}
		from = i + 2
	}
}

func (l *lexer) lexPHP() error {
	c := l.peek(0)
	rest := l.rest()

	switch {
	case isSpace(c):
		n := 0
		for n < len(rest) && isSpace(rest[n]) {
			n++
		}
		l.emit(token.WhitespaceRun, n)
	case strings.HasPrefix(rest, "?>"):
		n := 2
		if strings.HasPrefix(rest[2:], "\r\n") {
			n += 2
		} else if strings.HasPrefix(rest[2:], "\n") {
			n++
		}
		l.emit(token.CloseTag, n)
		l.inPHP = false
	case strings.HasPrefix(rest, "#["):
		l.emit(token.Attribute, 2)
	case c == '#' || strings.HasPrefix(rest, "//"):
		l.emit(token.Comment, lineCommentLength(rest))
	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			return l.errorf("unterminated comment")
		}
		kind := token.Comment
		if len(rest) > 3 && rest[2] == '*' && isSpace(rest[3]) {
			kind = token.DocComment
		}
		l.emit(kind, end+4)
	case c == '$' && isIdentStart(l.peek(1)):
		l.emit(token.Variable, 1+identLength(rest[1:]))
	case isIdentStart(c) || (c == '\\' && isIdentStart(l.peek(1))):
		l.lexName()
	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		l.emit(token.Number, numberLength(rest))
	case c == '\'':
		n, ok := quotedLength(rest, '\'')
		if !ok {
			return l.errorf("unterminated string")
		}
		l.emit(token.String, n)
	case c == '"' || c == '`':
		n, ok := quotedLength(rest, c)
		if !ok {
			return l.errorf("unterminated string")
		}
		l.emit(token.String, n)
	case strings.HasPrefix(rest, "<<<"):
		return l.lexHeredoc()
	case c == '(':
		if n := castLength(rest); n > 0 {
			l.emit(token.Cast, n)
			return nil
		}
		l.emit(token.OpenParen, 1)
	default:
		for _, op := range operators {
			if strings.HasPrefix(rest, op.text) {
				l.emit(op.kind, len(op.text))
				return nil
			}
		}
		return l.errorf("unexpected character %q", c)
	}
	return nil
}

// lexName consumes an identifier or namespaced name and classifies keywords.
func (l *lexer) lexName() {
	rest := l.rest()
	n := 0
	qualified := false
	if rest[0] == '\\' {
		qualified = true
		n = 1
	}
	for {
		n += identLength(rest[n:])
		if n+1 < len(rest) && rest[n] == '\\' && isIdentStart(rest[n+1]) {
			qualified = true
			n++
			continue
		}
		if n+1 < len(rest) && rest[n] == '\\' && rest[n+1] == '{' {
			// group use prefix: Foo\{A, B}
			qualified = true
			n++
		}
		break
	}

	kind := token.Name
	if !qualified {
		if k, ok := keywords[strings.ToLower(rest[:n])]; ok && l.keywordAllowed(k, rest[n:]) {
			kind = k
		}
	}
	l.emit(kind, n)
}

// keywordAllowed reports whether a reserved word is used as a keyword here.
// Member names and function names may reuse reserved words, and "enum" is
// only reserved in front of a name.
func (l *lexer) keywordAllowed(k token.Kind, after string) bool {
	if prev := l.lastCode(); prev != nil {
		switch prev.Kind {
		case token.Arrow, token.NullsafeArrow, token.DoubleColon:
			return false
		case token.Function:
			if strings.HasPrefix(strings.TrimLeft(after, " \t\r\n"), "(") {
				return false
			}
		case token.Const:
			return false
		}
	}
	if k == token.Enum {
		trimmed := strings.TrimLeft(after, " \t\r\n")
		return len(trimmed) < len(after) && len(trimmed) > 0 && isIdentStart(trimmed[0]) &&
			!strings.HasPrefix(trimmed, "extends") && !strings.HasPrefix(trimmed, "implements")
	}
	return true
}

func (l *lexer) lastCode() *token.Token {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		if !l.tokens[i].Kind.IsNotCode() {
			return &l.tokens[i]
		}
	}
	return nil
}

// lexHeredoc emits the opener, the body and the closing marker of a heredoc
// or nowdoc.
func (l *lexer) lexHeredoc() error {
	rest := l.rest()
	n := 3
	for n < len(rest) && (rest[n] == ' ' || rest[n] == '\t') {
		n++
	}
	var quote byte
	if n < len(rest) && (rest[n] == '"' || rest[n] == '\'') {
		quote = rest[n]
		n++
	}
	labelLen := identLength(rest[n:])
	if labelLen == 0 {
		return l.errorf("invalid heredoc label")
	}
	label := rest[n : n+labelLen]
	n += labelLen
	if quote != 0 {
		if n >= len(rest) || rest[n] != quote {
			return l.errorf("unterminated heredoc label")
		}
		n++
	}
	switch {
	case strings.HasPrefix(rest[n:], "\r\n"):
		n += 2
	case strings.HasPrefix(rest[n:], "\n"):
		n++
	default:
		return l.errorf("heredoc label must be followed by a newline")
	}
	l.emit(token.StartHeredoc, n)

	body := l.rest()
	lineStart := 0
	for lineStart <= len(body) {
		indent := 0
		for lineStart+indent < len(body) && (body[lineStart+indent] == ' ' || body[lineStart+indent] == '\t') {
			indent++
		}
		candidate := body[lineStart+indent:]
		if strings.HasPrefix(candidate, label) &&
			(len(candidate) == len(label) || !isIdentChar(candidate[len(label)])) {
			if lineStart > 0 {
				l.emit(token.HeredocBody, lineStart)
			}
			l.emit(token.EndHeredoc, indent+len(label))
			return nil
		}
		nl := strings.IndexByte(body[lineStart:], '\n')
		if nl < 0 {
			break
		}
		lineStart += nl + 1
	}
	return l.errorf("unterminated heredoc %s", label)
}

func lineCommentLength(s string) int {
	n := 0
	for n < len(s) {
		switch {
		case s[n] == '\n' || s[n] == '\r':
			return n
		case strings.HasPrefix(s[n:], "?>"):
			return n
		}
		n++
	}
	return n
}

func quotedLength(s string, quote byte) (int, bool) {
	for n := 1; n < len(s); n++ {
		switch s[n] {
		case '\\':
			n++
		case '{':
			if quote != '\'' && n+1 < len(s) && s[n+1] == '$' {
				end, ok := interpolationLength(s[n:])
				if !ok {
					return 0, false
				}
				n += end - 1
			}
		case quote:
			return n + 1, true
		}
	}
	return 0, false
}

// interpolationLength measures a complex "{$...}" expression inside a double
// quoted string, which may itself contain quoted strings.
func interpolationLength(s string) (int, bool) {
	depth := 0
	for n := 0; n < len(s); n++ {
		switch s[n] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return n + 1, true
			}
		case '\'', '"':
			l, ok := quotedLength(s[n:], s[n])
			if !ok {
				return 0, false
			}
			n += l - 1
		}
	}
	return 0, false
}

var casts = map[string]bool{
	"int": true, "integer": true, "bool": true, "boolean": true,
	"float": true, "double": true, "real": true, "string": true,
	"binary": true, "array": true, "object": true, "unset": true,
}

// castLength returns the length of a cast such as "( int )" at the start of
// s, or 0.
func castLength(s string) int {
	n := 1
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	start := n
	for n < len(s) && isLetter(s[n]) {
		n++
	}
	word := strings.ToLower(s[start:n])
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	if n < len(s) && s[n] == ')' && casts[word] {
		return n + 1
	}
	return 0
}

func numberLength(s string) int {
	if len(s) > 2 && s[0] == '0' {
		var valid func(byte) bool
		switch s[1] {
		case 'x', 'X':
			valid = isHexDigit
		case 'b', 'B':
			valid = func(c byte) bool { return c == '0' || c == '1' }
		case 'o', 'O':
			valid = func(c byte) bool { return c >= '0' && c <= '7' }
		}
		if valid != nil {
			n := 2
			for n < len(s) && (valid(s[n]) || s[n] == '_') {
				n++
			}
			return n
		}
	}

	n := 0
	digits := func() {
		for n < len(s) && (isDigit(s[n]) || (s[n] == '_' && n > 0 && isDigit(s[n-1]))) {
			n++
		}
	}
	digits()
	if n < len(s) && s[n] == '.' && (n+1 >= len(s) || s[n+1] != '.') {
		n++
		digits()
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		m := n + 1
		if m < len(s) && (s[m] == '+' || s[m] == '-') {
			m++
		}
		if m < len(s) && isDigit(s[m]) {
			n = m
			digits()
		}
	}
	return n
}

func identLength(s string) int {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isIdentChar(s[n]) {
		n++
	}
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isIdentStart(c byte) bool { return isLetter(c) || c == '_' || c >= 0x80 }

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }
