package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/format/filter"
	"github.com/yaklabco/phpfmt/pkg/lexer"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// parse tokenizes, filters and links src.
func parse(t *testing.T, src string) *token.Document {
	t.Helper()

	tokens, err := lexer.Tokenize([]byte(src))
	require.NoError(t, err)
	tokens = filter.Run(tokens, filter.Default(4)...)

	doc := token.NewDocument("test.php", tokens)
	require.NoError(t, doc.Link())
	return doc
}

// find returns the n-th token (0-based) with the given text.
func find(t *testing.T, doc *token.Document, text string, n int) *token.Token {
	t.Helper()

	for tok := range doc.All() {
		if tok.Text != text {
			continue
		}
		if n == 0 {
			return tok
		}
		n--
	}
	t.Fatalf("token %q not found", text)
	return nil
}

// recorder is a rule that records what each stage hands it.
type recorder struct {
	BaseRule
	priority int
	kinds    []token.Kind
	log      *[]string

	tokens []*token.Token
	lists  []*token.Token
	blocks int
}

func newRecorder(name string, priority int, log *[]string) *recorder {
	return &recorder{BaseRule: NewBaseRule(name, "records calls"), priority: priority, log: log}
}

func (r *recorder) Priority(Method) (int, bool) { return r.priority, true }

func (r *recorder) Kinds() []token.Kind { return r.kinds }

func (r *recorder) ProcessTokens(tokens []*token.Token) {
	*r.log = append(*r.log, "tokens:"+r.Name())
	r.tokens = tokens
}

func (r *recorder) ProcessList(parent *token.Token, _ []*token.Token) {
	r.lists = append(r.lists, parent)
}

func (r *recorder) ProcessBlock([][]*token.Token) { r.blocks++ }

func (r *recorder) BeforeRender([]*token.Token) {
	*r.log = append(*r.log, "render:"+r.Name())
}
