package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/token"
)

func TestRender_Gaps(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;$b=2;")
	find(t, doc, "$a", 0).AddBefore(token.Line)
	find(t, doc, "=", 0).AddBefore(token.Space)
	eq := find(t, doc, "=", 0)
	eq.AddAfter(token.Space)
	b := find(t, doc, "$b", 0)
	b.AddBefore(token.Blank)
	b.Indent = 1

	out := Render(doc, config.NewConfig())
	assert.Equal(t, "<?php\n$a = 1;\n\n    $b=2;\n", out)
	assert.Equal(t, 4, b.OutputLine)
	assert.Equal(t, 5, b.OutputColumn)
}

func TestRender_Padding(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;")
	eq := find(t, doc, "=", 0)
	eq.AddBefore(token.Tab)
	eq.Padding = 3

	assert.Equal(t, "<?php$a    =1;\n", Render(doc, config.NewConfig()))
}

func TestRender_Suffix(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php f(1)")
	find(t, doc, "1", 0).Suffix = ","

	assert.Equal(t, "<?phpf(1,)\n", Render(doc, config.NewConfig()))
}

func TestRender_MasksAndCritical(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php echo $a;")
	open := find(t, doc, "<?php", 0)
	echo := find(t, doc, "echo", 0)

	echo.AddBefore(token.Line)
	echo.ForbidBefore(token.Line)
	open.CriticalAfterSet(token.Space)

	assert.Equal(t, "<?php echo$a;\n", Render(doc, config.NewConfig()))
}

func TestRender_BlockCommentReindented(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php\n        /**\n         * Doc.\n         */\n$a;")
	var c *token.Token
	for tok := range doc.All() {
		if tok.Kind == token.DocComment {
			c = tok
		}
	}
	require.NotNil(t, c)
	c.AddBefore(token.Line)
	c.Indent = 1
	find(t, doc, "$a", 0).AddBefore(token.Line)

	assert.Equal(t, "<?php\n    /**\n     * Doc.\n     */\n$a;\n", Render(doc, config.NewConfig()))
}

func TestRender_InlineHTMLEnd(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a; ?>\n<p>x</p>")
	out := Render(doc, config.NewConfig())
	assert.Equal(t, "<?php$a;?>\n<p>x</p>", out)
}

func TestRender_UnpairedBracketPanics(t *testing.T) {
	t.Parallel()

	doc := token.NewDocument("test.php", []token.Token{
		{Kind: token.OpenTag, Text: "<?php"},
		{Kind: token.OpenParen, Text: "("},
		{Kind: token.EOF},
	})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*InvariantError)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "open bracket without partner")
	}()
	Render(doc, config.NewConfig())
}
