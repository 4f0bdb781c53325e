package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/token"
)

func TestDeclaration_Kinds(t *testing.T) {
	t.Parallel()

	src := "<?php\nnamespace App;\nuse Foo\\Bar;\nconst X = 1;\n" +
		"/** Doc. */\n#[Attr]\nfinal class A {\nprivate static int $n = 0;\npublic function &get(): int { return 1; }\n}\n$x = 1;\n"
	doc := parse(t, src)
	ctx := newTestContext(context.Background(), doc)

	tests := []struct {
		start string
		kind  DeclarationKind
	}{
		{"namespace", DeclNamespace},
		{"use", DeclUse},
		{"const", DeclConst},
		{"#[", DeclClass},
		{"private", DeclProperty},
		{"public", DeclFunction},
	}
	for _, tt := range tests {
		d := ctx.Declaration(find(t, doc, tt.start, 0))
		require.NotNil(t, d, tt.start)
		assert.Equal(t, tt.kind, d.Kind, tt.start)
	}

	assert.Nil(t, ctx.Declaration(find(t, doc, "$x", 0)))

	class := ctx.Declaration(find(t, doc, "#[", 0))
	assert.True(t, class.HasDocComment())
	assert.True(t, class.HasModifier(token.Final))
	assert.Equal(t, "class", class.Keyword.Text)
	assert.Equal(t, "{", class.Body.Text)
	assert.False(t, class.Collapsible())

	method := ctx.Declaration(find(t, doc, "public", 0))
	assert.True(t, method.Collapsible())
	assert.Equal(t, []token.Kind{token.Public}, method.Modifiers)
}

func TestDeclaration_MemoInvalidation(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php\nfunction a() {}\nfunction b() {}\n")
	ctx := newTestContext(context.Background(), doc)
	fnA := find(t, doc, "function", 0)

	d1 := ctx.Declaration(fnA)
	require.NotNil(t, d1)
	assert.Same(t, d1, ctx.Declaration(fnA), "memoized")

	// Changing whitespace outside the header keeps the entry.
	find(t, doc, "}", 0).AddAfter(token.Line)
	assert.Same(t, d1, ctx.Declaration(fnA))

	// Changing whitespace before the header drops it.
	fnA.AddBefore(token.Blank)
	d2 := ctx.Declaration(fnA)
	require.NotNil(t, d2)
	assert.NotSame(t, d1, d2)

	// Reordering drops everything.
	fnB := find(t, doc, "function", 1)
	before := ctx.Declaration(fnB)
	require.NoError(t, doc.Reorder([]token.Segment{
		{Start: fnA.Index, End: find(t, doc, "}", 0).Index},
		{Start: fnB.Index, End: find(t, doc, "}", 1).Index},
	}, []int{1, 0}))
	after := ctx.Declaration(doc.At(fnA.Index))
	require.NotNil(t, after)
	assert.NotSame(t, before, after)
	assert.Equal(t, "b", after.Keyword.NextCode().Text)
}
