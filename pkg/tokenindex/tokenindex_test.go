package tokenindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	idx := tokenindex.Default()
	assert.Same(t, idx, tokenindex.Default())
	assert.True(t, idx.Is(tokenindex.DeclarationBraceOnNewLine, token.Class))
	assert.True(t, idx.Is(tokenindex.AssignmentOperator, token.ConcatAssign))
	assert.False(t, idx.Is(tokenindex.SpaceInsideParens, token.OpenParen))
	assert.True(t, idx.Any(token.Arrow, tokenindex.Operator, tokenindex.ChainOperator))
	assert.False(t, idx.Is(tokenindex.NumCategories, token.Arrow))
}

func TestBuilder_OverridesAreOrdered(t *testing.T) {
	t.Parallel()

	idx := tokenindex.NewBuilder().
		Add(tokenindex.ChainOperator, token.DoubleColon).
		Remove(tokenindex.ChainOperator, token.DoubleColon, token.Arrow).
		Add(tokenindex.ChainOperator, token.Arrow).
		Build()

	assert.Equal(t, []token.Kind{token.Arrow, token.NullsafeArrow}, idx.Kinds(tokenindex.ChainOperator))
	assert.True(t, tokenindex.Default().Is(tokenindex.ChainOperator, token.Arrow), "base table is not mutated")
}

func TestForPreset(t *testing.T) {
	t.Parallel()

	psr, err := tokenindex.ForPreset("psr12")
	require.NoError(t, err)
	assert.Same(t, tokenindex.Default(), psr)

	wp, err := tokenindex.ForPreset(tokenindex.PresetWordPress)
	require.NoError(t, err)
	assert.Equal(t, tokenindex.PresetWordPress, wp.Name())
	assert.Empty(t, wp.Kinds(tokenindex.DeclarationBraceOnNewLine))
	assert.True(t, wp.Is(tokenindex.SpaceInsideParens, token.OpenParen))
	assert.True(t, wp.Is(tokenindex.SpaceAfter, token.Not))
	assert.False(t, wp.Is(tokenindex.NoSpaceAfter, token.OpenParen))
	assert.True(t, wp.Is(tokenindex.NoSpaceAfter, token.OpenBracket))

	again, err := tokenindex.ForPreset(tokenindex.PresetWordPress)
	require.NoError(t, err)
	assert.Same(t, wp, again)

	_, err = tokenindex.ForPreset("tabs-everywhere")
	require.ErrorIs(t, err, tokenindex.ErrUnknownPreset)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	idx := tokenindex.Default()
	assert.True(t, idx.Known(token.Variable))
	assert.False(t, idx.Known(token.Invalid))
	assert.False(t, idx.Known(token.NumKinds))
}
