package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfmt/pkg/token"
)

func TestWhitespace_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", token.None.String())
	assert.Equal(t, "space|line", (token.Space | token.Line).String())
	assert.True(t, token.All.Has(token.Newline))
	assert.False(t, token.Space.Any(token.Newline))
}

func TestWhitespace_Resolution(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;")
	a := nth(t, doc, "$a", 0)
	eq := nth(t, doc, "=", 0)

	assert.Equal(t, token.None, eq.Gap())

	a.AddAfter(token.Space)
	assert.Equal(t, token.Space, eq.Gap())

	eq.AddBefore(token.Line)
	assert.True(t, eq.HasNewlineBefore())
	assert.True(t, a.IsLastOnLine())
	assert.True(t, eq.IsFirstOnLine())

	eq.ForbidBefore(token.Line)
	assert.Equal(t, token.Space, eq.Gap())
	assert.False(t, eq.HasNewlineBefore())
}

func TestWhitespace_MasksNeverWiden(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;")
	eq := nth(t, doc, "=", 0)

	eq.ForbidBefore(token.Space)
	before := eq.MaskBefore()
	eq.AddBefore(token.Space)
	eq.RemoveBefore(token.Space)
	eq.ForbidBefore(token.Line)

	assert.Zero(t, eq.MaskBefore()&^before, "mask gained bits")
	assert.False(t, eq.Gap().Any(token.Space))
}

func TestWhitespace_LocksAreFinal(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;")
	a := nth(t, doc, "$a", 0)
	eq := nth(t, doc, "=", 0)

	a.SuppressAfter(token.Line)
	eq.AddBefore(token.Line)
	assert.False(t, eq.HasNewlineBefore(), "lock on the neighbouring side applies to the gap")

	eq.RequireBefore(token.Space)
	eq.ForbidBefore(token.Space)
	eq.RemoveBefore(token.Space)
	assert.Equal(t, token.Space, eq.Gap())
	assert.Equal(t, token.Space, eq.LockedBefore()&token.Space)
	assert.Equal(t, token.Line, a.LockedAfter())
}

func TestWhitespace_CriticalBitsIgnoreMasks(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php // c\n$a;")
	comment := nth(t, doc, "// c", 0)
	a := nth(t, doc, "$a", 0)

	comment.CriticalAfterSet(token.Line)
	a.SuppressBefore(token.Line | token.Blank)

	assert.True(t, a.HasNewlineBefore())
	assert.Equal(t, token.Line, comment.CriticalAfter())
}

func TestWhitespace_ChangeNotification(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;")
	var changed []string
	doc.OnChange(func(tok *token.Token) { changed = append(changed, tok.Text) })

	nth(t, doc, "$a", 0).AddAfter(token.Space)
	nth(t, doc, "$a", 0).AddAfter(token.Space)
	nth(t, doc, "1", 0).AddBefore(token.Space)

	require.Len(t, changed, 2)
	assert.Equal(t, []string{"=", "1"}, changed)
}

func TestWhitespace_SideAccessors(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<?php $a=1;")
	a := nth(t, doc, "$a", 0)
	eq := nth(t, doc, "=", 0)

	a.AddAfter(token.Space)
	eq.AddBefore(token.Line)
	assert.Equal(t, token.Space, a.After())
	assert.Equal(t, token.Line, eq.Before())

	a.ForbidAfter(token.Blank)
	assert.Equal(t, token.All&^token.Blank, a.MaskAfter())
	assert.Equal(t, token.All, eq.MaskBefore())

	a.RemoveAfter(token.Space)
	assert.Equal(t, token.None, a.After())
	assert.Equal(t, token.Line, a.GapAfter())
	assert.Equal(t, token.None, eq.CriticalBefore())
}
