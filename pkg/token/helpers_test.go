package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/phpfmt/pkg/token"
)

func TestMirror(t *testing.T) {
	t.Parallel()

	t.Run("collapses when the open bracket stays on its line", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<?php foo($a);")
		open := nth(t, doc, "(", 0)
		closer := open.ClosedBy()
		closer.RequireBefore(token.Line)

		token.Mirror(open)
		assert.False(t, closer.HasNewlineBefore())
	})

	t.Run("breaks when the open bracket ends its line", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<?php foo($a);")
		open := nth(t, doc, "(", 0)
		closer := open.ClosedBy()
		open.AddAfter(token.Line)
		closer.SuppressBefore(token.Line)

		token.Mirror(open)
		assert.True(t, closer.HasNewlineBefore())
		assert.True(t, closer.Prev().LockedAfter().Has(token.Line))
	})

	t.Run("looks past a trailing comment", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<?php foo( // why\n$a);")
		open := nth(t, doc, "(", 0)
		nth(t, doc, "// why", 0).CriticalAfterSet(token.Line)

		token.Mirror(open)
		assert.True(t, open.ClosedBy().HasNewlineBefore())
	})
}

func TestPreserve(t *testing.T) {
	t.Parallel()

	t.Run("one line span", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<?php function f() { return 1; }")
		start := nth(t, doc, "function", 0)
		end := nth(t, doc, "}", 0)
		open := nth(t, doc, "{", 0)
		open.RequireBefore(token.Line)
		open.AddAfter(token.Line | token.Space)

		assert.True(t, token.Preserve(start, end, true))
		for _, tok := range doc.Range(start, end)[1:] {
			assert.False(t, tok.HasNewlineBefore(), tok.Text)
		}
		assert.Equal(t, token.Space, open.GapAfter())
	})

	t.Run("span over several source lines", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<?php function f() {\nreturn 1; }")
		assert.False(t, token.Preserve(nth(t, doc, "function", 0), nth(t, doc, "}", 0), true))
	})

	t.Run("too many statements", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<?php function f() { $a = 1; return $a; }")
		start, end := nth(t, doc, "function", 0), nth(t, doc, "}", 0)
		assert.False(t, token.Preserve(start, end, true))
		assert.True(t, token.Preserve(start, end, false))
	})
}
