package rules

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/phpfmt/internal/logging"
	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/token"
)

// SortImportsRule sorts runs of adjacent "use" statements at file or
// namespace level.
type SortImportsRule struct {
	format.BaseRule
	ctx   *format.Context
	order config.ImportSort
}

// NewSortImportsRule creates the import sorting rule.
func NewSortImportsRule(ctx *format.Context) *SortImportsRule {
	r := &SortImportsRule{
		BaseRule: format.NewBaseRule(
			"sort-imports",
			"Sort adjacent use statements by name or by depth",
		),
		ctx:   ctx,
		order: config.SortName,
	}
	if ctx != nil {
		r.order = ctx.Config.SortImports
	}
	return r
}

// Priority implements format.Rule.
func (r *SortImportsRule) Priority(m format.Method) (int, bool) {
	return only(format.MethodBeforeRender, 300, r.order != config.SortNone)(m)
}

type importStmt struct {
	seg   token.Segment
	group int
	name  string
	depth int
}

// BeforeRender implements format.DocumentRule.
func (r *SortImportsRule) BeforeRender(tokens []*token.Token) {
	var runs [][]importStmt
	var cur []importStmt
	var prevEnd *token.Token

	flush := func() {
		if len(cur) > 1 {
			runs = append(runs, cur)
		}
		cur, prevEnd = nil, nil
	}

	for _, t := range tokens {
		if !t.IsCode() || !t.StartsStatement() {
			continue
		}
		stmt, ok := importOf(t)
		if !ok {
			if t.Kind != token.EOF {
				flush()
			}
			continue
		}
		if prevEnd != nil && (t.Prev() != prevEnd || t.OriginalNewlines() > 1) {
			flush()
		}
		cur = append(cur, stmt)
		prevEnd = t.StatementEnd()
	}
	flush()

	// Runs are collected first: reordering relinks the document.
	for _, run := range runs {
		r.sort(run)
	}
}

func (r *SortImportsRule) sort(run []importStmt) {
	order := make([]int, len(run))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		x, y := run[a], run[b]
		if c := cmp.Compare(x.group, y.group); c != 0 {
			return c
		}
		if r.order == config.SortDepth {
			if c := cmp.Compare(x.depth, y.depth); c != 0 {
				return c
			}
		}
		return cmp.Compare(x.name, y.name)
	})
	if slices.IsSorted(order) {
		return
	}

	segments := make([]token.Segment, len(run))
	for i, s := range run {
		segments[i] = s.seg
	}
	if err := r.ctx.Doc.Reorder(segments, order); err != nil {
		r.ctx.Logger.Warn("imports left unsorted",
			logging.FieldRule, r.Name(),
			logging.FieldError, err)
	}
}

// importOf describes the import statement starting at t. Trait imports
// inside class bodies are not imports.
func importOf(t *token.Token) (importStmt, bool) {
	if t.Kind != token.Use {
		return importStmt{}, false
	}
	if p := t.Parent(); p != nil && !p.StatementStart().Is(token.Namespace) {
		return importStmt{}, false
	}
	end := t.StatementEnd()
	if !end.Is(token.Semicolon) {
		return importStmt{}, false
	}

	stmt := importStmt{seg: token.Segment{Start: t.Index, End: end.Index}}
	n := t.NextCode()
	switch {
	case n.Is(token.Function):
		stmt.group = 1
		n = n.NextCode()
	case n.Is(token.Const):
		stmt.group = 2
		n = n.NextCode()
	}
	if !n.Is(token.Name) {
		return importStmt{}, false
	}
	name := strings.TrimPrefix(n.Text, "\\")
	stmt.name = strings.ToLower(name)
	stmt.depth = strings.Count(name, "\\")
	return stmt, true
}
