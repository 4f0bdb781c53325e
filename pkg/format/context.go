package format

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// Context is shared by every rule formatting one document. Rules receive it
// at construction and keep no other shared state.
type Context struct {
	// Ctx carries the logger and cancellation of the run.
	Ctx context.Context

	// Doc is the document being formatted.
	Doc *token.Document

	// Index is the category table for the configured preset.
	Index *tokenindex.Index

	// Config is the validated configuration.
	Config *config.Config

	// Logger receives debug output.
	Logger *log.Logger

	problems []Problem
	decls    *declarations
}

// NewContext creates a Context for doc and hooks declaration invalidation
// into the document's change notifications.
func NewContext(
	ctx context.Context,
	doc *token.Document,
	idx *tokenindex.Index,
	cfg *config.Config,
	logger *log.Logger,
) *Context {
	c := &Context{
		Ctx:    ctx,
		Doc:    doc,
		Index:  idx,
		Config: cfg,
		Logger: logger,
		decls:  newDeclarations(doc),
	}
	doc.OnChange(c.decls.invalidate)
	return c
}

// Path returns the document path.
func (c *Context) Path() string { return c.Doc.Path }

// Report records a problem.
func (c *Context) Report(p Problem) {
	if p.Filename == "" {
		p.Filename = c.Doc.Path
	}
	c.problems = append(c.problems, p)
}

// Problems returns the problems reported so far.
func (c *Context) Problems() []Problem { return c.problems }

// Declaration returns the declaration whose statement starts at t, or nil if
// t does not start a declaration. Results are memoized until the whitespace
// before a token in the declaration's header changes or the document is
// reordered.
func (c *Context) Declaration(t *token.Token) *Declaration {
	return c.decls.get(t)
}

// Cancelled reports whether the run's context is done.
func (c *Context) Cancelled() bool {
	if c.Ctx == nil {
		return false
	}
	select {
	case <-c.Ctx.Done():
		return true
	default:
		return false
	}
}
