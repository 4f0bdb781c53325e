package format

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/phpfmt/internal/logging"
	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format/filter"
	"github.com/yaklabco/phpfmt/pkg/lexer"
	"github.com/yaklabco/phpfmt/pkg/token"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// Formatting errors.
var (
	// ErrSyntax is wrapped by errors for token streams with unmatched
	// brackets or heredocs, and by tokenizer errors.
	ErrSyntax = token.ErrSyntax

	// ErrConfig is wrapped by errors for invalid configuration.
	ErrConfig = config.ErrInvalid

	// ErrUnknownToken is wrapped by errors for tokens the index does not
	// know.
	ErrUnknownToken = errors.New("unknown token")
)

// Result is the outcome of formatting one document.
type Result struct {
	// Text is the formatted source.
	Text string

	// Document holds the formatted tokens, with output positions recorded.
	Document *token.Document

	// Problems lists non-fatal issues found while formatting.
	Problems []Problem
}

// Formatter formats PHP documents. A Formatter is safe for concurrent use:
// every call builds its own document and rule instances, and shares only
// the immutable configuration and token index.
type Formatter struct {
	cfg      *config.Config
	index    *tokenindex.Index
	registry *Registry
	rules    []Registration
	logger   *log.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithRegistry selects the rule registry. The default is DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(f *Formatter) { f.registry = r }
}

// WithLogger sets the logger for debug output. The default is the logger
// carried by the context passed to Format, or the package default.
func WithLogger(l *log.Logger) Option {
	return func(f *Formatter) { f.logger = l }
}

// New validates cfg and builds a Formatter. Configuration errors wrap
// ErrConfig and are reported before any document is touched.
func New(cfg *config.Config, opts ...Option) (*Formatter, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	idx, err := tokenindex.ForPreset(cfg.Preset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if cfg.Preset == tokenindex.PresetWordPress {
		cfg.Indent = config.IndentTabs
	}

	f := &Formatter{cfg: cfg, index: idx, registry: DefaultRegistry}
	for _, opt := range opts {
		opt(f)
	}

	f.rules, err = f.registry.Enabled(cfg)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Config returns the formatter's configuration.
func (f *Formatter) Config() *config.Config { return f.cfg }

// Index returns the token index for the configured preset.
func (f *Formatter) Index() *tokenindex.Index { return f.index }

// RuleNames returns the names of the rules the formatter runs.
func (f *Formatter) RuleNames() []string {
	names := make([]string, len(f.rules))
	for i, r := range f.rules {
		names[i] = r.Name
	}
	return names
}

func (f *Formatter) loggerFor(ctx context.Context) *log.Logger {
	if f.logger != nil {
		return f.logger
	}
	return logging.FromContext(ctx)
}

// FormatSource tokenizes src and formats it.
func (f *Formatter) FormatSource(ctx context.Context, path string, src []byte) (*Result, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &token.SyntaxError{
				Path:    path,
				Line:    lexErr.Line,
				Column:  lexErr.Column,
				Message: lexErr.Message,
			}
		}
		return nil, fmt.Errorf("tokenize %s: %w", path, err)
	}
	return f.Format(ctx, path, tokens)
}

// Format formats a token stream covering a whole document. The tokens are
// copied; the caller's slice is not modified.
func (f *Formatter) Format(ctx context.Context, path string, tokens []token.Token) (*Result, error) {
	logger := f.loggerFor(ctx).With(logging.FieldPath, path)
	started := time.Now()

	for i := range tokens {
		t := &tokens[i]
		if !f.index.Known(t.Kind) {
			return nil, fmt.Errorf("%w: %s at %s:%d:%d", ErrUnknownToken, t.Kind, path, t.Line, t.Column)
		}
	}

	raw := make([]token.Token, len(tokens), len(tokens)+1)
	copy(raw, tokens)
	if len(raw) == 0 || raw[len(raw)-1].Kind != token.EOF {
		raw = append(raw, token.Token{Kind: token.EOF})
	}
	raw = filter.Run(raw, filter.Default(f.cfg.TabSize)...)

	doc := token.NewDocument(path, raw)
	if err := doc.Link(); err != nil {
		return nil, err
	}

	fctx := NewContext(ctx, doc, f.index, f.cfg, logger)
	rules := make([]Rule, 0, len(f.rules))
	for _, reg := range f.rules {
		rules = append(rules, reg.New(fctx))
	}

	p := newPipeline(fctx, rules)
	if err := p.run(); err != nil {
		return nil, err
	}

	text := withLineEnding(Render(doc, f.cfg), lineEnding(tokens))
	if f.cfg.Debug {
		logger.Debug("formatted",
			logging.FieldTokens, doc.Len(),
			logging.FieldProblems, len(fctx.Problems()),
			logging.FieldElapsed, time.Since(started))
	}
	return &Result{Text: text, Document: doc, Problems: fctx.Problems()}, nil
}

// CheckResult reports whether formatting is stable for one input.
type CheckResult struct {
	// Result is the outcome of the first pass.
	*Result

	// Changed reports whether the first pass changed the input.
	Changed bool

	// Stable reports whether formatting the first pass's output again
	// produced identical text.
	Stable bool

	// Second is the text produced by the second pass.
	Second string
}

// Check formats src, then formats the result again.
func (f *Formatter) Check(ctx context.Context, path string, src []byte) (*CheckResult, error) {
	first, err := f.FormatSource(ctx, path, src)
	if err != nil {
		return nil, err
	}
	second, err := f.FormatSource(ctx, path, []byte(first.Text))
	if err != nil {
		return nil, fmt.Errorf("reformat output: %w", err)
	}
	return &CheckResult{
		Result:  first,
		Changed: first.Text != string(src),
		Stable:  first.Text == second.Text,
		Second:  second.Text,
	}, nil
}
