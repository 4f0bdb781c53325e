package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/phpfmt/pkg/analysis"
	"github.com/yaklabco/phpfmt/pkg/config"
)

// Format names an output format. The values are the ones accepted by the
// format key of the configuration file.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// ParseFormat parses a --format value. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	f := Format(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff, summary", s)
	}
	return f, nil
}

// Renderer writes an analysis.Report in one output format.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
