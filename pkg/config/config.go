// Package config defines the configuration types for phpfmt.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// IndentStyle selects the indentation unit.
type IndentStyle string

const (
	IndentSpaces IndentStyle = "spaces"
	IndentTabs   IndentStyle = "tabs"
)

// HeredocIndent controls how heredoc and nowdoc bodies are re-indented.
type HeredocIndent string

const (
	// HeredocNone leaves heredocs exactly as written.
	HeredocNone HeredocIndent = "none"
	// HeredocLine indents heredocs to the level of the line they start on.
	HeredocLine HeredocIndent = "line"
	// HeredocMixed uses HeredocLine when the heredoc starts its line,
	// HeredocHanging otherwise.
	HeredocMixed HeredocIndent = "mixed"
	// HeredocHanging indents heredocs one level deeper than their line.
	HeredocHanging HeredocIndent = "hanging"
)

// ImportSort controls the order of "use" statements.
type ImportSort string

const (
	SortNone  ImportSort = "none"
	SortName  ImportSort = "name"
	SortDepth ImportSort = "depth"
)

// BlankLines controls whether blank lines from the source are kept.
type BlankLines string

const (
	BlankPreserve BlankLines = "preserve"
	BlankRemove   BlankLines = "remove"
)

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar"
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for phpfmt.
type Config struct {
	// Indent selects spaces or tabs.
	Indent IndentStyle `yaml:"indent"`

	// TabSize is the width of one indentation level when indenting with
	// spaces, and the tab stop used to measure source columns.
	TabSize int `yaml:"tab_size"`

	// HeredocIndent is one of "none", "line", "mixed" or "hanging".
	HeredocIndent HeredocIndent `yaml:"heredoc_indent"`

	// SortImports is one of "none", "name" or "depth".
	SortImports ImportSort `yaml:"sort_imports"`

	// AlignAssignments aligns "=" and "=>" in consecutive lines.
	AlignAssignments bool `yaml:"align_assignments"`

	// AlignComments aligns trailing comments in consecutive lines.
	AlignComments bool `yaml:"align_comments"`

	// BlankLines is "preserve" or "remove".
	BlankLines BlankLines `yaml:"blank_lines"`

	// TrailingCommas adds a trailing comma to lists broken over lines.
	TrailingCommas bool `yaml:"trailing_commas"`

	// OneLineBodies keeps single-statement function bodies written on one
	// line on one line.
	OneLineBodies bool `yaml:"one_line_bodies"`

	// Preset names a token-index preset ("psr12" or "wordpress").
	Preset string `yaml:"preset,omitempty"`

	// Debug enables per-stage debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// EnableRules contains rule names to enable in addition to the defaults.
	EnableRules []string `yaml:"enable_rules,omitempty"`

	// DisableRules contains rule names to disable.
	DisableRules []string `yaml:"disable_rules,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with the default style.
func NewConfig() *Config {
	return &Config{
		Indent:         IndentSpaces,
		TabSize:        4,
		HeredocIndent:  HeredocMixed,
		SortImports:    SortName,
		BlankLines:     BlankPreserve,
		TrailingCommas: true,
		OneLineBodies:  true,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// maxTabSize bounds TabSize.
const maxTabSize = 16

// Validate reports the first out-of-range value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}
	checks := []struct {
		field string
		value string
		valid []string
	}{
		{"indent", string(c.Indent), []string{string(IndentSpaces), string(IndentTabs)}},
		{"heredoc_indent", string(c.HeredocIndent), []string{
			string(HeredocNone), string(HeredocLine), string(HeredocMixed), string(HeredocHanging),
		}},
		{"sort_imports", string(c.SortImports), []string{string(SortNone), string(SortName), string(SortDepth)}},
		{"blank_lines", string(c.BlankLines), []string{string(BlankPreserve), string(BlankRemove)}},
	}
	for _, check := range checks {
		if !slices.Contains(check.valid, check.value) {
			return fmt.Errorf("%w: %s must be one of %s, got %q",
				ErrInvalid, check.field, strings.Join(check.valid, ", "), check.value)
		}
	}
	if c.TabSize < 1 || c.TabSize > maxTabSize {
		return fmt.Errorf("%w: tab_size must be between 1 and %d, got %d", ErrInvalid, maxTabSize, c.TabSize)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalid, c.Jobs)
	}
	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalid, c.Format)
	}
	return nil
}

// IndentUnit returns the text of one indentation level.
func (c *Config) IndentUnit() string {
	if c.Indent == IndentTabs {
		return "\t"
	}
	return strings.Repeat(" ", c.TabSize)
}
