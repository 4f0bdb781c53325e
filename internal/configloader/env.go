package configloader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/phpfmt/pkg/config"
)

// envVarPrefix is the prefix of every phpfmt environment variable.
const envVarPrefix = "PHPFMT_"

// envVar binds one environment variable to a configuration key.
type envVar struct {
	key   string
	help  string
	apply func(cfg *config.Config, value string) error
}

func stringVar(key, help string, set func(*config.Config, string)) envVar {
	return envVar{key: key, help: help, apply: func(cfg *config.Config, v string) error {
		set(cfg, v)
		return nil
	}}
}

func boolVar(key, help string, set func(*config.Config, bool)) envVar {
	return envVar{key: key, help: help, apply: func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}}
}

func intVar(key, help string, set func(*config.Config, int)) envVar {
	return envVar{key: key, help: help, apply: func(cfg *config.Config, v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		set(cfg, i)
		return nil
	}}
}

func listVar(key, help string, set func(*config.Config, []string)) envVar {
	return envVar{key: key, help: help, apply: func(cfg *config.Config, v string) error {
		set(cfg, splitList(v))
		return nil
	}}
}

// envVars maps variable names without the prefix to configuration keys.
//
//nolint:gochecknoglobals // read-only lookup table
var envVars = map[string]envVar{
	"INDENT": stringVar("indent", "Indentation: spaces or tabs",
		func(c *config.Config, v string) { c.Indent = config.IndentStyle(v) }),
	"TAB_SIZE": intVar("tab_size", "Spaces per indentation level (1-16)",
		func(c *config.Config, v int) { c.TabSize = v }),
	"HEREDOC_INDENT": stringVar("heredoc_indent", "Heredoc indentation: none, line, mixed, or hanging",
		func(c *config.Config, v string) { c.HeredocIndent = config.HeredocIndent(v) }),
	"SORT_IMPORTS": stringVar("sort_imports", "Import order: none, name, or depth",
		func(c *config.Config, v string) { c.SortImports = config.ImportSort(v) }),
	"ALIGN_ASSIGNMENTS": boolVar("align_assignments", "Align = and => in consecutive lines",
		func(c *config.Config, v bool) { c.AlignAssignments = v }),
	"ALIGN_COMMENTS": boolVar("align_comments", "Align trailing comments",
		func(c *config.Config, v bool) { c.AlignComments = v }),
	"BLANK_LINES": stringVar("blank_lines", "Blank lines: preserve or remove",
		func(c *config.Config, v string) { c.BlankLines = config.BlankLines(v) }),
	"TRAILING_COMMAS": boolVar("trailing_commas", "Trailing commas in lists broken across lines",
		func(c *config.Config, v bool) { c.TrailingCommas = v }),
	"ONE_LINE_BODIES": boolVar("one_line_bodies", "Keep one-line function bodies",
		func(c *config.Config, v bool) { c.OneLineBodies = v }),
	"PRESET": stringVar("preset", "Style preset: psr12 or wordpress",
		func(c *config.Config, v string) { c.Preset = v }),
	"DEBUG": boolVar("debug", "Per-stage debug logging",
		func(c *config.Config, v bool) { c.Debug = v }),
	"JOBS": intVar("jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),
	"FORMAT": stringVar("format", "Output format: text, json, diff, or summary",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"BACKUPS_ENABLED": boolVar("backups.enabled", "Back files up before writing",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"BACKUPS_MODE": stringVar("backups.mode", "Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"NO_BACKUPS": boolVar("no_backups", "Disable backups",
		func(c *config.Config, v bool) { c.NoBackups = v }),
	"IGNORE": listVar("ignore", "Comma-separated ignore globs",
		func(c *config.Config, v []string) { c.Ignore = v }),
	"ENABLE_RULES": listVar("enable_rules", "Comma-separated rules to enable",
		func(c *config.Config, v []string) { c.EnableRules = v }),
	"DISABLE_RULES": listVar("disable_rules", "Comma-separated rules to disable",
		func(c *config.Config, v []string) { c.DisableRules = v }),
}

// loadFromEnv applies PHPFMT_* variables read through getenv to cfg.
func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	// Sorted so the first reported error does not depend on map order.
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := getenv(envVarPrefix + name)
		if value == "" {
			continue
		}
		if err := envVars[name].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name string
	Key  string
	Help string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envVars))
	for name, v := range envVars {
		out = append(out, EnvVar{Name: envVarPrefix + name, Key: v.key, Help: v.help})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
