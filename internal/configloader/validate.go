package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	"github.com/yaklabco/phpfmt/pkg/fsutil"
	"github.com/yaklabco/phpfmt/pkg/tokenindex"
)

// ValidationError is a problem with one configuration value. Field uses
// YAML key paths such as "ignore[2]".
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// Unwrap makes errors.Is(err, config.ErrInvalid) hold.
func (e *ValidationError) Unwrap() error { return config.ErrInvalid }

// ValidationResult separates fatal errors from warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether r has no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks cfg against the built-in rules and presets.
func Validate(cfg *config.Config) *ValidationResult {
	return validate(cfg, format.DefaultRegistry)
}

func validate(cfg *config.Config, registry *format.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Message: strings.TrimPrefix(err.Error(), config.ErrInvalid.Error()+": "),
		})
	}

	if cfg.Preset != "" {
		if _, err := tokenindex.ForPreset(cfg.Preset); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "preset",
				Value:   cfg.Preset,
				Message: fmt.Sprintf("unknown preset %q; must be one of: %s", cfg.Preset, strings.Join(tokenindex.PresetNames(), ", ")),
			})
		}
	}

	if mode := fsutil.BackupMode(cfg.Backups.Mode); mode != "" && !mode.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRules checks that every rule named in enable_rules and
// disable_rules exists, and warns when a rule appears in both lists.
func validateRules(cfg *config.Config, registry *format.Registry, result *ValidationResult) {
	enabled := make(map[string]bool)
	for i, key := range cfg.EnableRules {
		name, _, ok := registry.Resolve(key)
		if !ok {
			result.Errors = append(result.Errors, unknownRule(fmt.Sprintf("enable_rules[%d]", i), key))
			continue
		}
		enabled[name] = true
	}
	for i, key := range cfg.DisableRules {
		name, _, ok := registry.Resolve(key)
		if !ok {
			result.Errors = append(result.Errors, unknownRule(fmt.Sprintf("disable_rules[%d]", i), key))
			continue
		}
		if enabled[name] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("disable_rules[%d]", i),
				Value:   key,
				Message: fmt.Sprintf("rule %q is both enabled and disabled; it will be disabled", name),
			})
		}
	}
}

func unknownRule(field, key string) ValidationError {
	return ValidationError{
		Field:   field,
		Value:   key,
		Message: fmt.Sprintf("unknown rule %q; run 'phpfmt rules' to list rules", key),
	}
}

// validateIgnorePatterns checks that ignore patterns are valid doublestar globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "invalid glob pattern: " + doublestar.ErrBadPattern.Error(),
			})
		}
	}
}

// IsValidationError reports whether err came from configuration validation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
