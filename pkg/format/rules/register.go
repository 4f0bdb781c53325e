package rules

import (
	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
)

// builtin lists the constructors of every built-in rule. Constructors accept
// a nil context so metadata can be read without a document.
//
//nolint:gochecknoglobals // Static rule table
var builtin = []format.Factory{
	// Token stage
	func(ctx *format.Context) format.Rule { return NewProtectedTokensRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewStandardWhitespaceRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewOperatorSpacingRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewPreserveNewlinesRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewBracePlacementRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewControlStructureSpacingRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewMixedIndentationRule(ctx) },

	// List stage
	func(ctx *format.Context) format.Rule { return NewListSpacingRule(ctx) },

	// Block stage
	func(ctx *format.Context) format.Rule { return NewAlignAssignmentsRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewAlignCommentsRule(ctx) },

	// Before render
	func(ctx *format.Context) format.Rule { return NewOneLineBodiesRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewDeclarationSpacingRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewSortImportsRule(ctx) },
	func(ctx *format.Context) format.Rule { return NewIndentationRule(ctx) },
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *format.Registry) {
	for _, factory := range builtin {
		meta := factory(nil)
		registry.Register(format.Registration{
			Name:        meta.Name(),
			Description: meta.Description(),
			Default:     true,
			New:         factory,
		})
	}
}

// RegisterAliases registers alternative names used by other formatters'
// configuration files.
func RegisterAliases(registry *format.Registry) {
	registry.RegisterAlias("no-mixed-indentation", "mixed-indentation")
	registry.RegisterAlias("ordered-imports", "sort-imports")
	registry.RegisterAlias("braces", "brace-placement")
	registry.RegisterAlias("binary-operator-spaces", "operator-spacing")
	registry.RegisterAlias("trailing-comma-in-multiline", "list-spacing")
}

// ruleInfos describes the rules of the default registry for configuration
// templates.
func ruleInfos() []config.RuleInfo {
	regs := format.DefaultRegistry.Registrations()
	out := make([]config.RuleInfo, len(regs))
	for i, reg := range regs {
		out[i] = config.RuleInfo{Name: reg.Name, Description: reg.Description, Enabled: reg.Default}
	}
	return out
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(format.DefaultRegistry)
	RegisterAliases(format.DefaultRegistry)
	config.DefaultRuleInfoProvider = ruleInfos
}
