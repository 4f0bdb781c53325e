package tokenindex

import "github.com/yaklabco/phpfmt/pkg/token"

// Preset names.
const (
	PresetPSR12     = "psr12"
	PresetWordPress = "wordpress"
)

// Presets maps a preset name to the overrides it applies to the base table.
var Presets = map[string][]Op{
	PresetWordPress: {
		Add(SpaceInsideParens, token.OpenParen, token.CloseParen),
		Remove(NoSpaceAfter, token.OpenParen),
		Remove(NoSpaceBefore, token.CloseParen),
		Remove(NoSpaceAfter, token.Not),
		Add(SpaceAfter, token.Not),
		Remove(DeclarationBraceOnNewLine,
			token.Class, token.Interface, token.Trait, token.Enum, token.Function),
	},
}
