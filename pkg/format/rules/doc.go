// Package rules provides the built-in formatting rules of phpfmt.
//
// # Stages
//
// Rules run in four stages. Within a stage they run in ascending priority
// order; rules with equal priority run in name order.
//
//   - Token stage:
//
//   - protected-tokens (10): whitespace that carries meaning around tags,
//     heredocs, inline HTML and comments
//
//   - standard-whitespace (100): keyword, bracket and punctuation spacing
//
//   - operator-spacing (200): binary, ternary and unary operators
//
//   - preserve-newlines (300): line breaks and blank lines kept from the source
//
//   - brace-placement (400): block braces
//
//   - control-structure-spacing (500): else, catch and braceless bodies
//
//   - mixed-indentation (600): reports tab and space mixes
//
//   - List stage:
//
//   - list-spacing (100): broken lists and trailing commas
//
//   - Block stage:
//
//   - align-assignments (100): "=" and "=>" columns
//
//   - align-comments (200): trailing comment columns
//
//   - Before render:
//
//   - one-line-bodies (100): short function and closure bodies
//
//   - declaration-spacing (200): blank lines around declarations
//
//   - sort-imports (300): order of use statements
//
//   - indentation (1000): indentation levels
//
// Importing this package registers every rule with format.DefaultRegistry.
package rules
