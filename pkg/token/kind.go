package token

import "fmt"

// Kind classifies a PHP token.
type Kind uint8

// Token kinds. The order is not significant except that Invalid is the zero
// value and NumKinds bounds the enumeration.
const (
	Invalid Kind = iota
	EOF

	OpenTag         // <?php
	OpenTagWithEcho // <?=
	CloseTag        // ?> (including one trailing newline, if any)
	InlineHTML      // text outside of PHP tags

	WhitespaceRun // spaces, tabs and line breaks
	Comment       // //, # or /* */
	DocComment    // /** */

	Variable // $name
	Name     // identifiers and namespaced names
	Number
	String // single-, double- or back-quoted
	Cast   // (int), (string), ...

	StartHeredoc // <<<LABEL and its newline
	HeredocBody  // everything between the opener and the closing line
	EndHeredoc   // closing label, including its indentation

	// Keywords.
	Abstract
	And // and
	Array
	As
	Break
	Callable
	Case
	Catch
	Class
	Clone
	Const
	Continue
	Declare
	Default
	Do
	Echo
	Else
	Elseif
	Empty
	Enum
	Eval
	Exit
	Extends
	Final
	Finally
	Fn
	For
	Foreach
	Function
	Global
	Goto
	If
	Implements
	Include
	IncludeOnce
	Instanceof
	Insteadof
	Interface
	Isset
	List
	Match
	Namespace
	New
	Or // or
	Print
	Private
	Protected
	Public
	Readonly
	Require
	RequireOnce
	Return
	Static
	Switch
	Throw
	Trait
	Try
	Unset
	Use
	Var
	While
	Xor // xor
	Yield

	// Brackets.
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace
	Attribute // #[

	// Punctuation.
	Semicolon
	Comma
	Colon
	DoubleColon
	Question
	At
	Dollar
	Ellipsis
	Arrow         // ->
	NullsafeArrow // ?->
	DoubleArrow   // =>

	// Assignment operators.
	Assign
	PlusAssign
	MinusAssign
	MulAssign
	DivAssign
	ConcatAssign
	ModAssign
	PowAssign
	AndAssign
	OrAssign
	XorAssign
	ShlAssign
	ShrAssign
	CoalesceAssign

	// Other operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Pow
	Dot
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Not
	BooleanAnd
	BooleanOr
	Coalesce
	Equal
	NotEqual
	Identical
	NotIdentical
	Less
	Greater
	LessEqual
	GreaterEqual
	Spaceship
	Inc
	Dec

	NumKinds
)

var kindNames = [NumKinds]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	OpenTag:         "OpenTag",
	OpenTagWithEcho: "OpenTagWithEcho",
	CloseTag:        "CloseTag",
	InlineHTML:      "InlineHTML",
	WhitespaceRun:   "Whitespace",
	Comment:         "Comment",
	DocComment:      "DocComment",
	Variable:        "Variable",
	Name:            "Name",
	Number:          "Number",
	String:          "String",
	Cast:            "Cast",
	StartHeredoc:    "StartHeredoc",
	HeredocBody:     "HeredocBody",
	EndHeredoc:      "EndHeredoc",
	Abstract:        "abstract",
	And:             "and",
	Array:           "array",
	As:              "as",
	Break:           "break",
	Callable:        "callable",
	Case:            "case",
	Catch:           "catch",
	Class:           "class",
	Clone:           "clone",
	Const:           "const",
	Continue:        "continue",
	Declare:         "declare",
	Default:         "default",
	Do:              "do",
	Echo:            "echo",
	Else:            "else",
	Elseif:          "elseif",
	Empty:           "empty",
	Enum:            "enum",
	Eval:            "eval",
	Exit:            "exit",
	Extends:         "extends",
	Final:           "final",
	Finally:         "finally",
	Fn:              "fn",
	For:             "for",
	Foreach:         "foreach",
	Function:        "function",
	Global:          "global",
	Goto:            "goto",
	If:              "if",
	Implements:      "implements",
	Include:         "include",
	IncludeOnce:     "include_once",
	Instanceof:      "instanceof",
	Insteadof:       "insteadof",
	Interface:       "interface",
	Isset:           "isset",
	List:            "list",
	Match:           "match",
	Namespace:       "namespace",
	New:             "new",
	Or:              "or",
	Print:           "print",
	Private:         "private",
	Protected:       "protected",
	Public:          "public",
	Readonly:        "readonly",
	Require:         "require",
	RequireOnce:     "require_once",
	Return:          "return",
	Static:          "static",
	Switch:          "switch",
	Throw:           "throw",
	Trait:           "trait",
	Try:             "try",
	Unset:           "unset",
	Use:             "use",
	Var:             "var",
	While:           "while",
	Xor:             "xor",
	Yield:           "yield",
	OpenParen:       "(",
	CloseParen:      ")",
	OpenBracket:     "[",
	CloseBracket:    "]",
	OpenBrace:       "{",
	CloseBrace:      "}",
	Attribute:       "#[",
	Semicolon:       ";",
	Comma:           ",",
	Colon:           ":",
	DoubleColon:     "::",
	Question:        "?",
	At:              "@",
	Dollar:          "$",
	Ellipsis:        "...",
	Arrow:           "->",
	NullsafeArrow:   "?->",
	DoubleArrow:     "=>",
	Assign:          "=",
	PlusAssign:      "+=",
	MinusAssign:     "-=",
	MulAssign:       "*=",
	DivAssign:       "/=",
	ConcatAssign:    ".=",
	ModAssign:       "%=",
	PowAssign:       "**=",
	AndAssign:       "&=",
	OrAssign:        "|=",
	XorAssign:       "^=",
	ShlAssign:       "<<=",
	ShrAssign:       ">>=",
	CoalesceAssign:  "??=",
	Plus:            "+",
	Minus:           "-",
	Star:            "*",
	Slash:           "/",
	Percent:         "%",
	Pow:             "**",
	Dot:             ".",
	Amp:             "&",
	Pipe:            "|",
	Caret:           "^",
	Tilde:           "~",
	Shl:             "<<",
	Shr:             ">>",
	Not:             "!",
	BooleanAnd:      "&&",
	BooleanOr:       "||",
	Coalesce:        "??",
	Equal:           "==",
	NotEqual:        "!=",
	Identical:       "===",
	NotIdentical:    "!==",
	Less:            "<",
	Greater:         ">",
	LessEqual:       "<=",
	GreaterEqual:    ">=",
	Spaceship:       "<=>",
	Inc:             "++",
	Dec:             "--",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < NumKinds && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("token.Kind(%d)", int(k))
}

// Valid reports whether k is a member of the enumeration.
func (k Kind) Valid() bool {
	return k > Invalid && k < NumKinds
}

// IsNotCode reports whether tokens of this kind carry no syntax, i.e. they are
// skipped by PrevCode and NextCode.
func (k Kind) IsNotCode() bool {
	return k == WhitespaceRun || k == Comment || k == DocComment
}

// IsComment reports whether k is a comment kind.
func (k Kind) IsComment() bool {
	return k == Comment || k == DocComment
}

// IsOpenBracket reports whether k opens a bracket pair.
func (k Kind) IsOpenBracket() bool {
	switch k {
	case OpenParen, OpenBracket, OpenBrace, Attribute:
		return true
	default:
		return false
	}
}

// IsCloseBracket reports whether k closes a bracket pair.
func (k Kind) IsCloseBracket() bool {
	switch k {
	case CloseParen, CloseBracket, CloseBrace:
		return true
	default:
		return false
	}
}

// Closer returns the kind that closes a bracket opened by k, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case OpenParen:
		return CloseParen
	case OpenBracket, Attribute:
		return CloseBracket
	case OpenBrace:
		return CloseBrace
	default:
		return Invalid
	}
}
