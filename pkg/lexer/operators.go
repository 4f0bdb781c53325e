package lexer

import "github.com/yaklabco/phpfmt/pkg/token"

type operator struct {
	text string
	kind token.Kind
}

// operators is ordered longest first so the first prefix match wins.
var operators = []operator{
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"**=", token.PowAssign},
	{"??=", token.CoalesceAssign},
	{"?->", token.NullsafeArrow},
	{"...", token.Ellipsis},
	{"<=>", token.Spaceship},
	{"===", token.Identical},
	{"!==", token.NotIdentical},

	{"->", token.Arrow},
	{"=>", token.DoubleArrow},
	{"::", token.DoubleColon},
	{"++", token.Inc},
	{"--", token.Dec},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.MulAssign},
	{"/=", token.DivAssign},
	{".=", token.ConcatAssign},
	{"%=", token.ModAssign},
	{"&=", token.AndAssign},
	{"|=", token.OrAssign},
	{"^=", token.XorAssign},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"<=", token.LessEqual},
	{">=", token.GreaterEqual},
	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"<>", token.NotEqual},
	{"&&", token.BooleanAnd},
	{"||", token.BooleanOr},
	{"??", token.Coalesce},
	{"**", token.Pow},

	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{".", token.Dot},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"!", token.Not},
	{"=", token.Assign},
	{"<", token.Less},
	{">", token.Greater},
	{"?", token.Question},
	{":", token.Colon},
	{";", token.Semicolon},
	{",", token.Comma},
	{")", token.CloseParen},
	{"[", token.OpenBracket},
	{"]", token.CloseBracket},
	{"{", token.OpenBrace},
	{"}", token.CloseBrace},
	{"@", token.At},
	{"$", token.Dollar},
}

// keywords maps lower-cased reserved words to their kinds.
var keywords = map[string]token.Kind{
	"abstract":     token.Abstract,
	"and":          token.And,
	"array":        token.Array,
	"as":           token.As,
	"break":        token.Break,
	"callable":     token.Callable,
	"case":         token.Case,
	"catch":        token.Catch,
	"class":        token.Class,
	"clone":        token.Clone,
	"const":        token.Const,
	"continue":     token.Continue,
	"declare":      token.Declare,
	"default":      token.Default,
	"die":          token.Exit,
	"do":           token.Do,
	"echo":         token.Echo,
	"else":         token.Else,
	"elseif":       token.Elseif,
	"empty":        token.Empty,
	"enum":         token.Enum,
	"eval":         token.Eval,
	"exit":         token.Exit,
	"extends":      token.Extends,
	"final":        token.Final,
	"finally":      token.Finally,
	"fn":           token.Fn,
	"for":          token.For,
	"foreach":      token.Foreach,
	"function":     token.Function,
	"global":       token.Global,
	"goto":         token.Goto,
	"if":           token.If,
	"implements":   token.Implements,
	"include":      token.Include,
	"include_once": token.IncludeOnce,
	"instanceof":   token.Instanceof,
	"insteadof":    token.Insteadof,
	"interface":    token.Interface,
	"isset":        token.Isset,
	"list":         token.List,
	"match":        token.Match,
	"namespace":    token.Namespace,
	"new":          token.New,
	"or":           token.Or,
	"print":        token.Print,
	"private":      token.Private,
	"protected":    token.Protected,
	"public":       token.Public,
	"readonly":     token.Readonly,
	"require":      token.Require,
	"require_once": token.RequireOnce,
	"return":       token.Return,
	"static":       token.Static,
	"switch":       token.Switch,
	"throw":        token.Throw,
	"trait":        token.Trait,
	"try":          token.Try,
	"unset":        token.Unset,
	"use":          token.Use,
	"var":          token.Var,
	"while":        token.While,
	"xor":          token.Xor,
	"yield":        token.Yield,
}
