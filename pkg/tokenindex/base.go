package tokenindex

import "github.com/yaklabco/phpfmt/pkg/token"

var (
	keywords = []token.Kind{
		token.Abstract, token.And, token.Array, token.As, token.Break, token.Callable,
		token.Case, token.Catch, token.Class, token.Clone, token.Const, token.Continue,
		token.Declare, token.Default, token.Do, token.Echo, token.Else, token.Elseif,
		token.Empty, token.Enum, token.Eval, token.Exit, token.Extends, token.Final,
		token.Finally, token.Fn, token.For, token.Foreach, token.Function, token.Global,
		token.Goto, token.If, token.Implements, token.Include, token.IncludeOnce,
		token.Instanceof, token.Insteadof, token.Interface, token.Isset, token.List,
		token.Match, token.Namespace, token.New, token.Or, token.Print, token.Private,
		token.Protected, token.Public, token.Readonly, token.Require, token.RequireOnce,
		token.Return, token.Static, token.Switch, token.Throw, token.Trait, token.Try,
		token.Unset, token.Use, token.Var, token.While, token.Xor, token.Yield,
	}

	assignments = []token.Kind{
		token.Assign, token.PlusAssign, token.MinusAssign, token.MulAssign,
		token.DivAssign, token.ConcatAssign, token.ModAssign, token.PowAssign,
		token.AndAssign, token.OrAssign, token.XorAssign, token.ShlAssign,
		token.ShrAssign, token.CoalesceAssign,
	}

	comparisons = []token.Kind{
		token.Equal, token.NotEqual, token.Identical, token.NotIdentical,
		token.Less, token.Greater, token.LessEqual, token.GreaterEqual, token.Spaceship,
	}

	arithmetic = []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Pow,
	}

	bitwise = []token.Kind{
		token.Amp, token.Pipe, token.Caret, token.Tilde, token.Shl, token.Shr,
	}

	logical = []token.Kind{
		token.BooleanAnd, token.BooleanOr, token.Not, token.And, token.Or, token.Xor,
	}

	// binary operators that may start or end a broken line
	breakable = []token.Kind{
		token.Dot, token.Coalesce, token.BooleanAnd, token.BooleanOr,
		token.And, token.Or, token.Xor, token.Question, token.Colon,
		token.Plus, token.Minus, token.Star, token.Slash, token.Pipe, token.Amp,
	}
)

func concat(lists ...[]token.Kind) []token.Kind {
	var out []token.Kind
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// base is the PSR-12 flavoured table every index starts from.
var base = map[Category][]token.Kind{
	Keyword: keywords,
	ControlKeyword: {
		token.If, token.Elseif, token.Else, token.While, token.Do, token.For,
		token.Foreach, token.Switch, token.Try, token.Catch, token.Finally,
		token.Match, token.Declare,
	},
	DeclarationKeyword: {
		token.Function, token.Fn, token.Class, token.Interface, token.Trait,
		token.Enum, token.Namespace, token.Const, token.Use,
	},
	Modifier: {
		token.Abstract, token.Final, token.Public, token.Protected, token.Private,
		token.Static, token.Readonly, token.Var,
	},
	Operator: concat(assignments, comparisons, arithmetic, bitwise, logical, []token.Kind{
		token.Dot, token.Coalesce, token.Inc, token.Dec,
	}),
	AssignmentOperator: assignments,
	ComparisonOperator: comparisons,
	ArithmeticOperator: arithmetic,
	BitwiseOperator:    bitwise,
	LogicalOperator:    logical,
	UnaryOperator:      {token.Not, token.Tilde, token.At, token.Inc, token.Dec},
	MaybeUnary:         {token.Plus, token.Minus, token.Amp},
	ChainOperator:      {token.Arrow, token.NullsafeArrow},

	SpaceAfter: {
		token.Abstract, token.And, token.Array, token.As, token.Break, token.Callable,
		token.Case, token.Catch, token.Class, token.Clone, token.Const, token.Continue,
		token.Do, token.Echo, token.Else, token.Elseif, token.Enum, token.Extends,
		token.Final, token.Finally, token.For, token.Foreach, token.Function,
		token.Global, token.Goto, token.If, token.Implements, token.Include,
		token.IncludeOnce, token.Instanceof, token.Insteadof, token.Interface,
		token.Match, token.Namespace, token.New, token.Or, token.Print, token.Private,
		token.Protected, token.Public, token.Readonly, token.Require, token.RequireOnce,
		token.Return, token.Static, token.Switch, token.Throw, token.Trait, token.Try,
		token.Use, token.Var, token.While, token.Xor, token.Yield,
		token.Comma, token.Cast,
	},
	SpaceBefore: {
		token.As, token.Extends, token.Implements, token.Insteadof, token.Instanceof,
		token.And, token.Or, token.Xor, token.Catch, token.Finally, token.Elseif,
		token.Use,
	},
	SpaceBeforeParen: {
		token.If, token.Elseif, token.While, token.For, token.Foreach, token.Switch,
		token.Catch, token.Match, token.Function, token.Use, token.Return, token.Echo,
		token.Print, token.Yield, token.Include, token.IncludeOnce, token.Require,
		token.RequireOnce, token.Throw, token.Case, token.Clone, token.And, token.Or,
		token.Xor, token.As, token.Instanceof, token.Fn,
	},
	NoSpaceAfter: {
		token.OpenParen, token.OpenBracket, token.Attribute, token.Arrow,
		token.NullsafeArrow, token.DoubleColon, token.Not, token.Tilde, token.At,
		token.Dollar, token.Ellipsis,
	},
	NoSpaceBefore: {
		token.CloseParen, token.CloseBracket, token.Comma, token.Semicolon,
		token.Arrow, token.NullsafeArrow, token.DoubleColon,
	},

	PreserveNewlineBefore: concat(breakable, []token.Kind{
		token.Arrow, token.NullsafeArrow, token.CloseParen, token.CloseBracket,
		token.CloseBrace, token.OpenBrace, token.Comment, token.DocComment,
		token.Attribute, token.CloseTag,
	}),
	PreserveNewlineAfter: concat(breakable, assignments, []token.Kind{
		token.Comma, token.Semicolon, token.OpenBrace, token.CloseBrace,
		token.OpenParen, token.CloseParen, token.OpenBracket, token.CloseBracket,
		token.Attribute, token.OpenTag, token.Comment, token.DocComment,
		token.DoubleArrow,
	}),
	PreserveBlankBefore: {token.Comment, token.DocComment, token.Attribute},
	PreserveBlankAfter: {
		token.Semicolon, token.CloseBrace, token.Comment, token.DocComment, token.OpenTag,
		token.Comma,
	},
	DeclarationBraceOnNewLine: {
		token.Class, token.Interface, token.Trait, token.Enum, token.Function,
	},
}
