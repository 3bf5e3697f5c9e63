package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// CodeCompletion marks the point where the user asked for completion.
	CodeCompletion

	// Ident represents an identifier token.
	Ident

	KwImport    // import
	KwFun       // fun
	KwConst     // const
	KwPublic    // public
	KwProtected // protected
	KwPrivate   // private
	KwVoid      // void
	KwBool      // bool
	KwChar      // char
	KwInt       // int
	KwUint      // uint
	KwFloat     // float
	KwString    // string
	KwStruct    // struct
	KwEnum      // enum
	KwClass     // class
	KwInterface // interface
	KwReturn    // return
	KwIf        // if
	KwElse      // else
	KwWhile     // while
	KwBreak     // break
	KwContinue  // continue
	KwTrue      // true
	KwFalse     // false

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// CharLit represents a character literal.
	CharLit
	// StringLit represents a string literal.
	StringLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	PlusPlus      // ++
	MinusMinus    // --
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	Ellipsis      // ...
	Arrow         // ->
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]

	numKinds
)

var names = [numKinds]string{
	Invalid:        "invalid",
	EOF:            "eof",
	CodeCompletion: "code_completion",
	Ident:          "identifier",
	IntLit:         "int_literal",
	FloatLit:       "float_literal",
	CharLit:        "char_literal",
	StringLit:      "string_literal",
}

var spellings [numKinds]string

var punctuation = [...]struct {
	k Kind
	s string
}{
	{Plus, "+"}, {Minus, "-"}, {Star, "*"}, {Slash, "/"}, {Percent, "%"},
	{Assign, "="}, {PlusAssign, "+="}, {MinusAssign, "-="}, {StarAssign, "*="},
	{SlashAssign, "/="}, {PercentAssign, "%="}, {AmpAssign, "&="}, {PipeAssign, "|="},
	{CaretAssign, "^="}, {ShlAssign, "<<="}, {ShrAssign, ">>="},
	{EqEq, "=="}, {Bang, "!"}, {BangEq, "!="}, {Lt, "<"}, {LtEq, "<="}, {Gt, ">"}, {GtEq, ">="},
	{Shl, "<<"}, {Shr, ">>"}, {Amp, "&"}, {Pipe, "|"}, {Caret, "^"}, {Tilde, "~"},
	{AndAnd, "&&"}, {OrOr, "||"}, {PlusPlus, "++"}, {MinusMinus, "--"},
	{Question, "?"}, {Colon, ":"}, {ColonColon, "::"}, {Semicolon, ";"}, {Comma, ","},
	{Dot, "."}, {Ellipsis, "..."}, {Arrow, "->"},
	{LParen, "("}, {RParen, ")"}, {LBrace, "{"}, {RBrace, "}"}, {LBracket, "["}, {RBracket, "]"},
}

func init() {
	for _, p := range punctuation {
		spellings[p.k] = p.s
	}
	for word, k := range keywords {
		spellings[k] = word
	}
}

// Spelling returns the fixed text of a keyword or punctuator, "" for other kinds.
func (k Kind) Spelling() string {
	if k >= numKinds {
		return ""
	}
	return spellings[k]
}

// String returns the spelling for fixed tokens and a descriptive name otherwise.
func (k Kind) String() string {
	if k >= numKinds {
		return "kind(?)"
	}
	if s := spellings[k]; s != "" {
		return s
	}
	return names[k]
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwImport && k <= KwFalse }

// IsLiteral reports whether k is a literal (true/false included).
func (k Kind) IsLiteral() bool {
	return (k >= IntLit && k <= StringLit) || k == KwTrue || k == KwFalse
}

// IsPunctOrOp reports whether k is a punctuator or operator.
func (k Kind) IsPunctOrOp() bool { return k >= Plus && k <= RBracket }

// IsBasicType reports whether k names a built-in type.
func (k Kind) IsBasicType() bool { return k >= KwVoid && k <= KwString }

// IsAccess reports whether k is an access specifier.
func (k Kind) IsAccess() bool { return k == KwPublic || k == KwProtected || k == KwPrivate }

// IsTagKeyword reports whether k introduces a record or enum.
func (k Kind) IsTagKeyword() bool { return k >= KwStruct && k <= KwInterface }

// IsAssignment reports whether k is '=' or a compound assignment.
func (k Kind) IsAssignment() bool { return k >= Assign && k <= ShrAssign }
