package token

import "ember/internal/source"

// Flags carries lexer facts about a token's surroundings.
type Flags uint8

const (
	// StartOfLine is set when only whitespace precedes the token on its line.
	StartOfLine Flags = 1 << iota
	// LeadingSpace is set when whitespace or a comment precedes the token.
	LeadingSpace
	// Annotation marks a token synthesized by the parser rather than lexed.
	Annotation
)

// Token is a single lexed token.
type Token struct {
	Kind  Kind
	Flags Flags
	Loc   source.Loc
	Len   uint32
	Text  string
	Ident *source.IdentInfo // only for Ident
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsNot reports whether the token does not have kind k.
func (t Token) IsNot(k Kind) bool { return t.Kind != k }

// IsOneOf reports whether the token has any of the given kinds.
func (t Token) IsOneOf(ks ...Kind) bool {
	for _, k := range ks {
		if t.Kind == k {
			return true
		}
	}
	return false
}

func (t Token) IsAnnotation() bool     { return t.Flags&Annotation != 0 }
func (t Token) IsCodeCompletion() bool { return t.Kind == CodeCompletion }
func (t Token) IsStringLiteral() bool  { return t.Kind == StringLit || t.Kind == CharLit }
func (t Token) IsParen() bool          { return t.Kind == LParen || t.Kind == RParen }
func (t Token) IsBracket() bool        { return t.Kind == LBracket || t.Kind == RBracket }
func (t Token) IsBrace() bool          { return t.Kind == LBrace || t.Kind == RBrace }
func (t Token) IsLiteral() bool        { return t.Kind.IsLiteral() }
func (t Token) IsKeyword() bool        { return t.Kind.IsKeyword() }
func (t Token) IsPunctOrOp() bool      { return t.Kind.IsPunctOrOp() }
func (t Token) IsIdent() bool          { return t.Kind == Ident }
func (t Token) AtStartOfLine() bool    { return t.Flags&StartOfLine != 0 }
func (t Token) HasLeadingSpace() bool  { return t.Flags&LeadingSpace != 0 }

// EndLoc returns the location just past the token.
func (t Token) EndLoc() source.Loc {
	if t.Loc.IsInvalid() {
		return t.Loc
	}
	return t.Loc.WithOffset(int32(t.Len))
}

// Range returns the token-granular range covering the token.
func (t Token) Range() source.Range { return source.RangeAt(t.Loc) }

func (t Token) String() string {
	if t.Text != "" {
		return t.Kind.String() + " '" + t.Text + "'"
	}
	return t.Kind.String()
}
