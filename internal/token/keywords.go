package token

var keywords = map[string]Kind{
	"import":    KwImport,
	"fun":       KwFun,
	"const":     KwConst,
	"public":    KwPublic,
	"protected": KwProtected,
	"private":   KwPrivate,
	"void":      KwVoid,
	"bool":      KwBool,
	"char":      KwChar,
	"int":       KwInt,
	"uint":      KwUint,
	"float":     KwFloat,
	"string":    KwString,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"class":     KwClass,
	"interface": KwInterface,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"break":     KwBreak,
	"continue":  KwContinue,
	"true":      KwTrue,
	"false":     KwFalse,
}

// LookupKeyword returns the keyword kind for ident.
// Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
